package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"asset_inventory_backend/internal/models"
)

// DeliveryFilter narrows delivery listings.
type DeliveryFilter struct {
	Status     *string
	SupplierID *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
}

// DeliveryStats is the aggregate view used by the analytics dashboard.
type DeliveryStats struct {
	Total     int
	Pending   int
	Completed int
	Monthly   int
}

// DeliverySearch is a cross-field text search. SortBy and SortOrder must be
// validated by the caller before they reach the query string.
type DeliverySearch struct {
	Query     string
	SortBy    string
	SortOrder string
	Limit     int
}

// DeliveryRepository defines the interface for delivery-related database operations.
type DeliveryRepository interface {
	Create(executor SQLExecutor, delivery *models.Delivery) error
	GetByID(executor SQLExecutor, id string) (*models.Delivery, error)
	GetAll(filter DeliveryFilter) ([]models.Delivery, error)
	Update(executor SQLExecutor, delivery *models.Delivery) error
	Delete(executor SQLExecutor, id string) error
	AppendAuditEntry(executor SQLExecutor, id string, entry models.AuditEntry) error
	GetStats(monthStart time.Time) (*DeliveryStats, error)
	GetRecent(limit int) ([]models.Delivery, error)
	Search(search DeliverySearch) ([]models.Delivery, error)
}

type deliveryRepository struct {
	db *sql.DB
}

// NewDeliveryRepository creates a new instance of DeliveryRepository.
func NewDeliveryRepository(db *sql.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

const deliveryColumns = `id, delivery_number, supplier_id, supplier_name, status, items,
	    total_items_expected, total_items_received, tracking_number, driver_name,
	    receiver_name, delivery_note_photo, ai_extracted_data, ai_confidence_score,
	    user_confirmed, expected_delivery_date, actual_delivery_date, audit_log,
	    created_at, updated_at`

func (r *deliveryRepository) Create(executor SQLExecutor, delivery *models.Delivery) error {
	items, err := marshalJSONB(delivery.Items)
	if err != nil {
		return err
	}
	auditLog, err := marshalJSONB(delivery.AuditLog)
	if err != nil {
		return err
	}
	extracted, err := marshalJSONB(delivery.AIExtractedData)
	if err != nil {
		return err
	}
	delivery.CreatedAt = time.Now().UTC()

	query := `INSERT INTO deliveries
	          (id, delivery_number, supplier_id, supplier_name, status, items,
	           total_items_expected, total_items_received, tracking_number, driver_name,
	           receiver_name, delivery_note_photo, ai_extracted_data, ai_confidence_score,
	           user_confirmed, expected_delivery_date, actual_delivery_date, audit_log,
	           created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	                  $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err = executor.Exec(query,
		delivery.ID, delivery.DeliveryNumber, delivery.SupplierID, delivery.SupplierName,
		delivery.Status, items, delivery.TotalItemsExpected, delivery.TotalItemsReceived,
		delivery.TrackingNumber, delivery.DriverName, delivery.ReceiverName,
		delivery.DeliveryNotePhoto, extracted, delivery.AIConfidenceScore,
		delivery.UserConfirmed, delivery.ExpectedDeliveryDate, delivery.ActualDeliveryDate,
		auditLog, delivery.CreatedAt, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating delivery: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *deliveryRepository) GetByID(executor SQLExecutor, id string) (*models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	row := executor.QueryRow(query, id)

	delivery, err := scanDelivery(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return delivery, err
}

func (r *deliveryRepository) GetAll(filter DeliveryFilter) ([]models.Delivery, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + deliveryColumns + ` FROM deliveries`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}
	if filter.SupplierID != nil && *filter.SupplierID != "" {
		conditions = append(conditions, fmt.Sprintf("supplier_id = $%d", argCount))
		args = append(args, *filter.SupplierID)
		argCount++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argCount))
		args = append(args, *filter.DateFrom)
		argCount++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argCount))
		args = append(args, *filter.DateTo)
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argCount))
	args = append(args, filter.Limit)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting deliveries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

func (r *deliveryRepository) Update(executor SQLExecutor, delivery *models.Delivery) error {
	items, err := marshalJSONB(delivery.Items)
	if err != nil {
		return err
	}
	auditLog, err := marshalJSONB(delivery.AuditLog)
	if err != nil {
		return err
	}
	extracted, err := marshalJSONB(delivery.AIExtractedData)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	delivery.UpdatedAt = &now

	query := `UPDATE deliveries SET
	          delivery_number = $2, supplier_id = $3, supplier_name = $4, status = $5,
	          items = $6, total_items_expected = $7, total_items_received = $8,
	          tracking_number = $9, driver_name = $10, receiver_name = $11,
	          delivery_note_photo = $12, ai_extracted_data = $13, ai_confidence_score = $14,
	          user_confirmed = $15, expected_delivery_date = $16, actual_delivery_date = $17,
	          audit_log = $18, updated_at = $19
	          WHERE id = $1`
	result, err := executor.Exec(query,
		delivery.ID, delivery.DeliveryNumber, delivery.SupplierID, delivery.SupplierName,
		delivery.Status, items, delivery.TotalItemsExpected, delivery.TotalItemsReceived,
		delivery.TrackingNumber, delivery.DriverName, delivery.ReceiverName,
		delivery.DeliveryNotePhoto, extracted, delivery.AIConfidenceScore,
		delivery.UserConfirmed, delivery.ExpectedDeliveryDate, delivery.ActualDeliveryDate,
		auditLog, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: updating delivery: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "updating delivery")
}

func (r *deliveryRepository) Delete(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting delivery: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "deleting delivery")
}

// AppendAuditEntry pushes one entry onto the delivery's JSONB audit log.
func (r *deliveryRepository) AppendAuditEntry(executor SQLExecutor, id string, entry models.AuditEntry) error {
	entryJSON, err := marshalJSONB(entry)
	if err != nil {
		return err
	}
	query := `UPDATE deliveries
	          SET audit_log = COALESCE(audit_log, '[]'::jsonb) || $2::jsonb, updated_at = $3
	          WHERE id = $1`
	result, err := executor.Exec(query, id, entryJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: appending audit entry: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "appending audit entry")
}

func (r *deliveryRepository) GetStats(monthStart time.Time) (*DeliveryStats, error) {
	query := `SELECT
	            COUNT(*),
	            COUNT(*) FILTER (WHERE status = 'pending'),
	            COUNT(*) FILTER (WHERE status = 'completed'),
	            COUNT(*) FILTER (WHERE created_at >= $1)
	          FROM deliveries`
	var stats DeliveryStats
	err := r.db.QueryRow(query, monthStart).Scan(&stats.Total, &stats.Pending, &stats.Completed, &stats.Monthly)
	if err != nil {
		return nil, fmt.Errorf("%w: getting delivery stats: %v", ErrDatabaseError, err)
	}
	return &stats, nil
}

func (r *deliveryRepository) GetRecent(limit int) ([]models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: getting recent deliveries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

// Search matches the query against the delivery's text fields plus the items
// and audit_log documents. The JSONB columns are cast to text so item names,
// item codes and audit actions all participate without per-key indexes.
func (r *deliveryRepository) Search(search DeliverySearch) ([]models.Delivery, error) {
	pattern := "%" + search.Query + "%"
	query := `SELECT ` + deliveryColumns + ` FROM deliveries
	          WHERE supplier_name ILIKE $1
	             OR delivery_number ILIKE $1
	             OR tracking_number ILIKE $1
	             OR driver_name ILIKE $1
	             OR receiver_name ILIKE $1
	             OR items::text ILIKE $1
	             OR audit_log::text ILIKE $1
	          ORDER BY ` + search.SortBy + ` ` + search.SortOrder + ` LIMIT $2`
	rows, err := r.db.Query(query, pattern, search.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: searching deliveries: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

func collectDeliveries(rows *sql.Rows) ([]models.Delivery, error) {
	deliveries := []models.Delivery{}
	for rows.Next() {
		delivery, err := scanDelivery(rows.Scan)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, *delivery)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating deliveries: %v", ErrDatabaseError, err)
	}
	return deliveries, nil
}

func scanDelivery(scan func(dest ...interface{}) error) (*models.Delivery, error) {
	var delivery models.Delivery
	var itemsJSON, extractedJSON, auditJSON []byte
	err := scan(
		&delivery.ID, &delivery.DeliveryNumber, &delivery.SupplierID, &delivery.SupplierName,
		&delivery.Status, &itemsJSON, &delivery.TotalItemsExpected, &delivery.TotalItemsReceived,
		&delivery.TrackingNumber, &delivery.DriverName, &delivery.ReceiverName,
		&delivery.DeliveryNotePhoto, &extractedJSON, &delivery.AIConfidenceScore,
		&delivery.UserConfirmed, &delivery.ExpectedDeliveryDate, &delivery.ActualDeliveryDate,
		&auditJSON, &delivery.CreatedAt, &delivery.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanning delivery: %v", ErrDatabaseError, err)
	}
	delivery.Items = []models.DeliveryItem{}
	if err := unmarshalJSONB(itemsJSON, &delivery.Items); err != nil {
		return nil, err
	}
	delivery.AuditLog = []models.AuditEntry{}
	if err := unmarshalJSONB(auditJSON, &delivery.AuditLog); err != nil {
		return nil, err
	}
	if len(extractedJSON) > 0 {
		delivery.AIExtractedData = &models.DeliveryExtraction{}
		if err := unmarshalJSONB(extractedJSON, delivery.AIExtractedData); err != nil {
			return nil, err
		}
	}
	return &delivery, nil
}
