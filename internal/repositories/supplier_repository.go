package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"asset_inventory_backend/internal/models"
)

// SupplierRepository defines the interface for supplier-related database operations.
type SupplierRepository interface {
	Create(executor SQLExecutor, supplier *models.Supplier) error
	GetByID(executor SQLExecutor, id string) (*models.Supplier, error)
	GetAll(supplierType *string, limit int) ([]models.Supplier, error)
	Update(executor SQLExecutor, supplier *models.Supplier) error
	Delete(executor SQLExecutor, id string) error
	ReplaceProducts(executor SQLExecutor, id string, products []models.SupplierProduct, scanMethod string, scannedAt time.Time) error
}

type supplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository creates a new instance of SupplierRepository.
func NewSupplierRepository(db *sql.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

const supplierColumns = `id, name, type, website, contact_person, phone, email,
	    account_number, delivery_info, products, last_scanned, scan_method, created_at, updated_at`

func (r *supplierRepository) Create(executor SQLExecutor, supplier *models.Supplier) error {
	products, err := marshalJSONB(supplier.Products)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	query := `INSERT INTO suppliers
	          (id, name, type, website, contact_person, phone, email, account_number,
	           delivery_info, products, last_scanned, scan_method, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = executor.Exec(query,
		supplier.ID, supplier.Name, supplier.Type, supplier.Website, supplier.ContactPerson,
		supplier.Phone, supplier.Email, supplier.AccountNumber, supplier.DeliveryInfo,
		products, supplier.LastScanned, supplier.ScanMethod, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("%w: creating supplier: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("%w: creating supplier: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *supplierRepository) GetByID(executor SQLExecutor, id string) (*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	row := executor.QueryRow(query, id)

	supplier, err := scanSupplier(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return supplier, err
}

func (r *supplierRepository) GetAll(supplierType *string, limit int) ([]models.Supplier, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + supplierColumns + ` FROM suppliers`)

	var args []interface{}
	argCount := 1
	if supplierType != nil && *supplierType != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE type = $%d", argCount))
		args = append(args, *supplierType)
		argCount++
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d", argCount))
	args = append(args, limit)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting suppliers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		supplier, err := scanSupplier(rows.Scan)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, *supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating suppliers: %v", ErrDatabaseError, err)
	}
	return suppliers, nil
}

func (r *supplierRepository) Update(executor SQLExecutor, supplier *models.Supplier) error {
	products, err := marshalJSONB(supplier.Products)
	if err != nil {
		return err
	}
	supplier.UpdatedAt = time.Now().UTC()

	query := `UPDATE suppliers SET
	          name = $2, type = $3, website = $4, contact_person = $5, phone = $6,
	          email = $7, account_number = $8, delivery_info = $9, products = $10,
	          updated_at = $11
	          WHERE id = $1`
	result, err := executor.Exec(query,
		supplier.ID, supplier.Name, supplier.Type, supplier.Website, supplier.ContactPerson,
		supplier.Phone, supplier.Email, supplier.AccountNumber, supplier.DeliveryInfo,
		products, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: updating supplier: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "updating supplier")
}

func (r *supplierRepository) Delete(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting supplier: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "deleting supplier")
}

// ReplaceProducts overwrites the supplier's product list wholesale and stamps
// the scan metadata. Scans never merge with previous results.
func (r *supplierRepository) ReplaceProducts(executor SQLExecutor, id string, products []models.SupplierProduct, scanMethod string, scannedAt time.Time) error {
	productsJSON, err := marshalJSONB(products)
	if err != nil {
		return err
	}
	query := `UPDATE suppliers SET products = $2, scan_method = $3, last_scanned = $4, updated_at = $4
	          WHERE id = $1`
	result, err := executor.Exec(query, id, productsJSON, scanMethod, scannedAt)
	if err != nil {
		return fmt.Errorf("%w: replacing supplier products: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "replacing supplier products")
}

func scanSupplier(scan func(dest ...interface{}) error) (*models.Supplier, error) {
	var supplier models.Supplier
	var productsJSON []byte
	err := scan(
		&supplier.ID, &supplier.Name, &supplier.Type, &supplier.Website,
		&supplier.ContactPerson, &supplier.Phone, &supplier.Email,
		&supplier.AccountNumber, &supplier.DeliveryInfo, &productsJSON,
		&supplier.LastScanned, &supplier.ScanMethod, &supplier.CreatedAt, &supplier.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanning supplier: %v", ErrDatabaseError, err)
	}
	supplier.Products = []models.SupplierProduct{}
	if err := unmarshalJSONB(productsJSON, &supplier.Products); err != nil {
		return nil, err
	}
	return &supplier, nil
}
