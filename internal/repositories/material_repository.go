package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"asset_inventory_backend/internal/models"
)

// MaterialRepository defines the interface for material-related database operations.
type MaterialRepository interface {
	Create(executor SQLExecutor, material *models.Material) error
	GetByID(executor SQLExecutor, id string) (*models.Material, error)
	GetAll(category *string, search *string, limit int) ([]models.Material, error)
	Update(executor SQLExecutor, material *models.Material) error
	Delete(executor SQLExecutor, id string) error
	AdjustQuantity(executor SQLExecutor, id string, delta int) (int, error)
	SetQuantity(executor SQLExecutor, id string, quantity int) error
	GetLowStock(limit int) ([]models.Material, error)
}

type materialRepository struct {
	db *sql.DB
}

// NewMaterialRepository creates a new instance of MaterialRepository.
func NewMaterialRepository(db *sql.DB) MaterialRepository {
	return &materialRepository{db: db}
}

const materialColumns = `id, name, description, category, quantity, unit, min_stock, location,
	    supplier, supplier_product_code, qr_code, created_at, updated_at`

func (r *materialRepository) Create(executor SQLExecutor, material *models.Material) error {
	supplier, err := marshalJSONB(material.Supplier)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	material.CreatedAt = now
	material.UpdatedAt = now

	query := `INSERT INTO materials
	          (id, name, description, category, quantity, unit, min_stock, location,
	           supplier, supplier_product_code, qr_code, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = executor.Exec(query,
		material.ID, material.Name, material.Description, material.Category,
		material.Quantity, material.Unit, material.MinStock, material.Location,
		supplier, material.SupplierProductCode, material.QRCode,
		material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("%w: creating material: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("%w: creating material: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *materialRepository) GetByID(executor SQLExecutor, id string) (*models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return scanMaterial(executor.QueryRow(query, id))
}

func (r *materialRepository) GetAll(category *string, search *string, limit int) ([]models.Material, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + materialColumns + ` FROM materials`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if category != nil && *category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *category)
		argCount++
	}
	if search != nil && *search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR qr_code ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*search+"%")
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d", argCount))
	args = append(args, limit)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting materials: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

func (r *materialRepository) Update(executor SQLExecutor, material *models.Material) error {
	supplier, err := marshalJSONB(material.Supplier)
	if err != nil {
		return err
	}
	material.UpdatedAt = time.Now().UTC()

	query := `UPDATE materials SET
	          name = $2, description = $3, category = $4, quantity = $5, unit = $6,
	          min_stock = $7, location = $8, supplier = $9, supplier_product_code = $10,
	          updated_at = $11
	          WHERE id = $1`
	result, err := executor.Exec(query,
		material.ID, material.Name, material.Description, material.Category,
		material.Quantity, material.Unit, material.MinStock, material.Location,
		supplier, material.SupplierProductCode, material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: updating material: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "updating material")
}

func (r *materialRepository) Delete(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting material: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "deleting material")
}

// AdjustQuantity applies a guarded relative quantity change. The WHERE clause
// keeps the stored quantity from ever going negative, even under concurrent
// writers; ErrNoRowsAffected is returned when the guard rejects the change
// for an existing record.
func (r *materialRepository) AdjustQuantity(executor SQLExecutor, id string, delta int) (int, error) {
	query := `UPDATE materials
	          SET quantity = quantity + $2, updated_at = $3
	          WHERE id = $1 AND quantity + $2 >= 0
	          RETURNING quantity`
	var quantity int
	err := executor.QueryRow(query, id, delta, time.Now().UTC()).Scan(&quantity)
	if err == sql.ErrNoRows {
		// Distinguish a missing record from a rejected decrement.
		if _, getErr := r.GetByID(executor, id); getErr != nil {
			return 0, getErr
		}
		return 0, ErrNoRowsAffected
	}
	if err != nil {
		return 0, fmt.Errorf("%w: adjusting material quantity: %v", ErrDatabaseError, err)
	}
	return quantity, nil
}

func (r *materialRepository) SetQuantity(executor SQLExecutor, id string, quantity int) error {
	result, err := executor.Exec(
		`UPDATE materials SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: setting material quantity: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "setting material quantity")
}

// GetLowStock returns every material at or below its minimum-stock threshold.
// The comparison is intentionally inclusive: quantity == min_stock alerts.
func (r *materialRepository) GetLowStock(limit int) ([]models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials
	          WHERE quantity <= min_stock ORDER BY quantity ASC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: getting low stock materials: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

func scanMaterial(row *sql.Row) (*models.Material, error) {
	var material models.Material
	var supplierJSON []byte
	err := row.Scan(
		&material.ID, &material.Name, &material.Description, &material.Category,
		&material.Quantity, &material.Unit, &material.MinStock, &material.Location,
		&supplierJSON, &material.SupplierProductCode, &material.QRCode,
		&material.CreatedAt, &material.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanning material: %v", ErrDatabaseError, err)
	}
	if len(supplierJSON) > 0 {
		material.Supplier = &models.SupplierRef{}
		if err := unmarshalJSONB(supplierJSON, material.Supplier); err != nil {
			return nil, err
		}
	}
	return &material, nil
}

func collectMaterials(rows *sql.Rows) ([]models.Material, error) {
	materials := []models.Material{}
	for rows.Next() {
		var material models.Material
		var supplierJSON []byte
		if err := rows.Scan(
			&material.ID, &material.Name, &material.Description, &material.Category,
			&material.Quantity, &material.Unit, &material.MinStock, &material.Location,
			&supplierJSON, &material.SupplierProductCode, &material.QRCode,
			&material.CreatedAt, &material.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning material: %v", ErrDatabaseError, err)
		}
		if len(supplierJSON) > 0 {
			material.Supplier = &models.SupplierRef{}
			if err := unmarshalJSONB(supplierJSON, material.Supplier); err != nil {
				return nil, err
			}
		}
		materials = append(materials, material)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating materials: %v", ErrDatabaseError, err)
	}
	return materials, nil
}

func requireRowsAffected(result sql.Result, action string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
