package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"asset_inventory_backend/internal/models"
)

// ToolRepository defines the interface for tool-related database operations.
type ToolRepository interface {
	Create(executor SQLExecutor, tool *models.Tool) error
	GetByID(executor SQLExecutor, id string) (*models.Tool, error)
	GetAll(category *string, status *string, limit int) ([]models.Tool, error)
	Update(executor SQLExecutor, tool *models.Tool) error
	Delete(executor SQLExecutor, id string) error
	SetCheckedOut(executor SQLExecutor, id string, userName string) error
	SetCheckedIn(executor SQLExecutor, id string, condition *string) error
	SetCondition(executor SQLExecutor, id string, condition string) error
}

type toolRepository struct {
	db *sql.DB
}

// NewToolRepository creates a new instance of ToolRepository.
func NewToolRepository(db *sql.DB) ToolRepository {
	return &toolRepository{db: db}
}

const toolColumns = `id, name, description, category, status, condition, current_user_name,
	    location, supplier, supplier_product_code, qr_code, service_records, created_at, updated_at`

func (r *toolRepository) Create(executor SQLExecutor, tool *models.Tool) error {
	supplier, err := marshalJSONB(tool.Supplier)
	if err != nil {
		return err
	}
	records, err := marshalJSONB(tool.ServiceRecords)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	tool.CreatedAt = now
	tool.UpdatedAt = now

	query := `INSERT INTO tools
	          (id, name, description, category, status, condition, current_user_name,
	           location, supplier, supplier_product_code, qr_code, service_records,
	           created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = executor.Exec(query,
		tool.ID, tool.Name, tool.Description, tool.Category, tool.Status, tool.Condition,
		tool.CurrentUser, tool.Location, supplier, tool.SupplierProductCode,
		tool.QRCode, records, tool.CreatedAt, tool.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("%w: creating tool: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("%w: creating tool: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *toolRepository) GetByID(executor SQLExecutor, id string) (*models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`
	row := executor.QueryRow(query, id)

	tool, err := scanTool(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tool, nil
}

func (r *toolRepository) GetAll(category *string, status *string, limit int) ([]models.Tool, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + toolColumns + ` FROM tools`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if category != nil && *category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *category)
		argCount++
	}
	if status != nil && *status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *status)
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
		return nil, fmt.Errorf("%w: getting tools: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	tools := []models.Tool{}
	for rows.Next() {
		tool, err := scanTool(rows.Scan)
		if err != nil {
			return nil, err
		}
		tools = append(tools, *tool)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tools: %v", ErrDatabaseError, err)
	}
	return tools, nil
}

func (r *toolRepository) Update(executor SQLExecutor, tool *models.Tool) error {
	supplier, err := marshalJSONB(tool.Supplier)
	if err != nil {
		return err
	}
	records, err := marshalJSONB(tool.ServiceRecords)
	if err != nil {
		return err
	}
	tool.UpdatedAt = time.Now().UTC()

	query := `UPDATE tools SET
	          name = $2, description = $3, category = $4, status = $5, condition = $6,
	          current_user_name = $7, location = $8, supplier = $9,
	          supplier_product_code = $10, service_records = $11, updated_at = $12
	          WHERE id = $1`
	result, err := executor.Exec(query,
		tool.ID, tool.Name, tool.Description, tool.Category, tool.Status, tool.Condition,
		tool.CurrentUser, tool.Location, supplier, tool.SupplierProductCode,
		records, tool.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: updating tool: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "updating tool")
}

func (r *toolRepository) Delete(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM tools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting tool: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "deleting tool")
}

func (r *toolRepository) SetCheckedOut(executor SQLExecutor, id string, userName string) error {
	result, err := executor.Exec(
		`UPDATE tools SET status = $2, current_user_name = $3, updated_at = $4 WHERE id = $1`,
		id, models.ToolStatusInUse, userName, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: checking out tool: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "checking out tool")
}

// SetCheckedIn clears the holder, makes the tool available and, when a
// condition is supplied, records the returned condition.
func (r *toolRepository) SetCheckedIn(executor SQLExecutor, id string, condition *string) error {
	var result sql.Result
	var err error
	if condition != nil {
		result, err = executor.Exec(
			`UPDATE tools SET status = $2, current_user_name = NULL, condition = $3, updated_at = $4 WHERE id = $1`,
			id, models.ToolStatusAvailable, *condition, time.Now().UTC(),
		)
	} else {
		result, err = executor.Exec(
			`UPDATE tools SET status = $2, current_user_name = NULL, updated_at = $3 WHERE id = $1`,
			id, models.ToolStatusAvailable, time.Now().UTC(),
		)
	}
	if err != nil {
		return fmt.Errorf("%w: checking in tool: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "checking in tool")
}

func (r *toolRepository) SetCondition(executor SQLExecutor, id string, condition string) error {
	result, err := executor.Exec(
		`UPDATE tools SET condition = $2, updated_at = $3 WHERE id = $1`,
		id, condition, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: setting tool condition: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "setting tool condition")
}

func scanTool(scan func(dest ...interface{}) error) (*models.Tool, error) {
	var tool models.Tool
	var supplierJSON, recordsJSON []byte
	err := scan(
		&tool.ID, &tool.Name, &tool.Description, &tool.Category, &tool.Status,
		&tool.Condition, &tool.CurrentUser, &tool.Location, &supplierJSON,
		&tool.SupplierProductCode, &tool.QRCode, &recordsJSON,
		&tool.CreatedAt, &tool.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanning tool: %v", ErrDatabaseError, err)
	}
	if len(supplierJSON) > 0 {
		tool.Supplier = &models.SupplierRef{}
		if err := unmarshalJSONB(supplierJSON, tool.Supplier); err != nil {
			return nil, err
		}
	}
	if err := unmarshalJSONB(recordsJSON, &tool.ServiceRecords); err != nil {
		return nil, err
	}
	return &tool, nil
}
