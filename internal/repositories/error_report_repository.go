package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"asset_inventory_backend/internal/models"
)

// ErrorReportRepository defines the interface for error-report database operations.
type ErrorReportRepository interface {
	Create(executor SQLExecutor, report *models.ErrorReport) error
	GetByID(executor SQLExecutor, id string) (*models.ErrorReport, error)
	GetAll(status *string, limit int) ([]models.ErrorReport, error)
	Update(executor SQLExecutor, report *models.ErrorReport) error
	Delete(executor SQLExecutor, id string) error
}

type errorReportRepository struct {
	db *sql.DB
}

// NewErrorReportRepository creates a new instance of ErrorReportRepository.
func NewErrorReportRepository(db *sql.DB) ErrorReportRepository {
	return &errorReportRepository{db: db}
}

const errorReportColumns = `id, user_id, user_name, title, description, severity, status, created_at, resolved_at`

func (r *errorReportRepository) Create(executor SQLExecutor, report *models.ErrorReport) error {
	query := `INSERT INTO error_reports
	          (id, user_id, user_name, title, description, severity, status, created_at, resolved_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := executor.Exec(query,
		report.ID, report.UserID, report.UserName, report.Title, report.Description,
		report.Severity, report.Status, report.CreatedAt, report.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating error report: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *errorReportRepository) GetByID(executor SQLExecutor, id string) (*models.ErrorReport, error) {
	query := `SELECT ` + errorReportColumns + ` FROM error_reports WHERE id = $1`
	var report models.ErrorReport
	err := executor.QueryRow(query, id).Scan(
		&report.ID, &report.UserID, &report.UserName, &report.Title, &report.Description,
		&report.Severity, &report.Status, &report.CreatedAt, &report.ResolvedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanning error report: %v", ErrDatabaseError, err)
	}
	return &report, nil
}

func (r *errorReportRepository) GetAll(status *string, limit int) ([]models.ErrorReport, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + errorReportColumns + ` FROM error_reports`)

	var args []interface{}
	argCount := 1
	if status != nil && *status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE status = $%d", argCount))
		args = append(args, *status)
		argCount++
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argCount))
	args = append(args, limit)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting error reports: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	reports := []models.ErrorReport{}
	for rows.Next() {
		var report models.ErrorReport
		if err := rows.Scan(
			&report.ID, &report.UserID, &report.UserName, &report.Title, &report.Description,
			&report.Severity, &report.Status, &report.CreatedAt, &report.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning error report: %v", ErrDatabaseError, err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating error reports: %v", ErrDatabaseError, err)
	}
	return reports, nil
}

func (r *errorReportRepository) Update(executor SQLExecutor, report *models.ErrorReport) error {
	query := `UPDATE error_reports SET
	          title = $2, description = $3, severity = $4, status = $5, resolved_at = $6
	          WHERE id = $1`
	result, err := executor.Exec(query,
		report.ID, report.Title, report.Description, report.Severity, report.Status, report.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: updating error report: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "updating error report")
}

func (r *errorReportRepository) Delete(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM error_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting error report: %v", ErrDatabaseError, err)
	}
	return requireRowsAffected(result, "deleting error report")
}
