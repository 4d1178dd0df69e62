package repositories

import (
	"database/sql"
	"fmt"

	"asset_inventory_backend/internal/models"
)

// StockTakeRepository defines the interface for stock-take batch records.
type StockTakeRepository interface {
	Create(executor SQLExecutor, stockTake *models.StockTake) error
	GetAll(limit int) ([]models.StockTake, error)
}

type stockTakeRepository struct {
	db *sql.DB
}

// NewStockTakeRepository creates a new instance of StockTakeRepository.
func NewStockTakeRepository(db *sql.DB) StockTakeRepository {
	return &stockTakeRepository{db: db}
}

func (r *stockTakeRepository) Create(executor SQLExecutor, stockTake *models.StockTake) error {
	entries, err := marshalJSONB(stockTake.Entries)
	if err != nil {
		return err
	}
	query := `INSERT INTO stock_takes
	          (id, user_id, user_name, item_type, entries, completed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = executor.Exec(query,
		stockTake.ID, stockTake.UserID, stockTake.UserName, stockTake.ItemType,
		entries, stockTake.Completed, stockTake.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating stock take: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *stockTakeRepository) GetAll(limit int) ([]models.StockTake, error) {
	query := `SELECT id, user_id, user_name, item_type, entries, completed, created_at
	          FROM stock_takes ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: getting stock takes: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	stockTakes := []models.StockTake{}
	for rows.Next() {
		var stockTake models.StockTake
		var entriesJSON []byte
		if err := rows.Scan(
			&stockTake.ID, &stockTake.UserID, &stockTake.UserName, &stockTake.ItemType,
			&entriesJSON, &stockTake.Completed, &stockTake.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning stock take: %v", ErrDatabaseError, err)
		}
		if err := unmarshalJSONB(entriesJSON, &stockTake.Entries); err != nil {
			return nil, err
		}
		stockTakes = append(stockTakes, stockTake)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stock takes: %v", ErrDatabaseError, err)
	}
	return stockTakes, nil
}
