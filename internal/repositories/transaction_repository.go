package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"asset_inventory_backend/internal/models"
)

// TransactionRepository defines the interface for the append-only transaction
// audit trail. Records are never updated or deleted.
type TransactionRepository interface {
	Create(executor SQLExecutor, transaction *models.Transaction) error
	GetAll(itemID *string, userID *string, transactionType *string, limit int) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new instance of TransactionRepository.
func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(executor SQLExecutor, transaction *models.Transaction) error {
	query := `INSERT INTO transactions
	          (id, item_id, item_type, transaction_type, quantity, condition,
	           user_id, user_name, notes, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := executor.Exec(query,
		transaction.ID, transaction.ItemID, transaction.ItemType, transaction.TransactionType,
		transaction.Quantity, transaction.Condition, transaction.UserID, transaction.UserName,
		transaction.Notes, transaction.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("%w: creating transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *transactionRepository) GetAll(itemID *string, userID *string, transactionType *string, limit int) ([]models.Transaction, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, item_id, item_type, transaction_type, quantity, condition,
	    user_id, user_name, notes, timestamp
	  FROM transactions`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if itemID != nil && *itemID != "" {
		conditions = append(conditions, fmt.Sprintf("item_id = $%d", argCount))
		args = append(args, *itemID)
		argCount++
	}
	if userID != nil && *userID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argCount))
		args = append(args, *userID)
		argCount++
	}
	if transactionType != nil && *transactionType != "" {
		conditions = append(conditions, fmt.Sprintf("transaction_type = $%d", argCount))
		args = append(args, *transactionType)
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d", argCount))
	args = append(args, limit)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var transaction models.Transaction
		if err := rows.Scan(
			&transaction.ID, &transaction.ItemID, &transaction.ItemType,
			&transaction.TransactionType, &transaction.Quantity, &transaction.Condition,
			&transaction.UserID, &transaction.UserName, &transaction.Notes,
			&transaction.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating transactions: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}
