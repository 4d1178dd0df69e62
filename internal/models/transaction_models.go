package models

import "time"

// Item types accepted by the transaction processor.
const (
	ItemTypeMaterial = "material"
	ItemTypeTool     = "tool"
)

// Transaction types.
const (
	TransactionTake      = "take"
	TransactionRestock   = "restock"
	TransactionStockTake = "stock_take"
	TransactionCheckOut  = "check_out"
	TransactionCheckIn   = "check_in"
)

// Transaction is an immutable audit record of one inventory-affecting event.
// It is never updated or deleted; current quantity/status lives denormalized
// on the Material/Tool record, not here.
type Transaction struct {
	ID              string    `json:"id" db:"id"`
	ItemID          string    `json:"item_id" db:"item_id"`
	ItemType        string    `json:"item_type" db:"item_type"`
	TransactionType string    `json:"transaction_type" db:"transaction_type"`
	Quantity        *int      `json:"quantity,omitempty" db:"quantity"`
	Condition       *string   `json:"condition,omitempty" db:"condition"`
	UserID          string    `json:"user_id" db:"user_id"`
	UserName        string    `json:"user_name" db:"user_name"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	Timestamp       time.Time `json:"timestamp" db:"timestamp"`
}

// StockTakeEntry is one counted correction inside a stock-take batch.
type StockTakeEntry struct {
	ItemID          string  `json:"item_id" binding:"required"`
	ItemType        string  `json:"item_type" binding:"required"`
	CountedQuantity *int    `json:"counted_quantity,omitempty"`
	Condition       *string `json:"condition,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// StockTake is a persisted batch reconciliation of counted quantities.
type StockTake struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	UserName  string           `json:"user_name" db:"user_name"`
	ItemType  string           `json:"item_type" db:"item_type"`
	Entries   []StockTakeEntry `json:"entries" db:"entries"`
	Completed bool             `json:"completed" db:"completed"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// IsValidItemType reports whether itemType is material or tool.
func IsValidItemType(itemType string) bool {
	return itemType == ItemTypeMaterial || itemType == ItemTypeTool
}

// IsValidTransactionType reports whether txType is an accepted transaction type.
func IsValidTransactionType(txType string) bool {
	switch txType {
	case TransactionTake, TransactionRestock, TransactionStockTake,
		TransactionCheckOut, TransactionCheckIn:
		return true
	}
	return false
}
