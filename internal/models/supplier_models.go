package models

import "time"

// SupplierProduct is one catalog entry attached to a supplier. The product
// list is replaced wholesale on each website scan, never merged.
type SupplierProduct struct {
	Name        string  `json:"name"`
	ProductCode string  `json:"product_code"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	SupplierID  string  `json:"supplier_id"`
}

// Supplier represents an external vendor with an embedded product catalog.
type Supplier struct {
	ID            string            `json:"id" db:"id"`
	Name          string            `json:"name" db:"name" binding:"required"`
	Type          string            `json:"type" db:"type"`
	Website       *string           `json:"website,omitempty" db:"website"`
	ContactPerson *string           `json:"contact_person,omitempty" db:"contact_person"`
	Phone         *string           `json:"phone,omitempty" db:"phone"`
	Email         *string           `json:"email,omitempty" db:"email"`
	AccountNumber *string           `json:"account_number,omitempty" db:"account_number"`
	DeliveryInfo  *string           `json:"delivery_info,omitempty" db:"delivery_info"`
	Products      []SupplierProduct `json:"products" db:"products"`
	LastScanned   *time.Time        `json:"last_scanned,omitempty" db:"last_scanned"`
	ScanMethod    *string           `json:"scan_method,omitempty" db:"scan_method"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}
