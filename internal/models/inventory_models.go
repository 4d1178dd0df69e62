package models

import "time"

// Tool status values.
const (
	ToolStatusAvailable   = "available"
	ToolStatusInUse       = "in_use"
	ToolStatusMaintenance = "maintenance"
	ToolStatusOutOfOrder  = "out_of_order"
)

// Tool condition values.
const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

// SupplierRef is the supplier snapshot embedded into materials and tools.
// It is a denormalized copy, not a foreign key: deleting the supplier does
// not touch items that reference it.
type SupplierRef struct {
	ID            *string `json:"id,omitempty"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
}

// Material is a consumable inventory item tracked by count.
// Invariant: Quantity >= 0; mutated only through the transaction processor,
// delivery confirmation or direct update endpoints.
type Material struct {
	ID                  string       `json:"id" db:"id"`
	Name                string       `json:"name" db:"name" binding:"required"`
	Description         *string      `json:"description,omitempty" db:"description"`
	Category            string       `json:"category" db:"category"`
	Quantity            int          `json:"quantity" db:"quantity"`
	Unit                string       `json:"unit" db:"unit"`
	MinStock            int          `json:"min_stock" db:"min_stock"`
	Location            *string      `json:"location,omitempty" db:"location"`
	Supplier            *SupplierRef `json:"supplier,omitempty" db:"supplier"`
	SupplierProductCode *string      `json:"supplier_product_code,omitempty" db:"supplier_product_code"`
	QRCode              string       `json:"qr_code" db:"qr_code"`
	CreatedAt           time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at" db:"updated_at"`
}

// ServiceRecord is one maintenance entry in a tool's service history.
type ServiceRecord struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	PerformedBy string    `json:"performed_by"`
}

// Tool is a non-consumable inventory item tracked by status and holder.
// Invariant: Status == in_use implies CurrentUser is set, Status == available
// implies it is cleared. Enforced by the check_out/check_in transaction
// branches; direct updates can bypass it.
type Tool struct {
	ID                  string          `json:"id" db:"id"`
	Name                string          `json:"name" db:"name" binding:"required"`
	Description         *string         `json:"description,omitempty" db:"description"`
	Category            string          `json:"category" db:"category"`
	Status              string          `json:"status" db:"status"`
	Condition           string          `json:"condition" db:"condition"`
	CurrentUser         *string         `json:"current_user,omitempty" db:"current_user"`
	Location            *string         `json:"location,omitempty" db:"location"`
	Supplier            *SupplierRef    `json:"supplier,omitempty" db:"supplier"`
	SupplierProductCode *string         `json:"supplier_product_code,omitempty" db:"supplier_product_code"`
	QRCode              string          `json:"qr_code" db:"qr_code"`
	ServiceRecords      []ServiceRecord `json:"service_records,omitempty" db:"service_records"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

// IsValidToolStatus reports whether status is an accepted tool status.
func IsValidToolStatus(status string) bool {
	switch status {
	case ToolStatusAvailable, ToolStatusInUse, ToolStatusMaintenance, ToolStatusOutOfOrder:
		return true
	}
	return false
}

// IsValidCondition reports whether condition is an accepted tool condition.
func IsValidCondition(condition string) bool {
	switch condition {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}
