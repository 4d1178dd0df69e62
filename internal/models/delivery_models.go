package models

import "time"

// Delivery status values.
const (
	DeliveryPending           = "pending"
	DeliveryInTransit         = "in_transit"
	DeliveryDelivered         = "delivered"
	DeliveryPartiallyReceived = "partially_received"
	DeliveryDamaged           = "damaged"
	DeliveryCompleted         = "completed"
)

// DeliveryItem is one expected-vs-received line item on a delivery.
type DeliveryItem struct {
	ItemName         string  `json:"item_name"`
	ItemCode         *string `json:"item_code,omitempty"`
	QuantityExpected int     `json:"quantity_expected"`
	QuantityReceived int     `json:"quantity_received"`
	Condition        *string `json:"condition,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// AuditEntry is one append-only line in a delivery's audit log.
type AuditEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	UserID    string                 `json:"user_id"`
	UserName  string                 `json:"user_name"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Screen    string                 `json:"screen"`
}

// ExtractedItem is one line item pulled from a delivery-note photo.
type ExtractedItem struct {
	ItemName string  `json:"item_name"`
	ItemCode *string `json:"item_code,omitempty"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    *string `json:"notes,omitempty"`
}

// DeliveryExtraction is the structured result of delivery-note processing.
type DeliveryExtraction struct {
	DeliveryNumber  string          `json:"delivery_number"`
	SupplierName    string          `json:"supplier_name"`
	DeliveryDate    string          `json:"delivery_date"`
	DriverName      string          `json:"driver_name"`
	Items           []ExtractedItem `json:"items"`
	SpecialNotes    *string         `json:"special_notes,omitempty"`
	ConfidenceScore float64         `json:"confidence_score"`
}

// Delivery is an inbound shipment with expected vs. received line items and
// an append-only audit trail.
type Delivery struct {
	ID                   string              `json:"id" db:"id"`
	DeliveryNumber       *string             `json:"delivery_number,omitempty" db:"delivery_number"`
	SupplierID           *string             `json:"supplier_id,omitempty" db:"supplier_id"`
	SupplierName         *string             `json:"supplier_name,omitempty" db:"supplier_name"`
	Status               string              `json:"status" db:"status"`
	Items                []DeliveryItem      `json:"items" db:"items"`
	TotalItemsExpected   int                 `json:"total_items_expected" db:"total_items_expected"`
	TotalItemsReceived   int                 `json:"total_items_received" db:"total_items_received"`
	TrackingNumber       *string             `json:"tracking_number,omitempty" db:"tracking_number"`
	DriverName           *string             `json:"driver_name,omitempty" db:"driver_name"`
	ReceiverName         *string             `json:"receiver_name,omitempty" db:"receiver_name"`
	DeliveryNotePhoto    *string             `json:"delivery_note_photo,omitempty" db:"delivery_note_photo"`
	AIExtractedData      *DeliveryExtraction `json:"ai_extracted_data,omitempty" db:"ai_extracted_data"`
	AIConfidenceScore    *float64            `json:"ai_confidence_score,omitempty" db:"ai_confidence_score"`
	UserConfirmed        bool                `json:"user_confirmed" db:"user_confirmed"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date,omitempty" db:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time          `json:"actual_delivery_date,omitempty" db:"actual_delivery_date"`
	AuditLog             []AuditEntry        `json:"audit_log" db:"audit_log"`
	CreatedAt            time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt            *time.Time          `json:"updated_at,omitempty" db:"updated_at"`
}

// IsValidDeliveryStatus reports whether status is an accepted delivery status.
func IsValidDeliveryStatus(status string) bool {
	switch status {
	case DeliveryPending, DeliveryInTransit, DeliveryDelivered,
		DeliveryPartiallyReceived, DeliveryDamaged, DeliveryCompleted:
		return true
	}
	return false
}
