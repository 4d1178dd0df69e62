package models

import "time"

// Notification types written by the delivery workflow.
const (
	NotificationDeliveryCreated   = "delivery_created"
	NotificationDeliveryCompleted = "delivery_completed"
)

// Notification is a broadcast message for the whole team. ReadBy collects the
// IDs of users who have seen it.
type Notification struct {
	ID        string                 `json:"id" db:"id"`
	Title     string                 `json:"title" db:"title"`
	Message   string                 `json:"message" db:"message"`
	Type      string                 `json:"type" db:"type"`
	Data      map[string]interface{} `json:"data,omitempty" db:"data"`
	ReadBy    []string               `json:"read_by" db:"read_by"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}
