package models

import "time"

// Error report severities and statuses.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"

	ReportOpen     = "open"
	ReportResolved = "resolved"
)

// ErrorReport is a user-filed problem report about the inventory itself
// (missing items, damaged stock, miscounts).
type ErrorReport struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	UserName    string     `json:"user_name" db:"user_name"`
	Title       string     `json:"title" db:"title" binding:"required"`
	Description *string    `json:"description,omitempty" db:"description"`
	Severity    string     `json:"severity" db:"severity"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
}

// IsValidSeverity reports whether severity is an accepted report severity.
func IsValidSeverity(severity string) bool {
	switch severity {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
