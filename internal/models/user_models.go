package models

import "time"

// User roles. The original deployment only seeds supervisors and engineers,
// but the full set is accepted at the boundary.
const (
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleEngineer   = "engineer"
	RoleTeam       = "team"
	RoleViewer     = "viewer"
)

// User represents a maintenance-team member who can log in with a PIN.
type User struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name" binding:"required"`
	Role      string     `json:"role" db:"role" binding:"required"`
	PinHash   string     `json:"-" db:"pin_hash"` // bcrypt hash, never serialized
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedBy *string    `json:"created_by,omitempty" db:"created_by"`
}

// IsValidRole reports whether role is one of the accepted user roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleSupervisor, RoleEngineer, RoleTeam, RoleViewer:
		return true
	}
	return false
}
