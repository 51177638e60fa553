package model

import "time"

// Role is the closed set of user roles. Authorization decisions key off this
// single dimension; anything outside the set is rejected at the boundary.
type Role string

const (
	RoleGuest  Role = "guest"
	RoleHost   Role = "host"
	RoleAdmin  Role = "admin"
	RoleBanned Role = "banned"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin, RoleBanned:
		return true
	}
	return false
}

// User represents a registered user. Users are never hard-deleted; banning
// sets the role to the terminal "banned" value.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:20;not null;default:'guest'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the acting identity resolved by the transport layer from
// verified token claims. Services authorize against it without further I/O.
type Principal struct {
	ID   uint
	Role Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
