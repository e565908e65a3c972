package entity

import "time"

// Roles de usuario dentro de una organización.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// User representa un usuario autenticable de una organización.
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string
	Name           string
	Role           string // ver constantes Role*
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
