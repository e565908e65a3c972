package dto

import "time"

// RegisterRequest entrada de registro: crea organización + primer usuario admin,
// o añade un usuario a una organización existente si OrganizationID viene.
type RegisterRequest struct {
	OrganizationID   string `json:"organization_id" validate:"omitempty,uuid4"`
	OrganizationName string `json:"organization_name" validate:"omitempty,min=2,max=200"`
	TaxID            string `json:"tax_id" validate:"omitempty,max=50"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8,max=72"`
	Name             string `json:"name" validate:"omitempty,max=200"`
	Role             string `json:"role" validate:"omitempty,oneof=admin manager member"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
