package dto

import (
	"encoding/json"
	"time"
)

// UpdateOrganizationRequest entrada para actualizar la organización del token.
type UpdateOrganizationRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=2,max=200"`
	Email       *string         `json:"email" validate:"omitempty,email"`
	Phone       *string         `json:"phone" validate:"omitempty,max=50"`
	Address     *string         `json:"address" validate:"omitempty,max=300"`
	Plan        *string         `json:"plan" validate:"omitempty,oneof=free starter business enterprise"`
	MaxUsers    *int            `json:"max_users" validate:"omitempty,gte=1"`
	MaxProjects *int            `json:"max_projects" validate:"omitempty,gte=1"`
	Branding    json.RawMessage `json:"branding"`
	SSOConfig   json.RawMessage `json:"sso_config"`
}

// OrganizationResponse salida de la organización.
type OrganizationResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TaxID       string          `json:"tax_id"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	Plan        string          `json:"plan"`
	MaxUsers    int             `json:"max_users"`
	MaxProjects int             `json:"max_projects"`
	Branding    json.RawMessage `json:"branding,omitempty"`
	SSOConfig   json.RawMessage `json:"sso_config,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
