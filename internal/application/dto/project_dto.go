package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest entrada para crear un proyecto.
type CreateProjectRequest struct {
	ClientID       string          `json:"client_id" validate:"required,uuid4"`
	Name           string          `json:"name" validate:"required,min=2,max=200"`
	Description    string          `json:"description" validate:"omitempty,max=5000"`
	Status         string          `json:"status" validate:"omitempty,oneof=draft active on_hold completed cancelled"`
	Priority       string          `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Budget         decimal.Decimal `json:"budget"`
	Currency       string          `json:"currency" validate:"omitempty,len=3"`
	AssignedUserID string          `json:"assigned_user_id" validate:"omitempty,uuid4"`
	StartDate      *time.Time      `json:"start_date"`
	EndDate        *time.Time      `json:"end_date"`
}

// UpdateProjectRequest entrada de actualización parcial (nil = sin cambio).
type UpdateProjectRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Description    *string          `json:"description" validate:"omitempty,max=5000"`
	Status         *string          `json:"status" validate:"omitempty,oneof=draft active on_hold completed cancelled"`
	Priority       *string          `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Budget         *decimal.Decimal `json:"budget"`
	Currency       *string          `json:"currency" validate:"omitempty,len=3"`
	AssignedUserID *string          `json:"assigned_user_id" validate:"omitempty,uuid4"`
	StartDate      *time.Time       `json:"start_date"`
	EndDate        *time.Time       `json:"end_date"`
}

// ProjectStatusRequest cambio de estado vía PATCH /projects/:id/status.
type ProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active on_hold completed cancelled"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	ClientID       string          `json:"client_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Status         string          `json:"status"`
	Priority       string          `json:"priority"`
	Budget         decimal.Decimal `json:"budget"`
	Currency       string          `json:"currency"`
	AssignedUserID string          `json:"assigned_user_id,omitempty"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProjectStatsResponse agregados de proyectos.
type ProjectStatsResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}
