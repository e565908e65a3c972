package dto

import "time"

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=200"`
	TaxID          string `json:"tax_id" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"omitempty,max=50"`
	BillingAddress string `json:"billing_address" validate:"omitempty,max=300"`
	City           string `json:"city" validate:"omitempty,max=100"`
	Country        string `json:"country" validate:"omitempty,max=100"`
	Industry       string `json:"industry" validate:"omitempty,max=100"`
	Region         string `json:"region" validate:"omitempty,max=100"`
	Notes          string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateClientRequest entrada de actualización parcial (nil = sin cambio).
type UpdateClientRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=200"`
	TaxID          *string `json:"tax_id" validate:"omitempty,min=3,max=50"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=50"`
	BillingAddress *string `json:"billing_address" validate:"omitempty,max=300"`
	City           *string `json:"city" validate:"omitempty,max=100"`
	Country        *string `json:"country" validate:"omitempty,max=100"`
	Industry       *string `json:"industry" validate:"omitempty,max=100"`
	Region         *string `json:"region" validate:"omitempty,max=100"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	TaxID          string    `json:"tax_id"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	BillingAddress string    `json:"billing_address"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	Industry       string    `json:"industry"`
	Region         string    `json:"region"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClientStatsResponse agregados de clientes.
type ClientStatsResponse struct {
	Total        int            `json:"total"`
	NewThisMonth int            `json:"new_this_month"`
	ByIndustry   map[string]int `json:"by_industry"`
}
