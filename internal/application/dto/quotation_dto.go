package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationItemRequest una línea de cotización.
type QuotationItemRequest struct {
	Description  string          `json:"description" validate:"required,min=1,max=500"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	UnitType     string          `json:"unit_type" validate:"required,oneof=hour day unit package month"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"required"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

// CreateQuotationRequest entrada para crear una cotización con sus líneas.
type CreateQuotationRequest struct {
	ClientID   string                 `json:"client_id" validate:"required,uuid4"`
	Currency   string                 `json:"currency" validate:"omitempty,len=3"`
	ValidUntil *time.Time             `json:"valid_until"`
	Notes      string                 `json:"notes" validate:"omitempty,max=2000"`
	Items      []QuotationItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// UpdateQuotationRequest entrada de actualización parcial (nil = sin cambio).
type UpdateQuotationRequest struct {
	ClientID   *string    `json:"client_id" validate:"omitempty,uuid4"`
	Currency   *string    `json:"currency" validate:"omitempty,len=3"`
	ValidUntil *time.Time `json:"valid_until"`
	Notes      *string    `json:"notes" validate:"omitempty,max=2000"`
}

// QuotationStatusRequest cambio de estado vía PATCH /quotations/:id/status.
type QuotationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent accepted rejected expired"`
}

// QuotationItemResponse salida de una línea.
type QuotationItemResponse struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitType     string          `json:"unit_type"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID              string                  `json:"id"`
	OrganizationID  string                  `json:"organization_id"`
	ClientID        string                  `json:"client_id"`
	QuotationNumber string                  `json:"quotation_number"`
	Status          string                  `json:"status"`
	Currency        string                  `json:"currency"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	TaxTotal        decimal.Decimal         `json:"tax_total"`
	DiscountTotal   decimal.Decimal         `json:"discount_total"`
	GrandTotal      decimal.Decimal         `json:"grand_total"`
	ValidUntil      *time.Time              `json:"valid_until,omitempty"`
	Notes           string                  `json:"notes"`
	Items           []QuotationItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// QuotationStatsResponse agregados de cotizaciones.
type QuotationStatsResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}
