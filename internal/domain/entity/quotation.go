package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una cotización: draft -> sent -> accepted/rejected/expired.
const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusRejected = "rejected"
	QuotationStatusExpired  = "expired"
)

// Quotation propuesta de precios enviada a un cliente.
type Quotation struct {
	ID              string
	OrganizationID  string
	ClientID        string
	QuotationNumber string
	Status          string // ver constantes QuotationStatus*
	Currency        string
	Subtotal        decimal.Decimal
	TaxTotal        decimal.Decimal
	DiscountTotal   decimal.Decimal
	GrandTotal      decimal.Decimal
	ValidUntil      *time.Time
	Notes           string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []QuotationItem // cargado bajo demanda
}

// QuotationItem una línea de la cotización.
type QuotationItem struct {
	ID           string
	QuotationID  string
	Description  string
	Quantity     decimal.Decimal
	UnitType     string // ver constantes Unit*
	UnitPrice    decimal.Decimal
	TaxRate      decimal.Decimal
	DiscountRate decimal.Decimal
	Subtotal     decimal.Decimal
	CreatedAt    time.Time
}

// QuotationPatch campos actualizables de una cotización (nil = sin cambio).
type QuotationPatch struct {
	ClientID   *string
	Status     *string
	Currency   *string
	ValidUntil *time.Time
	Notes      *string
}
