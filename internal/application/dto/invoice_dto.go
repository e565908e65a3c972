package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest una línea de factura.
type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitType    string          `json:"unit_type" validate:"required,oneof=hour day unit package month"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreateInvoiceRequest entrada para crear una factura con sus líneas.
// TaxAmount, DiscountAmount y TotalAmount se calculan en el servidor a partir
// de Subtotal (suma de líneas), TaxRate y DiscountPercentage.
type CreateInvoiceRequest struct {
	ClientID           string               `json:"client_id" validate:"required,uuid4"`
	ProjectID          string               `json:"project_id" validate:"omitempty,uuid4"`
	Currency           string               `json:"currency" validate:"omitempty,len=3"`
	TaxRate            decimal.Decimal      `json:"tax_rate"`
	DiscountPercentage decimal.Decimal      `json:"discount_percentage"`
	DueDate            *time.Time           `json:"due_date"`
	Notes              string               `json:"notes" validate:"omitempty,max=2000"`
	Items              []InvoiceItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// UpdateInvoiceRequest entrada de actualización parcial (nil = sin cambio).
type UpdateInvoiceRequest struct {
	ClientID  *string    `json:"client_id" validate:"omitempty,uuid4"`
	ProjectID *string    `json:"project_id" validate:"omitempty,uuid4"`
	DueDate   *time.Time `json:"due_date"`
	Notes     *string    `json:"notes" validate:"omitempty,max=2000"`
}

// InvoiceStatusRequest cambio de estado vía PATCH /invoices/:id/status.
// Si Status es "paid", PaymentMethod y PaymentDate son obligatorios: la
// transición crea el registro de pago por el total de la factura.
type InvoiceStatusRequest struct {
	Status        string     `json:"status" validate:"required,oneof=draft sent paid overdue cancelled"`
	PaymentMethod string     `json:"payment_method" validate:"omitempty,oneof=cash bank_transfer card check other"`
	PaymentDate   *time.Time `json:"payment_date"`
	Reference     string     `json:"reference" validate:"omitempty,max=200"`
}

// ConvertQuotationRequest parámetros fiscales de la factura resultante de
// convertir una cotización aceptada.
type ConvertQuotationRequest struct {
	TaxRate            decimal.Decimal `json:"tax_rate"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// InvoiceItemResponse salida de una línea.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitType    string          `json:"unit_type"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	PaymentDate time.Time       `json:"payment_date"`
	Reference   string          `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID                 string                `json:"id"`
	OrganizationID     string                `json:"organization_id"`
	ClientID           string                `json:"client_id"`
	ProjectID          string                `json:"project_id,omitempty"`
	QuotationID        string                `json:"quotation_id,omitempty"`
	InvoiceNumber      string                `json:"invoice_number"`
	Status             string                `json:"status"`
	Currency           string                `json:"currency"`
	Subtotal           decimal.Decimal       `json:"subtotal"`
	TaxRate            decimal.Decimal       `json:"tax_rate"`
	TaxAmount          decimal.Decimal       `json:"tax_amount"`
	DiscountPercentage decimal.Decimal       `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal       `json:"discount_amount"`
	TotalAmount        decimal.Decimal       `json:"total_amount"`
	IssueDate          time.Time             `json:"issue_date"`
	DueDate            *time.Time            `json:"due_date,omitempty"`
	Notes              string                `json:"notes"`
	Items              []InvoiceItemResponse `json:"items,omitempty"`
	Payments           []PaymentResponse     `json:"payments,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// InvoiceStatsResponse agregados financieros.
type InvoiceStatsResponse struct {
	Total       int             `json:"total"`
	ByStatus    map[string]int  `json:"by_status"`
	Revenue     decimal.Decimal `json:"revenue"`
	Outstanding decimal.Decimal `json:"outstanding"`
}
