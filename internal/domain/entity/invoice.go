package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura:
// draft -> sent -> paid; sent -> overdue (por due_date vencida);
// cancelled alcanzable desde cualquier estado previo a paid.
// paid y cancelled son terminales.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Métodos de pago admitidos.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCard         = "card"
	PaymentMethodCheck        = "check"
	PaymentMethodOther        = "other"
)

// Invoice documento de cobro derivado de trabajo aceptado.
// TaxAmount y TotalAmount se calculan a partir de Subtotal, TaxRate y
// DiscountPercentage; nunca se mezclan monedas dentro de un mismo total.
type Invoice struct {
	ID                 string
	OrganizationID     string
	ClientID           string
	ProjectID          string // opcional
	QuotationID        string // opcional: factura originada en una cotización aceptada
	InvoiceNumber      string
	Status             string // ver constantes InvoiceStatus*
	Currency           string
	Subtotal           decimal.Decimal
	TaxRate            decimal.Decimal // porcentaje
	TaxAmount          decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	TotalAmount        decimal.Decimal
	IssueDate          time.Time
	DueDate            *time.Time
	Notes              string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Items []InvoiceItem // cargado bajo demanda
}

// InvoiceItem una línea de factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitType    string // ver constantes Unit*
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	CreatedAt   time.Time
}

// Payment registro de liquidación de una factura.
type Payment struct {
	ID          string
	InvoiceID   string
	Amount      decimal.Decimal
	Method      string // ver constantes PaymentMethod*
	PaymentDate time.Time
	Reference   string
	CreatedAt   time.Time
}

// InvoicePatch campos actualizables de una factura (nil = sin cambio).
// El estado se cambia solo por la operación de transición, no por PUT.
type InvoicePatch struct {
	ClientID  *string
	ProjectID *string
	DueDate   *time.Time
	Notes     *string
}
