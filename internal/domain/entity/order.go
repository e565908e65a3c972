package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden.
const (
	OrderStatusDraft      = "draft"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Unidades de medida admitidas en líneas de orden y cotización.
const (
	UnitHour    = "hour"
	UnitDay     = "day"
	UnitUnit    = "unit"
	UnitPackage = "package"
	UnitMonth   = "month"
)

// Order representa el desglose facturable de trabajo para un cliente.
// Los totales se calculan siempre a partir de las líneas, nunca se aceptan del caller.
type Order struct {
	ID             string
	OrganizationID string
	ClientID       string
	ProjectID      string // opcional: orden ligada a un proyecto
	OrderNumber    string
	Status         string // ver constantes OrderStatus*
	Currency       string
	Subtotal       decimal.Decimal
	TaxTotal       decimal.Decimal
	DiscountTotal  decimal.Decimal
	GrandTotal     decimal.Decimal
	Notes          string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []OrderItem // cargado bajo demanda
}

// OrderItem una línea de la orden. Subtotal = Quantity × UnitPrice;
// el impuesto y descuento se aplican por línea.
type OrderItem struct {
	ID           string
	OrderID      string
	Category     string
	Description  string
	Quantity     decimal.Decimal
	UnitType     string // ver constantes Unit*
	UnitPrice    decimal.Decimal
	TaxRate      decimal.Decimal // porcentaje, ej. 19.00
	DiscountRate decimal.Decimal // porcentaje
	Subtotal     decimal.Decimal
	CreatedAt    time.Time
}

// OrderPatch campos actualizables de una orden (nil = sin cambio).
type OrderPatch struct {
	ClientID  *string
	ProjectID *string
	Status    *string
	Currency  *string
	Notes     *string
}
