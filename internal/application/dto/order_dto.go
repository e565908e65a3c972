package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest una línea de orden. Los totales los calcula el servidor.
type OrderItemRequest struct {
	Category     string          `json:"category" validate:"omitempty,max=100"`
	Description  string          `json:"description" validate:"required,min=1,max=500"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	UnitType     string          `json:"unit_type" validate:"required,oneof=hour day unit package month"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"required"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

// CreateOrderRequest entrada para crear una orden con sus líneas.
type CreateOrderRequest struct {
	ClientID  string             `json:"client_id" validate:"required,uuid4"`
	ProjectID string             `json:"project_id" validate:"omitempty,uuid4"`
	Currency  string             `json:"currency" validate:"omitempty,len=3"`
	Notes     string             `json:"notes" validate:"omitempty,max=2000"`
	Items     []OrderItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// BulkOrderItemsRequest alta masiva de líneas sobre una orden existente.
type BulkOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// UpdateOrderRequest entrada de actualización parcial (nil = sin cambio).
type UpdateOrderRequest struct {
	ClientID  *string `json:"client_id" validate:"omitempty,uuid4"`
	ProjectID *string `json:"project_id" validate:"omitempty,uuid4"`
	Currency  *string `json:"currency" validate:"omitempty,len=3"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

// OrderStatusRequest cambio de estado vía PATCH /orders/:id/status.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft confirmed in_progress completed cancelled"`
}

// OrderItemResponse salida de una línea.
type OrderItemResponse struct {
	ID           string          `json:"id"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitType     string          `json:"unit_type"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID             string              `json:"id"`
	OrganizationID string              `json:"organization_id"`
	ClientID       string              `json:"client_id"`
	ProjectID      string              `json:"project_id,omitempty"`
	OrderNumber    string              `json:"order_number"`
	Status         string              `json:"status"`
	Currency       string              `json:"currency"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	TaxTotal       decimal.Decimal     `json:"tax_total"`
	DiscountTotal  decimal.Decimal     `json:"discount_total"`
	GrandTotal     decimal.Decimal     `json:"grand_total"`
	Notes          string              `json:"notes"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// OrderStatsResponse agregados de órdenes.
type OrderStatsResponse struct {
	Total      int             `json:"total"`
	ByStatus   map[string]int  `json:"by_status"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}
