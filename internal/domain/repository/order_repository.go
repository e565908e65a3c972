package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderFilter filtros opcionales del listado de órdenes.
type OrderFilter struct {
	Status    string
	ClientID  string
	ProjectID string
	Query     string // busca en order_number y notes
}

// OrderStats agregados para el widget de órdenes.
type OrderStats struct {
	Total      int
	ByStatus   map[string]int
	GrandTotal decimal.Decimal // suma de grand_total de órdenes no canceladas
}

// OrderRepository puerto de persistencia para órdenes y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItems(ctx context.Context, orderID string, items []*entity.OrderItem) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Order, error)
	ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	List(ctx context.Context, organizationID string, f OrderFilter, p Page, s Sort) ([]*entity.Order, int, error)
	Update(ctx context.Context, organizationID, id string, patch entity.OrderPatch) (*entity.Order, error)
	// UpdateTotals recalcula los totales de la cabecera tras modificar líneas.
	UpdateTotals(ctx context.Context, orderID string, subtotal, taxTotal, discountTotal, grandTotal decimal.Decimal) error
	SoftDelete(ctx context.Context, organizationID, id string) (*entity.Order, error)
	Statistics(ctx context.Context, organizationID string) (*OrderStats, error)
}
