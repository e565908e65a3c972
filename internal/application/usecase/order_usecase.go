package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// OrderUseCase casos de uso de órdenes. La creación y el alta masiva de
// líneas corren dentro de una transacción: o se persisten cabecera y todas
// las líneas, o ninguna.
type OrderUseCase struct {
	repo    repository.OrderRepository
	clients repository.ClientRepository
	tx      TxRunner
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, clients repository.ClientRepository, tx TxRunner) *OrderUseCase {
	return &OrderUseCase{repo: repo, clients: clients, tx: tx}
}

// documentNumber genera un consecutivo legible, ej. "ORD-20240315-4F2A91C3".
func documentNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), suffix)
}

// lineAmounts calcula neto, descuento e impuesto de una línea.
// El descuento se aplica antes del impuesto.
func lineAmounts(qty, price, taxRate, discountRate decimal.Decimal) (net, discount, tax decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	net = qty.Mul(price)
	discount = net.Mul(discountRate).Div(hundred)
	tax = net.Sub(discount).Mul(taxRate).Div(hundred)
	return net, discount, tax
}

func validateItems(items []dto.OrderItemRequest) error {
	for i, it := range items {
		if !it.Quantity.IsPositive() {
			return fmt.Errorf("%w: items[%d].quantity debe ser > 0", domain.ErrInvalidInput, i)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: items[%d].unit_price negativo", domain.ErrInvalidInput, i)
		}
		if it.TaxRate.IsNegative() || it.DiscountRate.IsNegative() {
			return fmt.Errorf("%w: items[%d] tasas negativas", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// Create crea una orden con sus líneas en una sola transacción.
func (uc *OrderUseCase) Create(ctx context.Context, organizationID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	client, err := uc.clients.GetByID(ctx, organizationID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrInvalidInput, in.ClientID)
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	if in.Currency == "" {
		in.Currency = "COP"
	}

	now := time.Now()
	order := &entity.Order{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		ClientID:       in.ClientID,
		ProjectID:      in.ProjectID,
		OrderNumber:    documentNumber("ORD"),
		Status:         entity.OrderStatusDraft,
		Currency:       in.Currency,
		Notes:          in.Notes,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	items := make([]*entity.OrderItem, 0, len(in.Items))
	subtotal, discountTotal, taxTotal := decimal.Zero, decimal.Zero, decimal.Zero
	for _, it := range in.Items {
		net, discount, tax := lineAmounts(it.Quantity, it.UnitPrice, it.TaxRate, it.DiscountRate)
		subtotal = subtotal.Add(net)
		discountTotal = discountTotal.Add(discount)
		taxTotal = taxTotal.Add(tax)
		items = append(items, &entity.OrderItem{
			ID:           uuid.New().String(),
			OrderID:      order.ID,
			Category:     it.Category,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitType:     it.UnitType,
			UnitPrice:    it.UnitPrice,
			TaxRate:      it.TaxRate,
			DiscountRate: it.DiscountRate,
			Subtotal:     net,
			CreatedAt:    now,
		})
	}
	order.Subtotal = subtotal
	order.DiscountTotal = discountTotal
	order.TaxTotal = taxTotal
	order.GrandTotal = subtotal.Sub(discountTotal).Add(taxTotal)

	err = uc.tx.RunOrder(ctx, func(orders repository.OrderRepository) error {
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		return orders.CreateItems(ctx, order.ID, items)
	})
	if err != nil {
		return nil, err
	}
	order.Items = derefItems(items)
	return toOrderResponse(order), nil
}

// AddItems alta masiva de líneas sobre una orden existente, recalculando
// los totales de la cabecera dentro de la misma transacción.
func (uc *OrderUseCase) AddItems(ctx context.Context, organizationID, orderID string, in dto.BulkOrderItemsRequest) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, organizationID, orderID)
	if err != nil || order == nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusCompleted || order.Status == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: la orden %s está en estado terminal", domain.ErrConflict, order.OrderNumber)
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]*entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		net, _, _ := lineAmounts(it.Quantity, it.UnitPrice, it.TaxRate, it.DiscountRate)
		items = append(items, &entity.OrderItem{
			ID:           uuid.New().String(),
			OrderID:      order.ID,
			Category:     it.Category,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitType:     it.UnitType,
			UnitPrice:    it.UnitPrice,
			TaxRate:      it.TaxRate,
			DiscountRate: it.DiscountRate,
			Subtotal:     net,
			CreatedAt:    now,
		})
	}

	err = uc.tx.RunOrder(ctx, func(orders repository.OrderRepository) error {
		if err := orders.CreateItems(ctx, order.ID, items); err != nil {
			return err
		}
		all, err := orders.ListItems(ctx, order.ID)
		if err != nil {
			return err
		}
		subtotal, discountTotal, taxTotal := decimal.Zero, decimal.Zero, decimal.Zero
		for _, it := range all {
			net, discount, tax := lineAmounts(it.Quantity, it.UnitPrice, it.TaxRate, it.DiscountRate)
			subtotal = subtotal.Add(net)
			discountTotal = discountTotal.Add(discount)
			taxTotal = taxTotal.Add(tax)
		}
		grand := subtotal.Sub(discountTotal).Add(taxTotal)
		order.Subtotal, order.DiscountTotal, order.TaxTotal, order.GrandTotal = subtotal, discountTotal, taxTotal, grand
		return orders.UpdateTotals(ctx, order.ID, subtotal, taxTotal, discountTotal, grand)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, organizationID, orderID)
}

// GetByID obtiene una orden con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || order == nil {
		return nil, err
	}
	items, err := uc.repo.ListItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = derefItems(items)
	return toOrderResponse(order), nil
}

// ListItems devuelve solo las líneas de una orden.
func (uc *OrderUseCase) ListItems(ctx context.Context, organizationID, orderID string) ([]dto.OrderItemResponse, error) {
	order, err := uc.repo.GetByID(ctx, organizationID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.ListItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.OrderItemResponse{
			ID:           it.ID,
			Category:     it.Category,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitType:     it.UnitType,
			UnitPrice:    it.UnitPrice,
			TaxRate:      it.TaxRate,
			DiscountRate: it.DiscountRate,
			Subtotal:     it.Subtotal,
		})
	}
	return out, nil
}

// List lista órdenes (sin líneas) con filtros, orden y paginación.
func (uc *OrderUseCase) List(ctx context.Context, organizationID string, f repository.OrderFilter, q dto.ListQuery) ([]dto.OrderResponse, *dto.Pagination, error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, organizationID, f,
		repository.Page{Limit: q.Limit, Offset: q.Offset()},
		repository.Sort{By: q.SortBy, Order: q.SortOrder})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// Update actualización parcial de la cabecera (nunca totales ni líneas).
func (uc *OrderUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	patch := entity.OrderPatch{
		ClientID:  in.ClientID,
		ProjectID: in.ProjectID,
		Currency:  in.Currency,
		Notes:     in.Notes,
	}
	order, err := uc.repo.Update(ctx, organizationID, id, patch)
	if err != nil || order == nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ChangeStatus transición de estado de la orden.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, organizationID, id, status string) (*dto.OrderResponse, error) {
	order, err := uc.repo.Update(ctx, organizationID, id, entity.OrderPatch{Status: &status})
	if err != nil || order == nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete baja lógica de la orden.
func (uc *OrderUseCase) Delete(ctx context.Context, organizationID, id string) (*dto.OrderResponse, error) {
	order, err := uc.repo.SoftDelete(ctx, organizationID, id)
	if err != nil || order == nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Statistics agregados del tenant para el dashboard.
func (uc *OrderUseCase) Statistics(ctx context.Context, organizationID string) (*dto.OrderStatsResponse, error) {
	stats, err := uc.repo.Statistics(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatsResponse{
		Total:      stats.Total,
		ByStatus:   stats.ByStatus,
		GrandTotal: stats.GrandTotal,
	}, nil
}

func derefItems(items []*entity.OrderItem) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	return out
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:           it.ID,
			Category:     it.Category,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitType:     it.UnitType,
			UnitPrice:    it.UnitPrice,
			TaxRate:      it.TaxRate,
			DiscountRate: it.DiscountRate,
			Subtotal:     it.Subtotal,
		})
	}
	resp := &dto.OrderResponse{
		ID:             o.ID,
		OrganizationID: o.OrganizationID,
		ClientID:       o.ClientID,
		ProjectID:      o.ProjectID,
		OrderNumber:    o.OrderNumber,
		Status:         o.Status,
		Currency:       o.Currency,
		Subtotal:       o.Subtotal,
		TaxTotal:       o.TaxTotal,
		DiscountTotal:  o.DiscountTotal,
		GrandTotal:     o.GrandTotal,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = items
	}
	return resp
}
