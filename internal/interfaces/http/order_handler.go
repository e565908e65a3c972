package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP de órdenes de trabajo.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if !respondValidated(c, &in) {
		return nil
	}
	order, err := h.uc.Create(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "orden creada", order)
}

// AddItems POST /api/orders/:id/items
func (h *OrderHandler) AddItems(c *fiber.Ctx) error {
	var in dto.BulkOrderItemsRequest
	if !respondValidated(c, &in) {
		return nil
	}
	order, err := h.uc.AddItems(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return respondNotFound(c, "orden no encontrada")
	}
	return respondOK(c, "líneas agregadas", order)
}

// ListItems GET /api/orders/:id/items
func (h *OrderHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "líneas de la orden", items)
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return respondNotFound(c, "orden no encontrada")
	}
	return respondOK(c, "orden encontrada", order)
}

// List GET /api/orders?status=&client_id=&project_id=&q=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	f := repository.OrderFilter{
		Status:    c.Query("status"),
		ClientID:  c.Query("client_id"),
		ProjectID: c.Query("project_id"),
		Query:     c.Query("q"),
	}
	list, pagination, err := h.uc.List(c.Context(), GetOrganizationID(c), f, parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "órdenes listadas", list, pagination)
}

// Update PUT /api/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if !respondValidated(c, &in) {
		return nil
	}
	order, err := h.uc.Update(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return respondNotFound(c, "orden no encontrada")
	}
	return respondOK(c, "orden actualizada", order)
}

// ChangeStatus PATCH /api/orders/:id/status
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.OrderStatusRequest
	if !respondValidated(c, &in) {
		return nil
	}
	order, err := h.uc.ChangeStatus(c.Context(), GetOrganizationID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return respondNotFound(c, "orden no encontrada")
	}
	return respondOK(c, "estado de la orden actualizado", order)
}

// Delete DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	order, err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return respondNotFound(c, "orden no encontrada")
	}
	return respondOK(c, "orden eliminada", order)
}

// Statistics GET /api/orders/statistics
func (h *OrderHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "estadísticas de órdenes", stats)
}
