package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TicketHandler maneja las peticiones HTTP de tickets de soporte.
type TicketHandler struct {
	uc *usecase.TicketUseCase
}

// NewTicketHandler construye el handler.
func NewTicketHandler(uc *usecase.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// Create POST /api/tickets
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if !respondValidated(c, &in) {
		return nil
	}
	ticket, err := h.uc.Create(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "ticket creado", ticket)
}

// GetByID GET /api/tickets/:id
func (h *TicketHandler) GetByID(c *fiber.Ctx) error {
	ticket, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if ticket == nil {
		return respondNotFound(c, "ticket no encontrado")
	}
	return respondOK(c, "ticket encontrado", ticket)
}

// List GET /api/tickets?status=&priority=&category=&client_id=&q=
func (h *TicketHandler) List(c *fiber.Ctx) error {
	f := repository.TicketFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		ClientID: c.Query("client_id"),
		Query:    c.Query("q"),
	}
	list, pagination, err := h.uc.List(c.Context(), GetOrganizationID(c), f, parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "tickets listados", list, pagination)
}

// Update PUT /api/tickets/:id
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTicketRequest
	if !respondValidated(c, &in) {
		return nil
	}
	ticket, err := h.uc.Update(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if ticket == nil {
		return respondNotFound(c, "ticket no encontrado")
	}
	return respondOK(c, "ticket actualizado", ticket)
}

// ChangeStatus PATCH /api/tickets/:id/status
func (h *TicketHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.TicketStatusRequest
	if !respondValidated(c, &in) {
		return nil
	}
	ticket, err := h.uc.ChangeStatus(c.Context(), GetOrganizationID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	if ticket == nil {
		return respondNotFound(c, "ticket no encontrado")
	}
	return respondOK(c, "estado del ticket actualizado", ticket)
}

// Delete DELETE /api/tickets/:id
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	ticket, err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if ticket == nil {
		return respondNotFound(c, "ticket no encontrado")
	}
	return respondOK(c, "ticket eliminado", ticket)
}

// Search GET /api/tickets/search?q=&limit=
func (h *TicketHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	list, err := h.uc.Search(c.Context(), GetOrganizationID(c), c.Query("q"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "búsqueda completada", list)
}

// Statistics GET /api/tickets/statistics
func (h *TicketHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "estadísticas de tickets", stats)
}

// AddMessage POST /api/tickets/:id/messages
func (h *TicketHandler) AddMessage(c *fiber.Ctx) error {
	var in dto.CreateTicketMessageRequest
	if !respondValidated(c, &in) {
		return nil
	}
	msg, err := h.uc.AddMessage(c.Context(), GetOrganizationID(c), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	if msg == nil {
		return respondNotFound(c, "ticket no encontrado")
	}
	return respondCreated(c, "mensaje agregado", msg)
}

// ListMessages GET /api/tickets/:id/messages
func (h *TicketHandler) ListMessages(c *fiber.Ctx) error {
	msgs, err := h.uc.ListMessages(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "mensajes del ticket", msgs)
}
