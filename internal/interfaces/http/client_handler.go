package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// ClientHandler maneja las peticiones HTTP de clientes.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if !respondValidated(c, &in) {
		return nil
	}
	client, err := h.uc.Create(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "cliente creado", client)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if client == nil {
		return respondNotFound(c, "cliente no encontrado")
	}
	return respondOK(c, "cliente encontrado", client)
}

// List GET /api/clients?industry=&region=&q=&page=&limit=
func (h *ClientHandler) List(c *fiber.Ctx) error {
	f := repository.ClientFilter{
		Industry: c.Query("industry"),
		Region:   c.Query("region"),
		Query:    c.Query("q"),
	}
	list, pagination, err := h.uc.List(c.Context(), GetOrganizationID(c), f, parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "clientes listados", list, pagination)
}

// Update PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if !respondValidated(c, &in) {
		return nil
	}
	client, err := h.uc.Update(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if client == nil {
		return respondNotFound(c, "cliente no encontrado")
	}
	return respondOK(c, "cliente actualizado", client)
}

// Delete DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	client, err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if client == nil {
		return respondNotFound(c, "cliente no encontrado")
	}
	return respondOK(c, "cliente eliminado", client)
}

// Search GET /api/clients/search?q=&limit=
func (h *ClientHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	list, err := h.uc.Search(c.Context(), GetOrganizationID(c), c.Query("q"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "búsqueda completada", list)
}

// Statistics GET /api/clients/statistics
func (h *ClientHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "estadísticas de clientes", stats)
}
