package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// QuotationHandler maneja las peticiones HTTP de cotizaciones.
type QuotationHandler struct {
	uc *usecase.QuotationUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *usecase.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Create POST /api/quotations
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if !respondValidated(c, &in) {
		return nil
	}
	quotation, err := h.uc.Create(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "cotización creada", quotation)
}

// GetByID GET /api/quotations/:id
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	quotation, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if quotation == nil {
		return respondNotFound(c, "cotización no encontrada")
	}
	return respondOK(c, "cotización encontrada", quotation)
}

// List GET /api/quotations?status=&client_id=&q=
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	f := repository.QuotationFilter{
		Status:   c.Query("status"),
		ClientID: c.Query("client_id"),
		Query:    c.Query("q"),
	}
	list, pagination, err := h.uc.List(c.Context(), GetOrganizationID(c), f, parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "cotizaciones listadas", list, pagination)
}

// Update PUT /api/quotations/:id
func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateQuotationRequest
	if !respondValidated(c, &in) {
		return nil
	}
	quotation, err := h.uc.Update(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if quotation == nil {
		return respondNotFound(c, "cotización no encontrada")
	}
	return respondOK(c, "cotización actualizada", quotation)
}

// ChangeStatus PATCH /api/quotations/:id/status
func (h *QuotationHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.QuotationStatusRequest
	if !respondValidated(c, &in) {
		return nil
	}
	quotation, err := h.uc.ChangeStatus(c.Context(), GetOrganizationID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	if quotation == nil {
		return respondNotFound(c, "cotización no encontrada")
	}
	return respondOK(c, "estado de la cotización actualizado", quotation)
}

// Send POST /api/quotations/:id/send
func (h *QuotationHandler) Send(c *fiber.Ctx) error {
	quotation, err := h.uc.Send(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if quotation == nil {
		return respondNotFound(c, "cotización no encontrada")
	}
	return respondOK(c, "cotización enviada", quotation)
}

// Delete DELETE /api/quotations/:id
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	quotation, err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if quotation == nil {
		return respondNotFound(c, "cotización no encontrada")
	}
	return respondOK(c, "cotización eliminada", quotation)
}

// Statistics GET /api/quotations/statistics
func (h *QuotationHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "estadísticas de cotizaciones", stats)
}
