package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
)

// OrganizationHandler maneja la organización del token (no hay acceso cruzado).
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// Get GET /api/organization
func (h *OrganizationHandler) Get(c *fiber.Ctx) error {
	org, err := h.uc.Get(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	if org == nil {
		return respondNotFound(c, "organización no encontrada")
	}
	return respondOK(c, "organización encontrada", org)
}

// Update PUT /api/organization (solo admin)
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrganizationRequest
	if !respondValidated(c, &in) {
		return nil
	}
	org, err := h.uc.Update(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	if org == nil {
		return respondNotFound(c, "organización no encontrada")
	}
	return respondOK(c, "organización actualizada", org)
}

// Deactivate DELETE /api/organization (solo admin)
func (h *OrganizationHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), GetOrganizationID(c)); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "organización desactivada", nil)
}
