package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/reports"
)

// ReportHandler maneja reportes puntuales y programados.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate POST /api/reports/generate
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if !respondValidated(c, &in) {
		return nil
	}
	report, err := h.uc.Generate(c.Context(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "reporte generado", report)
}

// GetByID GET /api/reports/:id
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	report, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if report == nil {
		return respondNotFound(c, "reporte no encontrado")
	}
	return respondOK(c, "reporte encontrado", report)
}

// List GET /api/reports
func (h *ReportHandler) List(c *fiber.Ctx) error {
	list, pagination, err := h.uc.List(c.Context(), GetOrganizationID(c), parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "reportes listados", list, pagination)
}

// CreateScheduled POST /api/reports/scheduled
func (h *ReportHandler) CreateScheduled(c *fiber.Ctx) error {
	var in dto.CreateScheduledReportRequest
	if !respondValidated(c, &in) {
		return nil
	}
	scheduled, err := h.uc.CreateScheduled(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "reporte programado creado", scheduled)
}

// GetScheduled GET /api/reports/scheduled/:id
func (h *ReportHandler) GetScheduled(c *fiber.Ctx) error {
	scheduled, err := h.uc.GetScheduled(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if scheduled == nil {
		return respondNotFound(c, "reporte programado no encontrado")
	}
	return respondOK(c, "reporte programado encontrado", scheduled)
}

// ListScheduled GET /api/reports/scheduled
func (h *ReportHandler) ListScheduled(c *fiber.Ctx) error {
	list, pagination, err := h.uc.ListScheduled(c.Context(), GetOrganizationID(c), parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "reportes programados listados", list, pagination)
}

// UpdateScheduled PUT /api/reports/scheduled/:id
func (h *ReportHandler) UpdateScheduled(c *fiber.Ctx) error {
	var in dto.UpdateScheduledReportRequest
	if !respondValidated(c, &in) {
		return nil
	}
	scheduled, err := h.uc.UpdateScheduled(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if scheduled == nil {
		return respondNotFound(c, "reporte programado no encontrado")
	}
	return respondOK(c, "reporte programado actualizado", scheduled)
}

// DeleteScheduled DELETE /api/reports/scheduled/:id
func (h *ReportHandler) DeleteScheduled(c *fiber.Ctx) error {
	found, err := h.uc.DeleteScheduled(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !found {
		return respondNotFound(c, "reporte programado no encontrado")
	}
	return respondOK(c, "reporte programado eliminado", nil)
}
