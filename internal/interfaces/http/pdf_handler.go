package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
)

// PDFHandler maneja descarga de PDFs, plantillas y el historial de generación.
type PDFHandler struct {
	uc *billing.PDFUseCase
}

// NewPDFHandler construye el handler.
func NewPDFHandler(uc *billing.PDFUseCase) *PDFHandler {
	return &PDFHandler{uc: uc}
}

// DownloadInvoice GET /api/invoices/:id/pdf
func (h *PDFHandler) DownloadInvoice(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadInvoicePDF(c.Context(), GetOrganizationID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdfBytes, filename)
}

// DownloadQuotation GET /api/quotations/:id/pdf
func (h *PDFHandler) DownloadQuotation(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadQuotationPDF(c.Context(), GetOrganizationID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdfBytes, filename)
}

func sendPDF(c *fiber.Ctx, pdfBytes []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// CreateTemplate POST /api/pdf/templates
func (h *PDFHandler) CreateTemplate(c *fiber.Ctx) error {
	var in dto.CreatePDFTemplateRequest
	if !respondValidated(c, &in) {
		return nil
	}
	tpl, err := h.uc.CreateTemplate(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "plantilla creada", tpl)
}

// GetTemplate GET /api/pdf/templates/:id
func (h *PDFHandler) GetTemplate(c *fiber.Ctx) error {
	tpl, err := h.uc.GetTemplate(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if tpl == nil {
		return respondNotFound(c, "plantilla no encontrada")
	}
	return respondOK(c, "plantilla encontrada", tpl)
}

// ListTemplates GET /api/pdf/templates?type=
func (h *PDFHandler) ListTemplates(c *fiber.Ctx) error {
	list, pagination, err := h.uc.ListTemplates(c.Context(), GetOrganizationID(c), c.Query("type"), parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "plantillas listadas", list, pagination)
}

// UpdateTemplate PUT /api/pdf/templates/:id
func (h *PDFHandler) UpdateTemplate(c *fiber.Ctx) error {
	var in dto.UpdatePDFTemplateRequest
	if !respondValidated(c, &in) {
		return nil
	}
	tpl, err := h.uc.UpdateTemplate(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if tpl == nil {
		return respondNotFound(c, "plantilla no encontrada")
	}
	return respondOK(c, "plantilla actualizada", tpl)
}

// DeleteTemplate DELETE /api/pdf/templates/:id
func (h *PDFHandler) DeleteTemplate(c *fiber.Ctx) error {
	tpl, err := h.uc.DeleteTemplate(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if tpl == nil {
		return respondNotFound(c, "plantilla no encontrada")
	}
	return respondOK(c, "plantilla eliminada", tpl)
}

// ListRecords GET /api/pdf/records
func (h *PDFHandler) ListRecords(c *fiber.Ctx) error {
	list, pagination, err := h.uc.ListRecords(c.Context(), GetOrganizationID(c), parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "historial de PDFs", list, pagination)
}
