package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if !respondValidated(c, &in) {
		return nil
	}
	invoice, err := h.uc.Create(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "factura creada", invoice)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if invoice == nil {
		return respondNotFound(c, "factura no encontrada")
	}
	return respondOK(c, "factura encontrada", invoice)
}

// List GET /api/invoices?status=&client_id=&q=&from=&to=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	f := repository.InvoiceFilter{
		Status:   c.Query("status"),
		ClientID: c.Query("client_id"),
		Query:    c.Query("q"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		f.To = &to
	}
	list, pagination, err := h.uc.List(c.Context(), GetOrganizationID(c), f, parseListQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondPaged(c, "facturas listadas", list, pagination)
}

// Update PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if !respondValidated(c, &in) {
		return nil
	}
	invoice, err := h.uc.Update(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if invoice == nil {
		return respondNotFound(c, "factura no encontrada")
	}
	return respondOK(c, "factura actualizada", invoice)
}

// ChangeStatus PATCH /api/invoices/:id/status
func (h *InvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.InvoiceStatusRequest
	if !respondValidated(c, &in) {
		return nil
	}
	invoice, err := h.uc.ChangeStatus(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if invoice == nil {
		return respondNotFound(c, "factura no encontrada")
	}
	return respondOK(c, "estado de la factura actualizado", invoice)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	invoice, err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if invoice == nil {
		return respondNotFound(c, "factura no encontrada")
	}
	return respondOK(c, "factura eliminada", invoice)
}

// Statistics GET /api/invoices/statistics
func (h *InvoiceHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "estadísticas de facturación", stats)
}

// ConvertQuotation POST /api/quotations/:id/convert
// El body es opcional: sin body la factura sale sin impuestos ni descuento.
func (h *InvoiceHandler) ConvertQuotation(c *fiber.Ctx) error {
	var in dto.ConvertQuotationRequest
	if len(c.Body()) > 0 {
		if !respondValidated(c, &in) {
			return nil
		}
	}
	invoice, err := h.uc.ConvertQuotation(c.Context(), GetOrganizationID(c), c.Params("id"), in.TaxRate, in.DiscountPercentage)
	if err != nil {
		return respondError(c, err)
	}
	if invoice == nil {
		return respondNotFound(c, "cotización no encontrada")
	}
	return respondCreated(c, "cotización convertida en factura", invoice)
}
