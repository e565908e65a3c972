package billing

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// BillingTxRunner transacciones del módulo de facturación.
type BillingTxRunner interface {
	// RunInvoice: creación factura+líneas y transición de estado con pago.
	RunInvoice(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error
	// RunConversion: cotización aceptada -> factura, ambos repos en la misma tx.
	RunConversion(ctx context.Context, fn func(quotations repository.QuotationRepository, invoices repository.InvoiceRepository) error) error
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
// Los Items de la factura deben venir ya cargados.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, org *entity.Organization, client *entity.Client) ([]byte, error)
}

// QuotationPDFGenerator genera el documento de una cotización.
type QuotationPDFGenerator interface {
	GenerateQuotationPDF(ctx context.Context, quotation *entity.Quotation, org *entity.Organization, client *entity.Client) ([]byte, error)
}
