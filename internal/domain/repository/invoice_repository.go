package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceFilter filtros opcionales del listado de facturas.
type InvoiceFilter struct {
	Status   string
	ClientID string
	Query    string // busca en invoice_number y notes
	From     *time.Time
	To       *time.Time
}

// InvoiceStats agregados para el widget financiero.
type InvoiceStats struct {
	Total       int
	ByStatus    map[string]int
	Revenue     decimal.Decimal // suma de total_amount de facturas pagadas
	Outstanding decimal.Decimal // suma de total_amount en sent/overdue
}

// InvoiceRepository puerto de persistencia para facturas, líneas y pagos.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItems(ctx context.Context, invoiceID string, items []*entity.InvoiceItem) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Invoice, error)
	ListItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	List(ctx context.Context, organizationID string, f InvoiceFilter, p Page, s Sort) ([]*entity.Invoice, int, error)
	Update(ctx context.Context, organizationID, id string, patch entity.InvoicePatch) (*entity.Invoice, error)
	UpdateStatus(ctx context.Context, organizationID, id, status string) (*entity.Invoice, error)
	SoftDelete(ctx context.Context, organizationID, id string) (*entity.Invoice, error)
	Statistics(ctx context.Context, organizationID string) (*InvoiceStats, error)

	CreatePayment(ctx context.Context, payment *entity.Payment) error
	ListPayments(ctx context.Context, invoiceID string) ([]*entity.Payment, error)

	// MarkOverdue pasa a overdue toda factura sent con due_date < now.
	// Barre todos los tenants (lo invoca el scheduler, no una petición).
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}
