package billing

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Fakes en memoria para los puertos de facturación.

// ─────────────────────────────────────────────
// fakeInvoiceRepo
// ─────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
	items    map[string][]*entity.InvoiceItem
	payments map[string][]*entity.Payment
	err      error
}

func newFakeInvoiceRepo(invoices ...*entity.Invoice) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: invoices,
		items:    map[string][]*entity.InvoiceItem{},
		payments: map[string][]*entity.Payment{},
	}
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if f.err != nil {
		return f.err
	}
	f.invoices = append(f.invoices, inv)
	return nil
}

func (f *fakeInvoiceRepo) CreateItems(_ context.Context, invoiceID string, items []*entity.InvoiceItem) error {
	if f.err != nil {
		return f.err
	}
	f.items[invoiceID] = append(f.items[invoiceID], items...)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, inv := range f.invoices {
		if inv.ID == id && inv.OrganizationID == organizationID && inv.IsActive {
			// copia superficial: GetByID nunca trae líneas precargadas
			c := *inv
			c.Items = nil
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) ListItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	return f.items[invoiceID], nil
}

func (f *fakeInvoiceRepo) List(_ context.Context, organizationID string, _ repository.InvoiceFilter, p repository.Page, _ repository.Sort) ([]*entity.Invoice, int, error) {
	var all []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.OrganizationID == organizationID && inv.IsActive {
			all = append(all, inv)
		}
	}
	total := len(all)
	if p.Offset >= total {
		return nil, total, nil
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return all[p.Offset:end], total, nil
}

func (f *fakeInvoiceRepo) Update(_ context.Context, organizationID, id string, patch entity.InvoicePatch) (*entity.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.ID == id && inv.OrganizationID == organizationID && inv.IsActive {
			if patch.Notes != nil {
				inv.Notes = *patch.Notes
			}
			if patch.DueDate != nil {
				inv.DueDate = patch.DueDate
			}
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(_ context.Context, organizationID, id, status string) (*entity.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.ID == id && inv.OrganizationID == organizationID && inv.IsActive {
			inv.Status = status
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) SoftDelete(_ context.Context, organizationID, id string) (*entity.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.ID == id && inv.OrganizationID == organizationID && inv.IsActive {
			inv.IsActive = false
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) Statistics(_ context.Context, organizationID string) (*repository.InvoiceStats, error) {
	stats := &repository.InvoiceStats{ByStatus: map[string]int{}}
	for _, inv := range f.invoices {
		if inv.OrganizationID == organizationID && inv.IsActive {
			stats.Total++
			stats.ByStatus[inv.Status]++
			switch inv.Status {
			case entity.InvoiceStatusPaid:
				stats.Revenue = stats.Revenue.Add(inv.TotalAmount)
			case entity.InvoiceStatusSent, entity.InvoiceStatusOverdue:
				stats.Outstanding = stats.Outstanding.Add(inv.TotalAmount)
			}
		}
	}
	return stats, nil
}

func (f *fakeInvoiceRepo) CreatePayment(_ context.Context, p *entity.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.payments[p.InvoiceID] = append(f.payments[p.InvoiceID], p)
	return nil
}

func (f *fakeInvoiceRepo) ListPayments(_ context.Context, invoiceID string) ([]*entity.Payment, error) {
	return f.payments[invoiceID], nil
}

func (f *fakeInvoiceRepo) MarkOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, inv := range f.invoices {
		if inv.IsActive && inv.Status == entity.InvoiceStatusSent && inv.DueDate != nil && inv.DueDate.Before(now) {
			inv.Status = entity.InvoiceStatusOverdue
			n++
		}
	}
	return n, nil
}

// ─────────────────────────────────────────────
// fakeQuotationRepo
// ─────────────────────────────────────────────

type fakeQuotationRepo struct {
	quotations []*entity.Quotation
	items      map[string][]*entity.QuotationItem
	err        error
}

func newFakeQuotationRepo(quotations ...*entity.Quotation) *fakeQuotationRepo {
	return &fakeQuotationRepo{quotations: quotations, items: map[string][]*entity.QuotationItem{}}
}

func (f *fakeQuotationRepo) Create(_ context.Context, q *entity.Quotation) error {
	if f.err != nil {
		return f.err
	}
	f.quotations = append(f.quotations, q)
	return nil
}

func (f *fakeQuotationRepo) CreateItems(_ context.Context, quotationID string, items []*entity.QuotationItem) error {
	f.items[quotationID] = append(f.items[quotationID], items...)
	return nil
}

func (f *fakeQuotationRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Quotation, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, q := range f.quotations {
		if q.ID == id && q.OrganizationID == organizationID && q.IsActive {
			return q, nil
		}
	}
	return nil, nil
}

func (f *fakeQuotationRepo) ListItems(_ context.Context, quotationID string) ([]*entity.QuotationItem, error) {
	return f.items[quotationID], nil
}

func (f *fakeQuotationRepo) List(_ context.Context, organizationID string, _ repository.QuotationFilter, p repository.Page, _ repository.Sort) ([]*entity.Quotation, int, error) {
	var all []*entity.Quotation
	for _, q := range f.quotations {
		if q.OrganizationID == organizationID && q.IsActive {
			all = append(all, q)
		}
	}
	total := len(all)
	if p.Offset >= total {
		return nil, total, nil
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return all[p.Offset:end], total, nil
}

func (f *fakeQuotationRepo) Update(_ context.Context, organizationID, id string, patch entity.QuotationPatch) (*entity.Quotation, error) {
	for _, q := range f.quotations {
		if q.ID == id && q.OrganizationID == organizationID && q.IsActive {
			if patch.Status != nil {
				q.Status = *patch.Status
			}
			if patch.Notes != nil {
				q.Notes = *patch.Notes
			}
			return q, nil
		}
	}
	return nil, nil
}

func (f *fakeQuotationRepo) UpdateStatus(_ context.Context, organizationID, id, status string) (*entity.Quotation, error) {
	for _, q := range f.quotations {
		if q.ID == id && q.OrganizationID == organizationID && q.IsActive {
			q.Status = status
			return q, nil
		}
	}
	return nil, nil
}

func (f *fakeQuotationRepo) SoftDelete(_ context.Context, organizationID, id string) (*entity.Quotation, error) {
	for _, q := range f.quotations {
		if q.ID == id && q.OrganizationID == organizationID && q.IsActive {
			q.IsActive = false
			return q, nil
		}
	}
	return nil, nil
}

func (f *fakeQuotationRepo) Statistics(_ context.Context, organizationID string) (*repository.QuotationStats, error) {
	stats := &repository.QuotationStats{ByStatus: map[string]int{}}
	for _, q := range f.quotations {
		if q.OrganizationID == organizationID && q.IsActive {
			stats.Total++
			stats.ByStatus[q.Status]++
		}
	}
	return stats, nil
}

// ─────────────────────────────────────────────
// fakeClientRepo: solo GetByID importa aquí
// ─────────────────────────────────────────────

type fakeClientRepo struct {
	clients []*entity.Client
}

func newFakeClientRepo(clients ...*entity.Client) *fakeClientRepo {
	return &fakeClientRepo{clients: clients}
}

func (f *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	f.clients = append(f.clients, c)
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.ID == id && c.OrganizationID == organizationID && c.IsActive {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) List(_ context.Context, _ string, _ repository.ClientFilter, _ repository.Page, _ repository.Sort) ([]*entity.Client, int, error) {
	return nil, 0, nil
}

func (f *fakeClientRepo) Update(_ context.Context, _, _ string, _ entity.ClientPatch) (*entity.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) SoftDelete(_ context.Context, _, _ string) (*entity.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) Search(_ context.Context, organizationID, query string, limit int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && c.IsActive && strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeClientRepo) Statistics(_ context.Context, _ string) (*repository.ClientStats, error) {
	return &repository.ClientStats{ByIndustry: map[string]int{}}, nil
}

// ─────────────────────────────────────────────
// fakeBillingTx: ejecuta el callback sin transacción real
// ─────────────────────────────────────────────

type fakeBillingTx struct {
	invoices   repository.InvoiceRepository
	quotations repository.QuotationRepository
}

func (f *fakeBillingTx) RunInvoice(_ context.Context, fn func(invoices repository.InvoiceRepository) error) error {
	return fn(f.invoices)
}

func (f *fakeBillingTx) RunConversion(_ context.Context, fn func(quotations repository.QuotationRepository, invoices repository.InvoiceRepository) error) error {
	return fn(f.quotations, f.invoices)
}
