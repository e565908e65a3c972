package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Fakes en memoria para los puertos de persistencia. Respetan el contrato
// multi-tenant: una fila de otra organización se comporta como inexistente.

// ─────────────────────────────────────────────
// fakeClientRepo
// ─────────────────────────────────────────────

type fakeClientRepo struct {
	clients []*entity.Client
	err     error

	lastSearchLimit int
}

func newFakeClientRepo(clients ...*entity.Client) *fakeClientRepo {
	return &fakeClientRepo{clients: clients}
}

func (f *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	if f.err != nil {
		return f.err
	}
	f.clients = append(f.clients, c)
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.clients {
		if c.ID == id && c.OrganizationID == organizationID && c.IsActive {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) List(_ context.Context, organizationID string, _ repository.ClientFilter, p repository.Page, _ repository.Sort) ([]*entity.Client, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var all []*entity.Client
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && c.IsActive {
			all = append(all, c)
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

func (f *fakeClientRepo) Update(_ context.Context, organizationID, id string, patch entity.ClientPatch) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.ID == id && c.OrganizationID == organizationID && c.IsActive {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Email != nil {
				c.Email = *patch.Email
			}
			if patch.Industry != nil {
				c.Industry = *patch.Industry
			}
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) SoftDelete(_ context.Context, organizationID, id string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.ID == id && c.OrganizationID == organizationID && c.IsActive {
			c.IsActive = false
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) Search(_ context.Context, organizationID, query string, limit int) ([]*entity.Client, error) {
	f.lastSearchLimit = limit
	var out []*entity.Client
	for _, c := range f.clients {
		if c.OrganizationID != organizationID || !c.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeClientRepo) Statistics(_ context.Context, organizationID string) (*repository.ClientStats, error) {
	stats := &repository.ClientStats{ByIndustry: map[string]int{}}
	for _, c := range f.clients {
		if c.OrganizationID == organizationID && c.IsActive {
			stats.Total++
			if c.Industry != "" {
				stats.ByIndustry[c.Industry]++
			}
		}
	}
	return stats, nil
}

// ─────────────────────────────────────────────
// fakeOrderRepo
// ─────────────────────────────────────────────

type fakeOrderRepo struct {
	orders []*entity.Order
	items  map[string][]*entity.OrderItem
	err    error

	totalsUpdated bool
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	return &fakeOrderRepo{orders: orders, items: map[string][]*entity.OrderItem{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) CreateItems(_ context.Context, orderID string, items []*entity.OrderItem) error {
	if f.err != nil {
		return f.err
	}
	f.items[orderID] = append(f.items[orderID], items...)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, o := range f.orders {
		if o.ID == id && o.OrganizationID == organizationID && o.IsActive {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListItems(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) List(_ context.Context, organizationID string, _ repository.OrderFilter, p repository.Page, _ repository.Sort) ([]*entity.Order, int, error) {
	var all []*entity.Order
	for _, o := range f.orders {
		if o.OrganizationID == organizationID && o.IsActive {
			all = append(all, o)
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

func (f *fakeOrderRepo) Update(_ context.Context, organizationID, id string, patch entity.OrderPatch) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.ID == id && o.OrganizationID == organizationID && o.IsActive {
			if patch.Status != nil {
				o.Status = *patch.Status
			}
			if patch.Notes != nil {
				o.Notes = *patch.Notes
			}
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) UpdateTotals(_ context.Context, orderID string, subtotal, taxTotal, discountTotal, grandTotal decimal.Decimal) error {
	for _, o := range f.orders {
		if o.ID == orderID {
			o.Subtotal, o.TaxTotal, o.DiscountTotal, o.GrandTotal = subtotal, taxTotal, discountTotal, grandTotal
			f.totalsUpdated = true
			return nil
		}
	}
	return nil
}

func (f *fakeOrderRepo) SoftDelete(_ context.Context, organizationID, id string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.ID == id && o.OrganizationID == organizationID && o.IsActive {
			o.IsActive = false
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) Statistics(_ context.Context, organizationID string) (*repository.OrderStats, error) {
	stats := &repository.OrderStats{ByStatus: map[string]int{}}
	for _, o := range f.orders {
		if o.OrganizationID == organizationID && o.IsActive {
			stats.Total++
			stats.ByStatus[o.Status]++
			if o.Status != entity.OrderStatusCancelled {
				stats.GrandTotal = stats.GrandTotal.Add(o.GrandTotal)
			}
		}
	}
	return stats, nil
}

// ─────────────────────────────────────────────
// fakeTicketRepo
// ─────────────────────────────────────────────

type fakeTicketRepo struct {
	tickets  []*entity.Ticket
	messages map[string][]*entity.TicketMessage
	err      error
}

func newFakeTicketRepo(tickets ...*entity.Ticket) *fakeTicketRepo {
	return &fakeTicketRepo{tickets: tickets, messages: map[string][]*entity.TicketMessage{}}
}

func (f *fakeTicketRepo) Create(_ context.Context, t *entity.Ticket) error {
	if f.err != nil {
		return f.err
	}
	f.tickets = append(f.tickets, t)
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, organizationID, id string) (*entity.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.tickets {
		if t.ID == id && t.OrganizationID == organizationID && t.IsActive {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) List(_ context.Context, organizationID string, _ repository.TicketFilter, p repository.Page, _ repository.Sort) ([]*entity.Ticket, int, error) {
	var all []*entity.Ticket
	for _, t := range f.tickets {
		if t.OrganizationID == organizationID && t.IsActive {
			all = append(all, t)
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

func (f *fakeTicketRepo) Update(_ context.Context, organizationID, id string, patch entity.TicketPatch) (*entity.Ticket, error) {
	for _, t := range f.tickets {
		if t.ID == id && t.OrganizationID == organizationID && t.IsActive {
			if patch.Status != nil {
				t.Status = *patch.Status
			}
			if patch.Priority != nil {
				t.Priority = *patch.Priority
			}
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) SoftDelete(_ context.Context, organizationID, id string) (*entity.Ticket, error) {
	for _, t := range f.tickets {
		if t.ID == id && t.OrganizationID == organizationID && t.IsActive {
			t.IsActive = false
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) Search(_ context.Context, organizationID, query string, limit int) ([]*entity.Ticket, error) {
	var out []*entity.Ticket
	for _, t := range f.tickets {
		if t.OrganizationID != organizationID || !t.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(t.Subject), strings.ToLower(query)) {
			out = append(out, t)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) Statistics(_ context.Context, organizationID string) (*repository.TicketStats, error) {
	stats := &repository.TicketStats{ByStatus: map[string]int{}, ByPriority: map[string]int{}}
	for _, t := range f.tickets {
		if t.OrganizationID == organizationID && t.IsActive {
			stats.Total++
			stats.ByStatus[t.Status]++
			stats.ByPriority[t.Priority]++
		}
	}
	return stats, nil
}

func (f *fakeTicketRepo) CreateMessage(_ context.Context, msg *entity.TicketMessage) error {
	if f.err != nil {
		return f.err
	}
	f.messages[msg.TicketID] = append(f.messages[msg.TicketID], msg)
	return nil
}

func (f *fakeTicketRepo) ListMessages(_ context.Context, ticketID string) ([]*entity.TicketMessage, error) {
	return f.messages[ticketID], nil
}

func (f *fakeTicketRepo) MessageExists(_ context.Context, ticketID, messageID string) (bool, error) {
	for _, m := range f.messages[ticketID] {
		if m.ID == messageID {
			return true, nil
		}
	}
	return false, nil
}

// ─────────────────────────────────────────────
// fakeTx: ejecuta el callback sin transacción real
// ─────────────────────────────────────────────

type fakeTx struct {
	orders     repository.OrderRepository
	quotations repository.QuotationRepository
}

func (f *fakeTx) RunOrder(_ context.Context, fn func(orders repository.OrderRepository) error) error {
	return fn(f.orders)
}

func (f *fakeTx) RunQuotation(_ context.Context, fn func(quotations repository.QuotationRepository) error) error {
	return fn(f.quotations)
}
