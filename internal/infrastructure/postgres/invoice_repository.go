package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

var invoiceSortColumns = map[string]string{
	"invoice_number": "invoice_number",
	"status":         "status",
	"total_amount":   "total_amount",
	"issue_date":     "issue_date",
	"due_date":       "due_date",
	"created_at":     "created_at",
	"updated_at":     "updated_at",
}

const invoiceColumns = `id, organization_id, client_id, project_id, quotation_id, invoice_number,
	status, currency, subtotal, tax_rate, tax_amount, discount_percentage, discount_amount,
	total_amount, issue_date, due_date, notes, is_active, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var projectID, quotationID *string
	err := row.Scan(
		&inv.ID, &inv.OrganizationID, &inv.ClientID, &projectID, &quotationID, &inv.InvoiceNumber,
		&inv.Status, &inv.Currency, &inv.Subtotal, &inv.TaxRate, &inv.TaxAmount,
		&inv.DiscountPercentage, &inv.DiscountAmount, &inv.TotalAmount,
		&inv.IssueDate, &inv.DueDate, &inv.Notes, &inv.IsActive, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.ProjectID = derefStr(projectID)
	inv.QuotationID = derefStr(quotationID)
	return &inv, nil
}

// Create persiste la cabecera de una factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, organization_id, client_id, project_id, quotation_id, invoice_number,
			status, currency, subtotal, tax_rate, tax_amount, discount_percentage, discount_amount,
			total_amount, issue_date, due_date, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.OrganizationID, inv.ClientID, nullIfEmpty(inv.ProjectID), nullIfEmpty(inv.QuotationID),
		inv.InvoiceNumber, inv.Status, inv.Currency, inv.Subtotal, inv.TaxRate, inv.TaxAmount,
		inv.DiscountPercentage, inv.DiscountAmount, inv.TotalAmount,
		inv.IssueDate, inv.DueDate, inv.Notes, inv.IsActive, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItems inserta las líneas de la factura.
func (r *InvoiceRepo) CreateItems(ctx context.Context, invoiceID string, items []*entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_type, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, invoiceID, it.Description, it.Quantity, it.UnitType, it.UnitPrice, it.Subtotal, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una factura activa del tenant.
func (r *InvoiceRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListItems devuelve las líneas de una factura en orden de creación.
func (r *InvoiceRepo) ListItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_type, unit_price, subtotal, created_at
		FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitType,
			&it.UnitPrice, &it.Subtotal, &it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista facturas del tenant con filtros, orden y paginación.
func (r *InvoiceRepo) List(ctx context.Context, organizationID string, f repository.InvoiceFilter, p repository.Page, s repository.Sort) ([]*entity.Invoice, int, error) {
	where := "WHERE organization_id = $1 AND is_active = TRUE"
	args := []any{organizationID}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (invoice_number ILIKE $%d OR notes ILIKE $%d)", n, n)
	}
	if f.From != nil {
		args = append(args, *f.From)
		where += fmt.Sprintf(" AND issue_date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where += fmt.Sprintf(" AND issue_date <= $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM invoices "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	args = append(args, p.Limit, p.Offset)
	query := fmt.Sprintf("SELECT %s FROM invoices %s ORDER BY %s LIMIT $%d OFFSET $%d",
		invoiceColumns, where, orderBy(invoiceSortColumns, s), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}

// Update aplica un patch parcial sobre la factura.
func (r *InvoiceRepo) Update(ctx context.Context, organizationID, id string, patch entity.InvoicePatch) (*entity.Invoice, error) {
	set := newSetClause(id, organizationID)
	if patch.ClientID != nil {
		set.Set("client_id", *patch.ClientID)
	}
	if patch.ProjectID != nil {
		set.Set("project_id", nullIfEmpty(*patch.ProjectID))
	}
	if patch.DueDate != nil {
		set.Set("due_date", *patch.DueDate)
	}
	if patch.Notes != nil {
		set.Set("notes", *patch.Notes)
	}
	if set.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	set.Set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE invoices SET %s WHERE id = $1 AND organization_id = $2 AND is_active = TRUE",
		set.SQL())
	tag, err := r.q.Exec(ctx, query, set.Args()...)
	if err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, organizationID, id)
}

// UpdateStatus cambia solo el estado de la factura.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, organizationID, id, status string) (*entity.Invoice, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET status = $3, updated_at = $4
		WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`,
		id, organizationID, status, time.Now())
	if err != nil {
		return nil, fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, organizationID, id)
}

// SoftDelete marca la factura como inactiva y devuelve la fila previa.
func (r *InvoiceRepo) SoftDelete(ctx context.Context, organizationID, id string) (*entity.Invoice, error) {
	inv, err := r.GetByID(ctx, organizationID, id)
	if err != nil || inv == nil {
		return inv, err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE invoices SET is_active = FALSE, updated_at = $3 WHERE id = $1 AND organization_id = $2`,
		id, organizationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("soft delete invoice: %w", err)
	}
	return inv, nil
}

// Statistics total, distribución por estado, ingresos cobrados y pendiente de cobro.
func (r *InvoiceRepo) Statistics(ctx context.Context, organizationID string) (*repository.InvoiceStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM invoices WHERE organization_id = $1 AND is_active = TRUE
		GROUP BY status`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("invoice stats: %w", err)
	}
	defer rows.Close()

	stats := &repository.InvoiceStats{
		ByStatus:    map[string]int{},
		Revenue:     decimal.Zero,
		Outstanding: decimal.Zero,
	}
	for rows.Next() {
		var status string
		var count int
		var amount decimal.Decimal
		if err := rows.Scan(&status, &count, &amount); err != nil {
			return nil, fmt.Errorf("scan invoice stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
		switch status {
		case entity.InvoiceStatusPaid:
			stats.Revenue = stats.Revenue.Add(amount)
		case entity.InvoiceStatusSent, entity.InvoiceStatusOverdue:
			stats.Outstanding = stats.Outstanding.Add(amount)
		}
	}
	return stats, rows.Err()
}

// CreatePayment registra la liquidación de una factura.
func (r *InvoiceRepo) CreatePayment(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, amount, method, payment_date, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.InvoiceID, p.Amount, p.Method, p.PaymentDate, p.Reference, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListPayments devuelve los pagos de una factura.
func (r *InvoiceRepo) ListPayments(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, method, payment_date, reference, created_at
		FROM payments WHERE invoice_id = $1 ORDER BY payment_date, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.PaymentDate, &p.Reference, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// MarkOverdue barre todas las facturas sent con vencimiento pasado.
func (r *InvoiceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET status = $1, updated_at = $2
		WHERE status = $3 AND is_active = TRUE AND due_date IS NOT NULL AND due_date < $2`,
		entity.InvoiceStatusOverdue, now, entity.InvoiceStatusSent)
	if err != nil {
		return 0, fmt.Errorf("mark overdue invoices: %w", err)
	}
	return tag.RowsAffected(), nil
}
