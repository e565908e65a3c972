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
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

var quotationSortColumns = map[string]string{
	"quotation_number": "quotation_number",
	"status":           "status",
	"grand_total":      "grand_total",
	"valid_until":      "valid_until",
	"created_at":       "created_at",
	"updated_at":       "updated_at",
}

const quotationColumns = `id, organization_id, client_id, quotation_number, status, currency,
	subtotal, tax_total, discount_total, grand_total, valid_until, notes, is_active, created_at, updated_at`

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador.
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var q entity.Quotation
	err := row.Scan(
		&q.ID, &q.OrganizationID, &q.ClientID, &q.QuotationNumber, &q.Status, &q.Currency,
		&q.Subtotal, &q.TaxTotal, &q.DiscountTotal, &q.GrandTotal, &q.ValidUntil, &q.Notes,
		&q.IsActive, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create persiste la cabecera de una cotización.
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	query := `
		INSERT INTO quotations (id, organization_id, client_id, quotation_number, status, currency,
			subtotal, tax_total, discount_total, grand_total, valid_until, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.OrganizationID, q.ClientID, q.QuotationNumber, q.Status, q.Currency,
		q.Subtotal, q.TaxTotal, q.DiscountTotal, q.GrandTotal, q.ValidUntil, q.Notes,
		q.IsActive, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// CreateItems inserta las líneas de la cotización.
func (r *QuotationRepo) CreateItems(ctx context.Context, quotationID string, items []*entity.QuotationItem) error {
	query := `
		INSERT INTO quotation_items (id, quotation_id, description, quantity, unit_type, unit_price,
			tax_rate, discount_rate, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, quotationID, it.Description, it.Quantity, it.UnitType, it.UnitPrice,
			it.TaxRate, it.DiscountRate, it.Subtotal, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert quotation item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una cotización activa del tenant.
func (r *QuotationRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + `
		FROM quotations WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	q, err := scanQuotation(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return q, nil
}

// ListItems devuelve las líneas de una cotización en orden de creación.
func (r *QuotationRepo) ListItems(ctx context.Context, quotationID string) ([]*entity.QuotationItem, error) {
	query := `
		SELECT id, quotation_id, description, quantity, unit_type, unit_price,
			tax_rate, discount_rate, subtotal, created_at
		FROM quotation_items WHERE quotation_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("list quotation items: %w", err)
	}
	defer rows.Close()
	var items []*entity.QuotationItem
	for rows.Next() {
		var it entity.QuotationItem
		err := rows.Scan(&it.ID, &it.QuotationID, &it.Description, &it.Quantity, &it.UnitType,
			&it.UnitPrice, &it.TaxRate, &it.DiscountRate, &it.Subtotal, &it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista cotizaciones del tenant con filtros, orden y paginación.
func (r *QuotationRepo) List(ctx context.Context, organizationID string, f repository.QuotationFilter, p repository.Page, s repository.Sort) ([]*entity.Quotation, int, error) {
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
		where += fmt.Sprintf(" AND (quotation_number ILIKE $%d OR notes ILIKE $%d)", n, n)
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM quotations "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotations: %w", err)
	}

	args = append(args, p.Limit, p.Offset)
	query := fmt.Sprintf("SELECT %s FROM quotations %s ORDER BY %s LIMIT $%d OFFSET $%d",
		quotationColumns, where, orderBy(quotationSortColumns, s), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, total, rows.Err()
}

// Update aplica un patch parcial sobre la cotización.
func (r *QuotationRepo) Update(ctx context.Context, organizationID, id string, patch entity.QuotationPatch) (*entity.Quotation, error) {
	set := newSetClause(id, organizationID)
	if patch.ClientID != nil {
		set.Set("client_id", *patch.ClientID)
	}
	if patch.Status != nil {
		set.Set("status", *patch.Status)
	}
	if patch.Currency != nil {
		set.Set("currency", *patch.Currency)
	}
	if patch.ValidUntil != nil {
		set.Set("valid_until", *patch.ValidUntil)
	}
	if patch.Notes != nil {
		set.Set("notes", *patch.Notes)
	}
	if set.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	set.Set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE quotations SET %s WHERE id = $1 AND organization_id = $2 AND is_active = TRUE",
		set.SQL())
	tag, err := r.q.Exec(ctx, query, set.Args()...)
	if err != nil {
		return nil, fmt.Errorf("update quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, organizationID, id)
}

// UpdateStatus cambia solo el estado de la cotización.
func (r *QuotationRepo) UpdateStatus(ctx context.Context, organizationID, id, status string) (*entity.Quotation, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE quotations SET status = $3, updated_at = $4
		WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`,
		id, organizationID, status, time.Now())
	if err != nil {
		return nil, fmt.Errorf("update quotation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, organizationID, id)
}

// SoftDelete marca la cotización como inactiva y devuelve la fila previa.
func (r *QuotationRepo) SoftDelete(ctx context.Context, organizationID, id string) (*entity.Quotation, error) {
	q, err := r.GetByID(ctx, organizationID, id)
	if err != nil || q == nil {
		return q, err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE quotations SET is_active = FALSE, updated_at = $3 WHERE id = $1 AND organization_id = $2`,
		id, organizationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("soft delete quotation: %w", err)
	}
	return q, nil
}

// Statistics total y distribución por estado.
func (r *QuotationRepo) Statistics(ctx context.Context, organizationID string) (*repository.QuotationStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT status, COUNT(*)
		FROM quotations WHERE organization_id = $1 AND is_active = TRUE
		GROUP BY status`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("quotation stats: %w", err)
	}
	defer rows.Close()

	stats := &repository.QuotationStats{ByStatus: map[string]int{}}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan quotation stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	return stats, rows.Err()
}
