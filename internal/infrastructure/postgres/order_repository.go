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

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderSortColumns = map[string]string{
	"order_number": "order_number",
	"status":       "status",
	"grand_total":  "grand_total",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

const orderColumns = `id, organization_id, client_id, project_id, order_number, status, currency,
	subtotal, tax_total, discount_total, grand_total, notes, is_active, created_at, updated_at`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var projectID *string
	err := row.Scan(
		&o.ID, &o.OrganizationID, &o.ClientID, &projectID, &o.OrderNumber, &o.Status, &o.Currency,
		&o.Subtotal, &o.TaxTotal, &o.DiscountTotal, &o.GrandTotal, &o.Notes, &o.IsActive,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ProjectID = derefStr(projectID)
	return &o, nil
}

// Create persiste la cabecera de la orden.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, organization_id, client_id, project_id, order_number, status, currency,
			subtotal, tax_total, discount_total, grand_total, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrganizationID, o.ClientID, nullIfEmpty(o.ProjectID), o.OrderNumber, o.Status,
		o.Currency, o.Subtotal, o.TaxTotal, o.DiscountTotal, o.GrandTotal, o.Notes,
		o.IsActive, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItems persiste las líneas de la orden. Debe llamarse dentro de la
// misma transacción que Create (ver TxRunner).
func (r *OrderRepo) CreateItems(ctx context.Context, orderID string, items []*entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, category, description, quantity, unit_type,
			unit_price, tax_rate, discount_rate, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, orderID, it.Category, it.Description, it.Quantity, it.UnitType,
			it.UnitPrice, it.TaxRate, it.DiscountRate, it.Subtotal, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la cabecera de una orden activa del tenant.
func (r *OrderRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListItems devuelve todas las líneas de una orden.
func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, category, description, quantity, unit_type, unit_price,
		       tax_rate, discount_rate, subtotal, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Category, &it.Description, &it.Quantity,
			&it.UnitType, &it.UnitPrice, &it.TaxRate, &it.DiscountRate, &it.Subtotal, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista órdenes del tenant con filtros, orden y paginación.
func (r *OrderRepo) List(ctx context.Context, organizationID string, f repository.OrderFilter, p repository.Page, s repository.Sort) ([]*entity.Order, int, error) {
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
	if f.ProjectID != "" {
		args = append(args, f.ProjectID)
		where += fmt.Sprintf(" AND project_id = $%d", len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (order_number ILIKE $%d OR notes ILIKE $%d)", n, n)
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, p.Limit, p.Offset)
	query := fmt.Sprintf("SELECT %s FROM orders %s ORDER BY %s LIMIT $%d OFFSET $%d",
		orderColumns, where, orderBy(orderSortColumns, s), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// Update aplica un patch parcial sobre la cabecera.
func (r *OrderRepo) Update(ctx context.Context, organizationID, id string, patch entity.OrderPatch) (*entity.Order, error) {
	set := newSetClause(id, organizationID)
	if patch.ClientID != nil {
		set.Set("client_id", *patch.ClientID)
	}
	if patch.ProjectID != nil {
		set.Set("project_id", nullIfEmpty(*patch.ProjectID))
	}
	if patch.Status != nil {
		set.Set("status", *patch.Status)
	}
	if patch.Currency != nil {
		set.Set("currency", *patch.Currency)
	}
	if patch.Notes != nil {
		set.Set("notes", *patch.Notes)
	}
	if set.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	set.Set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE orders SET %s WHERE id = $1 AND organization_id = $2 AND is_active = TRUE",
		set.SQL())
	tag, err := r.q.Exec(ctx, query, set.Args()...)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, organizationID, id)
}

// UpdateTotals recalcula los totales de la cabecera tras modificar líneas.
func (r *OrderRepo) UpdateTotals(ctx context.Context, orderID string, subtotal, taxTotal, discountTotal, grandTotal decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `
		UPDATE orders SET subtotal = $2, tax_total = $3, discount_total = $4, grand_total = $5, updated_at = $6
		WHERE id = $1`,
		orderID, subtotal, taxTotal, discountTotal, grandTotal, time.Now())
	if err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return nil
}

// SoftDelete marca la orden como inactiva y devuelve la fila previa.
func (r *OrderRepo) SoftDelete(ctx context.Context, organizationID, id string) (*entity.Order, error) {
	o, err := r.GetByID(ctx, organizationID, id)
	if err != nil || o == nil {
		return o, err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE orders SET is_active = FALSE, updated_at = $3 WHERE id = $1 AND organization_id = $2`,
		id, organizationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("soft delete order: %w", err)
	}
	return o, nil
}

// Statistics total, conteo por estado y suma de totales no cancelados.
func (r *OrderRepo) Statistics(ctx context.Context, organizationID string) (*repository.OrderStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(grand_total), 0)
		FROM orders WHERE organization_id = $1 AND is_active = TRUE
		GROUP BY status`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	defer rows.Close()

	stats := &repository.OrderStats{ByStatus: map[string]int{}, GrandTotal: decimal.Zero}
	for rows.Next() {
		var status string
		var count int
		var sum decimal.Decimal
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return nil, fmt.Errorf("scan order stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
		if status != entity.OrderStatusCancelled {
			stats.GrandTotal = stats.GrandTotal.Add(sum)
		}
	}
	return stats, rows.Err()
}
