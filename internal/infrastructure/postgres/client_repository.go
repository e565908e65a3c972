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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// Columnas permitidas en sort_by de clientes.
var clientSortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"industry":   "industry",
}

const clientColumns = `id, organization_id, name, tax_id, email, phone, billing_address,
	city, country, industry, region, notes, is_active, created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.BillingAddress,
		&c.City, &c.Country, &c.Industry, &c.Region, &c.Notes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, organization_id, name, tax_id, email, phone, billing_address,
			city, country, industry, region, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OrganizationID, c.Name, c.TaxID, c.Email, c.Phone, c.BillingAddress,
		c.City, c.Country, c.Industry, c.Region, c.Notes, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente activo del tenant. Una fila de otro tenant se
// comporta como inexistente.
func (r *ClientRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	c, err := scanClient(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List lista clientes del tenant con filtros, orden y paginación.
// Devuelve la página y el total de filas que cumplen el filtro.
func (r *ClientRepo) List(ctx context.Context, organizationID string, f repository.ClientFilter, p repository.Page, s repository.Sort) ([]*entity.Client, int, error) {
	where := "WHERE organization_id = $1 AND is_active = TRUE"
	args := []any{organizationID}
	if f.Industry != "" {
		args = append(args, f.Industry)
		where += fmt.Sprintf(" AND industry = $%d", len(args))
	}
	if f.Region != "" {
		args = append(args, f.Region)
		where += fmt.Sprintf(" AND region = $%d", len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR tax_id ILIKE $%d OR email ILIKE $%d)", n, n, n)
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM clients "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	args = append(args, p.Limit, p.Offset)
	query := fmt.Sprintf("SELECT %s FROM clients %s ORDER BY %s LIMIT $%d OFFSET $%d",
		clientColumns, where, orderBy(clientSortColumns, s), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update aplica un patch parcial. Devuelve (nil, nil) si el cliente no existe
// en el tenant; los nombres de columna son literales, los valores van parametrizados.
func (r *ClientRepo) Update(ctx context.Context, organizationID, id string, patch entity.ClientPatch) (*entity.Client, error) {
	set := newSetClause(id, organizationID)
	if patch.Name != nil {
		set.Set("name", *patch.Name)
	}
	if patch.TaxID != nil {
		set.Set("tax_id", *patch.TaxID)
	}
	if patch.Email != nil {
		set.Set("email", *patch.Email)
	}
	if patch.Phone != nil {
		set.Set("phone", *patch.Phone)
	}
	if patch.BillingAddress != nil {
		set.Set("billing_address", *patch.BillingAddress)
	}
	if patch.City != nil {
		set.Set("city", *patch.City)
	}
	if patch.Country != nil {
		set.Set("country", *patch.Country)
	}
	if patch.Industry != nil {
		set.Set("industry", *patch.Industry)
	}
	if patch.Region != nil {
		set.Set("region", *patch.Region)
	}
	if patch.Notes != nil {
		set.Set("notes", *patch.Notes)
	}
	if set.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	set.Set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE clients SET %s WHERE id = $1 AND organization_id = $2 AND is_active = TRUE",
		set.SQL())
	tag, err := r.q.Exec(ctx, query, set.Args()...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, organizationID, id)
}

// SoftDelete marca el cliente como inactivo y devuelve la fila previa.
func (r *ClientRepo) SoftDelete(ctx context.Context, organizationID, id string) (*entity.Client, error) {
	c, err := r.GetByID(ctx, organizationID, id)
	if err != nil || c == nil {
		return c, err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE clients SET is_active = FALSE, updated_at = $3 WHERE id = $1 AND organization_id = $2`,
		id, organizationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("soft delete client: %w", err)
	}
	return c, nil
}

// Search búsqueda rápida por nombre, NIT o email.
func (r *ClientRepo) Search(ctx context.Context, organizationID, query string, limit int) ([]*entity.Client, error) {
	q := `SELECT ` + clientColumns + `
		FROM clients
		WHERE organization_id = $1 AND is_active = TRUE
		  AND (name ILIKE $2 OR tax_id ILIKE $2 OR email ILIKE $2)
		ORDER BY name LIMIT $3`
	rows, err := r.q.Query(ctx, q, organizationID, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Statistics totales y distribución por industria del tenant.
func (r *ClientRepo) Statistics(ctx context.Context, organizationID string) (*repository.ClientStats, error) {
	stats := &repository.ClientStats{ByIndustry: map[string]int{}}
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE created_at >= date_trunc('month', NOW()))
		FROM clients WHERE organization_id = $1 AND is_active = TRUE`,
		organizationID).Scan(&stats.Total, &stats.NewThisMonth)
	if err != nil {
		return nil, fmt.Errorf("client stats: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT COALESCE(NULLIF(industry, ''), 'other'), COUNT(*)
		FROM clients WHERE organization_id = $1 AND is_active = TRUE
		GROUP BY 1`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("client stats by industry: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var industry string
		var count int
		if err := rows.Scan(&industry, &count); err != nil {
			return nil, fmt.Errorf("scan client stats: %w", err)
		}
		stats.ByIndustry[industry] = count
	}
	return stats, rows.Err()
}
