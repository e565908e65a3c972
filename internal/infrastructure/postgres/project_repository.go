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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

var projectSortColumns = map[string]string{
	"name":       "name",
	"status":     "status",
	"priority":   "priority",
	"budget":     "budget",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"start_date": "start_date",
}

const projectColumns = `id, organization_id, client_id, name, description, status, priority,
	budget, currency, assigned_user_id, start_date, end_date, is_active, created_at, updated_at`

// ProjectRepo implementación de ProjectRepository (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	var assigned *string
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.ClientID, &p.Name, &p.Description, &p.Status, &p.Priority,
		&p.Budget, &p.Currency, &assigned, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.AssignedUserID = derefStr(assigned)
	return &p, nil
}

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (id, organization_id, client_id, name, description, status, priority,
			budget, currency, assigned_user_id, start_date, end_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OrganizationID, p.ClientID, p.Name, p.Description, p.Status, p.Priority,
		p.Budget, p.Currency, nullIfEmpty(p.AssignedUserID), p.StartDate, p.EndDate,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto activo del tenant.
func (r *ProjectRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	p, err := scanProject(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List lista proyectos del tenant con filtros, orden y paginación.
func (r *ProjectRepo) List(ctx context.Context, organizationID string, f repository.ProjectFilter, p repository.Page, s repository.Sort) ([]*entity.Project, int, error) {
	where := "WHERE organization_id = $1 AND is_active = TRUE"
	args := []any{organizationID}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		where += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", n, n)
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM projects "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	args = append(args, p.Limit, p.Offset)
	query := fmt.Sprintf("SELECT %s FROM projects %s ORDER BY %s LIMIT $%d OFFSET $%d",
		projectColumns, where, orderBy(projectSortColumns, s), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var list []*entity.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, proj)
	}
	return list, total, rows.Err()
}

// Update aplica un patch parcial sobre el proyecto.
func (r *ProjectRepo) Update(ctx context.Context, organizationID, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	set := newSetClause(id, organizationID)
	if patch.Name != nil {
		set.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		set.Set("description", *patch.Description)
	}
	if patch.Status != nil {
		set.Set("status", *patch.Status)
	}
	if patch.Priority != nil {
		set.Set("priority", *patch.Priority)
	}
	if patch.Budget != nil {
		set.Set("budget", *patch.Budget)
	}
	if patch.Currency != nil {
		set.Set("currency", *patch.Currency)
	}
	if patch.AssignedUserID != nil {
		set.Set("assigned_user_id", nullIfEmpty(*patch.AssignedUserID))
	}
	if patch.StartDate != nil {
		set.Set("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		set.Set("end_date", *patch.EndDate)
	}
	if set.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	set.Set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE projects SET %s WHERE id = $1 AND organization_id = $2 AND is_active = TRUE",
		set.SQL())
	tag, err := r.q.Exec(ctx, query, set.Args()...)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, organizationID, id)
}

// SoftDelete marca el proyecto como inactivo y devuelve la fila previa.
func (r *ProjectRepo) SoftDelete(ctx context.Context, organizationID, id string) (*entity.Project, error) {
	p, err := r.GetByID(ctx, organizationID, id)
	if err != nil || p == nil {
		return p, err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE projects SET is_active = FALSE, updated_at = $3 WHERE id = $1 AND organization_id = $2`,
		id, organizationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("soft delete project: %w", err)
	}
	return p, nil
}

// Search búsqueda rápida por nombre o descripción.
func (r *ProjectRepo) Search(ctx context.Context, organizationID, query string, limit int) ([]*entity.Project, error) {
	q := `SELECT ` + projectColumns + `
		FROM projects
		WHERE organization_id = $1 AND is_active = TRUE
		  AND (name ILIKE $2 OR description ILIKE $2)
		ORDER BY name LIMIT $3`
	rows, err := r.q.Query(ctx, q, organizationID, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Statistics total y conteo por estado.
func (r *ProjectRepo) Statistics(ctx context.Context, organizationID string) (*repository.ProjectStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT status, COUNT(*)
		FROM projects WHERE organization_id = $1 AND is_active = TRUE
		GROUP BY status`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}
	defer rows.Close()

	stats := &repository.ProjectStats{ByStatus: map[string]int{}}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan project stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

// CountActive cuenta proyectos no cerrados (para el límite max_projects del plan).
func (r *ProjectRepo) CountActive(ctx context.Context, organizationID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM projects
		WHERE organization_id = $1 AND is_active = TRUE
		  AND status NOT IN ('completed', 'cancelled')`, organizationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active projects: %w", err)
	}
	return n, nil
}
