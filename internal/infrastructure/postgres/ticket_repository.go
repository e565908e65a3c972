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

var _ repository.TicketRepository = (*TicketRepo)(nil)

var ticketSortColumns = map[string]string{
	"subject":    "subject",
	"status":     "status",
	"priority":   "priority",
	"category":   "category",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

const ticketColumns = `id, organization_id, client_id, subject, description, status, priority,
	category, assigned_user_id, is_active, created_at, updated_at`

// TicketRepo implementación de TicketRepository (usable con pool o tx).
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador.
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var t entity.Ticket
	var assigned *string
	err := row.Scan(
		&t.ID, &t.OrganizationID, &t.ClientID, &t.Subject, &t.Description, &t.Status, &t.Priority,
		&t.Category, &assigned, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.AssignedUserID = derefStr(assigned)
	return &t, nil
}

// Create persiste un nuevo ticket.
func (r *TicketRepo) Create(ctx context.Context, t *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, organization_id, client_id, subject, description, status, priority,
			category, assigned_user_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.OrganizationID, t.ClientID, t.Subject, t.Description, t.Status, t.Priority,
		t.Category, nullIfEmpty(t.AssignedUserID), t.IsActive, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket activo del tenant.
func (r *TicketRepo) GetByID(ctx context.Context, organizationID, id string) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + `
		FROM tickets WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	t, err := scanTicket(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// List lista tickets del tenant con filtros, orden y paginación.
func (r *TicketRepo) List(ctx context.Context, organizationID string, f repository.TicketFilter, p repository.Page, s repository.Sort) ([]*entity.Ticket, int, error) {
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
	if f.Category != "" {
		args = append(args, f.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (subject ILIKE $%d OR description ILIKE $%d)", n, n)
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM tickets "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}

	args = append(args, p.Limit, p.Offset)
	query := fmt.Sprintf("SELECT %s FROM tickets %s ORDER BY %s LIMIT $%d OFFSET $%d",
		ticketColumns, where, orderBy(ticketSortColumns, s), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var list []*entity.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// Update aplica un patch parcial sobre el ticket.
func (r *TicketRepo) Update(ctx context.Context, organizationID, id string, patch entity.TicketPatch) (*entity.Ticket, error) {
	set := newSetClause(id, organizationID)
	if patch.Subject != nil {
		set.Set("subject", *patch.Subject)
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
	if patch.Category != nil {
		set.Set("category", *patch.Category)
	}
	if patch.AssignedUserID != nil {
		set.Set("assigned_user_id", nullIfEmpty(*patch.AssignedUserID))
	}
	if set.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	set.Set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE tickets SET %s WHERE id = $1 AND organization_id = $2 AND is_active = TRUE",
		set.SQL())
	tag, err := r.q.Exec(ctx, query, set.Args()...)
	if err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, organizationID, id)
}

// SoftDelete marca el ticket como inactivo y devuelve la fila previa.
func (r *TicketRepo) SoftDelete(ctx context.Context, organizationID, id string) (*entity.Ticket, error) {
	t, err := r.GetByID(ctx, organizationID, id)
	if err != nil || t == nil {
		return t, err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE tickets SET is_active = FALSE, updated_at = $3 WHERE id = $1 AND organization_id = $2`,
		id, organizationID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("soft delete ticket: %w", err)
	}
	return t, nil
}

// Search búsqueda rápida por asunto o descripción.
func (r *TicketRepo) Search(ctx context.Context, organizationID, query string, limit int) ([]*entity.Ticket, error) {
	q := `SELECT ` + ticketColumns + `
		FROM tickets
		WHERE organization_id = $1 AND is_active = TRUE
		  AND (subject ILIKE $2 OR description ILIKE $2)
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.q.Query(ctx, q, organizationID, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Statistics total y distribución por estado y prioridad.
func (r *TicketRepo) Statistics(ctx context.Context, organizationID string) (*repository.TicketStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT status, priority, COUNT(*)
		FROM tickets WHERE organization_id = $1 AND is_active = TRUE
		GROUP BY status, priority`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("ticket stats: %w", err)
	}
	defer rows.Close()

	stats := &repository.TicketStats{ByStatus: map[string]int{}, ByPriority: map[string]int{}}
	for rows.Next() {
		var status, priority string
		var count int
		if err := rows.Scan(&status, &priority, &count); err != nil {
			return nil, fmt.Errorf("scan ticket stats: %w", err)
		}
		stats.ByStatus[status] += count
		stats.ByPriority[priority] += count
		stats.Total += count
	}
	return stats, rows.Err()
}

// CreateMessage persiste un mensaje del hilo.
func (r *TicketRepo) CreateMessage(ctx context.Context, m *entity.TicketMessage) error {
	query := `
		INSERT INTO ticket_messages (id, ticket_id, author_user_id, parent_message_id, body, is_internal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TicketID, m.AuthorUserID, nullIfEmpty(m.ParentMessageID), m.Body, m.IsInternal, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket message: %w", err)
	}
	return nil
}

// ListMessages devuelve el hilo completo en orden cronológico.
func (r *TicketRepo) ListMessages(ctx context.Context, ticketID string) ([]*entity.TicketMessage, error) {
	query := `
		SELECT id, ticket_id, author_user_id, parent_message_id, body, is_internal, created_at
		FROM ticket_messages WHERE ticket_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list ticket messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.TicketMessage
	for rows.Next() {
		var m entity.TicketMessage
		var parent *string
		if err := rows.Scan(&m.ID, &m.TicketID, &m.AuthorUserID, &parent, &m.Body, &m.IsInternal, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket message: %w", err)
		}
		m.ParentMessageID = derefStr(parent)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// MessageExists verifica que un mensaje pertenece al ticket indicado.
func (r *TicketRepo) MessageExists(ctx context.Context, ticketID, messageID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ticket_messages WHERE id = $1 AND ticket_id = $2)`,
		messageID, ticketID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check ticket message: %w", err)
	}
	return exists, nil
}
