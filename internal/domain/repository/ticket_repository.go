package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// TicketFilter filtros opcionales del listado de tickets.
type TicketFilter struct {
	Status   string
	Priority string
	Category string
	ClientID string
	Query    string // busca en subject y description
}

// TicketStats agregados para el widget de soporte.
type TicketStats struct {
	Total      int
	ByStatus   map[string]int
	ByPriority map[string]int
}

// TicketRepository puerto de persistencia para tickets y su hilo de mensajes.
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Ticket, error)
	List(ctx context.Context, organizationID string, f TicketFilter, p Page, s Sort) ([]*entity.Ticket, int, error)
	Update(ctx context.Context, organizationID, id string, patch entity.TicketPatch) (*entity.Ticket, error)
	SoftDelete(ctx context.Context, organizationID, id string) (*entity.Ticket, error)
	Search(ctx context.Context, organizationID, query string, limit int) ([]*entity.Ticket, error)
	Statistics(ctx context.Context, organizationID string) (*TicketStats, error)

	CreateMessage(ctx context.Context, msg *entity.TicketMessage) error
	ListMessages(ctx context.Context, ticketID string) ([]*entity.TicketMessage, error)
	// MessageExists verifica que parent_message_id pertenece al mismo ticket.
	MessageExists(ctx context.Context, ticketID, messageID string) (bool, error)
}
