package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TicketUseCase casos de uso de tickets de soporte y su hilo de mensajes.
type TicketUseCase struct {
	repo    repository.TicketRepository
	clients repository.ClientRepository
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(repo repository.TicketRepository, clients repository.ClientRepository) *TicketUseCase {
	return &TicketUseCase{repo: repo, clients: clients}
}

// Create abre un ticket con defaults open/medium/general.
func (uc *TicketUseCase) Create(ctx context.Context, organizationID string, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	client, err := uc.clients.GetByID(ctx, organizationID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrInvalidInput, in.ClientID)
	}
	if in.Priority == "" {
		in.Priority = entity.PriorityMedium
	}
	if in.Category == "" {
		in.Category = entity.TicketCategoryGeneral
	}

	now := time.Now()
	ticket := &entity.Ticket{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		ClientID:       in.ClientID,
		Subject:        in.Subject,
		Description:    in.Description,
		Status:         entity.TicketStatusOpen,
		Priority:       in.Priority,
		Category:       in.Category,
		AssignedUserID: in.AssignedUserID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// GetByID obtiene un ticket por ID.
func (uc *TicketUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || ticket == nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// List lista tickets con filtros, orden y paginación.
func (uc *TicketUseCase) List(ctx context.Context, organizationID string, f repository.TicketFilter, q dto.ListQuery) ([]dto.TicketResponse, *dto.Pagination, error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, organizationID, f,
		repository.Page{Limit: q.Limit, Offset: q.Offset()},
		repository.Sort{By: q.SortBy, Order: q.SortOrder})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTicketResponse(t))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// Update actualización parcial del ticket.
func (uc *TicketUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	patch := entity.TicketPatch{
		Subject:        in.Subject,
		Description:    in.Description,
		Status:         in.Status,
		Priority:       in.Priority,
		Category:       in.Category,
		AssignedUserID: in.AssignedUserID,
	}
	ticket, err := uc.repo.Update(ctx, organizationID, id, patch)
	if err != nil || ticket == nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// ChangeStatus transición de estado del ticket.
func (uc *TicketUseCase) ChangeStatus(ctx context.Context, organizationID, id, status string) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.Update(ctx, organizationID, id, entity.TicketPatch{Status: &status})
	if err != nil || ticket == nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// Delete baja lógica del ticket.
func (uc *TicketUseCase) Delete(ctx context.Context, organizationID, id string) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.SoftDelete(ctx, organizationID, id)
	if err != nil || ticket == nil {
		return nil, err
	}
	return toTicketResponse(ticket), nil
}

// Search búsqueda rápida por asunto o descripción.
func (uc *TicketUseCase) Search(ctx context.Context, organizationID, query string, limit int) ([]dto.TicketResponse, error) {
	if limit <= 0 || limit > dto.MaxPageLimit {
		limit = dto.DefaultPageLimit
	}
	list, err := uc.repo.Search(ctx, organizationID, query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTicketResponse(t))
	}
	return items, nil
}

// Statistics agregados del tenant para el dashboard.
func (uc *TicketUseCase) Statistics(ctx context.Context, organizationID string) (*dto.TicketStatsResponse, error) {
	stats, err := uc.repo.Statistics(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return &dto.TicketStatsResponse{
		Total:      stats.Total,
		ByStatus:   stats.ByStatus,
		ByPriority: stats.ByPriority,
	}, nil
}

// AddMessage agrega un mensaje al hilo del ticket. Si referencia un mensaje
// padre, debe pertenecer al mismo ticket.
func (uc *TicketUseCase) AddMessage(ctx context.Context, organizationID, ticketID, authorUserID string, in dto.CreateTicketMessageRequest) (*dto.TicketMessageResponse, error) {
	ticket, err := uc.repo.GetByID(ctx, organizationID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, nil
	}
	if ticket.Status == entity.TicketStatusClosed || ticket.Status == entity.TicketStatusCancelled {
		return nil, fmt.Errorf("%w: el ticket está %s", domain.ErrConflict, ticket.Status)
	}
	if in.ParentMessageID != "" {
		ok, err := uc.repo.MessageExists(ctx, ticketID, in.ParentMessageID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: parent_message_id no pertenece al ticket", domain.ErrInvalidInput)
		}
	}

	msg := &entity.TicketMessage{
		ID:              uuid.New().String(),
		TicketID:        ticketID,
		AuthorUserID:    authorUserID,
		ParentMessageID: in.ParentMessageID,
		Body:            in.Body,
		IsInternal:      in.IsInternal,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return toTicketMessageResponse(msg), nil
}

// ListMessages devuelve el hilo del ticket en orden cronológico.
func (uc *TicketUseCase) ListMessages(ctx context.Context, organizationID, ticketID string) ([]dto.TicketMessageResponse, error) {
	ticket, err := uc.repo.GetByID(ctx, organizationID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	msgs, err := uc.repo.ListMessages(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, *toTicketMessageResponse(m))
	}
	return out, nil
}

func toTicketResponse(t *entity.Ticket) *dto.TicketResponse {
	if t == nil {
		return nil
	}
	return &dto.TicketResponse{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		ClientID:       t.ClientID,
		Subject:        t.Subject,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		Category:       t.Category,
		AssignedUserID: t.AssignedUserID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toTicketMessageResponse(m *entity.TicketMessage) *dto.TicketMessageResponse {
	if m == nil {
		return nil
	}
	return &dto.TicketMessageResponse{
		ID:              m.ID,
		TicketID:        m.TicketID,
		AuthorUserID:    m.AuthorUserID,
		ParentMessageID: m.ParentMessageID,
		Body:            m.Body,
		IsInternal:      m.IsInternal,
		CreatedAt:       m.CreatedAt,
	}
}
