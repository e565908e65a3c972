package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthor = "33333333-3333-4333-8333-333333333333"

func openTicket(orgID string) *entity.Ticket {
	return &entity.Ticket{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ClientID:       uuid.New().String(),
		Subject:        "no carga el dashboard",
		Status:         entity.TicketStatusOpen,
		Priority:       entity.PriorityMedium,
		Category:       entity.TicketCategoryTechnical,
		IsActive:       true,
	}
}

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestTicketCreate_AplicaDefaults(t *testing.T) {
	client := activeClient(testOrg)
	repo := newFakeTicketRepo()
	uc := NewTicketUseCase(repo, newFakeClientRepo(client))

	resp, err := uc.Create(context.Background(), testOrg, dto.CreateTicketRequest{
		ClientID: client.ID,
		Subject:  "error al generar PDF",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.TicketStatusOpen, resp.Status)
	assert.Equal(t, entity.PriorityMedium, resp.Priority)
	assert.Equal(t, entity.TicketCategoryGeneral, resp.Category)
	assert.NotEmpty(t, resp.ID)
}

func TestTicketCreate_ClienteInexistente(t *testing.T) {
	uc := NewTicketUseCase(newFakeTicketRepo(), newFakeClientRepo())

	resp, err := uc.Create(context.Background(), testOrg, dto.CreateTicketRequest{
		ClientID: uuid.New().String(),
		Subject:  "algo",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────
// AddMessage
// ─────────────────────────────────────────────

func TestTicketAddMessage_OK(t *testing.T) {
	ticket := openTicket(testOrg)
	repo := newFakeTicketRepo(ticket)
	uc := NewTicketUseCase(repo, newFakeClientRepo())

	resp, err := uc.AddMessage(context.Background(), testOrg, ticket.ID, testAuthor, dto.CreateTicketMessageRequest{
		Body: "¿puede compartir el ID de la factura?",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, testAuthor, resp.AuthorUserID)
	assert.Equal(t, ticket.ID, resp.TicketID)
	assert.Len(t, repo.messages[ticket.ID], 1)
}

func TestTicketAddMessage_RespuestaConPadreValido(t *testing.T) {
	ticket := openTicket(testOrg)
	repo := newFakeTicketRepo(ticket)
	parent := &entity.TicketMessage{ID: uuid.New().String(), TicketID: ticket.ID, Body: "raíz"}
	repo.messages[ticket.ID] = []*entity.TicketMessage{parent}
	uc := NewTicketUseCase(repo, newFakeClientRepo())

	resp, err := uc.AddMessage(context.Background(), testOrg, ticket.ID, testAuthor, dto.CreateTicketMessageRequest{
		ParentMessageID: parent.ID,
		Body:            "respuesta",
	})

	require.NoError(t, err)
	assert.Equal(t, parent.ID, resp.ParentMessageID)
}

func TestTicketAddMessage_PadreDeOtroTicket(t *testing.T) {
	ticket := openTicket(testOrg)
	repo := newFakeTicketRepo(ticket)
	uc := NewTicketUseCase(repo, newFakeClientRepo())

	resp, err := uc.AddMessage(context.Background(), testOrg, ticket.ID, testAuthor, dto.CreateTicketMessageRequest{
		ParentMessageID: uuid.New().String(),
		Body:            "respuesta huérfana",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.messages[ticket.ID])
}

func TestTicketAddMessage_TicketCerrado(t *testing.T) {
	ticket := openTicket(testOrg)
	ticket.Status = entity.TicketStatusClosed
	uc := NewTicketUseCase(newFakeTicketRepo(ticket), newFakeClientRepo())

	resp, err := uc.AddMessage(context.Background(), testOrg, ticket.ID, testAuthor, dto.CreateTicketMessageRequest{Body: "tarde"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTicketAddMessage_TicketCancelado(t *testing.T) {
	ticket := openTicket(testOrg)
	ticket.Status = entity.TicketStatusCancelled
	uc := NewTicketUseCase(newFakeTicketRepo(ticket), newFakeClientRepo())

	resp, err := uc.AddMessage(context.Background(), testOrg, ticket.ID, testAuthor, dto.CreateTicketMessageRequest{Body: "tarde"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTicketAddMessage_TicketInexistente(t *testing.T) {
	uc := NewTicketUseCase(newFakeTicketRepo(), newFakeClientRepo())

	resp, err := uc.AddMessage(context.Background(), testOrg, uuid.New().String(), testAuthor, dto.CreateTicketMessageRequest{Body: "hola"})

	assert.NoError(t, err)
	assert.Nil(t, resp, "ticket inexistente se comporta como (nil, nil)")
}

// ─────────────────────────────────────────────
// ListMessages
// ─────────────────────────────────────────────

func TestTicketListMessages_TicketInexistente(t *testing.T) {
	uc := NewTicketUseCase(newFakeTicketRepo(), newFakeClientRepo())

	msgs, err := uc.ListMessages(context.Background(), testOrg, uuid.New().String())

	assert.Nil(t, msgs)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketListMessages_DevuelveHilo(t *testing.T) {
	ticket := openTicket(testOrg)
	repo := newFakeTicketRepo(ticket)
	repo.messages[ticket.ID] = []*entity.TicketMessage{
		{ID: uuid.New().String(), TicketID: ticket.ID, Body: "primero"},
		{ID: uuid.New().String(), TicketID: ticket.ID, Body: "segundo", IsInternal: true},
	}
	uc := NewTicketUseCase(repo, newFakeClientRepo())

	msgs, err := uc.ListMessages(context.Background(), testOrg, ticket.ID)

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "primero", msgs[0].Body)
	assert.True(t, msgs[1].IsInternal)
}
