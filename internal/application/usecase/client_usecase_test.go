package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Create / GetByID
// ─────────────────────────────────────────────

func TestClientCreate_AsignaIDYTenant(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewClientUseCase(repo)

	resp, err := uc.Create(context.Background(), testOrg, dto.CreateClientRequest{
		Name:  "Constructora Andina",
		TaxID: "901234567-1",
		Email: "facturacion@andina.co",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, testOrg, resp.OrganizationID)
	require.Len(t, repo.clients, 1)
	assert.True(t, repo.clients[0].IsActive, "el cliente nace activo")
}

func TestClientGetByID_NoExiste(t *testing.T) {
	uc := NewClientUseCase(newFakeClientRepo())

	resp, err := uc.GetByID(context.Background(), testOrg, uuid.New().String())

	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestClientGetByID_OtroTenantSeComportaComoInexistente(t *testing.T) {
	ajeno := activeClient("22222222-2222-4222-8222-222222222222")
	uc := NewClientUseCase(newFakeClientRepo(ajeno))

	resp, err := uc.GetByID(context.Background(), testOrg, ajeno.ID)

	assert.NoError(t, err)
	assert.Nil(t, resp)
}

// ─────────────────────────────────────────────
// List / Search / Delete
// ─────────────────────────────────────────────

func TestClientList_Paginacion(t *testing.T) {
	repo := newFakeClientRepo()
	for i := 0; i < 25; i++ {
		repo.clients = append(repo.clients, &entity.Client{
			ID:             uuid.New().String(),
			OrganizationID: testOrg,
			Name:           fmt.Sprintf("Cliente %02d", i),
			IsActive:       true,
		})
	}
	uc := NewClientUseCase(repo)

	items, page, err := uc.List(context.Background(), testOrg, repository.ClientFilter{}, dto.ListQuery{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, items, 10)
	require.NotNil(t, page)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "Cliente 10", items[0].Name, "la segunda página empieza en el elemento 10")
}

func TestClientList_PaginaFueraDeRango(t *testing.T) {
	c := activeClient(testOrg)
	uc := NewClientUseCase(newFakeClientRepo(c))

	items, page, err := uc.List(context.Background(), testOrg, repository.ClientFilter{}, dto.ListQuery{Page: 9, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, page.Total)
}

func TestClientSearch_LimiteInvalidoUsaDefault(t *testing.T) {
	repo := newFakeClientRepo(activeClient(testOrg))
	uc := NewClientUseCase(repo)

	_, err := uc.Search(context.Background(), testOrg, "acme", 0)

	require.NoError(t, err)
	assert.Equal(t, dto.DefaultPageLimit, repo.lastSearchLimit)
}

func TestClientSearch_LimiteExcesivoSeAcota(t *testing.T) {
	repo := newFakeClientRepo(activeClient(testOrg))
	uc := NewClientUseCase(repo)

	_, err := uc.Search(context.Background(), testOrg, "acme", 500)

	require.NoError(t, err)
	assert.Equal(t, dto.DefaultPageLimit, repo.lastSearchLimit)
}

func TestClientDelete_BajaLogica(t *testing.T) {
	c := activeClient(testOrg)
	repo := newFakeClientRepo(c)
	uc := NewClientUseCase(repo)

	resp, err := uc.Delete(context.Background(), testOrg, c.ID)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.False(t, c.IsActive)

	// tras la baja, el cliente deja de ser visible
	again, err := uc.GetByID(context.Background(), testOrg, c.ID)
	assert.NoError(t, err)
	assert.Nil(t, again)
}

func TestClientUpdate_NoExiste(t *testing.T) {
	uc := NewClientUseCase(newFakeClientRepo())
	nombre := "Nuevo Nombre"

	resp, err := uc.Update(context.Background(), testOrg, uuid.New().String(), dto.UpdateClientRequest{Name: &nombre})

	assert.NoError(t, err)
	assert.Nil(t, resp)
}
