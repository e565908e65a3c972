package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD y analítica básica de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un nuevo cliente para el tenant.
func (uc *ClientUseCase) Create(ctx context.Context, organizationID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	now := time.Now()
	client := &entity.Client{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		TaxID:          in.TaxID,
		Email:          in.Email,
		Phone:          in.Phone,
		BillingAddress: in.BillingAddress,
		City:           in.City,
		Country:        in.Country,
		Industry:       in.Industry,
		Region:         in.Region,
		Notes:          in.Notes,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe o es de otro tenant.
func (uc *ClientUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || client == nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes con filtros, orden y paginación.
func (uc *ClientUseCase) List(ctx context.Context, organizationID string, f repository.ClientFilter, q dto.ListQuery) ([]dto.ClientResponse, *dto.Pagination, error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, organizationID, f,
		repository.Page{Limit: q.Limit, Offset: q.Offset()},
		repository.Sort{By: q.SortBy, Order: q.SortOrder})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// Update actualización parcial: solo los campos presentes cambian.
func (uc *ClientUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	patch := entity.ClientPatch{
		Name:           in.Name,
		TaxID:          in.TaxID,
		Email:          in.Email,
		Phone:          in.Phone,
		BillingAddress: in.BillingAddress,
		City:           in.City,
		Country:        in.Country,
		Industry:       in.Industry,
		Region:         in.Region,
		Notes:          in.Notes,
	}
	client, err := uc.repo.Update(ctx, organizationID, id, patch)
	if err != nil || client == nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete baja lógica del cliente; devuelve la fila previa o nil si no existía.
func (uc *ClientUseCase) Delete(ctx context.Context, organizationID, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.SoftDelete(ctx, organizationID, id)
	if err != nil || client == nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Search búsqueda rápida por nombre, ID fiscal o email.
func (uc *ClientUseCase) Search(ctx context.Context, organizationID, query string, limit int) ([]dto.ClientResponse, error) {
	if limit <= 0 || limit > dto.MaxPageLimit {
		limit = dto.DefaultPageLimit
	}
	list, err := uc.repo.Search(ctx, organizationID, query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return items, nil
}

// Statistics agregados del tenant para el dashboard.
func (uc *ClientUseCase) Statistics(ctx context.Context, organizationID string) (*dto.ClientStatsResponse, error) {
	stats, err := uc.repo.Statistics(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return &dto.ClientStatsResponse{
		Total:        stats.Total,
		NewThisMonth: stats.NewThisMonth,
		ByIndustry:   stats.ByIndustry,
	}, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Email:          c.Email,
		Phone:          c.Phone,
		BillingAddress: c.BillingAddress,
		City:           c.City,
		Country:        c.Country,
		Industry:       c.Industry,
		Region:         c.Region,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
