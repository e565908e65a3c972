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

// ProjectUseCase casos de uso CRUD de proyectos. En Create se valida que el
// cliente exista en el tenant y que el plan no haya agotado max_projects.
type ProjectUseCase struct {
	repo    repository.ProjectRepository
	clients repository.ClientRepository
	orgs    repository.OrganizationRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, clients repository.ClientRepository, orgs repository.OrganizationRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, clients: clients, orgs: orgs}
}

// Create crea un nuevo proyecto con defaults draft/medium.
func (uc *ProjectUseCase) Create(ctx context.Context, organizationID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	client, err := uc.clients.GetByID(ctx, organizationID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrInvalidInput, in.ClientID)
	}

	org, err := uc.orgs.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if org.MaxProjects > 0 {
		active, err := uc.repo.CountActive(ctx, organizationID)
		if err != nil {
			return nil, err
		}
		if active >= org.MaxProjects {
			return nil, fmt.Errorf("%w: límite de proyectos del plan alcanzado", domain.ErrConflict)
		}
	}

	if in.Status == "" {
		in.Status = entity.ProjectStatusDraft
	}
	if in.Priority == "" {
		in.Priority = entity.PriorityMedium
	}
	if in.Budget.IsNegative() {
		return nil, fmt.Errorf("%w: budget negativo", domain.ErrInvalidInput)
	}
	if in.Currency == "" {
		in.Currency = "COP"
	}

	now := time.Now()
	project := &entity.Project{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		ClientID:       in.ClientID,
		Name:           in.Name,
		Description:    in.Description,
		Status:         in.Status,
		Priority:       in.Priority,
		Budget:         in.Budget,
		Currency:       in.Currency,
		AssignedUserID: in.AssignedUserID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// GetByID obtiene un proyecto por ID.
func (uc *ProjectUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil || project == nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// List lista proyectos con filtros, orden y paginación.
func (uc *ProjectUseCase) List(ctx context.Context, organizationID string, f repository.ProjectFilter, q dto.ListQuery) ([]dto.ProjectResponse, *dto.Pagination, error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, organizationID, f,
		repository.Page{Limit: q.Limit, Offset: q.Offset()},
		repository.Sort{By: q.SortBy, Order: q.SortOrder})
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// Update actualización parcial: solo los campos presentes cambian.
func (uc *ProjectUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if in.Budget != nil && in.Budget.IsNegative() {
		return nil, fmt.Errorf("%w: budget negativo", domain.ErrInvalidInput)
	}
	patch := entity.ProjectPatch{
		Name:           in.Name,
		Description:    in.Description,
		Status:         in.Status,
		Priority:       in.Priority,
		Budget:         in.Budget,
		Currency:       in.Currency,
		AssignedUserID: in.AssignedUserID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
	}
	project, err := uc.repo.Update(ctx, organizationID, id, patch)
	if err != nil || project == nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// ChangeStatus transición de estado del proyecto.
func (uc *ProjectUseCase) ChangeStatus(ctx context.Context, organizationID, id, status string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.Update(ctx, organizationID, id, entity.ProjectPatch{Status: &status})
	if err != nil || project == nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// Delete baja lógica del proyecto.
func (uc *ProjectUseCase) Delete(ctx context.Context, organizationID, id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.SoftDelete(ctx, organizationID, id)
	if err != nil || project == nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// Search búsqueda rápida por nombre o descripción.
func (uc *ProjectUseCase) Search(ctx context.Context, organizationID, query string, limit int) ([]dto.ProjectResponse, error) {
	if limit <= 0 || limit > dto.MaxPageLimit {
		limit = dto.DefaultPageLimit
	}
	list, err := uc.repo.Search(ctx, organizationID, query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return items, nil
}

// Statistics agregados del tenant para el dashboard.
func (uc *ProjectUseCase) Statistics(ctx context.Context, organizationID string) (*dto.ProjectStatsResponse, error) {
	stats, err := uc.repo.Statistics(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return &dto.ProjectStatsResponse{Total: stats.Total, ByStatus: stats.ByStatus}, nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		ClientID:       p.ClientID,
		Name:           p.Name,
		Description:    p.Description,
		Status:         p.Status,
		Priority:       p.Priority,
		Budget:         p.Budget,
		Currency:       p.Currency,
		AssignedUserID: p.AssignedUserID,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
