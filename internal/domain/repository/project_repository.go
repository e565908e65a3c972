package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ProjectFilter filtros opcionales del listado de proyectos.
type ProjectFilter struct {
	Status   string
	Priority string
	ClientID string
	Query    string // busca en name y description
}

// ProjectStats agregados para el widget de proyectos.
type ProjectStats struct {
	Total    int
	ByStatus map[string]int
}

// ProjectRepository puerto de persistencia para proyectos.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Project, error)
	List(ctx context.Context, organizationID string, f ProjectFilter, p Page, s Sort) ([]*entity.Project, int, error)
	Update(ctx context.Context, organizationID, id string, patch entity.ProjectPatch) (*entity.Project, error)
	SoftDelete(ctx context.Context, organizationID, id string) (*entity.Project, error)
	Search(ctx context.Context, organizationID, query string, limit int) ([]*entity.Project, error)
	Statistics(ctx context.Context, organizationID string) (*ProjectStats, error)
	CountActive(ctx context.Context, organizationID string) (int, error)
}
