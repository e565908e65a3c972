package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ClientFilter filtros opcionales del listado de clientes.
type ClientFilter struct {
	Industry string
	Region   string
	Query    string // busca en name, tax_id y email
}

// ClientStats agregados para el widget de clientes.
type ClientStats struct {
	Total        int
	NewThisMonth int
	ByIndustry   map[string]int
}

// ClientRepository puerto de persistencia para clientes.
// Todas las operaciones exigen organizationID y lo incluyen en el WHERE:
// una fila de otro tenant se comporta como inexistente (nil, nil).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.Client, error)
	List(ctx context.Context, organizationID string, f ClientFilter, p Page, s Sort) ([]*entity.Client, int, error)
	Update(ctx context.Context, organizationID, id string, patch entity.ClientPatch) (*entity.Client, error)
	SoftDelete(ctx context.Context, organizationID, id string) (*entity.Client, error)
	Search(ctx context.Context, organizationID, query string, limit int) ([]*entity.Client, error)
	Statistics(ctx context.Context, organizationID string) (*ClientStats, error)
}
