package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// OrganizationRepository puerto de persistencia para el tenant raíz.
// Las organizaciones nunca se borran físicamente: Deactivate pone is_active=false.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Organization, error)
	Update(ctx context.Context, id string, patch entity.OrganizationPatch) (*entity.Organization, error)
	Deactivate(ctx context.Context, id string) error
}

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, organizationID, id string) (*entity.User, error)
	// FindByEmail busca en todas las organizaciones (login).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndOrganization(ctx context.Context, email, organizationID string) (*entity.User, error)
	CountByOrganization(ctx context.Context, organizationID string) (int, error)
}
