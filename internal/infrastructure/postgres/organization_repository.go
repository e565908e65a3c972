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

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

const organizationColumns = `id, name, tax_id, email, phone, address, plan, max_users, max_projects,
	branding, sso_config, is_active, created_at, updated_at`

// OrganizationRepo implementación de OrganizationRepository.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

func scanOrganization(row pgx.Row) (*entity.Organization, error) {
	var org entity.Organization
	err := row.Scan(
		&org.ID, &org.Name, &org.TaxID, &org.Email, &org.Phone, &org.Address,
		&org.Plan, &org.MaxUsers, &org.MaxProjects, &org.Branding, &org.SSOConfig,
		&org.IsActive, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Create persiste una nueva organización. El tax_id es único en el sistema.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, tax_id, email, phone, address, plan, max_users, max_projects,
			branding, sso_config, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.TaxID, org.Email, org.Phone, org.Address,
		org.Plan, org.MaxUsers, org.MaxProjects, org.Branding, org.SSOConfig,
		org.IsActive, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización activa.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + `
		FROM organizations WHERE id = $1 AND is_active = TRUE`
	org, err := scanOrganization(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

// GetByTaxID busca una organización por identificador fiscal.
func (r *OrganizationRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + `
		FROM organizations WHERE tax_id = $1 AND is_active = TRUE`
	org, err := scanOrganization(r.q.QueryRow(ctx, query, taxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization by tax id: %w", err)
	}
	return org, nil
}

// Update aplica un patch parcial sobre la organización.
func (r *OrganizationRepo) Update(ctx context.Context, id string, patch entity.OrganizationPatch) (*entity.Organization, error) {
	set := newSetClause(id)
	if patch.Name != nil {
		set.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		set.Set("email", *patch.Email)
	}
	if patch.Phone != nil {
		set.Set("phone", *patch.Phone)
	}
	if patch.Address != nil {
		set.Set("address", *patch.Address)
	}
	if patch.Plan != nil {
		set.Set("plan", *patch.Plan)
	}
	if patch.MaxUsers != nil {
		set.Set("max_users", *patch.MaxUsers)
	}
	if patch.MaxProjects != nil {
		set.Set("max_projects", *patch.MaxProjects)
	}
	if patch.Branding != nil {
		set.Set("branding", patch.Branding)
	}
	if patch.SSOConfig != nil {
		set.Set("sso_config", patch.SSOConfig)
	}
	if set.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	set.Set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE organizations SET %s WHERE id = $1 AND is_active = TRUE",
		set.SQL())
	tag, err := r.q.Exec(ctx, query, set.Args()...)
	if err != nil {
		return nil, fmt.Errorf("update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Deactivate desactiva la organización sin borrar datos.
func (r *OrganizationRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE organizations SET is_active = FALSE, updated_at = $2 WHERE id = $1`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("deactivate organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
