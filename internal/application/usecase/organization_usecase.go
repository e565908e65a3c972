package usecase

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// OrganizationUseCase operaciones sobre la organización del token.
type OrganizationUseCase struct {
	repo repository.OrganizationRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(repo repository.OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo}
}

// Get devuelve la organización actual.
func (uc *OrganizationUseCase) Get(ctx context.Context, organizationID string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(ctx, organizationID)
	if err != nil || org == nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// Update actualización parcial de la organización actual.
func (uc *OrganizationUseCase) Update(ctx context.Context, organizationID string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	patch := entity.OrganizationPatch{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		Plan:        in.Plan,
		MaxUsers:    in.MaxUsers,
		MaxProjects: in.MaxProjects,
		Branding:    in.Branding,
		SSOConfig:   in.SSOConfig,
	}
	org, err := uc.repo.Update(ctx, organizationID, patch)
	if err != nil || org == nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// Deactivate desactiva la organización actual.
func (uc *OrganizationUseCase) Deactivate(ctx context.Context, organizationID string) error {
	return uc.repo.Deactivate(ctx, organizationID)
}

func toOrganizationResponse(org *entity.Organization) *dto.OrganizationResponse {
	if org == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		TaxID:       org.TaxID,
		Email:       org.Email,
		Phone:       org.Phone,
		Address:     org.Address,
		Plan:        org.Plan,
		MaxUsers:    org.MaxUsers,
		MaxProjects: org.MaxProjects,
		Branding:    org.Branding,
		SSOConfig:   org.SSOConfig,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}
