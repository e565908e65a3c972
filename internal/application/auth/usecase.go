package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Límites por plan cuando la organización no define los suyos.
const (
	defaultMaxUsers    = 5
	defaultMaxProjects = 10
)

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, orgRepo: orgRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario. Si OrganizationID viene vacío, crea también la
// organización (plan free) y el usuario nace admin; si viene, el usuario se
// suma a esa organización respetando max_users.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	now := time.Now()

	orgID := in.OrganizationID
	role := in.Role
	if orgID == "" {
		if in.OrganizationName == "" {
			return nil, fmt.Errorf("%w: organization_name requerido al crear organización", domain.ErrInvalidInput)
		}
		org := &entity.Organization{
			ID:          uuid.New().String(),
			Name:        in.OrganizationName,
			TaxID:       in.TaxID,
			Email:       in.Email,
			Plan:        entity.PlanFree,
			MaxUsers:    defaultMaxUsers,
			MaxProjects: defaultMaxProjects,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.orgRepo.Create(ctx, org); err != nil {
			return nil, err
		}
		orgID = org.ID
		role = entity.RoleAdmin
	} else {
		org, err := uc.orgRepo.GetByID(ctx, orgID)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, domain.ErrNotFound
		}
		count, err := uc.userRepo.CountByOrganization(ctx, orgID)
		if err != nil {
			return nil, err
		}
		if org.MaxUsers > 0 && count >= org.MaxUsers {
			return nil, fmt.Errorf("%w: límite de usuarios del plan alcanzado", domain.ErrConflict)
		}
		if role == "" {
			role = entity.RoleMember
		}
	}

	existing, _ := uc.userRepo.GetByEmailAndOrganization(ctx, in.Email, orgID)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Name:           name,
		Role:           role,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	org, err := uc.orgRepo.GetByID(ctx, user.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrForbidden // organización desactivada
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.OrganizationID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
