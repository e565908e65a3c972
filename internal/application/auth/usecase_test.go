package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Gestion-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWT = JWTConfig{Secret: "secret-de-pruebas", ExpMinutes: 60, Issuer: "gestion-pro-test"}

// ─────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, organizationID, id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id && u.OrganizationID == organizationID && u.IsActive {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.IsActive {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmailAndOrganization(_ context.Context, email, organizationID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.OrganizationID == organizationID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CountByOrganization(_ context.Context, organizationID string) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.OrganizationID == organizationID {
			n++
		}
	}
	return n, nil
}

type fakeOrgRepo struct {
	orgs []*entity.Organization
}

func (f *fakeOrgRepo) Create(_ context.Context, org *entity.Organization) error {
	f.orgs = append(f.orgs, org)
	return nil
}

func (f *fakeOrgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	for _, o := range f.orgs {
		if o.ID == id && o.IsActive {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrgRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Organization, error) {
	for _, o := range f.orgs {
		if o.TaxID == taxID && o.IsActive {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrgRepo) Update(_ context.Context, id string, _ entity.OrganizationPatch) (*entity.Organization, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeOrgRepo) Deactivate(_ context.Context, id string) error {
	for _, o := range f.orgs {
		if o.ID == id {
			o.IsActive = false
		}
	}
	return nil
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestRegister_CreaOrganizacionYAdmin(t *testing.T) {
	users := &fakeUserRepo{}
	orgs := &fakeOrgRepo{}
	uc := NewAuthUseCase(users, orgs, testJWT)

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		OrganizationName: "Gestión Pro Demo",
		Email:            "fundador@demo.co",
		Password:         "supersecreta1",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.RoleAdmin, resp.Role, "el primer usuario nace admin")
	require.Len(t, orgs.orgs, 1)
	assert.Equal(t, entity.PlanFree, orgs.orgs[0].Plan)
	assert.Equal(t, orgs.orgs[0].ID, resp.OrganizationID)

	// el hash nunca coincide con la contraseña en claro
	require.Len(t, users.users, 1)
	assert.NotEqual(t, "supersecreta1", users.users[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.users[0].PasswordHash), []byte("supersecreta1")))
}

func TestRegister_SinNombreDeOrganizacion(t *testing.T) {
	uc := NewAuthUseCase(&fakeUserRepo{}, &fakeOrgRepo{}, testJWT)

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "x@demo.co",
		Password: "supersecreta1",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_SumaUsuarioAOrganizacionExistente(t *testing.T) {
	org := &entity.Organization{ID: uuid.New().String(), Name: "Acme", MaxUsers: 5, IsActive: true}
	orgs := &fakeOrgRepo{orgs: []*entity.Organization{org}}
	users := &fakeUserRepo{}
	uc := NewAuthUseCase(users, orgs, testJWT)

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		OrganizationID: org.ID,
		Email:          "analista@acme.co",
		Password:       "supersecreta1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, resp.Role, "sin rol explícito entra como member")
	assert.Equal(t, org.ID, resp.OrganizationID)
}

func TestRegister_LimiteDeUsuariosDelPlan(t *testing.T) {
	org := &entity.Organization{ID: uuid.New().String(), Name: "Acme", MaxUsers: 1, IsActive: true}
	orgs := &fakeOrgRepo{orgs: []*entity.Organization{org}}
	users := &fakeUserRepo{users: []*entity.User{
		{ID: uuid.New().String(), OrganizationID: org.ID, Email: "primero@acme.co", IsActive: true},
	}}
	uc := NewAuthUseCase(users, orgs, testJWT)

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		OrganizationID: org.ID,
		Email:          "segundo@acme.co",
		Password:       "supersecreta1",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_EmailDuplicadoEnLaOrganizacion(t *testing.T) {
	org := &entity.Organization{ID: uuid.New().String(), Name: "Acme", MaxUsers: 10, IsActive: true}
	orgs := &fakeOrgRepo{orgs: []*entity.Organization{org}}
	users := &fakeUserRepo{users: []*entity.User{
		{ID: uuid.New().String(), OrganizationID: org.ID, Email: "dup@acme.co", IsActive: true},
	}}
	uc := NewAuthUseCase(users, orgs, testJWT)

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		OrganizationID: org.ID,
		Email:          "dup@acme.co",
		Password:       "supersecreta1",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func registeredUser(t *testing.T, orgID, email, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           role,
		IsActive:       true,
	}
}

func TestLogin_TokenConClaimsDelUsuario(t *testing.T) {
	org := &entity.Organization{ID: uuid.New().String(), Name: "Acme", IsActive: true}
	user := registeredUser(t, org.ID, "gerente@acme.co", "supersecreta1", entity.RoleManager)
	uc := NewAuthUseCase(&fakeUserRepo{users: []*entity.User{user}}, &fakeOrgRepo{orgs: []*entity.Organization{org}}, testJWT)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "gerente@acme.co", Password: "supersecreta1"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, user.ID, resp.User.ID)

	userID, orgID, role, err := pkgjwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, org.ID, orgID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	org := &entity.Organization{ID: uuid.New().String(), Name: "Acme", IsActive: true}
	user := registeredUser(t, org.ID, "gerente@acme.co", "supersecreta1", entity.RoleManager)
	uc := NewAuthUseCase(&fakeUserRepo{users: []*entity.User{user}}, &fakeOrgRepo{orgs: []*entity.Organization{org}}, testJWT)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "gerente@acme.co", Password: "otra"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := NewAuthUseCase(&fakeUserRepo{}, &fakeOrgRepo{}, testJWT)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@acme.co", Password: "x"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_OrganizacionDesactivada(t *testing.T) {
	org := &entity.Organization{ID: uuid.New().String(), Name: "Acme", IsActive: false}
	user := registeredUser(t, org.ID, "gerente@acme.co", "supersecreta1", entity.RoleManager)
	uc := NewAuthUseCase(&fakeUserRepo{users: []*entity.User{user}}, &fakeOrgRepo{orgs: []*entity.Organization{org}}, testJWT)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "gerente@acme.co", Password: "supersecreta1"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
