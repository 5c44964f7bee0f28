package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

var jwtCfg = jwt.Config{Secret: "test-secret", Issuer: "almacen-test", ExpMinutes: 5}

type memCompanies struct{ rows map[string]*entity.Company }

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.rows[c.ID] = c
	return nil
}
func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.rows[id], nil
}
func (m *memCompanies) Update(_ context.Context, c *entity.Company) error {
	m.rows[c.ID] = c
	return nil
}

type memUsers struct {
	rows      map[string]*entity.User
	createErr error
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rows[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) { return m.rows[id], nil }
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) ListByCompany(context.Context, string, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.rows[u.ID] = u
	return nil
}
func (m *memUsers) SoftDelete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

// memTx aplica los cambios sobre copias y solo los publica si fn no falla.
type memTx struct {
	companies *memCompanies
	users     *memUsers
}

func (tx *memTx) RunRegistration(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	c := &memCompanies{rows: map[string]*entity.Company{}}
	for k, v := range tx.companies.rows {
		c.rows[k] = v
	}
	u := &memUsers{rows: map[string]*entity.User{}, createErr: tx.users.createErr}
	for k, v := range tx.users.rows {
		u.rows[k] = v
	}
	if err := fn(c, u); err != nil {
		return err
	}
	tx.companies.rows, tx.users.rows = c.rows, u.rows
	return nil
}

func newAuth() (*auth.AuthUseCase, *memCompanies, *memUsers) {
	companies := &memCompanies{rows: map[string]*entity.Company{}}
	users := &memUsers{rows: map[string]*entity.User{}}
	return auth.NewAuthUseCase(&memTx{companies: companies, users: users}, users, companies, jwtCfg), companies, users
}

func TestRegister_CreaEmpresaYOwner(t *testing.T) {
	uc, companies, _ := newAuth()

	u, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "Ana@Example.com", Password: "secreto123", CompanyName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "OWNER", u.Role)
	assert.Equal(t, "ana@example.com", u.Email)
	require.Contains(t, companies.rows, u.CompanyID)
	assert.Equal(t, "Acme", companies.rows[u.CompanyID].Name)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	p, err := jwt.Parse(jwtCfg, login.Token)
	require.NoError(t, err)
	assert.Equal(t, u.CompanyID, p.CompanyID)
	assert.Equal(t, string(entity.RoleOwner), p.Role)
}

func TestRegister_UneAEmpresaExistenteComoViewer(t *testing.T) {
	uc, _, _ := newAuth()
	owner, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "owner@example.com", Password: "secreto123", CompanyName: "Acme"})
	require.NoError(t, err)

	u, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "bob@example.com", Password: "secreto123", CompanyID: owner.CompanyID})
	require.NoError(t, err)
	assert.Equal(t, "VIEWER", u.Role)
	assert.Equal(t, owner.CompanyID, u.CompanyID)
}

func TestRegister_EmpresaInexistente(t *testing.T) {
	uc, _, _ := newAuth()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "bob@example.com", Password: "secreto123", CompanyID: "00000000-0000-0000-0000-000000000099"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := newAuth()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", CompanyName: "Acme"})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Email: "ANA@example.com", Password: "otro12345", CompanyName: "Otra"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_FalloAlCrearUsuarioNoDejaEmpresa(t *testing.T) {
	uc, companies, users := newAuth()
	users.createErr = errors.New("insert falló")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", CompanyName: "Acme"})
	require.Error(t, err)
	assert.Empty(t, companies.rows)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _ := newAuth()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Password: "secreto123", CompanyName: "Acme"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "secreto123"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
