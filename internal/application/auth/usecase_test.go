package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/application/auth"
	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Insumos-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Repos().Users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "insumos-test"})
}

func TestBootstrapYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	admin, err := uc.Bootstrap(ctx, dto.BootstrapRequest{Email: " Admin@Mezcal.MX ", Password: "s3cret-pass", Name: "Admin"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.Equal(t, "admin@mezcal.mx", admin.Email, "el email se normaliza")

	_, err = uc.Bootstrap(ctx, dto.BootstrapRequest{Email: "otro@mezcal.mx", Password: "s3cret-pass", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo funciona sin usuarios")

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@mezcal.mx", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@mezcal.mx", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@mezcal.mx", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdministracionDeUsuarios(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	admin, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@mezcal.mx", Password: "password1", Name: "Ana", Role: entity.RoleAdmin})
	require.NoError(t, err)
	op, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "b@mezcal.mx", Password: "password1", Name: "Beto", Role: entity.RoleOperator})
	require.NoError(t, err)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "B@mezcal.mx", Password: "password1", Name: "Dup", Role: entity.RoleViewer})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "c@mezcal.mx", Password: "password1", Role: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListUsers(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
	assert.Equal(t, "Ana", list.Items[0].Name)

	viewer := entity.RoleViewer
	updated, err := uc.UpdateUser(ctx, op.ID, dto.UpdateUserRequest{Role: &viewer})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, updated.Role)

	_, err = uc.DeactivateUser(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no puede desactivarse a sí mismo")

	_, err = uc.DeactivateUser(ctx, admin.ID, op.ID)
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "b@mezcal.mx", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "un usuario inactivo no entra")
}

func TestCambioDePasswordPropio(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	op, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "ope@mezcal.mx", Password: "password1", Name: "Operador", Role: entity.RoleOperator})
	require.NoError(t, err)

	_, err = uc.ChangePassword(ctx, op.ID, dto.ChangePasswordRequest{CurrentPassword: "equivocado", NewPassword: "nuevo-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "se exige el password actual")

	_, err = uc.ChangePassword(ctx, op.ID, dto.ChangePasswordRequest{CurrentPassword: "password1", NewPassword: "corto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.ChangePassword(ctx, op.ID, dto.ChangePasswordRequest{CurrentPassword: "password1", NewPassword: "nuevo-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Message)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ope@mezcal.mx", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "el password anterior deja de servir")
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ope@mezcal.mx", Password: "nuevo-pass"})
	assert.NoError(t, err)
}

func TestActualizarPerfil(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	ana, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "ana@mezcal.mx", Password: "password1", Name: "Ana", Role: entity.RoleViewer})
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "beto@mezcal.mx", Password: "password1", Name: "Beto", Role: entity.RoleViewer})
	require.NoError(t, err)

	taken := "BETO@mezcal.mx"
	_, err = uc.UpdateProfile(ctx, ana.ID, dto.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	name, email := "  Ana López ", "Ana.Lopez@Mezcal.mx"
	out, err := uc.UpdateProfile(ctx, ana.ID, dto.UpdateProfileRequest{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Ana López", out.Name)
	assert.Equal(t, "ana.lopez@mezcal.mx", out.Email)
	assert.Equal(t, entity.RoleViewer, out.Role, "el perfil no cambia el rol")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana.lopez@mezcal.mx", Password: "password1"})
	assert.NoError(t, err)
}
