package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-api/internal/application/auth"
	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/domain"
	"github.com/jhoicas/retail-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/retail-api/pkg/jwt"
)

var testJWT = auth.JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "retail-api-test"}

// memDenylist denylist en memoria.
type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (d *memDenylist) Revoke(_ context.Context, id string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.revoked == nil {
		d.revoked = map[string]time.Duration{}
	}
	d.revoked[id] = ttl
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[id]
	return ok, nil
}

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store, *memDenylist) {
	t.Helper()
	store := memory.NewStore()
	deny := &memDenylist{}
	return auth.NewAuthUseCase(store.Users(), deny, testJWT), store, deny
}

func register(t *testing.T, uc *auth.AuthUseCase) *dto.UserResponse {
	t.Helper()
	u, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "Ana@Example.com", Password: "secreto1"})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	uc, store, _ := newAuth(t)
	u := register(t, uc)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ana@example.com", u.Email, "el email se normaliza")

	stored, err := store.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto1", stored.PasswordHash, "nunca se guarda el password plano")
}

func TestRegister_Duplicado(t *testing.T) {
	uc, _, _ := newAuth(t)
	register(t, uc)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Otra", Email: "ana@example.com", Password: "otroPass"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc, _, _ := newAuth(t)
	u := register(t, uc)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	claims, err := pkgjwt.Parse(testJWT.Secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.NotEmpty(t, claims.ID, "cada token lleva jti")
}

func TestLogin_Errores(t *testing.T) {
	uc, _, _ := newAuth(t)
	register(t, uc)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate(t *testing.T) {
	uc, _, _ := newAuth(t)
	u := register(t, uc)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)

	id, err := uc.Authenticate(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.ID)
	assert.Equal(t, "ana@example.com", id.Email)
	assert.NotEmpty(t, id.TokenID)
}

func TestAuthenticate_Rechazos(t *testing.T) {
	uc, store, _ := newAuth(t)
	u := register(t, uc)

	expired, err := pkgjwt.Generate(testJWT.Secret, pkgjwt.Subject{UserID: u.ID}, testJWT.Issuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secret", pkgjwt.Subject{UserID: u.ID}, testJWT.Issuer, 60)
	require.NoError(t, err)

	cases := map[string]string{
		"vacío":      "",
		"malformado": "token.invalido.aqui",
		"expirado":   expired,
		"otra firma": foreign,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Authenticate(context.Background(), tok)
			require.Error(t, err)
			assert.True(t, auth.IsAuthError(err))
		})
	}

	t.Run("usuario borrado", func(t *testing.T) {
		tok, err := pkgjwt.Generate(testJWT.Secret, pkgjwt.Subject{UserID: u.ID}, testJWT.Issuer, 60)
		require.NoError(t, err)
		store.DeleteUser(u.ID)
		_, err = uc.Authenticate(context.Background(), tok)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestLogout_RevocaElToken(t *testing.T) {
	uc, _, deny := newAuth(t)
	register(t, uc)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), res.Token))
	require.Len(t, deny.revoked, 1)
	for _, ttl := range deny.revoked {
		assert.Greater(t, ttl, 50*time.Minute, "el TTL es la vida restante del token")
	}

	_, err = uc.Authenticate(context.Background(), res.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestLogout_TokenInvalidoNoEsError(t *testing.T) {
	uc, _, deny := newAuth(t)
	assert.NoError(t, uc.Logout(context.Background(), ""))
	assert.NoError(t, uc.Logout(context.Background(), "basura"))
	assert.Empty(t, deny.revoked)
}
