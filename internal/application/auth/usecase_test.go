package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invex-api/internal/application/auth"
	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/infrastructure/memory"
	"github.com/jhoicas/Invex-api/pkg/jwt"
)

func newAuth(t *testing.T, secret string) *auth.AuthUseCase {
	t.Helper()
	s := memory.NewStore()
	_, err := usecase.NewManagerUseCase(s.Managers()).Create(context.Background(), dto.CreateManagerRequest{
		Name: "Mona", Email: "mona@invex.io", Password: "secret1",
	})
	require.NoError(t, err)
	return auth.NewAuthUseCase(s.Managers(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "invex-api"})
}

func TestLogin_Success(t *testing.T) {
	uc := newAuth(t, "s3cret")

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "MONA@invex.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, auth.StatusLoggedIn, res.Status)
	assert.Equal(t, "Mona", res.Name)

	_, email, err := jwt.Parse("s3cret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, "mona@invex.io", email)
}

func TestLogin_WithoutSecretOmitsToken(t *testing.T) {
	uc := newAuth(t, "")
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "mona@invex.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Empty(t, res.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	uc := newAuth(t, "s3cret")
	for name, in := range map[string]dto.LoginRequest{
		"unknown email":  {Email: "ghost@invex.io", Password: "secret1"},
		"wrong password": {Email: "mona@invex.io", Password: "secret2"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.Equal(t, "wrong email or password", err.Error())
		})
	}
}
