package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
	"github.com/jhoicas/Invex-api/pkg/jwt"
)

// StatusLoggedIn estado devuelto por un login correcto.
const StatusLoggedIn = "successful login"

// JWTConfig configuración para generación de tokens. Secret vacío = login sin token.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de managers.
type AuthUseCase struct {
	managerRepo repository.ManagerRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(managerRepo repository.ManagerRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{managerRepo: managerRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password con bcrypt y, si hay secreto configurado, emite un JWT.
// Email desconocido y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	m, err := uc.managerRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.InvalidCredentials("wrong email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.InvalidCredentials("wrong email or password")
	}

	out := &dto.LoginResponse{Status: StatusLoggedIn, Name: m.Name, Email: m.Email}
	if uc.jwtCfg.Secret != "" {
		token, err := jwt.Generate(uc.jwtCfg.Secret, m.ID, m.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
		if err != nil {
			return nil, err
		}
		out.Token = token
	}
	return out, nil
}
