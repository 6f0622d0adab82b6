package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

// ManagerUseCase alta y listado de managers.
type ManagerUseCase struct {
	repo repository.ManagerRepository
}

// NewManagerUseCase construye el caso de uso.
func NewManagerUseCase(repo repository.ManagerRepository) *ManagerUseCase {
	return &ManagerUseCase{repo: repo}
}

// Create hashea el password con bcrypt y persiste. Conflict si el email ya existe
// (pre-chequeo + restricción única en BD).
func (uc *ManagerUseCase) Create(ctx context.Context, in dto.CreateManagerRequest) (*dto.ManagerResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("email already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.Validation("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, err
	}
	m := &entity.Manager{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toManagerResponse(m), nil
}

// List devuelve los managers ordenados por nombre; NotFound si no hay ninguno.
func (uc *ManagerUseCase) List(ctx context.Context) ([]dto.ManagerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.NotFound("no managers found")
	}
	out := make([]dto.ManagerResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toManagerResponse(m))
	}
	return out, nil
}

func toManagerResponse(m *entity.Manager) *dto.ManagerResponse {
	return &dto.ManagerResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}
