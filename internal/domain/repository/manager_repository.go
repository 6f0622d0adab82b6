package repository

import (
	"context"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
)

// ManagerRepository define el puerto de persistencia para Manager (DIP).
type ManagerRepository interface {
	Create(ctx context.Context, manager *entity.Manager) error
	// GetByEmail devuelve (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.Manager, error)
	List(ctx context.Context) ([]*entity.Manager, error)
}
