package repository

import (
	"context"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
)

// DealRepository define el puerto de persistencia para tratos y sus líneas.
type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	AddLine(ctx context.Context, line *entity.DealLine) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	Lines(ctx context.Context, dealID string) ([]*entity.DealLine, error)
}
