package repository

import (
	"context"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetByName devuelve (nil, nil) si no existe.
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}

// WarehouseCategoryRepository mantiene la asociación bodega↔categoría (nunca se borra).
type WarehouseCategoryRepository interface {
	Exists(ctx context.Context, warehouseID, categoryID string) (bool, error)
	// Ensure crea la asociación si no existe; created indica si se insertó.
	Ensure(ctx context.Context, warehouseID, categoryID string) (created bool, err error)
}
