package repository

import (
	"context"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Las mutaciones de cantidad son atómicas (una sola sentencia condicional).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByName devuelve (nil, nil) si no existe.
	GetByName(ctx context.Context, name string) (*entity.Item, error)
	// GetByNameForUpdate igual que GetByName pero bloquea la fila (SELECT FOR UPDATE).
	GetByNameForUpdate(ctx context.Context, name string) (*entity.Item, error)
	// AddQuantity suma delta al stock y devuelve la cantidad resultante.
	AddQuantity(ctx context.Context, itemID string, delta int64) (int64, error)
	// SubtractQuantity resta n solo si quantity >= n; ok=false si no alcanza.
	SubtractQuantity(ctx context.Context, itemID string, n int64) (newQty int64, ok bool, err error)
}
