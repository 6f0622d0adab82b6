package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, quantity, unit_price, category_id, supplier_id, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository. Usar con tx para los tratos.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem nuevo.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (id, name, quantity, unit_price, category_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Quantity, it.UnitPrice, it.CategoryID, it.SupplierID, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("category or supplier does not exist")
		}
		return fmt.Errorf("insert item: %w", conflictOr(err, "item %q already exists", it.Name))
	}
	return nil
}

// GetByName obtiene un ítem por nombre.
func (r *ItemRepo) GetByName(ctx context.Context, name string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE name = $1`, name)
}

// GetByNameForUpdate obtiene el ítem con bloqueo de fila (SELECT FOR UPDATE). Debe usarse dentro de una tx.
func (r *ItemRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE name = $1 FOR UPDATE`, name)
}

func (r *ItemRepo) getOne(ctx context.Context, query, arg string) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&it.ID, &it.Name, &it.Quantity, &it.UnitPrice, &it.CategoryID, &it.SupplierID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// AddQuantity suma delta en una sola sentencia y devuelve el stock resultante.
func (r *ItemRepo) AddQuantity(ctx context.Context, itemID string, delta int64) (int64, error) {
	query := `
		UPDATE items SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING quantity`
	var qty int64
	if err := r.q.QueryRow(ctx, query, itemID, delta).Scan(&qty); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.NotFound("item not found")
		}
		if isCheckViolation(err) {
			return 0, domain.InsufficientStock("not enough quantity")
		}
		if isNumericOutOfRange(err) {
			return 0, domain.Validation("item quantity out of range")
		}
		return 0, fmt.Errorf("add item quantity: %w", err)
	}
	return qty, nil
}

// SubtractQuantity resta n solo si quantity >= n. Si no alcanza devuelve el stock actual y ok=false.
func (r *ItemRepo) SubtractQuantity(ctx context.Context, itemID string, n int64) (int64, bool, error) {
	query := `
		UPDATE items SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
		RETURNING quantity`
	var qty int64
	err := r.q.QueryRow(ctx, query, itemID, n).Scan(&qty)
	if err == nil {
		return qty, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("subtract item quantity: %w", err)
	}

	// Sin fila: o el ítem no existe o no alcanza el stock.
	err = r.q.QueryRow(ctx, `SELECT quantity FROM items WHERE id = $1`, itemID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, domain.NotFound("item not found")
		}
		return 0, false, fmt.Errorf("get item quantity: %w", err)
	}
	return qty, false, nil
}
