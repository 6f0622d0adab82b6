package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository          = (*CategoryRepo)(nil)
	_ repository.WarehouseCategoryRepository = (*WarehouseCategoryRepo)(nil)
)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.CreatedAt); err != nil {
		return fmt.Errorf("insert category: %w", conflictOr(err, "category %q already exists", c.Name))
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM categories WHERE id = $1`, id)
}

// GetByName obtiene una categoría por nombre.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM categories WHERE name = $1`, name)
}

func (r *CategoryRepo) getOne(ctx context.Context, query, arg string) (*entity.Category, error) {
	var c entity.Category
	if err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List devuelve las categorías ordenadas por nombre.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// WarehouseCategoryRepo mantiene la tabla warehouse_categories.
type WarehouseCategoryRepo struct {
	q Querier
}

// NewWarehouseCategoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewWarehouseCategoryRepository(q Querier) *WarehouseCategoryRepo {
	return &WarehouseCategoryRepo{q: q}
}

// Exists indica si la bodega ya tiene asociada la categoría.
func (r *WarehouseCategoryRepo) Exists(ctx context.Context, warehouseID, categoryID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM warehouse_categories WHERE warehouse_id = $1 AND category_id = $2
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, warehouseID, categoryID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check warehouse category: %w", err)
	}
	return ok, nil
}

// Ensure inserta la asociación si no existe. Es idempotente frente a inserciones concurrentes.
func (r *WarehouseCategoryRepo) Ensure(ctx context.Context, warehouseID, categoryID string) (bool, error) {
	query := `
		INSERT INTO warehouse_categories (warehouse_id, category_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (warehouse_id, category_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, warehouseID, categoryID)
	if err != nil {
		return false, fmt.Errorf("ensure warehouse category: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
