package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

var _ repository.ManagerRepository = (*ManagerRepo)(nil)

// ManagerRepo implementación del puerto ManagerRepository sobre PostgreSQL.
type ManagerRepo struct {
	q Querier
}

// NewManagerRepository construye el adaptador. Acepta pool o tx (Querier).
func NewManagerRepository(q Querier) *ManagerRepo {
	return &ManagerRepo{q: q}
}

// Create persiste un nuevo manager. El email duplicado se traduce a Conflict.
func (r *ManagerRepo) Create(ctx context.Context, m *entity.Manager) error {
	query := `
		INSERT INTO managers (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Email, m.PasswordHash, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert manager: %w", conflictOr(err, "email already exists"))
	}
	return nil
}

// GetByEmail obtiene un manager por email.
func (r *ManagerRepo) GetByEmail(ctx context.Context, email string) (*entity.Manager, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM managers WHERE email = $1`
	var m entity.Manager
	err := r.q.QueryRow(ctx, query, email).Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manager by email: %w", err)
	}
	return &m, nil
}

// List devuelve los managers ordenados por nombre.
func (r *ManagerRepo) List(ctx context.Context) ([]*entity.Manager, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM managers ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Manager
	for rows.Next() {
		var m entity.Manager
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan manager: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
