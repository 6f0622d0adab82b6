package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, governorate, city, street, phone, email, type, created_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, governorate, city, street, phone, email, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Governorate, c.City, c.Street, c.Phone, c.Email, c.Type, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", conflictOr(err, "company %q already exists", c.Name))
	}
	return nil
}

// GetByID obtiene una empresa por ID (identificador de contrato).
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByName obtiene una empresa por nombre.
func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE name = $1`, name)
}

func (r *CompanyRepo) getOne(ctx context.Context, query, arg string) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Governorate, &c.City, &c.Street, &c.Phone, &c.Email, &c.Type, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// List devuelve las empresas ordenadas por nombre, filtradas por tipo si companyType no está vacío.
func (r *CompanyRepo) List(ctx context.Context, companyType string) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE ($1::text = '' OR type = $1)
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyType)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Governorate, &c.City, &c.Street, &c.Phone, &c.Email, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
