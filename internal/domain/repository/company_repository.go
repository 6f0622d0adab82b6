package repository

import (
	"context"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByName devuelve (nil, nil) si no existe.
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	// List devuelve todas las empresas; companyType vacío = sin filtro.
	List(ctx context.Context, companyType string) ([]*entity.Company, error)
}
