package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

// ItemUseCase registro de ítems del catálogo de un proveedor.
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
	companyRepo  repository.CompanyRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, categoryRepo repository.CategoryRepository, companyRepo repository.CompanyRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, categoryRepo: categoryRepo, companyRepo: companyRepo}
}

// Create registra el ítem con stock 0. Categoría o proveedor inexistentes son errores de validación.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if !in.Price.IsPositive() {
		return nil, domain.Validation("price must be positive")
	}
	if in.Price.Round(2).GreaterThanOrEqual(entity.MaxAmount) {
		return nil, domain.Validation("price must be less than %s", entity.MaxAmount)
	}
	category, err := uc.categoryRepo.GetByName(ctx, strings.TrimSpace(in.Category))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.Validation("category does not exist")
	}
	supplier, err := uc.companyRepo.GetByName(ctx, strings.TrimSpace(in.Supplier))
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.Type != entity.CompanyTypeSupplier {
		return nil, domain.Validation("supplier does not exist")
	}
	name := strings.TrimSpace(in.Item)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("item %s already exists", name)
	}

	now := time.Now().UTC()
	it := &entity.Item{
		ID:         uuid.New().String(),
		Name:       name,
		Quantity:   0,
		UnitPrice:  in.Price.Round(2),
		CategoryID: category.ID,
		SupplierID: supplier.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return &dto.ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Category:  category.Name,
		Supplier:  supplier.Name,
		CreatedAt: it.CreatedAt,
	}, nil
}
