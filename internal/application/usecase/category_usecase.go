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

// CategoryUseCase alta y listado de categorías.
type CategoryUseCase struct {
	txRunner      repository.TxRunner
	repo          repository.CategoryRepository
	warehouseRepo repository.WarehouseRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(txRunner repository.TxRunner, repo repository.CategoryRepository, warehouseRepo repository.WarehouseRepository) *CategoryUseCase {
	return &CategoryUseCase{txRunner: txRunner, repo: repo, warehouseRepo: warehouseRepo}
}

// Create crea la categoría. Si se indica bodega, la asociación se crea en la misma transacción.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("name is required")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("category %s already exists", name)
	}

	var warehouse *entity.Warehouse
	if wn := strings.TrimSpace(in.Warehouse); wn != "" {
		warehouse, err = uc.warehouseRepo.GetByName(ctx, wn)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, domain.NotFound("warehouse does not exist")
		}
	}

	c := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Categories.Create(ctx, c); err != nil {
			return err
		}
		if warehouse == nil {
			return nil
		}
		_, err := repos.WarehouseCategories.Ensure(ctx, warehouse.ID, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
	if warehouse != nil {
		out.Warehouse = warehouse.Name
	}
	return out, nil
}

// List devuelve los nombres de categoría; NotFound si no hay ninguna.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.NotFound("there are no categories yet")
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return out, nil
}
