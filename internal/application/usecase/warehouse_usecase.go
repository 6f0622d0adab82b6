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

// WarehouseUseCase alta de bodegas y listados simples.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una nueva bodega. La capacidad es informativa.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Capacity == nil || *in.Capacity < 0 {
		return nil, domain.Validation("capacity must be a non-negative number")
	}
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("warehouse %s already exists", name)
	}
	w := &entity.Warehouse{
		ID:          uuid.New().String(),
		Name:        name,
		Governorate: strings.TrimSpace(in.Governorate),
		City:        strings.TrimSpace(in.City),
		Capacity:    *in.Capacity,
		Responsible: strings.TrimSpace(in.Responsible),
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return &dto.WarehouseResponse{
		ID:          w.ID,
		Name:        w.Name,
		Governorate: w.Governorate,
		City:        w.City,
		Capacity:    w.Capacity,
		Responsible: w.Responsible,
		CreatedAt:   w.CreatedAt,
	}, nil
}

// Managers lista los encargados de cada bodega; NotFound si no hay bodegas.
func (uc *WarehouseUseCase) Managers(ctx context.Context) ([]dto.WarehouseManagerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.NotFound("there are no warehouse managers yet")
	}
	out := make([]dto.WarehouseManagerResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WarehouseManagerResponse{
			Responsible: w.Responsible,
			Warehouse:   w.Name,
			Governorate: w.Governorate,
			City:        w.City,
		})
	}
	return out, nil
}

// Names devuelve los nombres de todas las bodegas (lista vacía si no hay).
func (uc *WarehouseUseCase) Names(ctx context.Context) ([]string, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list))
	for _, w := range list {
		out = append(out, w.Name)
	}
	return out, nil
}
