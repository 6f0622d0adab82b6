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

// VendorUseCase alta y consultas de vendedores.
type VendorUseCase struct {
	repo          repository.VendorRepository
	warehouseRepo repository.WarehouseRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository, warehouseRepo repository.WarehouseRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// Create registra un vendedor en una bodega existente.
func (uc *VendorUseCase) Create(ctx context.Context, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	vendorType := entity.NormalizeVendorType(in.Type)
	if vendorType == "" {
		return nil, domain.Validation("type must be importer or exporter")
	}
	warehouse, err := uc.resolveWarehouse(ctx, in.Warehouse)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Vendor)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("vendor %s already exists", name)
	}
	v := &entity.Vendor{
		ID:          uuid.New().String(),
		Name:        name,
		WarehouseID: warehouse.ID,
		Type:        vendorType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return &dto.VendorResponse{
		ID:          v.ID,
		Name:        v.Name,
		WarehouseID: v.WarehouseID,
		Type:        v.Type,
		CreatedAt:   v.CreatedAt,
	}, nil
}

// List devuelve todos los vendedores con el nombre de su bodega.
func (uc *VendorUseCase) List(ctx context.Context) ([]dto.VendorListItem, error) {
	rows, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.VendorListItem{Name: r.Name, Warehouse: r.WarehouseName, Type: r.Type})
	}
	return out, nil
}

// AtDeal devuelve los vendedores de la bodega que pueden intervenir en un trato del tipo dado
// según la regla de emparejamiento (import → importer, export → exporter).
func (uc *VendorUseCase) AtDeal(ctx context.Context, q dto.VendorsAtDealQuery) ([]string, error) {
	kind := entity.NormalizeDealKind(q.Type)
	if kind == "" {
		return nil, domain.Validation("deal type must be import or export")
	}
	warehouse, err := uc.resolveWarehouse(ctx, q.Warehouse)
	if err != nil {
		return nil, err
	}
	_, vendorType, _ := entity.Counterparties(kind)
	list, err := uc.repo.ListByWarehouseAndType(ctx, warehouse.ID, vendorType)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, v.Name)
	}
	return out, nil
}

func (uc *VendorUseCase) resolveWarehouse(ctx context.Context, name string) (*entity.Warehouse, error) {
	w, err := uc.warehouseRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.NotFound("warehouse does not exist")
	}
	return w, nil
}
