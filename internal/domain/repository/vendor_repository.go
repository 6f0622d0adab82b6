package repository

import (
	"context"

	"github.com/jhoicas/Invex-api/internal/domain/entity"
)

// VendorWithWarehouse es la fila de listado de vendedores con el nombre de su bodega.
type VendorWithWarehouse struct {
	Name          string
	WarehouseName string
	Type          string
}

// VendorRepository define el puerto de persistencia para Vendor (DIP).
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	// GetByName devuelve (nil, nil) si no existe.
	GetByName(ctx context.Context, name string) (*entity.Vendor, error)
	List(ctx context.Context) ([]VendorWithWarehouse, error)
	ListByWarehouseAndType(ctx context.Context, warehouseID, vendorType string) ([]*entity.Vendor, error)
}
