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

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador de persistencia para vendedores.
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persiste un vendedor. La bodega debe existir (FK).
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, warehouse_id, type, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, v.ID, v.Name, v.WarehouseID, v.Type, v.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("warehouse does not exist")
		}
		return fmt.Errorf("insert vendor: %w", conflictOr(err, "vendor %q already exists", v.Name))
	}
	return nil
}

// GetByName obtiene un vendedor por nombre.
func (r *VendorRepo) GetByName(ctx context.Context, name string) (*entity.Vendor, error) {
	query := `
		SELECT id, name, warehouse_id, type, created_at
		FROM vendors WHERE name = $1`
	var v entity.Vendor
	err := r.q.QueryRow(ctx, query, name).Scan(&v.ID, &v.Name, &v.WarehouseID, &v.Type, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// List devuelve los vendedores con el nombre de su bodega.
func (r *VendorRepo) List(ctx context.Context) ([]repository.VendorWithWarehouse, error) {
	query := `
		SELECT v.name, w.name, v.type
		FROM vendors v
		JOIN warehouses w ON w.id = v.warehouse_id
		ORDER BY v.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var list []repository.VendorWithWarehouse
	for rows.Next() {
		var row repository.VendorWithWarehouse
		if err := rows.Scan(&row.Name, &row.WarehouseName, &row.Type); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListByWarehouseAndType devuelve los vendedores de una bodega con el tipo indicado.
func (r *VendorRepo) ListByWarehouseAndType(ctx context.Context, warehouseID, vendorType string) ([]*entity.Vendor, error) {
	query := `
		SELECT id, name, warehouse_id, type, created_at
		FROM vendors
		WHERE warehouse_id = $1 AND type = $2
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, warehouseID, vendorType)
	if err != nil {
		return nil, fmt.Errorf("list vendors by warehouse: %w", err)
	}
	defer rows.Close()

	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.WarehouseID, &v.Type, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
