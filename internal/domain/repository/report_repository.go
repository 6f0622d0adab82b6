package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RecentDealRow fila del listado de tratos recientes.
type RecentDealRow struct {
	DealID      string
	Kind        string
	CompanyName string
	CompanyType string
	TotalCost   decimal.Decimal
	Date        time.Time
}

// WarehouseSummary bodega con el total de unidades de las categorías asociadas.
type WarehouseSummary struct {
	Name          string
	Governorate   string
	City          string
	Responsible   string
	Capacity      int
	TotalQuantity int64
}

// CategoryItemRow ítem de una categoría con su proveedor (vista de bodega/proveedor).
type CategoryItemRow struct {
	CategoryName string
	ItemName     string
	UnitPrice    decimal.Decimal
	Quantity     int64
	SupplierName string
}

// DealHeader cabecera enriquecida de un trato.
type DealHeader struct {
	DealID        string
	Kind          string
	CompanyName   string
	CompanyType   string
	WarehouseName string
	Governorate   string
	City          string
	VendorName    string
	TotalCost     decimal.Decimal
	Date          time.Time
}

// DealLineRow línea del trato tal como se registró (foto, no join vivo sobre cantidades).
type DealLineRow struct {
	LineNo       int
	ItemName     string
	CategoryName string
	Quantity     int64
	UnitPrice    decimal.Decimal
	StockAfter   int64
}

// ReportRepository consultas de solo lectura para las vistas de reportes.
type ReportRepository interface {
	RecentDeals(ctx context.Context, limit int) ([]RecentDealRow, error)
	// WarehouseSummaries devuelve todas las bodegas; name no vacío filtra por nombre.
	WarehouseSummaries(ctx context.Context, name string) ([]WarehouseSummary, error)
	// WarehouseCategoryItems devuelve una fila por ítem de cada categoría asociada a la bodega;
	// las categorías sin ítems aparecen con ItemName vacío.
	WarehouseCategoryItems(ctx context.Context, warehouseID string) ([]CategoryItemRow, error)
	// SupplierCategoryItems devuelve los ítems de la empresa agrupables por categoría.
	SupplierCategoryItems(ctx context.Context, companyID string) ([]CategoryItemRow, error)
	// DealHeader devuelve (nil, nil) si el trato no existe.
	DealHeader(ctx context.Context, dealID string) (*DealHeader, error)
	DealLines(ctx context.Context, dealID string) ([]DealLineRow, error)
}
