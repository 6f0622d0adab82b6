// Package report contiene las vistas de solo lectura: resumen de bodegas, contenido de una
// bodega y catálogo de un proveedor.
package report

import (
	"context"
	"strings"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

// ReportUseCase consultas agregadas sin efectos secundarios.
type ReportUseCase struct {
	reportRepo    repository.ReportRepository
	warehouseRepo repository.WarehouseRepository
	companyRepo   repository.CompanyRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository, warehouseRepo repository.WarehouseRepository, companyRepo repository.CompanyRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, warehouseRepo: warehouseRepo, companyRepo: companyRepo}
}

// Warehouses lista las bodegas con el total de unidades de sus categorías; NotFound si no hay.
func (uc *ReportUseCase) Warehouses(ctx context.Context) ([]dto.WarehouseSummaryResponse, error) {
	rows, err := uc.reportRepo.WarehouseSummaries(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("there are no warehouses yet")
	}
	out := make([]dto.WarehouseSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toSummary(r))
	}
	return out, nil
}

// WarehouseDetail devuelve la ficha de la bodega y sus categorías con los ítems y su proveedor.
func (uc *ReportUseCase) WarehouseDetail(ctx context.Context, name string) (*dto.WarehouseDetailResponse, error) {
	name = strings.TrimSpace(name)
	w, err := uc.warehouseRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.NotFound("warehouse not found: %s", name)
	}
	summaries, err := uc.reportRepo.WarehouseSummaries(ctx, w.Name)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, domain.NotFound("warehouse not found: %s", name)
	}
	rows, err := uc.reportRepo.WarehouseCategoryItems(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	return &dto.WarehouseDetailResponse{
		Info:       toSummary(summaries[0]),
		Categories: groupByCategory(rows, true),
	}, nil
}

// SupplierDetail devuelve la ficha de la empresa y su catálogo agrupado por categoría.
func (uc *ReportUseCase) SupplierDetail(ctx context.Context, name string) (*dto.SupplierDetailResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("supplier name required")
	}
	c, err := uc.companyRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("company not found: %s", name)
	}
	rows, err := uc.reportRepo.SupplierCategoryItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &dto.SupplierDetailResponse{
		Info:       *usecase.ToCompanyResponse(c),
		Categories: groupByCategory(rows, false),
	}, nil
}

// CompanyCategories devuelve solo el catálogo por categoría de la empresa.
func (uc *ReportUseCase) CompanyCategories(ctx context.Context, name string) ([]dto.CategoryItemsResponse, error) {
	detail, err := uc.SupplierDetail(ctx, name)
	if err != nil {
		return nil, err
	}
	return detail.Categories, nil
}

func toSummary(r repository.WarehouseSummary) dto.WarehouseSummaryResponse {
	return dto.WarehouseSummaryResponse{
		Name:          r.Name,
		Governorate:   r.Governorate,
		City:          r.City,
		Responsible:   r.Responsible,
		Capacity:      r.Capacity,
		TotalQuantity: r.TotalQuantity,
	}
}

// groupByCategory agrupa filas ya ordenadas por categoría. Las filas sin ítem solo aportan la categoría.
func groupByCategory(rows []repository.CategoryItemRow, withSupplier bool) []dto.CategoryItemsResponse {
	out := make([]dto.CategoryItemsResponse, 0)
	for _, r := range rows {
		if len(out) == 0 || out[len(out)-1].Name != r.CategoryName {
			out = append(out, dto.CategoryItemsResponse{Name: r.CategoryName, Items: []dto.CategoryItemResponse{}})
		}
		if r.ItemName == "" {
			continue
		}
		item := dto.CategoryItemResponse{Name: r.ItemName, UnitPrice: r.UnitPrice, Quantity: r.Quantity}
		if withSupplier {
			item.Supplier = r.SupplierName
		}
		cur := &out[len(out)-1]
		cur.Items = append(cur.Items, item)
	}
	return out
}
