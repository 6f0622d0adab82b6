package report_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invex-api/internal/application/deal"
	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/application/report"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/infrastructure/memory"
)

func intPtr(v int) *int { return &v }

// seed registra: bodega Central (vendedor importador Ali), proveedor Delta con
// Cumin y Pepper (Spices), categoría Tools asociada sin ítems e importa 10 Cumin.
func seed(t *testing.T) (*memory.Store, *report.ReportUseCase) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	_, err := usecase.NewWarehouseUseCase(s.Warehouses()).Create(ctx, dto.CreateWarehouseRequest{
		Name: "Central", Governorate: "Giza", City: "Dokki", Capacity: intPtr(500), Responsible: "Mona",
	})
	require.NoError(t, err)
	_, err = usecase.NewCompanyUseCase(s.Companies()).Create(ctx, dto.CreateCompanyRequest{
		Name: "Delta", Governorate: "Cairo", City: "Maadi", Street: "9 Road", Phone: "01012345678", Email: "d@delta.eg", Type: "supplier",
	})
	require.NoError(t, err)
	_, err = usecase.NewVendorUseCase(s.Vendors(), s.Warehouses()).Create(ctx, dto.CreateVendorRequest{Vendor: "Ali", Warehouse: "Central", Type: "importer"})
	require.NoError(t, err)

	categories := usecase.NewCategoryUseCase(s, s.Categories(), s.Warehouses())
	_, err = categories.Create(ctx, dto.CreateCategoryRequest{Name: "Spices"})
	require.NoError(t, err)
	_, err = categories.Create(ctx, dto.CreateCategoryRequest{Name: "Tools", Warehouse: "Central"})
	require.NoError(t, err)

	items := usecase.NewItemUseCase(s.Items(), s.Categories(), s.Companies())
	for _, it := range []dto.CreateItemRequest{
		{Supplier: "Delta", Category: "Spices", Item: "Cumin", Price: decimal.RequireFromString("2.5")},
		{Supplier: "Delta", Category: "Spices", Item: "Pepper", Price: decimal.RequireFromString("4")},
	} {
		_, err := items.Create(ctx, it)
		require.NoError(t, err)
	}

	settle := deal.NewSettlementUseCase(s, s.Companies(), s.Vendors(), s.Warehouses(), s.Deals(), s.Reports())
	_, err = settle.SettleImport(ctx, dto.SettleDealRequest{
		CompanyName: "Delta", WarehouseName: "Central", VendorName: "Ali",
		Items: []dto.DealLineRequest{{Name: "Cumin", Quantity: 10}},
	})
	require.NoError(t, err)

	return s, report.NewReportUseCase(s.Reports(), s.Warehouses(), s.Companies())
}

func TestWarehouses(t *testing.T) {
	_, uc := seed(t)
	rows, err := uc.Warehouses(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Central", rows[0].Name)
	assert.Equal(t, int64(10), rows[0].TotalQuantity)

	empty := report.NewReportUseCase(memory.NewStore().Reports(), nil, nil)
	_, err = empty.Warehouses(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseDetail(t *testing.T) {
	_, uc := seed(t)
	ctx := context.Background()

	detail, err := uc.WarehouseDetail(ctx, "Central")
	require.NoError(t, err)
	assert.Equal(t, "Mona", detail.Info.Responsible)
	require.Len(t, detail.Categories, 2)

	spices := detail.Categories[0]
	assert.Equal(t, "Spices", spices.Name)
	require.Len(t, spices.Items, 2)
	assert.Equal(t, "Cumin", spices.Items[0].Name)
	assert.Equal(t, int64(10), spices.Items[0].Quantity)
	assert.Equal(t, "Delta", spices.Items[0].Supplier)

	tools := detail.Categories[1]
	assert.Equal(t, "Tools", tools.Name)
	assert.Empty(t, tools.Items)

	_, err = uc.WarehouseDetail(ctx, "Nowhere")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierDetail(t *testing.T) {
	_, uc := seed(t)
	ctx := context.Background()

	detail, err := uc.SupplierDetail(ctx, "Delta")
	require.NoError(t, err)
	assert.Equal(t, "Delta", detail.Info.Name)
	require.Len(t, detail.Categories, 1)
	assert.Len(t, detail.Categories[0].Items, 2)
	assert.Empty(t, detail.Categories[0].Items[0].Supplier)

	cats, err := uc.CompanyCategories(ctx, "Delta")
	require.NoError(t, err)
	assert.Equal(t, detail.Categories, cats)

	_, err = uc.SupplierDetail(ctx, "Ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.SupplierDetail(ctx, " ")
	require.ErrorIs(t, err, domain.ErrValidation)
}
