package deal_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invex-api/internal/application/deal"
	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/infrastructure/cache"
	"github.com/jhoicas/Invex-api/internal/infrastructure/memory"
)

type fixture struct {
	store *memory.Store
	uc    *deal.SettlementUseCase
	ids   map[string]string
}

// newFixture siembra dos bodegas, un proveedor, un importador, vendedores y dos ítems:
// Bolt (Hardware, 100 u., 1.50) y Cumin (Spices, 0 u., 2.50).
func newFixture(t *testing.T, opts ...deal.Option) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	ids := map[string]string{}
	add := func(name string) string {
		ids[name] = uuid.New().String()
		return ids[name]
	}
	now := time.Now().UTC()

	for _, w := range []string{"W1", "W2"} {
		require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: add(w), Name: w, Governorate: "Cairo", City: "Nasr City", Capacity: 1000, Responsible: "Mona", CreatedAt: now}))
	}
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: add("Acme"), Name: "Acme", Type: entity.CompanyTypeSupplier, CreatedAt: now}))
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: add("Nile"), Name: "Nile", Type: entity.CompanyTypeImporter, CreatedAt: now}))

	vendors := []struct{ name, warehouse, typ string }{
		{"Ali", "W1", entity.VendorTypeImporter},
		{"Omar", "W1", entity.VendorTypeExporter},
		{"Sara", "W2", entity.VendorTypeImporter},
	}
	for _, v := range vendors {
		require.NoError(t, s.Vendors().Create(ctx, &entity.Vendor{ID: add(v.name), Name: v.name, WarehouseID: ids[v.warehouse], Type: v.typ, CreatedAt: now}))
	}
	for _, c := range []string{"Hardware", "Spices"} {
		require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: add(c), Name: c, CreatedAt: now}))
	}
	_, err := s.WarehouseCategories().Ensure(ctx, ids["W1"], ids["Hardware"])
	require.NoError(t, err)

	require.NoError(t, s.Items().Create(ctx, &entity.Item{ID: add("Bolt"), Name: "Bolt", Quantity: 100, UnitPrice: decimal.RequireFromString("1.50"), CategoryID: ids["Hardware"], SupplierID: ids["Acme"], CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.Items().Create(ctx, &entity.Item{ID: add("Cumin"), Name: "Cumin", Quantity: 0, UnitPrice: decimal.RequireFromString("2.50"), CategoryID: ids["Spices"], SupplierID: ids["Acme"], CreatedAt: now, UpdatedAt: now}))

	uc := deal.NewSettlementUseCase(s, s.Companies(), s.Vendors(), s.Warehouses(), s.Deals(), s.Reports(), opts...)
	return &fixture{store: s, uc: uc, ids: ids}
}

func (f *fixture) quantity(t *testing.T, item string) int64 {
	t.Helper()
	it, err := f.store.Items().GetByName(context.Background(), item)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

func (f *fixture) dealCount(t *testing.T) int {
	t.Helper()
	rows, err := f.store.Reports().RecentDeals(context.Background(), 0)
	require.NoError(t, err)
	return len(rows)
}

func exportReq(lines ...dto.DealLineRequest) dto.SettleDealRequest {
	return dto.SettleDealRequest{CompanyName: "Nile", WareName: "W1", VendorName: "Omar", Items: lines}
}

func importReq(warehouse, vendor string, lines ...dto.DealLineRequest) dto.SettleDealRequest {
	return dto.SettleDealRequest{CompanyName: "Acme", WarehouseName: warehouse, VendorName: vendor, Items: lines}
}

func line(name string, qty int64) dto.DealLineRequest {
	return dto.DealLineRequest{Name: name, Quantity: qty}
}

func TestSettleExport_DecrementsAndRejectsOverdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.SettleExport(ctx, exportReq(line("Bolt", 30)))
	require.NoError(t, err)
	assert.Equal(t, deal.StatusSuccess, res.Status)
	assert.Equal(t, entity.DealKindExport, res.Kind)
	assert.Equal(t, int64(70), f.quantity(t, "Bolt"))

	detail, err := f.uc.GetDetail(ctx, res.DealID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, int64(30), detail.Items[0].Quantity)
	assert.Equal(t, int64(70), detail.Items[0].StockAfter)

	_, err = f.uc.SettleExport(ctx, exportReq(line("Bolt", 80)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Bolt")
	assert.Equal(t, int64(70), f.quantity(t, "Bolt"))
	assert.Equal(t, 1, f.dealCount(t))
}

func TestSettleExport_FailsEntirelyWhenAnyLineIsShort(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SettleExport(context.Background(), exportReq(line("Bolt", 10), line("Cumin", 5)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(100), f.quantity(t, "Bolt"), "earlier lines must be rolled back")
	assert.Equal(t, 0, f.dealCount(t))
}

func TestSettleExport_RepeatedItemLinesAreCumulative(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SettleExport(context.Background(), exportReq(line("Bolt", 60), line("Bolt", 50)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(100), f.quantity(t, "Bolt"))
}

func TestSettleImport_AddsQuantities(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.SettleImport(context.Background(), importReq("W1", "Ali", line("Bolt", 5), line("Cumin", 12), line("Bolt", 3)))
	require.NoError(t, err)
	assert.Equal(t, int64(108), f.quantity(t, "Bolt"))
	assert.Equal(t, int64(12), f.quantity(t, "Cumin"))
	// 8 × 1.50 + 12 × 2.50
	assert.True(t, decimal.RequireFromString("42").Equal(res.TotalCost), res.TotalCost.String())

	detail, err := f.uc.GetDetail(context.Background(), res.DealID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 3)
	assert.Equal(t, []int64{5, 12, 3}, []int64{detail.Items[0].Quantity, detail.Items[1].Quantity, detail.Items[2].Quantity})
	assert.Equal(t, []int64{105, 12, 108}, []int64{detail.Items[0].StockAfter, detail.Items[1].StockAfter, detail.Items[2].StockAfter})
}

func TestSettleImport_ExplicitTotalPriceWins(t *testing.T) {
	f := newFixture(t)
	total := decimal.RequireFromString("99.90")
	req := importReq("W1", "Ali", line("Bolt", 1))
	req.TotalPrice = &total

	res, err := f.uc.SettleImport(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, total.Equal(res.TotalCost))
}

func TestSettleImport_ExplicitTotalPriceIsRounded(t *testing.T) {
	f := newFixture(t)
	total := decimal.RequireFromString("10.005")
	req := importReq("W1", "Ali", line("Bolt", 1))
	req.TotalPrice = &total

	res, err := f.uc.SettleImport(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "10.01", res.TotalCost.String())

	detail, err := f.uc.GetDetail(context.Background(), res.DealID)
	require.NoError(t, err)
	assert.True(t, res.TotalCost.Equal(detail.General.TotalCost), detail.General.TotalCost.String())
}

func TestSettleImport_ComputedTotalOverLimitRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, f.store.Items().Create(ctx, &entity.Item{ID: uuid.New().String(), Name: "Gold", UnitPrice: decimal.NewFromInt(5000), CategoryID: f.ids["Hardware"], SupplierID: f.ids["Acme"], CreatedAt: now, UpdatedAt: now}))

	_, err := f.uc.SettleImport(ctx, importReq("W1", "Ali", line("Bolt", 1), line("Gold", entity.MaxLineQuantity)))
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, int64(100), f.quantity(t, "Bolt"))
	assert.Equal(t, int64(0), f.quantity(t, "Gold"))
	assert.Equal(t, 0, f.dealCount(t))
}

func TestItemRepo_AddQuantityOverflowIsValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.Items().AddQuantity(context.Background(), f.ids["Bolt"], math.MaxInt64)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(100), f.quantity(t, "Bolt"))
}

func TestSettleImport_CreatesWarehouseCategoryOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	wcRepo := f.store.WarehouseCategories()

	exists, err := wcRepo.Exists(ctx, f.ids["W2"], f.ids["Spices"])
	require.NoError(t, err)
	require.False(t, exists)

	for i := 0; i < 2; i++ {
		_, err := f.uc.SettleImport(ctx, importReq("W2", "Sara", line("Cumin", 4)))
		require.NoError(t, err)
	}

	exists, err = wcRepo.Exists(ctx, f.ids["W2"], f.ids["Spices"])
	require.NoError(t, err)
	assert.True(t, exists)

	rows, err := f.store.Reports().WarehouseCategoryItems(ctx, f.ids["W2"])
	require.NoError(t, err)
	require.Len(t, rows, 1, "one association with one item")
	assert.Equal(t, "Spices", rows[0].CategoryName)
	assert.Equal(t, int64(8), rows[0].Quantity)
}

func TestSettleExport_DoesNotCreateAssociations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.SettleImport(ctx, importReq("W2", "Sara", line("Cumin", 4)))
	require.NoError(t, err)

	_, err = f.uc.SettleExport(ctx, exportReq(line("Cumin", 1)))
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.quantity(t, "Cumin"))

	exists, err := f.store.WarehouseCategories().Exists(ctx, f.ids["W1"], f.ids["Spices"])
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSettle_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	negative := decimal.NewFromInt(-1)
	huge := decimal.New(1, 12)

	cases := []struct {
		name string
		req  dto.SettleDealRequest
	}{
		{"empty items", importReq("W1", "Ali")},
		{"zero quantity", importReq("W1", "Ali", line("Bolt", 0))},
		{"negative quantity", importReq("W1", "Ali", line("Bolt", -2))},
		{"blank item name", importReq("W1", "Ali", line(" ", 2))},
		{"missing company", dto.SettleDealRequest{WarehouseName: "W1", VendorName: "Ali", Items: []dto.DealLineRequest{line("Bolt", 1)}}},
		{"missing warehouse", dto.SettleDealRequest{CompanyName: "Acme", VendorName: "Ali", Items: []dto.DealLineRequest{line("Bolt", 1)}}},
		{"negative total", dto.SettleDealRequest{CompanyName: "Acme", WarehouseName: "W1", VendorName: "Ali", Items: []dto.DealLineRequest{line("Bolt", 1)}, TotalPrice: &negative}},
		{"quantity over limit", importReq("W1", "Ali", line("Bolt", entity.MaxLineQuantity+1))},
		{"quantity max int64", importReq("W1", "Ali", line("Bolt", math.MaxInt64))},
		{"total over limit", dto.SettleDealRequest{CompanyName: "Acme", WarehouseName: "W1", VendorName: "Ali", Items: []dto.DealLineRequest{line("Bolt", 1)}, TotalPrice: &huge}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.SettleImport(ctx, tc.req)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Equal(t, int64(100), f.quantity(t, "Bolt"))
	assert.Equal(t, 0, f.dealCount(t))
}

func TestSettle_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		req     dto.SettleDealRequest
		mention string
	}{
		{"company", dto.SettleDealRequest{CompanyName: "Ghost", WarehouseName: "W1", VendorName: "Ali", Items: []dto.DealLineRequest{line("Bolt", 1)}}, "Ghost"},
		{"vendor", importReq("W1", "Nobody", line("Bolt", 1)), "Nobody"},
		{"warehouse", importReq("W9", "Ali", line("Bolt", 1)), "W9"},
		{"item", importReq("W1", "Ali", line("Bolt", 1), line("Nut", 1)), "Nut"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.SettleImport(ctx, tc.req)
			require.ErrorIs(t, err, domain.ErrNotFound)
			assert.Contains(t, err.Error(), tc.mention)
		})
	}
	assert.Equal(t, int64(100), f.quantity(t, "Bolt"))
	assert.Equal(t, 0, f.dealCount(t))
}

func TestSettle_PairingRule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("import needs a supplier company", func(t *testing.T) {
		req := importReq("W1", "Ali", line("Bolt", 1))
		req.CompanyName = "Nile"
		_, err := f.uc.SettleImport(ctx, req)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("import needs an importer vendor", func(t *testing.T) {
		_, err := f.uc.SettleImport(ctx, importReq("W1", "Omar", line("Bolt", 1)))
		require.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("export needs an exporter vendor", func(t *testing.T) {
		req := exportReq(line("Bolt", 1))
		req.VendorName = "Ali"
		_, err := f.uc.SettleExport(ctx, req)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("vendor must belong to the warehouse", func(t *testing.T) {
		_, err := f.uc.SettleImport(ctx, importReq("W1", "Sara", line("Bolt", 1)))
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "does not belong")
	})
	assert.Equal(t, int64(100), f.quantity(t, "Bolt"))
}

func TestGetDetail_IsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.SettleImport(ctx, importReq("W1", "Ali", line("Bolt", 10)))
	require.NoError(t, err)
	_, err = f.uc.SettleExport(ctx, exportReq(line("Bolt", 50)))
	require.NoError(t, err)
	require.Equal(t, int64(60), f.quantity(t, "Bolt"))

	detail, err := f.uc.GetDetail(ctx, res.DealID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", detail.General.CompanyName)
	assert.Equal(t, "W1", detail.General.Warehouse)
	assert.Equal(t, "Ali", detail.General.VendorName)
	require.Len(t, detail.Items, 1)
	item := detail.Items[0]
	assert.Equal(t, "Bolt", item.Name)
	assert.Equal(t, "Hardware", item.Category)
	assert.Equal(t, int64(10), item.Quantity)
	assert.Equal(t, int64(110), item.StockAfter)
	assert.True(t, decimal.RequireFromString("1.50").Equal(item.UnitPrice))
	assert.True(t, decimal.RequireFromString("15").Equal(item.Subtotal))
}

func TestGetDetail_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetDetail(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.GetDetail(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecentDeals(t *testing.T) {
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, deal.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	ctx := context.Background()

	_, err := f.uc.RecentDeals(ctx, 10)
	require.ErrorIs(t, err, domain.ErrNotFound)

	first, err := f.uc.SettleImport(ctx, importReq("W1", "Ali", line("Bolt", 1)))
	require.NoError(t, err)
	second, err := f.uc.SettleExport(ctx, exportReq(line("Bolt", 1)))
	require.NoError(t, err)

	rows, err := f.uc.RecentDeals(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.DealID, rows[0].DealID)
	assert.Equal(t, "Nile", rows[0].CompanyName)
	assert.Equal(t, first.DealID, rows[1].DealID)
	assert.Equal(t, entity.CompanyTypeSupplier, rows[1].CompanyType)

	rows, err = f.uc.RecentDeals(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSettle_IdempotencyKey(t *testing.T) {
	idem := cache.NewMemoryIdempotencyStore(time.Hour)
	defer idem.Close()
	f := newFixture(t, deal.WithIdempotency(idem))
	ctx := context.Background()

	req := importReq("W1", "Ali", line("Bolt", 10))
	req.IdempotencyKey = "abc-123"

	first, err := f.uc.SettleImport(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	again, err := f.uc.SettleImport(ctx, req)
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, first.DealID, again.DealID)
	assert.Equal(t, int64(110), f.quantity(t, "Bolt"), "replay must not apply stock twice")
	assert.Equal(t, 1, f.dealCount(t))

	// Sin clave, la misma petición crea otro trato.
	req.IdempotencyKey = ""
	_, err = f.uc.SettleImport(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(120), f.quantity(t, "Bolt"))
	assert.Equal(t, 2, f.dealCount(t))
}

func TestSettle_IdempotencyKeyReleasedOnFailure(t *testing.T) {
	idem := cache.NewMemoryIdempotencyStore(time.Hour)
	defer idem.Close()
	f := newFixture(t, deal.WithIdempotency(idem))
	ctx := context.Background()

	req := exportReq(line("Bolt", 500))
	req.IdempotencyKey = "retry-me"
	_, err := f.uc.SettleExport(ctx, req)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	req.Items = []dto.DealLineRequest{line("Bolt", 5)}
	res, err := f.uc.SettleExport(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.Replayed)
	assert.Equal(t, int64(95), f.quantity(t, "Bolt"))
}

func TestSettle_IdempotencyKeyInFlight(t *testing.T) {
	idem := cache.NewMemoryIdempotencyStore(time.Hour)
	defer idem.Close()
	f := newFixture(t, deal.WithIdempotency(idem))
	ctx := context.Background()

	_, reserved, err := idem.Reserve(ctx, entity.DealKindImport+":busy")
	require.NoError(t, err)
	require.True(t, reserved)

	req := importReq("W1", "Ali", line("Bolt", 1))
	req.IdempotencyKey = "busy"
	_, err = f.uc.SettleImport(ctx, req)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(100), f.quantity(t, "Bolt"))
}

type stubRenderer struct{}

func (stubRenderer) ContentType() string { return "text/plain" }
func (stubRenderer) Extension() string   { return "txt" }
func (stubRenderer) Render(_ context.Context, d *dto.DealDetailResponse) ([]byte, error) {
	return []byte(d.General.DealID), nil
}

func TestReceipt(t *testing.T) {
	f := newFixture(t, deal.WithRenderer("txt", stubRenderer{}))
	ctx := context.Background()
	res, err := f.uc.SettleImport(ctx, importReq("W1", "Ali", line("Bolt", 1)))
	require.NoError(t, err)

	rc, err := f.uc.Receipt(ctx, res.DealID, "txt")
	require.NoError(t, err)
	assert.Equal(t, "deal-"+res.DealID+".txt", rc.Filename)
	assert.Equal(t, "text/plain", rc.ContentType)
	assert.Equal(t, res.DealID, string(rc.Body))

	_, err = f.uc.Receipt(ctx, res.DealID, "docx")
	require.ErrorIs(t, err, domain.ErrValidation)
}
