package postgres_test

import (
	"context"
	"errors"
	"math"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Invex-api/internal/application/deal"
	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Invex-api/pkg/config"
)

var (
	sharedOnce sync.Once
	sharedPool *pgxpool.Pool
	sharedErr  error
)

// newTestPool levanta (una vez por paquete) un PostgreSQL en contenedor, aplica las migraciones
// y vacía las tablas antes de cada test. Requiere INVEX_INTEGRATION=1 y Docker.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() || os.Getenv("INVEX_INTEGRATION") != "1" {
		t.Skip("integración deshabilitada (INVEX_INTEGRATION=1 para ejecutar)")
	}
	ctx := context.Background()

	sharedOnce.Do(func() {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("invex_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			sharedErr = err
			return
		}
		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			sharedErr = err
			return
		}
		sharedPool, sharedErr = postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
		if sharedErr == nil {
			sharedErr = postgres.Migrate(ctx, sharedPool)
		}
	})
	require.NoError(t, sharedErr)

	_, err := sharedPool.Exec(ctx, `TRUNCATE deal_items, deals, items, warehouse_categories,
		categories, vendors, companies, warehouses, managers`)
	require.NoError(t, err)
	return sharedPool
}

type pgFixture struct {
	pool *pgxpool.Pool
	uc   *deal.SettlementUseCase
	ids  map[string]string
}

func newPgFixture(t *testing.T) *pgFixture {
	t.Helper()
	pool := newTestPool(t)
	ctx := context.Background()
	now := time.Now().UTC()
	ids := map[string]string{}
	add := func(name string) string {
		ids[name] = uuid.New().String()
		return ids[name]
	}

	warehouses := postgres.NewWarehouseRepository(pool)
	companies := postgres.NewCompanyRepository(pool)
	vendors := postgres.NewVendorRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	items := postgres.NewItemRepository(pool)

	for _, w := range []string{"Central", "Delta"} {
		require.NoError(t, warehouses.Create(ctx, &entity.Warehouse{ID: add(w), Name: w, Governorate: "Giza", City: "Dokki", Capacity: 500, Responsible: "Hany", CreatedAt: now}))
	}
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: add("Acme"), Name: "Acme", Governorate: "Cairo", City: "Cairo", Street: "Tahrir", Phone: "01012345678", Email: "acme@example.com", Type: entity.CompanyTypeSupplier, CreatedAt: now}))
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: add("Nile"), Name: "Nile", Governorate: "Cairo", City: "Cairo", Street: "Corniche", Phone: "01112345678", Email: "nile@example.com", Type: entity.CompanyTypeImporter, CreatedAt: now}))
	require.NoError(t, vendors.Create(ctx, &entity.Vendor{ID: add("Ali"), Name: "Ali", WarehouseID: ids["Central"], Type: entity.VendorTypeImporter, CreatedAt: now}))
	require.NoError(t, vendors.Create(ctx, &entity.Vendor{ID: add("Omar"), Name: "Omar", WarehouseID: ids["Central"], Type: entity.VendorTypeExporter, CreatedAt: now}))
	require.NoError(t, categories.Create(ctx, &entity.Category{ID: add("Spices"), Name: "Spices", CreatedAt: now}))
	require.NoError(t, items.Create(ctx, &entity.Item{ID: add("Cumin"), Name: "Cumin", Quantity: 50, UnitPrice: decimal.RequireFromString("2.50"), CategoryID: ids["Spices"], SupplierID: ids["Acme"], CreatedAt: now, UpdatedAt: now}))

	uc := deal.NewSettlementUseCase(
		postgres.NewTxRunner(pool), companies, vendors, warehouses,
		postgres.NewDealRepository(pool), postgres.NewReportRepository(pool),
	)
	return &pgFixture{pool: pool, uc: uc, ids: ids}
}

func (f *pgFixture) quantity(t *testing.T, name string) int64 {
	t.Helper()
	it, err := postgres.NewItemRepository(f.pool).GetByName(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

func exportReq(n int64) dto.SettleDealRequest {
	return dto.SettleDealRequest{
		CompanyName: "Nile", WareName: "Central", VendorName: "Omar",
		Items: []dto.DealLineRequest{{Name: "Cumin", Quantity: n}},
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := newTestPool(t)
	require.NoError(t, postgres.Migrate(context.Background(), pool))
}

func TestRepositories_UniqueNamesAreConflicts(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()

	err := postgres.NewWarehouseRepository(f.pool).Create(ctx, &entity.Warehouse{ID: uuid.New().String(), Name: "Central", Governorate: "x", City: "y", Responsible: "z", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = postgres.NewCategoryRepository(f.pool).Create(ctx, &entity.Category{ID: uuid.New().String(), Name: "Spices", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = postgres.NewVendorRepository(f.pool).Create(ctx, &entity.Vendor{ID: uuid.New().String(), Name: "Zed", WarehouseID: uuid.New().String(), Type: entity.VendorTypeImporter, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemRepo_ConditionalSubtract(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()
	items := postgres.NewItemRepository(f.pool)

	qty, ok, err := items.SubtractQuantity(ctx, f.ids["Cumin"], 60)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(50), qty)

	qty, ok, err = items.SubtractQuantity(ctx, f.ids["Cumin"], 50)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(0), qty)

	_, _, err = items.SubtractQuantity(ctx, uuid.New().String(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemRepo_AddQuantityOutOfRange(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()
	items := postgres.NewItemRepository(f.pool)

	_, err := items.AddQuantity(ctx, f.ids["Cumin"], math.MaxInt64)
	require.ErrorIs(t, err, domain.ErrValidation)

	qty, err := items.AddQuantity(ctx, f.ids["Cumin"], 5)
	require.NoError(t, err)
	assert.Equal(t, int64(55), qty)
}

func TestWarehouseCategoryRepo_Ensure(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()
	repo := postgres.NewWarehouseCategoryRepository(f.pool)

	created, err := repo.Ensure(ctx, f.ids["Delta"], f.ids["Spices"])
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Ensure(ctx, f.ids["Delta"], f.ids["Spices"])
	require.NoError(t, err)
	assert.False(t, created)

	ok, err := repo.Exists(ctx, f.ids["Delta"], f.ids["Spices"])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSettlement_ImportThenExport(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()

	res, err := f.uc.SettleImport(ctx, dto.SettleDealRequest{
		CompanyName: "Acme", WarehouseName: "Central", VendorName: "Ali",
		Items: []dto.DealLineRequest{{Name: "Cumin", Quantity: 10}},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(res.TotalCost), res.TotalCost.String())
	assert.Equal(t, int64(60), f.quantity(t, "Cumin"))

	_, err = f.uc.SettleExport(ctx, exportReq(70))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(60), f.quantity(t, "Cumin"))

	detail, err := f.uc.GetDetail(ctx, res.DealID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, int64(10), detail.Items[0].Quantity)
	assert.Equal(t, int64(60), detail.Items[0].StockAfter)

	summaries, err := postgres.NewReportRepository(f.pool).WarehouseSummaries(ctx, "")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Central", summaries[0].Name)
	assert.Equal(t, int64(60), summaries[0].TotalQuantity)
	assert.Equal(t, int64(0), summaries[1].TotalQuantity)
}

func TestSettlement_ConcurrentExportsNeverOversell(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		short     int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.SettleExport(ctx, exportReq(10))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrInsufficientStock):
				short++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, short)
	assert.Equal(t, int64(0), f.quantity(t, "Cumin"))

	recent, err := f.uc.RecentDeals(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}
