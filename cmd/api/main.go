package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/Invex-api/docs"
	"github.com/jhoicas/Invex-api/internal/application/auth"
	"github.com/jhoicas/Invex-api/internal/application/deal"
	"github.com/jhoicas/Invex-api/internal/application/report"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
	"github.com/jhoicas/Invex-api/internal/infrastructure/cache"
	"github.com/jhoicas/Invex-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Invex-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Invex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Invex-api/internal/infrastructure/xmldoc"
	httpRouter "github.com/jhoicas/Invex-api/internal/interfaces/http"
	"github.com/jhoicas/Invex-api/pkg/config"
	"github.com/jhoicas/Invex-api/pkg/logger"
)

// stores agrupa los puertos de persistencia del driver elegido.
type stores struct {
	tx         repository.TxRunner
	managers   repository.ManagerRepository
	warehouses repository.WarehouseRepository
	companies  repository.CompanyRepository
	vendors    repository.VendorRepository
	categories repository.CategoryRepository
	items      repository.ItemRepository
	deals      repository.DealRepository
	reports    repository.ReportRepository
	close      func()
}

// @title                       Invex API
// @version                     1.0
// @description                 Inventario de bodegas y liquidación de tratos de importación y exportación.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	ttl := time.Duration(cfg.Redis.IdempotencyTTL) * time.Minute
	var idem deal.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rs, err := cache.NewRedisIdempotencyStore(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, ttl)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rs.Close()
		idem = rs
	} else {
		idem = cache.NewMemoryIdempotencyStore(ttl)
	}

	dealUC := deal.NewSettlementUseCase(
		st.tx, st.companies, st.vendors, st.warehouses, st.deals, st.reports,
		deal.WithIdempotency(idem),
		deal.WithRenderer("pdf", infrapdf.NewDealReceiptRenderer(cfg.App.Name)),
		deal.WithRenderer("xml", xmldoc.NewDealDocumentRenderer()),
	)
	authUC := auth.NewAuthUseCase(st.managers, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Invex API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ManagerUC:      usecase.NewManagerUseCase(st.managers),
		WarehouseUC:    usecase.NewWarehouseUseCase(st.warehouses),
		CompanyUC:      usecase.NewCompanyUseCase(st.companies),
		VendorUC:       usecase.NewVendorUseCase(st.vendors, st.warehouses),
		CategoryUC:     usecase.NewCategoryUseCase(st.tx, st.categories, st.warehouses),
		ItemUC:         usecase.NewItemUseCase(st.items, st.categories, st.companies),
		ReportUC:       report.NewReportUseCase(st.reports, st.warehouses, st.companies),
		DealUC:         dealUC,
		JWTSecret:      cfg.JWT.Secret,
		AuthRequired:   cfg.HTTP.AuthRequired,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg config.DBConfig) (*stores, error) {
	if cfg.Driver == "memory" {
		s := memory.NewStore()
		return &stores{
			tx:         s,
			managers:   s.Managers(),
			warehouses: s.Warehouses(),
			companies:  s.Companies(),
			vendors:    s.Vendors(),
			categories: s.Categories(),
			items:      s.Items(),
			deals:      s.Deals(),
			reports:    s.Reports(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &stores{
		tx:         postgres.NewTxRunner(pool),
		managers:   postgres.NewManagerRepository(pool),
		warehouses: postgres.NewWarehouseRepository(pool),
		companies:  postgres.NewCompanyRepository(pool),
		vendors:    postgres.NewVendorRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		items:      postgres.NewItemRepository(pool),
		deals:      postgres.NewDealRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		close:      pool.Close,
	}, nil
}
