package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Invex-api/internal/application/auth"
	"github.com/jhoicas/Invex-api/internal/application/deal"
	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/application/report"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ManagerUC   *usecase.ManagerUseCase
	WarehouseUC *usecase.WarehouseUseCase
	CompanyUC   *usecase.CompanyUseCase
	VendorUC    *usecase.VendorUseCase
	CategoryUC  *usecase.CategoryUseCase
	ItemUC      *usecase.ItemUseCase
	ReportUC    *report.ReportUseCase
	DealUC      *deal.SettlementUseCase

	JWTSecret      string
	AuthRequired   bool // exige Bearer Token en las rutas que escriben
	LoginRateLimit int  // intentos por minuto e IP; 0 desactiva el limitador
}

// NewApp crea la app Fiber con el manejador de errores y los middlewares comunes.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: ErrorHandler,
		UnescapePath: true,
		BodyLimit:    1 << 20,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(requestid.New())
	app.Use(AccessLog())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas de escritura: con AuthRequired pasan antes por AuthMiddleware.
	protect := func(h fiber.Handler) []fiber.Handler {
		if deps.AuthRequired {
			return []fiber.Handler{AuthMiddleware(deps.JWTSecret), h}
		}
		return []fiber.Handler{h}
	}

	// Auth (público, con límite de intentos)
	authHandler := NewAuthHandler(deps.AuthUC)
	loginChain := []fiber.Handler{authHandler.Login}
	if deps.LoginRateLimit > 0 {
		loginChain = append([]fiber.Handler{loginLimiter(deps.LoginRateLimit)}, loginChain...)
	}
	api.Post("/login/", loginChain...)

	managerHandler := NewManagerHandler(deps.ManagerUC)
	api.Get("/manager", managerHandler.List)
	api.Post("/manager", protect(managerHandler.Create)...)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.ReportUC)
	api.Get("/warehouse/", warehouseHandler.List)
	api.Post("/warehouse/", protect(warehouseHandler.Create)...)
	api.Get("/warehouse/:ware_name", warehouseHandler.Detail)
	api.Get("/warehouse_manager/", warehouseHandler.Managers)
	api.Get("/warehouse_name", warehouseHandler.Names)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.ItemUC)
	api.Get("/categories/", categoryHandler.List)
	api.Post("/categories/", protect(categoryHandler.Create)...)
	api.Post("/item/", protect(categoryHandler.CreateItem)...)

	vendorHandler := NewVendorHandler(deps.VendorUC)
	api.Get("/vendors/", vendorHandler.List)
	api.Post("/vendors/", protect(vendorHandler.Create)...)
	api.Get("/vendors_at_deal/", vendorHandler.AtDeal)

	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ReportUC)
	api.Get("/company/", companyHandler.List)
	api.Post("/company/", protect(companyHandler.Create)...)
	api.Get("/company/:type", companyHandler.ListByType)
	api.Get("/supplier-details/:name", companyHandler.SupplierDetails)
	api.Get("/category-items-importer/:name", companyHandler.CategoryItems)

	dealHandler := NewDealHandler(deps.DealUC)
	api.Post("/deal-import/", protect(dealHandler.Import)...)
	api.Post("/deal-export/", protect(dealHandler.Export)...)
	api.Get("/recent-deals", dealHandler.Recent)
	api.Get("/deal-details/:id", dealHandler.Detail)
	api.Get("/deal-details/:id/:format", dealHandler.Receipt)
}

func loginLimiter(limit int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "too many login attempts, try again later",
			})
		},
	})
}
