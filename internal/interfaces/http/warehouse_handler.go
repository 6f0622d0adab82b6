package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/application/report"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
)

// WarehouseHandler maneja las peticiones HTTP para Warehouse y sus vistas de reporte.
type WarehouseHandler struct {
	uc     *usecase.WarehouseUseCase
	report *report.ReportUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase, report *report.ReportUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, report: report}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouse/ [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar bodegas con el total de unidades almacenadas
// @Tags         warehouses
// @Produce      json
// @Success      200  {array}   dto.WarehouseSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/ [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.report.Warehouses(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Detalle de bodega: ficha y categorías con ítems
// @Tags         warehouses
// @Produce      json
// @Param        ware_name  path  string  true  "Nombre de la bodega"
// @Success      200  {object}  dto.WarehouseDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/{ware_name} [get]
func (h *WarehouseHandler) Detail(c *fiber.Ctx) error {
	out, err := h.report.WarehouseDetail(c.UserContext(), c.Params("ware_name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Managers godoc
// @Summary      Encargados de bodega
// @Tags         warehouses
// @Produce      json
// @Success      200  {array}   dto.WarehouseManagerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse_manager/ [get]
func (h *WarehouseHandler) Managers(c *fiber.Ctx) error {
	out, err := h.uc.Managers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Names godoc
// @Summary      Nombres de bodegas
// @Tags         warehouses
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/warehouse_name [get]
func (h *WarehouseHandler) Names(c *fiber.Ctx) error {
	out, err := h.uc.Names(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
