package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/application/report"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para Company y el catálogo de cada empresa.
type CompanyHandler struct {
	uc     *usecase.CompanyUseCase
	report *report.ReportUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, report *report.ReportUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, report: report}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company/ [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
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
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Success      200  {array}  dto.CompanyResponse
// @Router       /api/company/ [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), "")
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByType godoc
// @Summary      Listar empresas por tipo
// @Tags         companies
// @Produce      json
// @Param        type  path  string  true  "supplier | importer (exporter = supplier)"
// @Success      200  {array}   dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/company/{type} [get]
func (h *CompanyHandler) ListByType(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SupplierDetails godoc
// @Summary      Ficha del proveedor con su catálogo por categoría
// @Tags         companies
// @Produce      json
// @Param        name  path  string  true  "Nombre de la empresa"
// @Success      200  {object}  dto.SupplierDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-details/{name} [get]
func (h *CompanyHandler) SupplierDetails(c *fiber.Ctx) error {
	out, err := h.report.SupplierDetail(c.UserContext(), c.Params("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CategoryItems godoc
// @Summary      Categorías e ítems de una empresa
// @Tags         companies
// @Produce      json
// @Param        name  path  string  true  "Nombre de la empresa"
// @Success      200  {array}   dto.CategoryItemsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/category-items-importer/{name} [get]
func (h *CompanyHandler) CategoryItems(c *fiber.Ctx) error {
	out, err := h.report.CompanyCategories(c.UserContext(), c.Params("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
