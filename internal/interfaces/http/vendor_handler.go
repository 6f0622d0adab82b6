package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
)

// VendorHandler maneja las peticiones HTTP para Vendor.
type VendorHandler struct {
	uc *usecase.VendorUseCase
}

// NewVendorHandler construye el handler.
func NewVendorHandler(uc *usecase.VendorUseCase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// List godoc
// @Summary      Listar vendedores con su bodega
// @Tags         vendors
// @Produce      json
// @Success      200  {array}  dto.VendorListItem
// @Router       /api/vendors/ [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear vendedor
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVendorRequest  true  "vendor, warehouse, type"
// @Success      201   {object}  dto.VendorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vendors/ [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AtDeal godoc
// @Summary      Vendedores válidos para un trato en una bodega
// @Tags         vendors
// @Produce      json
// @Param        type       query  string  true  "import | export"
// @Param        warehouse  query  string  true  "Nombre de la bodega"
// @Success      200  {array}   string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors_at_deal/ [get]
func (h *VendorHandler) AtDeal(c *fiber.Ctx) error {
	var q dto.VendorsAtDealQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AtDeal(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
