package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/application/usecase"
)

// ManagerHandler maneja las peticiones HTTP para Manager.
type ManagerHandler struct {
	uc *usecase.ManagerUseCase
}

// NewManagerHandler construye el handler.
func NewManagerHandler(uc *usecase.ManagerUseCase) *ManagerHandler {
	return &ManagerHandler{uc: uc}
}

// List godoc
// @Summary      Listar managers
// @Tags         managers
// @Produce      json
// @Success      200  {array}   dto.ManagerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manager [get]
func (h *ManagerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear manager
// @Tags         managers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateManagerRequest  true  "name, email, password"
// @Success      201   {object}  dto.ManagerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/manager [post]
func (h *ManagerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateManagerRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
