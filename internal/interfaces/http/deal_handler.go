package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invex-api/internal/application/deal"
	"github.com/jhoicas/Invex-api/internal/application/dto"
)

// HeaderIdempotencyKey clave opcional del cliente para reintentos seguros de una liquidación.
const HeaderIdempotencyKey = "Idempotency-Key"

// DealHandler maneja la liquidación y consulta de tratos.
type DealHandler struct {
	uc *deal.SettlementUseCase
}

// NewDealHandler construye el handler.
func NewDealHandler(uc *deal.SettlementUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Import godoc
// @Summary      Liquidar trato de importación (entrada de stock)
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                 false  "Clave de reintento"
// @Param        body             body    dto.SettleDealRequest  true   "com_name, war_name, vendor_name, items, total_price"
// @Success      201  {object}  dto.DealResult
// @Success      200  {object}  dto.DealResult  "Reintento con la misma clave"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deal-import/ [post]
func (h *DealHandler) Import(c *fiber.Ctx) error {
	return h.settle(c, h.uc.SettleImport)
}

// Export godoc
// @Summary      Liquidar trato de exportación (salida de stock)
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                 false  "Clave de reintento"
// @Param        body             body    dto.SettleDealRequest  true   "com_name, ware_name, vendor_name, items, total_price"
// @Success      201  {object}  dto.DealResult
// @Success      200  {object}  dto.DealResult  "Reintento con la misma clave"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deal-export/ [post]
func (h *DealHandler) Export(c *fiber.Ctx) error {
	return h.settle(c, h.uc.SettleExport)
}

func (h *DealHandler) settle(c *fiber.Ctx, fn func(context.Context, dto.SettleDealRequest) (*dto.DealResult, error)) error {
	var in dto.SettleDealRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	in.IdempotencyKey = c.Get(HeaderIdempotencyKey)

	out, err := fn(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	if out.Replayed {
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Recent godoc
// @Summary      Tratos recientes
// @Tags         deals
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"  default(50)
// @Success      200  {array}   dto.RecentDealResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recent-deals [get]
func (h *DealHandler) Recent(c *fiber.Ctx) error {
	var q dto.LimitQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	q.DefaultLimit()
	out, err := h.uc.RecentDeals(c.UserContext(), q.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Detalle de un trato
// @Tags         deals
// @Produce      json
// @Param        id  path  string  true  "ID del trato"
// @Success      200  {object}  dto.DealDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deal-details/{id} [get]
func (h *DealHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.GetDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante descargable de un trato
// @Tags         deals
// @Produce      application/pdf
// @Produce      application/xml
// @Param        id      path  string  true  "ID del trato"
// @Param        format  path  string  true  "pdf | xml"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deal-details/{id}/{format} [get]
func (h *DealHandler) Receipt(c *fiber.Ctx) error {
	r, err := h.uc.Receipt(c.UserContext(), c.Params("id"), c.Params("format"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, r.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(r.Filename))
	return c.Send(r.Body)
}
