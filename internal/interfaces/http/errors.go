package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/domain"
)

const internalMessage = "internal server error"

// errorKinds mapea cada tipo de error de dominio a su status HTTP y código del envelope.
var errorKinds = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrConflict, fiber.StatusBadRequest, "CONFLICT"},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidCredentials, fiber.StatusBadRequest, "INVALID_CREDENTIALS"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// writeError traduce err al envelope {code, message}. Los errores no tipados se registran
// y se responden como 500 sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			msg, ok := domain.MessageOf(err)
			if !ok {
				msg = k.kind.Error()
			}
			return c.Status(k.status).JSON(dto.ErrorResponse{Code: k.code, Message: msg})
		}
	}

	log.Error().Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage})
}

// ErrorHandler es el fiber.Config.ErrorHandler: errores de Fiber (404 de ruta, 413, 429)
// conservan su status; panics recuperados y errores desconocidos salen como 500 genérico.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
	}
	return writeError(c, err)
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	}
	return "BAD_REQUEST"
}
