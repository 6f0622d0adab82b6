package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/pkg/jwt"
)

// Locals keys para ManagerID y Email en Fiber.
const (
	LocalManagerID = "manager_id"
	LocalEmail     = "manager_email"
)

// AuthMiddleware valida el Bearer Token JWT y extrae ManagerID y Email a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return writeError(c, domain.Unauthorized("authorization header required"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return writeError(c, domain.Unauthorized("expected format: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return writeError(c, domain.Unauthorized("empty token"))
		}
		managerID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return writeError(c, domain.Unauthorized("invalid or expired token"))
		}
		c.Locals(LocalManagerID, managerID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// GetManagerID devuelve el ManagerID del contexto (después del middleware de auth).
func GetManagerID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalManagerID).(string)
	return s
}

// GetManagerEmail devuelve el email del manager autenticado.
func GetManagerEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}
