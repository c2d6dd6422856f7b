package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
)

// RequireAccess devuelve un middleware Fiber que verifica la tabla de acceso para
// la categoría y feature (feature vacía = cualquier feature de la categoría).
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 MISSING_ROLE → la sesión no trae rol.
//   - 403 FORBIDDEN    → el rol no tiene acceso.
func RequireAccess(table *access.Table, category access.Category, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "la sesión no tiene rol asignado",
			})
		}
		if !table.HasAccess(role, category, feature) {
			target := string(category)
			if feature != "" {
				target += "/" + feature
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no tiene acceso a " + target,
			})
		}
		return c.Next()
	}
}
