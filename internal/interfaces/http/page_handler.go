package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/application/guard"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
)

// PageHandler aplica el guard de rutas a las páginas del dashboard.
//   - Render   → 200 con el descriptor de la página.
//   - Redirect → 302 con Location.
//   - Loading  → 202 con Retry-After y {"status":"loading"}.
type PageHandler struct {
	guard *guard.Guard
	table *access.Table
}

// NewPageHandler construye el handler.
func NewPageHandler(g *guard.Guard, table *access.Table) *PageHandler {
	return &PageHandler{guard: g, table: table}
}

// Serve handler de una página registrada. Debe usarse DESPUÉS de SessionMiddleware.
func (h *PageHandler) Serve(page access.Page) fiber.Handler {
	rule := guard.RuleForPage(page)
	return func(c *fiber.Ctx) error {
		if page.Public {
			return h.render(c, page, GetAuthState(c))
		}
		state := GetAuthState(c)
		d := h.guard.Evaluate(state, rule)
		switch d.Outcome {
		case guard.OutcomeLoading:
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusAccepted).JSON(dto.PageLoadingBody{Status: "loading"})
		case guard.OutcomeRedirect:
			return c.Redirect(d.Location, fiber.StatusFound)
		default:
			return h.render(c, page, state)
		}
	}
}

// NotFound rutas desconocidas: /api/* responde 404 JSON; el resto redirige a /login.
func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	if c.Path() == "/api" || strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta no encontrada"})
	}
	return c.Redirect(access.PathLogin, fiber.StatusFound)
}

func (h *PageHandler) render(c *fiber.Ctx, page access.Page, state guard.AuthState) error {
	allowed := []string{}
	if page.Category != "" {
		allowed = h.table.AllowedFeatures(state.Role, page.Category)
	}
	return c.JSON(dto.PageResponseBody{
		Outcome:         guard.OutcomeRender.String(),
		Path:            page.Path,
		Title:           page.Title,
		Section:         page.Section,
		Category:        string(page.Category),
		Feature:         page.Feature,
		AllowedFeatures: allowed,
	})
}
