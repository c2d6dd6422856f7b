package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
)

// AccessHandler expone la tabla de acceso al frontend.
type AccessHandler struct {
	table *access.Table
}

// NewAccessHandler construye el handler.
func NewAccessHandler(table *access.Table) *AccessHandler {
	return &AccessHandler{table: table}
}

// Check godoc
// @Summary      Verificar acceso del rol de la sesión
// @Tags         access
// @Security     BearerAuth
// @Produce      json
// @Param        category  query  string  true   "dashboards | inventory | forecasting | supplyChain | admin | notifications"
// @Param        feature   query  string  false  "feature opcional"
// @Success      200  {object}  dto.AccessCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/access/check [get]
func (h *AccessHandler) Check(c *fiber.Ctx) error {
	category, ok := access.ParseCategory(c.Query("category"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "category inválida"})
	}
	feature := c.Query("feature")
	role := GetRole(c)
	return c.JSON(dto.AccessCheckResponse{
		Role:     role,
		Category: string(category),
		Feature:  feature,
		Allowed:  h.table.HasAccess(role, category, feature),
	})
}

// Policy godoc
// @Summary      Entradas de la tabla de acceso para el rol de la sesión
// @Tags         access
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.PolicyResponse
// @Router       /api/access/policy [get]
func (h *AccessHandler) Policy(c *fiber.Ctx) error {
	role := GetRole(c)
	out := dto.PolicyResponse{Role: role, Entries: map[string]dto.PolicyEntryResponse{}}
	for category, e := range h.table.Entries(role) {
		out.Entries[string(category)] = toPolicyEntry(e)
	}
	return c.JSON(out)
}

func toPolicyEntry(e access.Entry) dto.PolicyEntryResponse {
	switch e.Kind() {
	case access.KindAllowAll:
		return dto.PolicyEntryResponse{Kind: "allow"}
	case access.KindFeatureList:
		return dto.PolicyEntryResponse{Kind: "features", Features: e.List()}
	default:
		return dto.PolicyEntryResponse{Kind: "deny"}
	}
}
