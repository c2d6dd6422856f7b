package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/application/stock"
)

// InventoryHandler listados de inventario (proxy autenticado al API remoto).
type InventoryHandler struct {
	uc  *stock.UseCase
	log zerolog.Logger
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *stock.UseCase, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        status  query  string  false  "in-stock | low-stock | out-of-stock"
// @Param        limit   query  int     false  "default 20, máx 100"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.UserContext(), GetToken(c), c.Query("status"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Ítems con stock bajo o agotados
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.UserContext(), GetToken(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToInventoryItemResponse(it))
	}
	return c.JSON(out)
}
