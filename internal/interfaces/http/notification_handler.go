package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/application/notifier"
	"github.com/jhoicas/Inventario-dashboard/internal/application/stock"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

// NotifiedResetter limpia el conjunto de ítems notificados del usuario.
type NotifiedResetter interface {
	ResetNotified(ctx context.Context, userID string) error
}

// NotificationHandler alertas de stock bajo del usuario.
type NotificationHandler struct {
	feed     *notifier.Feed
	history  repository.AlertRepository
	resetter NotifiedResetter
	stock    *stock.UseCase
	log      zerolog.Logger
}

// NewNotificationHandler construye el handler. history puede ser nil.
func NewNotificationHandler(feed *notifier.Feed, history repository.AlertRepository, resetter NotifiedResetter, stockUC *stock.UseCase, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{feed: feed, history: history, resetter: resetter, stock: stockUC, log: log}
}

// List godoc
// @Summary      Alertas recientes
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        source  query  string  false  "feed (default) | history"
// @Param        limit   query  int     false  "default 20"
// @Success      200  {object}  dto.NotificationsResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	userID := GetUserID(c)

	if c.Query("source") == "history" && h.history != nil {
		alerts, err := h.history.ListByUser(c.UserContext(), userID, time.Time{}, limit)
		if err != nil {
			return writeError(c, h.log, err)
		}
		out := make([]dto.AlertResponse, 0, len(alerts))
		for _, a := range alerts {
			out = append(out, dto.ToAlertResponse(*a))
		}
		return c.JSON(dto.NotificationsResponse{Alerts: out, Source: "history"})
	}

	return c.JSON(dto.NotificationsResponse{Alerts: toAlertResponses(h.feed.Recent(userID, limit)), Source: "feed"})
}

// Report godoc
// @Summary      Reporte PDF de stock bajo
// @Tags         notifications
// @Security     BearerAuth
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/notifications/report.pdf [get]
func (h *NotificationHandler) Report(c *fiber.Ctx) error {
	requestedBy := GetUserID(c) + " (" + GetRole(c) + ")"
	pdf, err := h.stock.LowStockPDF(c.UserContext(), GetToken(c), GetUserID(c), requestedBy)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="low-stock-report.pdf"`)
	return c.Send(pdf)
}

// ResetNotified godoc
// @Summary      Reiniciar ítems notificados
// @Description  Borra el conjunto persistido; el próximo sondeo vuelve a alertar todos los ítems degradados.
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.ResetNotifiedResponse
// @Router       /api/notifications/notified [delete]
func (h *NotificationHandler) ResetNotified(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if err := h.resetter.ResetNotified(c.UserContext(), userID); err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Str("user_id", userID).Msg("conjunto de notificados reiniciado")
	return c.JSON(dto.ResetNotifiedResponse{UserID: userID, Cleared: true})
}

func toAlertResponses(alerts []entity.Alert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.ToAlertResponse(a))
	}
	return out
}
