package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// AlertItemResponse ítem incluido en una alerta.
type AlertItemResponse struct {
	ItemID         string          `json:"item_id"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	AvailableStock decimal.Decimal `json:"available_stock"`
}

// AlertResponse alerta de stock emitida por el notificador.
type AlertResponse struct {
	ID          string              `json:"id"`
	DedupKey    string              `json:"dedup_key"`
	Severity    string              `json:"severity"`
	Status      string              `json:"status"`
	Message     string              `json:"message"`
	Description string              `json:"description"`
	DurationMs  int64               `json:"duration_ms"`
	Items       []AlertItemResponse `json:"items"`
	Total       int                 `json:"total"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NotificationsResponse feed de alertas.
type NotificationsResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	Source string          `json:"source"` // feed | history
}

// ResetNotifiedResponse resultado de DELETE /api/notifications/notified.
type ResetNotifiedResponse struct {
	UserID  string `json:"user_id"`
	Cleared bool   `json:"cleared"`
}

// ToAlertResponse mapea la entidad al DTO.
func ToAlertResponse(a entity.Alert) AlertResponse {
	items := make([]AlertItemResponse, 0, len(a.Items))
	for _, s := range a.Items {
		items = append(items, AlertItemResponse{
			ItemID:         s.ItemID,
			Name:           s.Name,
			Status:         string(s.Status),
			AvailableStock: s.AvailableStock,
		})
	}
	return AlertResponse{
		ID:          a.ID,
		DedupKey:    a.DedupKey,
		Severity:    string(a.Severity),
		Status:      string(a.Status),
		Message:     a.Message,
		Description: a.Description,
		DurationMs:  a.Duration.Milliseconds(),
		Items:       items,
		Total:       a.Total,
		CreatedAt:   a.CreatedAt,
	}
}
