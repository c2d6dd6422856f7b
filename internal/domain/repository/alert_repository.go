package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia del historial de alertas de stock.
type AlertRepository interface {
	Save(ctx context.Context, alert *entity.Alert) error
	// ListByUser devuelve las alertas del usuario desde `since`, más recientes primero.
	ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]*entity.Alert, error)
}
