package notifier

import (
	"context"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// InventorySource consulta el snapshot actual de inventario (API remoto).
type InventorySource interface {
	ListInventory(ctx context.Context) ([]entity.InventoryItem, error)
}

// InventoryClient cliente de inventario que necesita el token del usuario en cada llamada.
// Lo implementa *upstream.Client.
type InventoryClient interface {
	ListInventory(ctx context.Context, token string) ([]entity.InventoryItem, error)
}

// AlertSink capa de presentación de alertas (toasts): recibe severidad, mensaje,
// descripción, duración y clave de deduplicación dentro de entity.Alert.
type AlertSink interface {
	Notify(ctx context.Context, alert entity.Alert)
}

// SinkFunc adapta una función a AlertSink.
type SinkFunc func(ctx context.Context, alert entity.Alert)

// Notify implementa AlertSink.
func (f SinkFunc) Notify(ctx context.Context, alert entity.Alert) { f(ctx, alert) }
