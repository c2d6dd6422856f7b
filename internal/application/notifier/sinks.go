package notifier

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

// DefaultFeedSize alertas recientes que se conservan por usuario.
const DefaultFeedSize = 50

// Feed buffer acotado de alertas recientes por usuario; es el destino de los toasts
// que el dashboard consulta.
type Feed struct {
	mu     sync.RWMutex
	size   int
	byUser map[string][]entity.Alert
}

// NewFeed construye el feed con la capacidad indicada por usuario.
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{size: size, byUser: make(map[string][]entity.Alert)}
}

// Notify implementa AlertSink.
func (f *Feed) Notify(_ context.Context, alert entity.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := append(f.byUser[alert.UserID], alert)
	if len(list) > f.size {
		list = list[len(list)-f.size:]
	}
	f.byUser[alert.UserID] = list
}

// Recent devuelve hasta limit alertas del usuario, más recientes primero. limit <= 0 = todas.
func (f *Feed) Recent(userID string, limit int) []entity.Alert {
	f.mu.RLock()
	defer f.mu.RUnlock()
	list := f.byUser[userID]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]entity.Alert, 0, limit)
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out
}

// Clear descarta las alertas del usuario (cierre de sesión).
func (f *Feed) Clear(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byUser, userID)
}

// MultiSink reparte cada alerta a todos los sinks en orden.
type MultiSink []AlertSink

// Notify implementa AlertSink.
func (m MultiSink) Notify(ctx context.Context, alert entity.Alert) {
	for _, s := range m {
		if s != nil {
			s.Notify(ctx, alert)
		}
	}
}

// HistorySink persiste cada alerta en el repositorio de historial.
// Un fallo de persistencia se registra y no afecta al resto de sinks.
type HistorySink struct {
	repo repository.AlertRepository
	log  zerolog.Logger
}

// NewHistorySink construye el sink de historial.
func NewHistorySink(repo repository.AlertRepository, log zerolog.Logger) *HistorySink {
	return &HistorySink{repo: repo, log: log}
}

// Notify implementa AlertSink.
func (h *HistorySink) Notify(ctx context.Context, alert entity.Alert) {
	if err := h.repo.Save(ctx, &alert); err != nil {
		h.log.Warn().Err(err).Str("alert_id", alert.ID).Msg("no se pudo guardar la alerta en el historial")
	}
}

// scopedStore antepone un prefijo por usuario a todas las claves.
type scopedStore struct {
	inner  repository.KeyValueStore
	prefix string
}

// ScopeStore limita el almacenamiento a un usuario: la clave fija del notificador
// queda como "user:<id>:<clave>".
func ScopeStore(inner repository.KeyValueStore, userID string) repository.KeyValueStore {
	return &scopedStore{inner: inner, prefix: "user:" + userID + ":"}
}

func (s *scopedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scopedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}
