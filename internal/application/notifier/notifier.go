// Package notifier implementa el sondeo periódico de inventario que avisa una sola
// vez por día de los productos que pasan a low-stock u out-of-stock.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

const (
	// DefaultInterval intervalo de sondeo de referencia.
	DefaultInterval = 5 * time.Minute
	// DefaultStorageKey clave fija del conjunto de notificaciones ya mostradas.
	DefaultStorageKey = "lowstock_notified_ids"

	maxListedNames     = 5
	outOfStockDuration = 8 * time.Second
	lowStockDuration   = 6 * time.Second
)

// Config parámetros del notificador.
type Config struct {
	Interval   time.Duration
	StorageKey string
	Location   *time.Location // zona horaria del reset de medianoche; nil = time.Local
	UserID     string         // se copia en cada alerta emitida
}

// Option configura el Notifier.
type Option func(*Notifier)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// WithIDGenerator reemplaza el generador de IDs de alerta (tests).
func WithIDGenerator(newID func() string) Option {
	return func(n *Notifier) { n.newID = newID }
}

// Notifier sondea el inventario y emite alertas agrupadas sin repetir las ya mostradas.
// Es un recurso con ciclo de vida explícito: Start arranca el sondeo y el reset
// de medianoche, Stop cancela ambos y espera a que termine el ciclo en curso.
type Notifier struct {
	source InventorySource
	store  repository.KeyValueStore
	sink   AlertSink
	log    zerolog.Logger
	cfg    Config
	now    func() time.Time
	newID  func() string

	// cycleMu serializa lectura-modificación-escritura del conjunto persistido.
	cycleMu sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New construye el notificador. Interval y StorageKey vacíos toman los valores por defecto.
func New(source InventorySource, store repository.KeyValueStore, sink AlertSink, log zerolog.Logger, cfg Config, opts ...Option) *Notifier {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	n := &Notifier{
		source: source,
		store:  store,
		sink:   sink,
		log:    log.With().Str("component", "lowstock_notifier").Str("user_id", cfg.UserID).Logger(),
		cfg:    cfg,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Start activa el notificador: sondeo inmediato, luego cada Interval, y reset del
// conjunto notificado en cada medianoche local. Si ya está activo no hace nada.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	n.cancel = cancel
	n.done = done
	go n.run(loopCtx, done)
}

// Stop cancela el intervalo y el timer de medianoche y espera a que el bucle termine.
// Después de Stop no se hace ninguna llamada al API. Es seguro llamarlo varias veces.
func (n *Notifier) Stop() {
	n.mu.Lock()
	cancel, done := n.cancel, n.done
	n.cancel, n.done = nil, nil
	n.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running informa si el bucle de sondeo está activo.
func (n *Notifier) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cancel != nil
}

func (n *Notifier) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	n.Check(ctx)

	ticker := time.NewTicker(n.cfg.Interval)
	defer ticker.Stop()
	reset := time.NewTimer(n.untilMidnight())
	defer reset.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.Check(ctx)
		case <-reset.C:
			if err := n.ResetNotified(ctx); err != nil {
				n.log.Debug().Err(err).Msg("reset de medianoche fallido")
			}
			reset.Reset(n.untilMidnight())
		}
	}
}

func (n *Notifier) untilMidnight() time.Duration {
	now := n.now().In(n.cfg.Location)
	d := NextMidnight(now).Sub(now)
	if d <= 0 {
		d = time.Second
	}
	return d
}

// NextMidnight devuelve la próxima medianoche en la zona horaria de t.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// Check ejecuta un ciclo de sondeo. Cualquier error se descarta: el notificador
// nunca interrumpe la interfaz, el siguiente tick vuelve a intentarlo.
func (n *Notifier) Check(ctx context.Context) {
	n.cycleMu.Lock()
	defer n.cycleMu.Unlock()
	if err := n.check(ctx); err != nil {
		n.log.Debug().Err(err).Msg("ciclo de sondeo descartado")
	}
}

func (n *Notifier) check(ctx context.Context) error {
	items, err := n.source.ListInventory(ctx)
	if err != nil {
		return fmt.Errorf("consultar inventario: %w", err)
	}
	notified, err := n.loadNotified(ctx)
	if err != nil {
		return err
	}

	var order []entity.StockStatus
	buckets := make(map[entity.StockStatus][]entity.InventoryItem)
	dirty := false
	for _, item := range items {
		if !item.Status.IsDegraded() {
			continue
		}
		if !notified.add(item.NotificationKey()) {
			continue
		}
		dirty = true
		if _, ok := buckets[item.Status]; !ok {
			order = append(order, item.Status)
		}
		buckets[item.Status] = append(buckets[item.Status], item)
	}

	if dirty {
		if err := n.saveNotified(ctx, notified); err != nil {
			return err
		}
	}

	now := n.now()
	for _, status := range order {
		alert := n.buildAlert(status, buckets[status], now)
		n.log.Info().
			Str("status", string(status)).
			Int("items", len(alert.Items)).
			Str("dedup_key", alert.DedupKey).
			Msg("alerta de stock emitida")
		n.sink.Notify(ctx, alert)
	}
	return nil
}

// ResetNotified borra el conjunto persistido para que los ítems vuelvan a alertar.
func (n *Notifier) ResetNotified(ctx context.Context) error {
	n.cycleMu.Lock()
	defer n.cycleMu.Unlock()
	if err := n.store.Delete(ctx, n.cfg.StorageKey); err != nil {
		return fmt.Errorf("borrar conjunto notificado: %w", err)
	}
	return nil
}

// Notified devuelve las claves {id}-{status} ya notificadas, en orden de alta.
func (n *Notifier) Notified(ctx context.Context) ([]string, error) {
	n.cycleMu.Lock()
	defer n.cycleMu.Unlock()
	set, err := n.loadNotified(ctx)
	if err != nil {
		return nil, err
	}
	return set.keys, nil
}

func (n *Notifier) buildAlert(status entity.StockStatus, items []entity.InventoryItem, now time.Time) entity.Alert {
	names := make([]string, 0, len(items))
	snapshots := make([]entity.Snapshot, 0, len(items))
	for _, item := range items {
		names = append(names, item.DisplayName())
		snapshots = append(snapshots, entity.Snapshot{
			ItemID:         item.ID,
			Name:           item.DisplayName(),
			Status:         item.Status,
			AvailableStock: item.AvailableStock,
			ObservedAt:     now,
		})
	}

	listed := names
	if len(listed) > maxListedNames {
		listed = listed[:maxListedNames]
	}
	extra := ""
	if len(names) > maxListedNames {
		extra = fmt.Sprintf(" +%d more", len(names)-maxListedNames)
	}

	alert := entity.Alert{
		ID:        n.newID(),
		UserID:    n.cfg.UserID,
		Status:    status,
		Items:     snapshots,
		Total:     len(items),
		CreatedAt: now,
	}
	if status == entity.StatusOutOfStock {
		alert.Severity = entity.SeverityError
		alert.Message = "Out of Stock: " + strings.Join(listed, ", ") + extra
		alert.Description = "Stock has reached zero. Reorder immediately."
		alert.Duration = outOfStockDuration
	} else {
		alert.Severity = entity.SeverityWarning
		alert.Message = "Low Stock: " + strings.Join(listed, ", ") + extra
		alert.Description = "Stock is below the reorder threshold."
		alert.Duration = lowStockDuration
	}
	alert.DedupKey = string(status) + "-" + alert.ID
	return alert
}

// notifiedSet conjunto de claves que conserva el orden de inserción al serializar.
type notifiedSet struct {
	keys []string
	set  map[string]struct{}
}

func (s *notifiedSet) add(key string) bool {
	if _, ok := s.set[key]; ok {
		return false
	}
	s.set[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

// loadNotified lee el arreglo JSON persistido. Un valor corrupto se trata como vacío.
func (n *Notifier) loadNotified(ctx context.Context) (*notifiedSet, error) {
	s := &notifiedSet{set: make(map[string]struct{})}
	raw, found, err := n.store.Get(ctx, n.cfg.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("leer conjunto notificado: %w", err)
	}
	if !found || raw == "" {
		return s, nil
	}
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		n.log.Debug().Err(err).Msg("conjunto notificado corrupto, se reinicia")
		return s, nil
	}
	for _, k := range keys {
		s.add(k)
	}
	return s, nil
}

func (n *Notifier) saveNotified(ctx context.Context, s *notifiedSet) error {
	raw, err := json.Marshal(s.keys)
	if err != nil {
		return fmt.Errorf("serializar conjunto notificado: %w", err)
	}
	if err := n.store.Set(ctx, n.cfg.StorageKey, string(raw)); err != nil {
		return fmt.Errorf("guardar conjunto notificado: %w", err)
	}
	return nil
}
