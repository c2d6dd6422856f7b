package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

// ManagerConfig parámetros del gestor de notificadores por sesión.
type ManagerConfig struct {
	Notifier    Config        // UserID se completa por sesión
	IdleTimeout time.Duration // 0 = las sesiones solo terminan con Deactivate/Shutdown
}

// Manager mantiene un notificador por usuario autenticado. Activate lo arranca
// (inicio de sesión), Deactivate lo detiene (cierre de sesión) y Run expira
// las sesiones inactivas.
type Manager struct {
	client InventoryClient
	store  repository.KeyValueStore
	sink   AlertSink
	log    zerolog.Logger
	cfg    ManagerConfig
	opts   []Option
	now    func() time.Time

	root   context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*session
	stopping map[string]chan struct{} // se cierra cuando el notificador anterior terminó
}

type session struct {
	notifier *Notifier
	source   *userSource
	lastSeen time.Time
}

// NewManager construye el gestor. opts se aplican a cada Notifier creado.
func NewManager(client InventoryClient, store repository.KeyValueStore, sink AlertSink, log zerolog.Logger, cfg ManagerConfig, opts ...Option) *Manager {
	root, cancel := context.WithCancel(context.Background())
	return &Manager{
		client:   client,
		store:    store,
		sink:     sink,
		log:      log.With().Str("component", "notifier_manager").Logger(),
		cfg:      cfg,
		opts:     opts,
		now:      time.Now,
		root:     root,
		cancel:   cancel,
		sessions: make(map[string]*session),
		stopping: make(map[string]chan struct{}),
	}
}

// Activate arranca el notificador del usuario si no está activo. Si ya lo está,
// actualiza la credencial usada en los sondeos y marca la sesión como vista.
// Si el notificador anterior del usuario se está deteniendo, espera a que termine.
func (m *Manager) Activate(userID, token string) {
	if userID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		ch, ok := m.stopping[userID]
		if !ok {
			break
		}
		m.mu.Unlock()
		<-ch
		m.mu.Lock()
	}
	if m.root.Err() != nil {
		return
	}
	if s, ok := m.sessions[userID]; ok {
		s.source.setToken(token)
		s.lastSeen = m.now()
		return
	}

	src := &userSource{client: m.client, token: token}
	cfg := m.cfg.Notifier
	cfg.UserID = userID
	n := New(src, ScopeStore(m.store, userID), m.sink, m.log, cfg, m.opts...)
	m.sessions[userID] = &session{notifier: n, source: src, lastSeen: m.now()}
	n.Start(m.root)
	m.log.Info().Str("user_id", userID).Msg("notificador de stock activado")
}

// Deactivate detiene el notificador del usuario (intervalo y timer de medianoche).
func (m *Manager) Deactivate(userID string) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.sessions, userID)
	done := make(chan struct{})
	m.stopping[userID] = done
	m.mu.Unlock()

	s.notifier.Stop()

	m.mu.Lock()
	delete(m.stopping, userID)
	close(done)
	m.mu.Unlock()
	m.log.Info().Str("user_id", userID).Msg("notificador de stock detenido")
}

// Active informa si el usuario tiene un notificador activo.
func (m *Manager) Active(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	return ok
}

// Notifier devuelve el notificador activo del usuario.
func (m *Manager) Notifier(userID string) (*Notifier, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, false
	}
	return s.notifier, true
}

// ResetNotified borra el conjunto notificado del usuario aunque no tenga sesión activa.
func (m *Manager) ResetNotified(ctx context.Context, userID string) error {
	if n, ok := m.Notifier(userID); ok {
		return n.ResetNotified(ctx)
	}
	key := m.cfg.Notifier.StorageKey
	if key == "" {
		key = DefaultStorageKey
	}
	return ScopeStore(m.store, userID).Delete(ctx, key)
}

// Run expira periódicamente las sesiones sin actividad durante IdleTimeout.
// Bloquea hasta que ctx termine.
func (m *Manager) Run(ctx context.Context) error {
	if m.cfg.IdleTimeout <= 0 {
		<-ctx.Done()
		return nil
	}
	interval := m.cfg.IdleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	cutoff := m.now().Add(-m.cfg.IdleTimeout)
	m.mu.Lock()
	var idle []string
	for userID, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			idle = append(idle, userID)
		}
	}
	m.mu.Unlock()
	for _, userID := range idle {
		m.log.Debug().Str("user_id", userID).Msg("sesión inactiva expirada")
		m.Deactivate(userID)
	}
}

// Shutdown detiene todos los notificadores. Activate posterior no tiene efecto.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*session)
	m.cancel()
	m.mu.Unlock()
	for _, s := range sessions {
		s.notifier.Stop()
	}
}

// userSource vincula el cliente de inventario con la credencial vigente del usuario.
type userSource struct {
	client InventoryClient
	mu     sync.RWMutex
	token  string
}

func (s *userSource) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *userSource) ListInventory(ctx context.Context) ([]entity.InventoryItem, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	return s.client.ListInventory(ctx, token)
}
