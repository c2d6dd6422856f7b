package notifier

import "time"

// SetClock reemplaza el reloj del gestor en tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Sweep expone la expiración de sesiones inactivas.
func (m *Manager) Sweep() { m.sweep() }
