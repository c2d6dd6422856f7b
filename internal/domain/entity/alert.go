package entity

import "time"

// Severidades de alerta (toast).
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Alert alerta agrupada emitida por el notificador de stock bajo.
// Una alerta cubre todos los ítems nuevos de un mismo estado en un ciclo de sondeo.
type Alert struct {
	ID          string
	UserID      string
	DedupKey    string
	Severity    string
	Status      StockStatus
	Message     string
	Description string
	Duration    time.Duration
	Items       []Snapshot
	Total       int // ítems cubiertos; Message solo nombra los primeros
	CreatedAt   time.Time
}
