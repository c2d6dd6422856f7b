package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus estado de stock reportado por el API de inventario.
type StockStatus string

// Estados de stock.
const (
	StatusInStock    StockStatus = "in-stock"
	StatusLowStock   StockStatus = "low-stock"
	StatusOutOfStock StockStatus = "out-of-stock"
)

// IsDegraded informa si el estado requiere alerta (low-stock u out-of-stock).
func (s StockStatus) IsDegraded() bool {
	return s == StatusLowStock || s == StatusOutOfStock
}

// DeriveStatus calcula el estado a partir del stock disponible y el umbral de reorden:
// cero → out-of-stock, por debajo del umbral → low-stock, resto → in-stock.
func DeriveStatus(available, threshold decimal.Decimal) StockStatus {
	switch {
	case available.LessThanOrEqual(decimal.Zero):
		return StatusOutOfStock
	case available.LessThan(threshold):
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// InventoryItem representa una fila de inventario por tienda tal como la entrega el API remoto.
// Es un payload opaco para el dashboard salvo por ID, nombre/SKU y estado.
type InventoryItem struct {
	ID             string
	ProductName    string
	SKU            string
	Category       string
	AvailableStock decimal.Decimal
	Threshold      decimal.Decimal
	Status         StockStatus
	Location       string
	LastUpdated    string
}

// DisplayName nombre a mostrar: nombre del producto o, si falta, el SKU.
func (i InventoryItem) DisplayName() string {
	if i.ProductName != "" {
		return i.ProductName
	}
	return i.SKU
}

// NotificationKey clave de deduplicación {id}-{status}.
func (i InventoryItem) NotificationKey() string {
	return i.ID + "-" + string(i.Status)
}

// Snapshot copia mínima del ítem guardada junto a cada alerta.
type Snapshot struct {
	ItemID         string
	Name           string
	Status         StockStatus
	AvailableStock decimal.Decimal
	ObservedAt     time.Time
}
