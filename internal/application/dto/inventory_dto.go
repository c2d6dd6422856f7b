package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// InventoryItemResponse fila de inventario con los nombres de campo que usa el frontend.
type InventoryItemResponse struct {
	ID             string          `json:"id"`
	ProductName    string          `json:"product_name"`
	SKU            string          `json:"sku"`
	Category       string          `json:"category"`
	AvailableStock decimal.Decimal `json:"availableStock"`
	Threshold      decimal.Decimal `json:"threshold"`
	Status         string          `json:"status"`
	Location       string          `json:"location"`
	LastUpdated    string          `json:"lastUpdated"`
}

// InventoryListResponse listado paginado.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ToInventoryItemResponse mapea la entidad al DTO.
func ToInventoryItemResponse(i entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:             i.ID,
		ProductName:    i.ProductName,
		SKU:            i.SKU,
		Category:       i.Category,
		AvailableStock: i.AvailableStock,
		Threshold:      i.Threshold,
		Status:         string(i.Status),
		Location:       i.Location,
		LastUpdated:    i.LastUpdated,
	}
}
