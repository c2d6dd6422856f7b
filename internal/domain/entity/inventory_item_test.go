package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		available, threshold int64
		want                 entity.StockStatus
	}{
		{0, 10, entity.StatusOutOfStock},
		{3, 10, entity.StatusLowStock},
		{10, 10, entity.StatusInStock},
		{25, 10, entity.StatusInStock},
		{0, 0, entity.StatusOutOfStock},
	}
	for _, tc := range cases {
		got := entity.DeriveStatus(decimal.NewFromInt(tc.available), decimal.NewFromInt(tc.threshold))
		assert.Equal(t, tc.want, got, "stock=%d umbral=%d", tc.available, tc.threshold)
	}
}

func TestInventoryItem_DisplayNameYClave(t *testing.T) {
	item := entity.InventoryItem{ID: "42", SKU: "SKU-42", Status: entity.StatusLowStock}
	assert.Equal(t, "SKU-42", item.DisplayName())
	assert.Equal(t, "42-low-stock", item.NotificationKey())

	item.ProductName = "Leche entera"
	assert.Equal(t, "Leche entera", item.DisplayName())
}

func TestStockStatus_IsDegraded(t *testing.T) {
	assert.True(t, entity.StatusLowStock.IsDegraded())
	assert.True(t, entity.StatusOutOfStock.IsDegraded())
	assert.False(t, entity.StatusInStock.IsDegraded())
	assert.False(t, entity.StockStatus("discontinued").IsDegraded())
}
