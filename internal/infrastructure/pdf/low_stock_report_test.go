package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dashboard/internal/application/stock"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/pdf"
)

func TestGenerateLowStockPDF(t *testing.T) {
	report := &stock.LowStockReport{
		Title:       "Low Stock Report",
		GeneratedAt: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		RequestedBy: "Ana",
		Items: []entity.InventoryItem{
			{ID: "3", ProductName: "LACK Side Table", SKU: "SKU-003456", Location: "C-04-2", AvailableStock: decimal.Zero, Threshold: decimal.NewFromInt(60), Status: entity.StatusOutOfStock},
			{ID: "2", ProductName: "MALM Bed Frame", SKU: "SKU-002345", AvailableStock: decimal.NewFromInt(12), Threshold: decimal.NewFromInt(40), Status: entity.StatusLowStock},
		},
		Alerts: []*entity.Alert{{ID: "a1", Message: "Out of Stock: LACK Side Table", CreatedAt: time.Now()}},
		Link:   "https://dash.example.com/inventory/low-stock",
	}

	out, err := pdf.NewMarotoReportGenerator().GenerateLowStockPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el resultado debe ser un PDF")
}

func TestGenerateLowStockPDF_SinItems(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator().GenerateLowStockPDF(context.Background(), &stock.LowStockReport{
		Title:       "Low Stock Report",
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
