// Package stock expone el inventario remoto al dashboard: listado paginado,
// ítems con stock bajo y el reporte PDF de stock bajo.
package stock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/application/notifier"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

// LowStockReport datos del reporte PDF.
type LowStockReport struct {
	Title       string
	GeneratedAt time.Time
	RequestedBy string
	Items       []entity.InventoryItem // solo low-stock / out-of-stock
	Alerts      []*entity.Alert        // historial reciente (puede estar vacío)
	Link        string                 // URL de la página de stock bajo; vacío = sin QR
}

// ReportGenerator puerto del generador de PDF.
type ReportGenerator interface {
	GenerateLowStockPDF(ctx context.Context, r *LowStockReport) ([]byte, error)
}

// UseCase casos de uso de inventario del dashboard.
type UseCase struct {
	client    notifier.InventoryClient
	generator ReportGenerator
	history   repository.AlertRepository
	publicURL string
	now       func() time.Time
}

// NewUseCase construye el caso de uso. history puede ser nil.
func NewUseCase(client notifier.InventoryClient, generator ReportGenerator, history repository.AlertRepository, publicURL string) *UseCase {
	return &UseCase{
		client:    client,
		generator: generator,
		history:   history,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

// List página del inventario completo, filtrada opcionalmente por estado.
func (uc *UseCase) List(ctx context.Context, token string, status string, page dto.PageRequest) (*dto.InventoryListResponse, error) {
	page.DefaultPage()
	items, err := uc.client.ListInventory(ctx, token)
	if err != nil {
		return nil, err
	}
	if status != "" {
		filtered := items[:0:0]
		for _, it := range items {
			if string(it.Status) == status {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	total := len(items)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	out := make([]dto.InventoryItemResponse, 0, end-start)
	for _, it := range items[start:end] {
		out = append(out, dto.ToInventoryItemResponse(it))
	}
	return &dto.InventoryListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// LowStock ítems degradados: out-of-stock primero, luego por stock disponible ascendente.
func (uc *UseCase) LowStock(ctx context.Context, token string) ([]entity.InventoryItem, error) {
	items, err := uc.client.ListInventory(ctx, token)
	if err != nil {
		return nil, err
	}
	var out []entity.InventoryItem
	for _, it := range items {
		if it.Status.IsDegraded() {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status == entity.StatusOutOfStock
		}
		return out[i].AvailableStock.LessThan(out[j].AvailableStock)
	})
	return out, nil
}

// LowStockPDF genera el reporte de stock bajo con las alertas de las últimas 24 horas.
func (uc *UseCase) LowStockPDF(ctx context.Context, token, userID, requestedBy string) ([]byte, error) {
	items, err := uc.LowStock(ctx, token)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	report := &LowStockReport{
		Title:       "Low Stock Report",
		GeneratedAt: now,
		RequestedBy: requestedBy,
		Items:       items,
	}
	if uc.publicURL != "" {
		report.Link = uc.publicURL + "/inventory/low-stock"
	}
	if uc.history != nil && userID != "" {
		alerts, err := uc.history.ListByUser(ctx, userID, now.Add(-24*time.Hour), 20)
		if err != nil {
			return nil, fmt.Errorf("historial de alertas: %w", err)
		}
		report.Alerts = alerts
	}
	return uc.generator.GenerateLowStockPDF(ctx, report)
}
