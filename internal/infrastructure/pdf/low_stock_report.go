// Package pdf genera el reporte PDF de stock bajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha      │  Solicitado por / totales     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | SKU | Ubicación | Disp. | Umbral | Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS RECIENTES (24 h)                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR a la página de stock bajo                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-dashboard/internal/application/stock"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

var _ stock.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 190, Green: 30, Blue: 45}
	colorWarning = &props.Color{Red: 200, Green: 120, Blue: 0}
)

// MarotoReportGenerator implementa stock.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockPDF(_ context.Context, r *stock.LowStockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor(nonEmpty(r.RequestedBy, "dashboard"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(r.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ítems con stock bajo.", props.Text{Size: 9, Top: 2, Align: align.Center, Color: colorGray}),
		)))
	}
	m.AddRows(itemRows(r.Items)...)

	if len(r.Alerts) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(alertRows(r.Alerts)...)
	}

	if r.Link != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(footerRow(r.Link))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *stock.LowStockReport) core.Row {
	var out, low int
	for _, it := range r.Items {
		if it.Status == entity.StatusOutOfStock {
			out++
		} else {
			low++
		}
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Solicitado por: "+nonEmpty(r.RequestedBy, "-"), props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray}),
			text.New(fmt.Sprintf("Out of Stock: %d", out), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7, Color: colorDanger}),
			text.New(fmt.Sprintf("Low Stock: %d", low), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 12, Color: colorWarning}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("SKU", 2, align.Left),
		h("Ubicación", 2, align.Left),
		h("Disp.", 1, align.Right),
		h("Umbral", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

func itemRows(items []entity.InventoryItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		statusColor := colorWarning
		if it.Status == entity.StatusOutOfStock {
			statusColor = colorDanger
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(it.DisplayName(), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(nonEmpty(it.Location, "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(it.AvailableStock.StringFixed(0), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
			col.New(1).Add(text.New(it.Threshold.StringFixed(0), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
			col.New(2).Add(text.New(string(it.Status), props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Align: align.Center, Color: statusColor})),
		))
	}
	return rows
}

func alertRows(alerts []*entity.Alert) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ALERTAS RECIENTES (24 h)", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, a := range alerts {
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(a.CreatedAt.Format("02/01 15:04"), props.Text{Size: 7, Top: 0.5, Color: colorGray})),
			col.New(10).Add(text.New(a.Message, props.Text{Size: 7, Top: 0.5})),
		))
	}
	return rows
}

func footerRow(link string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(link, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escanea el código QR para abrir la vista de stock bajo en el dashboard.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(link, props.Text{Size: 7, Top: 14, Left: 3, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
