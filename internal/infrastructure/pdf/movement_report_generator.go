// Package pdf genera el reporte imprimible de movimientos de stock de un insumo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sede  │  Insumo (SKU) + fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: stock actual / mínimo / punto de reorden / costo   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cant | Stock ant. | Stock nuevo | Ref │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/dcastano/fogon-api/internal/application/reports"
	"github.com/dcastano/fogon-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 140, Green: 60, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.MovementReportPDFGenerator = (*MovementReportGenerator)(nil)

// MovementReportGenerator implementa reports.MovementReportPDFGenerator usando Maroto v2.
type MovementReportGenerator struct{}

// NewMovementReportGenerator construye el generador.
func NewMovementReportGenerator() *MovementReportGenerator { return &MovementReportGenerator{} }

// GenerateMovementReport genera el PDF y devuelve sus bytes.
func (g *MovementReportGenerator) GenerateMovementReport(
	_ context.Context,
	venue *entity.Venue,
	material *entity.RawMaterial,
	movements []*entity.StockMovement,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de movimientos de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(venue, material))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(material))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(movements) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: sede (izq) e insumo + fecha (der).
func headerRow(venue *entity.Venue, material *entity.RawMaterial) core.Row {
	venueName := "—"
	if venue != nil {
		venueName = venue.Name
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(venueName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de movimientos de stock", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(material.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("SKU: "+material.SKU+"  ·  Unidad: "+material.Unit, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Categoría: "+material.Category, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// summaryRow: cifras de stock y costo del insumo al momento del reporte.
func summaryRow(material *entity.RawMaterial) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("Stock actual", material.CurrentStock.String()+" "+material.Unit),
		cell("Stock mínimo", material.MinimumStock.String()+" "+material.Unit),
		cell("Punto de reorden", material.ReorderPoint.String()+" "+material.Unit),
		cell("Costo promedio/unidad", "$"+material.AvgCostPerUnit.StringFixed(2)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Cantidad", 2, align.Right),
		h("Stock ant.", 2, align.Right),
		h("Stock nuevo", 2, align.Right),
		h("Referencia", 2, align.Left),
	)
}

func tableMovementRows(movements []*entity.StockMovement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		ref := mv.Reference
		if ref == "" {
			ref = mv.Reason
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				mv.CreatedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 7.5, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				mv.Type,
				props.Text{Size: 7.5, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				mv.Quantity.String(),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				mv.PreviousStock.String(),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				mv.NewStock.String(),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				ref,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}
