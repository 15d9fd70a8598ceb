// Package pdf implementa la generación del remito de entrega de una
// requisición (delivery note) usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del sistema │ N° de requisición + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINO: Departamento solicitante                           │
//	│  ORIGEN: Almacén que entrega                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Artículo | Unidad | Cantidad                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Entregado por / Recibido por                        │
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

	"github.com/medtrack/medtrack-api/internal/application/requisition"
	"github.com/medtrack/medtrack-api/internal/domain/entity"
)

var _ requisition.DeliveryNoteGenerator = (*MarotoDeliveryNoteGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoDeliveryNoteGenerator implementa requisition.DeliveryNoteGenerator usando Maroto v2.
type MarotoDeliveryNoteGenerator struct{}

// NewMarotoDeliveryNoteGenerator construye el generador.
func NewMarotoDeliveryNoteGenerator() *MarotoDeliveryNoteGenerator {
	return &MarotoDeliveryNoteGenerator{}
}

// GenerateDeliveryNote genera el remito PDF y devuelve sus bytes.
func (g *MarotoDeliveryNoteGenerator) GenerateDeliveryNote(
	_ context.Context,
	req *entity.Requisition,
	item *entity.Item,
	store *entity.Store,
	dept *entity.Department,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Delivery Note", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(store, dept))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRow(item, req.Quantity))

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar remito: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del sistema (izq) y número de requisición + fecha (der).
func headerRow(req *entity.Requisition) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("MedTrack", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Healthcare Inventory", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DELIVERY NOTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(req.ID, props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+req.UpdatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partiesRow: almacén de origen y departamento destino.
func partiesRow(store *entity.Store, dept *entity.Department) core.Row {
	deptName := "—"
	if dept != nil {
		deptName = fmt.Sprintf("%s (%s)", dept.Name, dept.Code)
	}
	return row.New(14).Add(
		col.New(6).Add(
			text.New("ORIGEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (%s)", store.Name, store.Code), props.Text{
				Size: 9, Top: 7,
			}),
		),
		col.New(6).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(deptName, props.Text{Size: 9, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Artículo", 6, align.Left),
		h("Unidad", 2, align.Center),
		h("Cantidad", 2, align.Right),
	)
}

func itemRow(item *entity.Item, quantity int64) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(item.SKU, props.Text{Size: 8, Top: 1})),
		col.New(6).Add(text.New(item.Name, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(item.UnitOfMeasure, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", quantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

// signatureRow: espacios de firma para quien entrega y quien recibe.
func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_______________________________", props.Text{
				Size: 9, Align: align.Center, Top: 14, Color: colorGray,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 20, Color: colorGray,
			}),
		)
	}
	return row.New(26).Add(
		sig("Entregado por (Store Manager)"),
		sig("Recibido por (Departamento)"),
	)
}
