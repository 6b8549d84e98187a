// Package pdf genera los comprobantes en PDF de recepciones y entregas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del documento  │  Número + Fecha + Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: proveedor/cliente, OC, factura, lote, entregó/recibió│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lote insumo | Categoría | Cantidad | Merma | Unidad │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES + QR con número de documento                        │
//	│  FIRMAS: Entregó / Recibió                                   │
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

	"github.com/jhoicas/Insumos-api/internal/application/delivery"
	"github.com/jhoicas/Insumos-api/internal/application/reception"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

var (
	_ reception.PDFGenerator = (*MarotoPDFGenerator)(nil)
	_ delivery.PDFGenerator  = (*MarotoPDFGenerator)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 63, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[string]string{
	entity.StatusPending:   "PENDIENTE",
	entity.StatusCompleted: "COMPLETADA",
	entity.StatusCancelled: "CANCELADA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera comprobantes de recepción y entrega con Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador; company aparece como autor y en el encabezado.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// detailLine renglón común a ambos documentos.
type detailLine struct {
	lotCode  string
	category string
	amount   int
	waste    int
	unit     string
	notes    string
}

// ReceptionPDF genera el comprobante de una recepción de insumos.
func (g *MarotoPDFGenerator) ReceptionPDF(_ context.Context, r *entity.Reception) ([]byte, error) {
	fields := [][2]string{
		{"Proveedor", supplierName(r.Supplier)},
		{"Cliente", clientName(r.Client)},
		{"Orden de compra", nonEmpty(r.PurchaseOrder, "-")},
		{"Factura", nonEmpty(r.Invoice, "-")},
	}
	lines := make([]detailLine, 0, len(r.Details))
	for _, d := range r.Details {
		lines = append(lines, detailLine{
			lotCode: lineLot(d.Line, d.InventoryLineID), category: lineCategory(d.Line),
			amount: d.Amount, unit: d.Unit, notes: d.Notes,
		})
	}
	return g.render(document{
		title:       "RECEPCIÓN DE INSUMOS",
		number:      r.Number,
		date:        r.Date.Format("02/01/2006"),
		status:      r.Status,
		fields:      fields,
		lines:       lines,
		withWaste:   false,
		deliveredBy: r.DeliveredBy,
		receivedBy:  r.ReceivedBy,
		notes:       r.Notes,
	})
}

// DeliveryPDF genera el comprobante de una entrega de insumos.
func (g *MarotoPDFGenerator) DeliveryPDF(_ context.Context, d *entity.Delivery) ([]byte, error) {
	lot := "-"
	if d.Lot != nil {
		lot = d.Lot.LotCode
	}
	fields := [][2]string{
		{"Cliente", clientName(d.Client)},
		{"Orden de producción", nonEmpty(d.ProductionOrder, "-")},
		{"Lote de producción", lot},
	}
	lines := make([]detailLine, 0, len(d.Details))
	for _, det := range d.Details {
		lines = append(lines, detailLine{
			lotCode: lineLot(det.Line, det.InventoryLineID), category: lineCategory(det.Line),
			amount: det.Amount, waste: det.WasteAmount, unit: det.Unit, notes: det.Notes,
		})
	}
	return g.render(document{
		title:       "ENTREGA DE INSUMOS",
		number:      d.Number,
		date:        d.Date.Format("02/01/2006"),
		status:      d.Status,
		fields:      fields,
		lines:       lines,
		withWaste:   true,
		deliveredBy: d.DeliveredBy,
		receivedBy:  d.ReceivedBy,
		notes:       d.Notes,
	})
}

type document struct {
	title       string
	number      string
	date        string
	status      string
	fields      [][2]string
	lines       []detailLine
	withWaste   bool
	deliveredBy string
	receivedBy  string
	notes       string
}

func (g *MarotoPDFGenerator) render(doc document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.title+" "+doc.number, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(fieldRows(doc.fields)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(doc.withWaste))
	m.AddRows(tableDetailRows(doc.lines, doc.withWaste)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))
	if doc.notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Notas: "+doc.notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(line.NewRow(15))
	m.AddRows(signatureRow(doc.deliveredBy, doc.receivedBy))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(doc document) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.title, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(doc.number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+doc.date, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New(nonEmpty(statusLabels[doc.status], doc.status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

// fieldRows: pares etiqueta/valor de la cabecera, dos por fila.
func fieldRows(fields [][2]string) []core.Row {
	rows := make([]core.Row, 0, (len(fields)+1)/2)
	for i := 0; i < len(fields); i += 2 {
		cols := []core.Col{fieldCol(fields[i])}
		if i+1 < len(fields) {
			cols = append(cols, fieldCol(fields[i+1]))
		} else {
			cols = append(cols, col.New(6))
		}
		rows = append(rows, row.New(10).Add(cols...))
	}
	return rows
}

func fieldCol(f [2]string) core.Col {
	return col.New(6).Add(
		text.New(f[0], props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
		text.New(f[1], props.Text{Size: 9, Top: 5}),
	)
}

func tableHeaderRow(withWaste bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	if withWaste {
		return row.New(8).Add(
			h("Lote insumo", 3, align.Left),
			h("Categoría", 3, align.Left),
			h("Cantidad", 2, align.Right),
			h("Merma", 2, align.Right),
			h("Unidad", 2, align.Center),
		).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h("Lote insumo", 4, align.Left),
		h("Categoría", 4, align.Left),
		h("Cantidad", 2, align.Right),
		h("Unidad", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(lines []detailLine, withWaste bool) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(lines))
	for _, d := range lines {
		if withWaste {
			result = append(result, row.New(7).Add(
				cell(d.lotCode, 3, align.Left),
				cell(d.category, 3, align.Left),
				cell(formatThousands(d.amount), 2, align.Right),
				cell(formatThousands(d.waste), 2, align.Right),
				cell(d.unit, 2, align.Center),
			))
		} else {
			result = append(result, row.New(7).Add(
				cell(d.lotCode, 4, align.Left),
				cell(d.category, 4, align.Left),
				cell(formatThousands(d.amount), 2, align.Right),
				cell(d.unit, 2, align.Center),
			))
		}
	}
	return result
}

func totalsRow(doc document) core.Row {
	total, waste := 0, 0
	for _, d := range doc.lines {
		total += d.amount
		waste += d.waste
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	labels := col.New(4).Add(label("Renglones:"), label("Total:"))
	values := col.New(3).Add(value(fmt.Sprint(len(doc.lines))), value(formatThousands(total)))
	if doc.withWaste {
		labels = col.New(4).Add(label("Renglones:"), label("Total entregado:"), label("Total merma:"))
		values = col.New(3).Add(value(fmt.Sprint(len(doc.lines))), value(formatThousands(total)), value(formatThousands(waste)))
	}
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(doc.number, props.Rect{Percent: 90, Center: true})),
		col.New(2),
		labels,
		values,
	)
}

func signatureRow(deliveredBy, receivedBy string) core.Row {
	sig := func(title, name string) core.Col {
		return col.New(6).Add(
			text.New("_______________________________", props.Text{Align: align.Center}),
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 5}),
			text.New(nonEmpty(name, " "), props.Text{Size: 8, Align: align.Center, Top: 9, Color: colorGray}),
		)
	}
	return row.New(16).Add(sig("Entregó", deliveredBy), sig("Recibió", receivedBy))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func supplierName(s *entity.Supplier) string {
	if s == nil {
		return "-"
	}
	return s.Name
}

func clientName(c *entity.Client) string {
	if c == nil {
		return "-"
	}
	return c.Name
}

func lineLot(l *entity.InventoryLine, fallback string) string {
	if l == nil {
		return fallback
	}
	return l.LotCode
}

func lineCategory(l *entity.InventoryLine) string {
	if l == nil {
		return ""
	}
	return l.CategoryName
}

// formatThousands inserta comas de miles. Ej: 25000 → "25,000".
func formatThousands(n int) string {
	s := fmt.Sprint(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	size := len(s)
	if size <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, size+size/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (size-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
