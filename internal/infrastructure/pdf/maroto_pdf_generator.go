// Package pdf implementa la generación de documentos con Maroto v2.
//
// Layout de la página A4 (factura y cotización comparten estructura):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización + ID fiscal  │  N° Documento + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                            │
//	│  CLIENTE: Nombre + ID fiscal + contacto                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / Descuento / TOTAL          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: notas + leyenda                                    │
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator y
// billing.QuotationPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

type docLine struct {
	Quantity    decimal.Decimal
	Description string
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// GenerateInvoicePDF genera el PDF de una factura y devuelve sus bytes.
// Los Items de la factura deben venir precargados.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	org *entity.Organization,
	client *entity.Client,
) ([]byte, error) {
	lines := make([]docLine, 0, len(invoice.Items))
	for _, it := range invoice.Items {
		lines = append(lines, docLine{
			Quantity:    it.Quantity,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	fecha := invoice.IssueDate.Format("02/01/2006")

	m := newDocument("Factura "+invoice.InvoiceNumber, org.Name)
	m.AddRows(headerRow("FACTURA", invoice.InvoiceNumber, fecha, org))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(org))
	m.AddRows(clienteRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(
		invoice.Currency,
		invoice.Subtotal,
		invoice.TaxAmount,
		invoice.DiscountAmount,
		invoice.TotalAmount,
	))

	m.AddRows(line.NewRow(3))
	for _, r := range footerRows(invoice.Notes, dueDateLegend(invoice)) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateQuotationPDF genera el PDF de una cotización y devuelve sus bytes.
// Los Items de la cotización deben venir precargados.
func (g *MarotoPDFGenerator) GenerateQuotationPDF(
	_ context.Context,
	quotation *entity.Quotation,
	org *entity.Organization,
	client *entity.Client,
) ([]byte, error) {
	lines := make([]docLine, 0, len(quotation.Items))
	for _, it := range quotation.Items {
		lines = append(lines, docLine{
			Quantity:    it.Quantity,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	fecha := quotation.CreatedAt.Format("02/01/2006")

	m := newDocument("Cotización "+quotation.QuotationNumber, org.Name)
	m.AddRows(headerRow("COTIZACIÓN", quotation.QuotationNumber, fecha, org))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(org))
	m.AddRows(clienteRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(
		quotation.Currency,
		quotation.Subtotal,
		quotation.TaxTotal,
		quotation.DiscountTotal,
		quotation.GrandTotal,
	))

	m.AddRows(line.NewRow(3))
	for _, r := range footerRows(quotation.Notes, validityLegend(quotation)) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cotización: %w", err)
	}
	return doc.GetBytes(), nil
}

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la organización + ID fiscal (izq), tipo + número + fecha (der).
func headerRow(kind, number, fecha string, org *entity.Organization) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(org.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ID Fiscal: "+org.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(kind, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos de contacto de la organización emisora.
func emisorRow(org *entity.Organization) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(org.Address, "—"),
				nonEmpty(org.Phone, "—"),
				nonEmpty(org.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clienteRow: datos del cliente destinatario.
func clienteRow(client *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("ID Fiscal: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(client.TaxID, "—"),
				nonEmpty(client.Email, "—"),
				nonEmpty(client.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea del documento.
func tableDetailRows(lines []docLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, d := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				d.Quantity.StringFixed(2),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				d.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				d.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				d.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(currency string, subtotal, tax, discount, grand decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(d decimal.Decimal) core.Component {
		return text.New(d.StringFixed(2)+" "+currency, props.Text{
			Size: 9, Align: align.Right, Right: 1,
		})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(grand.StringFixed(2)+" "+currency, props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1,
	})

	return row.New(30).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Impuestos:"),
			label("Descuento:"),
			grandLabel,
		),
		col.New(3).Add(
			value(subtotal),
			value(tax),
			value(discount),
			grandValue,
		),
		col.New(3),
	)
}

// footerRows: notas libres + leyenda del documento.
func footerRows(notes, legend string) []core.Row {
	var rows []core.Row
	if notes != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)))
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	if legend != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(legend, props.Text{
				Size: 7, Color: colorGray, Top: 2, Align: align.Center,
			}),
		)))
	}
	return rows
}

func dueDateLegend(invoice *entity.Invoice) string {
	if invoice.DueDate == nil {
		return ""
	}
	return "Vencimiento: " + invoice.DueDate.Format("02/01/2006")
}

func validityLegend(quotation *entity.Quotation) string {
	if quotation.ValidUntil == nil {
		return "Cotización sin fecha de validez definida."
	}
	return "Cotización válida hasta el " + quotation.ValidUntil.Format("02/01/2006")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
