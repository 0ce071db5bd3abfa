// Package pdf implementa la representación gráfica de la factura con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del emisor + SIRET  │  N° Facture + Dates   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÉMETTEUR: Adresse / Tél / Email / TVA                      │
//	│  CLIENT: Nom + adresse + contact                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qté | Désignation | P.U. HT | TVA | Remise | HT     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total HT / TVA / Total TTC                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Conditions de paiement + coordonnées bancaires     │
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

	appbilling "github.com/tu-usuario/facturation-pro/internal/application/billing"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas de estado en francés para el PDF.
var statusLabels = map[string]string{
	entity.InvoiceStatusDraft:     "Brouillon",
	entity.InvoiceStatusSent:      "Envoyée",
	entity.InvoiceStatusPaid:      "Payée",
	entity.InvoiceStatusCancelled: "Annulée",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	seller *entity.BusinessSettings,
	client *entity.Client,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Facture "+invoice.Number, true).
		WithAuthor(seller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(seller))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(invoice.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(invoice, seller) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y número, fechas y estado (der).
func headerRow(invoice *entity.Invoice, seller *entity.BusinessSettings) core.Row {
	issue := invoice.IssueDate.Format("02/01/2006")
	status := statusLabels[invoice.Status]
	if status == "" {
		status = invoice.Status
	}

	right := []core.Component{
		text.New("FACTURE", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorPrimary, Top: 1,
		}),
		text.New(invoice.Number, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New(fmt.Sprintf("Émise le : %s   |   Statut : %s", issue, status), props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	}
	if !invoice.DueDate.IsZero() {
		right = append(right, text.New("Échéance : "+invoice.DueDate.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 18, Color: colorGray,
		}))
	}

	return row.New(22).Add(
		col.New(7).Add(
			text.New(seller.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SIRET : "+nonEmpty(seller.SIRET, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(right...),
	)
}

// sellerRow: datos del emisor.
func sellerRow(seller *entity.BusinessSettings) core.Row {
	address := nonEmpty(seller.Address, "—")
	if seller.City != "" {
		address = fmt.Sprintf("%s, %s %s", address, seller.PostalCode, seller.City)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ÉMETTEUR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Adresse : %s   |   Tél : %s   |   Email : %s   |   TVA : %s",
				address,
				nonEmpty(seller.Phone, "—"),
				nonEmpty(seller.Email, "—"),
				nonEmpty(seller.VATNumber, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clientRow: datos del cliente facturado.
func clientRow(client *entity.Client) core.Row {
	address := client.Address
	if client.City != "" {
		address = fmt.Sprintf("%s, %s %s", address, client.PostalCode, client.City)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("FACTURÉ À", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s   |   Email : %s   |   Tél : %s",
				nonEmpty(address, "—"),
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
		h("Qté", 1, align.Center),
		h("Désignation", 4, align.Left),
		h("P.U. HT", 2, align.Right),
		h("TVA%", 1, align.Center),
		h("Remise%", 2, align.Center),
		h("Montant HT", 2, align.Right),
	)
}

// tableLineRows: una fila por línea de factura.
func tableLineRows(lines []entity.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.UnitPrice.StringFixed(2)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.TaxRate.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.Discount.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.NetAmount.StringFixed(2)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque Total HT / TVA / Total TTC alineado a la derecha.
func totalsRow(invoice *entity.Invoice) core.Row {
	taxTotal := invoice.GrossTotal.Sub(invoice.NetTotal)

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Total HT :"),
			label("TVA :"),
			grandLabel("TOTAL TTC :"),
		),
		col.New(3).Add(
			value(invoice.NetTotal.StringFixed(2)+" €"),
			value(taxTotal.StringFixed(2)+" €"),
			grandValue(invoice.GrossTotal.StringFixed(2)+" €"),
		),
		col.New(3),
	)
}

// footerRows: condiciones de pago, coordenadas bancarias y menciones.
func footerRows(invoice *entity.Invoice, seller *entity.BusinessSettings) []core.Row {
	var rows []core.Row

	if invoice.PaymentTerms != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Conditions de paiement : "+invoice.PaymentTerms, props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		)))
	}
	if seller.BankDetails != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Coordonnées bancaires : "+seller.BankDetails, props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		)))
	}
	if invoice.Notes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(invoice.Notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	if seller.TermsAndConditions != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New(seller.TermsAndConditions, props.Text{
				Size: 6.5, Top: 2, Color: colorGray,
			}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"En cas de retard de paiement, une pénalité de trois fois le taux d'intérêt légal sera appliquée "+
				"(articles L441-10 et D441-5 du Code de commerce), ainsi qu'une indemnité forfaitaire de 40 € "+
				"pour frais de recouvrement.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
