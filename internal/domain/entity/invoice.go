package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura.
// El reconciliador de pagos solo alterna entre Sent y Paid; Draft y Cancelled
// se asignan manualmente y Cancelled nunca se sobreescribe automáticamente.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// IsValidInvoiceStatus informa si s es un estado de factura conocido.
func IsValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice representa la cabecera de una factura.
// NetTotal (montant HT) y GrossTotal (montant TTC) son agregados de sus líneas
// y se recalculan junto con cada mutación de líneas.
type Invoice struct {
	ID           string
	Number       string // número legible único, ej. FACT-2024-001
	ClientID     string
	ClientName   string // snapshot del nombre del cliente al crear
	IssueDate    time.Time
	DueDate      time.Time
	Lines        []InvoiceLine
	NetTotal     decimal.Decimal
	GrossTotal   decimal.Decimal
	Status       string
	Notes        string
	PaymentTerms string
}

// InvoiceLine representa una línea de factura. Precio, TVA y nombre del
// producto son snapshots tomados al añadir la línea; los montos son derivados:
//
//	net   = precio × cantidad × (1 − descuento/100)
//	gross = net × (1 + tva/100)
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Discount    decimal.Decimal // porcentaje de remise: 0–100
	NetAmount   decimal.Decimal
	GrossAmount decimal.Decimal
}
