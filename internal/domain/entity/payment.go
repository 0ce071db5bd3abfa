package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank-transfer"
	PaymentMethodCash         = "cash"
	PaymentMethodCheck        = "check"
	PaymentMethodOther        = "other"
)

// Estados de un pago. Solo Completed cuenta para saldar una factura.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusFailed    = "failed"
)

// IsValidPaymentMethod informa si m es un método de pago conocido.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// IsValidPaymentStatus informa si s es un estado de pago conocido.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusCancelled, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}

// Payment representa un pago aplicado contra una factura.
// InvoiceNumber, ClientID y ClientName son snapshots tomados al registrar el
// pago; no se actualizan si la factura cambia de cliente después.
type Payment struct {
	ID            string
	InvoiceID     string
	InvoiceNumber string
	ClientID      string
	ClientName    string
	Amount        decimal.Decimal // > 0
	Method        string
	Status        string
	Reference     string
	Notes         string
	PaymentDate   time.Time
	CreatedAt     time.Time
}
