package billing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
)

// ReconcileDecision es el resultado puro de la reconciliación de una factura.
type ReconcileDecision struct {
	Status  string
	Changed bool
}

// TotalCompleted suma los montos de los pagos en estado "completed".
// Pagos pendientes, fallidos, anulados o reembolsados no cubren la factura.
func TotalCompleted(payments []*entity.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == entity.PaymentStatusCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Reconcile decide el estado de la factura según sus pagos completados.
// Reglas, en orden:
//   - una factura anulada nunca cambia automáticamente;
//   - total cubierto ≥ total TTC y estado ≠ paid → paid;
//   - total cubierto < total TTC y estado == paid → sent (reversión);
//   - en cualquier otro caso el estado queda como está.
//
// La función es idempotente: aplicarla dos veces con los mismos pagos no
// produce un segundo cambio.
func Reconcile(invoice *entity.Invoice, payments []*entity.Payment) ReconcileDecision {
	if invoice.Status == entity.InvoiceStatusCancelled {
		return ReconcileDecision{Status: invoice.Status}
	}

	covered := TotalCompleted(payments)
	switch {
	case covered.GreaterThanOrEqual(invoice.GrossTotal) && invoice.Status != entity.InvoiceStatusPaid:
		return ReconcileDecision{Status: entity.InvoiceStatusPaid, Changed: true}
	case covered.LessThan(invoice.GrossTotal) && invoice.Status == entity.InvoiceStatusPaid:
		return ReconcileDecision{Status: entity.InvoiceStatusSent, Changed: true}
	}
	return ReconcileDecision{Status: invoice.Status}
}
