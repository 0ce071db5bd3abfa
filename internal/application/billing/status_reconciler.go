package billing

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	billingdomain "github.com/tu-usuario/facturation-pro/internal/domain/billing"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

// StatusReconciler aplica la reconciliación de estado de una factura contra
// sus pagos, dentro de una transacción con la fila de la factura bloqueada
// (SELECT ... FOR UPDATE): las reconciliaciones concurrentes de la misma
// factura se serializan.
type StatusReconciler struct {
	txRunner TxRunner
}

// NewStatusReconciler construye el reconciliador.
func NewStatusReconciler(txRunner TxRunner) *StatusReconciler {
	return &StatusReconciler{txRunner: txRunner}
}

// Reconcile recalcula y persiste el estado de la factura. Nunca propaga el
// error: la mutación de pago que la disparó ya está confirmada y no debe
// deshacerse; un fallo aquí se registra y deja el estado pendiente de la
// próxima reconciliación.
func (r *StatusReconciler) Reconcile(ctx context.Context, invoiceID string) {
	err := r.txRunner.RunReconcile(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		payments, err := paymentRepo.ListByInvoice(invoiceID)
		if err != nil {
			return err
		}
		decision := billingdomain.Reconcile(inv, payments)
		if !decision.Changed {
			return nil
		}
		return invoiceRepo.UpdateStatus(invoiceID, decision.Status)
	})
	if err != nil {
		log.Warn().Err(err).Str("invoice_id", invoiceID).Msg("reconciliación omitida")
	}
}
