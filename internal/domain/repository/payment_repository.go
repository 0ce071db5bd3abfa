package repository

import (
	"time"

	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
)

// PaymentFilter agrupa los filtros opcionales del listado de pagos.
// Los campos vacíos / nil no filtran; los presentes se combinan con AND.
type PaymentFilter struct {
	ClientID  string
	InvoiceID string
	Status    string
	Method    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	// ListByInvoice devuelve los pagos de una factura, fecha de pago descendente.
	ListByInvoice(invoiceID string) ([]*entity.Payment, error)
	List(filter PaymentFilter, limit, offset int) ([]*entity.Payment, error)
	Update(payment *entity.Payment) error
	Delete(id string) error
	// ExistsByInvoiceID informa si la factura tiene pagos registrados (guarda de borrado).
	ExistsByInvoiceID(invoiceID string) (bool, error)
}
