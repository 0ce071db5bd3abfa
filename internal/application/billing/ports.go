package billing

import (
	"context"

	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repositorios
// ligados a esa transacción. Si fn retorna error se hace rollback.
type TxRunner interface {
	// RunInvoice cubre las mutaciones de facturas: creación con líneas y
	// consumo de la secuencia de numeración, reemplazo de líneas con
	// recálculo de totales, borrado con cascada de líneas.
	RunInvoice(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		settingsRepo repository.SettingsRepository,
	) error) error

	// RunReconcile cubre la reconciliación de estado: lectura bloqueante de
	// la factura, agregación de pagos y escritura del estado resultante.
	RunReconcile(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación gráfica (PDF) de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		seller *entity.BusinessSettings,
		client *entity.Client,
	) ([]byte, error)
}
