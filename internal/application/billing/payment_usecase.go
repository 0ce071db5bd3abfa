package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturation-pro/internal/application/dto"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

// PaymentUseCase es el libro de pagos: registra, consulta y muta pagos, y
// dispara la reconciliación de estado de la factura tras cada mutación que
// pueda cambiar el monto cubierto.
type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
	reconciler  *StatusReconciler
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	reconciler *StatusReconciler,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		reconciler:  reconciler,
	}
}

// Create registra un pago contra una factura, tomando snapshot de número de
// factura, id y nombre del cliente. Después reconcilia la factura.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if in.InvoiceID == "" {
		return nil, fmt.Errorf("%w: invoice_id requerido", domain.ErrInvalidInput)
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.IsValidPaymentMethod(in.Method) {
		return nil, fmt.Errorf("%w: método de pago desconocido %q", domain.ErrInvalidInput, in.Method)
	}
	status := in.Status
	if status == "" {
		status = entity.PaymentStatusPending
	}
	if !entity.IsValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: estado de pago desconocido %q", domain.ErrInvalidInput, in.Status)
	}

	inv, err := uc.invoiceRepo.GetByID(in.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, in.InvoiceID)
	}

	paymentDate := time.Now()
	if in.PaymentDate != "" {
		if paymentDate, err = parseDate(in.PaymentDate); err != nil {
			return nil, err
		}
	}

	payment := &entity.Payment{
		ID:            uuid.New().String(),
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.Number,
		ClientID:      inv.ClientID,
		ClientName:    inv.ClientName,
		Amount:        in.Amount,
		Method:        in.Method,
		Status:        status,
		Reference:     in.Reference,
		Notes:         in.Notes,
		PaymentDate:   paymentDate,
		CreatedAt:     time.Now(),
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	uc.reconciler.Reconcile(ctx, inv.ID)

	return toPaymentResponse(payment), nil
}

// GetByID obtiene un pago.
func (uc *PaymentUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(payment), nil
}

// ListByInvoice lista los pagos de una factura (fecha de pago descendente).
func (uc *PaymentUseCase) ListByInvoice(ctx context.Context, invoiceID string) ([]*dto.PaymentResponse, error) {
	payments, err := uc.paymentRepo.ListByInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// List lista pagos con filtros conjuntivos opcionales.
func (uc *PaymentUseCase) List(ctx context.Context, in dto.PaymentFilterRequest, limit, offset int) (*dto.PaymentListResponse, error) {
	if in.Status != "" && !entity.IsValidPaymentStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado de pago desconocido %q", domain.ErrInvalidInput, in.Status)
	}
	if in.Method != "" && !entity.IsValidPaymentMethod(in.Method) {
		return nil, fmt.Errorf("%w: método de pago desconocido %q", domain.ErrInvalidInput, in.Method)
	}
	filter := repository.PaymentFilter{
		ClientID:  in.ClientID,
		InvoiceID: in.InvoiceID,
		Status:    in.Status,
		Method:    in.Method,
	}
	if in.DateFrom != "" {
		from, err := parseDate(in.DateFrom)
		if err != nil {
			return nil, err
		}
		filter.DateFrom = &from
	}
	if in.DateTo != "" {
		to, err := parseDate(in.DateTo)
		if err != nil {
			return nil, err
		}
		filter.DateTo = &to
	}

	payments, err := uc.paymentRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, *toPaymentResponse(p))
	}
	return &dto.PaymentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update muta un pago (parcial). Cualquier cambio de monto o estado puede
// alterar el monto cubierto de la factura, así que siempre se reconcilia.
func (uc *PaymentUseCase) Update(ctx context.Context, id string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}

	if in.Amount != nil {
		if !in.Amount.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
		}
		payment.Amount = *in.Amount
	}
	if in.Method != nil {
		if !entity.IsValidPaymentMethod(*in.Method) {
			return nil, fmt.Errorf("%w: método de pago desconocido %q", domain.ErrInvalidInput, *in.Method)
		}
		payment.Method = *in.Method
	}
	if in.Status != nil {
		if !entity.IsValidPaymentStatus(*in.Status) {
			return nil, fmt.Errorf("%w: estado de pago desconocido %q", domain.ErrInvalidInput, *in.Status)
		}
		payment.Status = *in.Status
	}
	if in.Reference != nil {
		payment.Reference = *in.Reference
	}
	if in.Notes != nil {
		payment.Notes = *in.Notes
	}
	if in.PaymentDate != nil {
		if payment.PaymentDate, err = parseDate(*in.PaymentDate); err != nil {
			return nil, err
		}
	}

	if err := uc.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	uc.reconciler.Reconcile(ctx, payment.InvoiceID)

	return toPaymentResponse(payment), nil
}

// Delete elimina un pago y reconcilia la factura: quitar un pago completado
// puede revertir una factura pagada a enviada.
func (uc *PaymentUseCase) Delete(ctx context.Context, id string) error {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	if err := uc.paymentRepo.Delete(id); err != nil {
		return err
	}

	uc.reconciler.Reconcile(ctx, payment.InvoiceID)
	return nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		InvoiceNumber: p.InvoiceNumber,
		ClientID:      p.ClientID,
		ClientName:    p.ClientName,
		Amount:        p.Amount,
		Method:        p.Method,
		Status:        p.Status,
		Reference:     p.Reference,
		Notes:         p.Notes,
		PaymentDate:   formatDate(p.PaymentDate),
		CreatedAt:     formatDate(p.CreatedAt),
	}
}
