package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/facturation-pro/internal/application/dto"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	billingdomain "github.com/tu-usuario/facturation-pro/internal/domain/billing"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// parseDate acepta "2006-01-02" o RFC3339 (tolerancia con clientes que envían
// timestamps completos).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: fecha inválida %q (formato esperado AAAA-MM-DD)", domain.ErrInvalidInput, s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// InvoiceUseCase casos de uso de facturas: creación con numeración y líneas,
// consulta, mutación de cabecera y líneas, borrado con guarda de pagos.
type InvoiceUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	paymentRepo repository.PaymentRepository
	reconciler  *StatusReconciler
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
	reconciler *StatusReconciler,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		reconciler:  reconciler,
	}
}

// buildLines valida y materializa las líneas de la petición: resuelve cada
// producto y calcula los montos derivados.
func (uc *InvoiceUseCase) buildLines(invoiceID string, reqs []dto.InvoiceLineRequest) ([]*entity.InvoiceLine, error) {
	lines := make([]*entity.InvoiceLine, 0, len(reqs))
	for _, r := range reqs {
		if r.ProductID == "" {
			return nil, fmt.Errorf("%w: product_id requerido en cada línea", domain.ErrInvalidInput)
		}
		product, err := uc.productRepo.GetByID(r.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, r.ProductID)
		}
		if !product.Active {
			return nil, fmt.Errorf("%w: el producto %s está desactivado", domain.ErrInvalidInput, product.Name)
		}
		line, err := billingdomain.NewLine(product, r.Quantity, r.Discount)
		if err != nil {
			return nil, err
		}
		line.ID = uuid.New().String()
		line.InvoiceID = invoiceID
		lines = append(lines, line)
	}
	return lines, nil
}

// Create crea la factura en estado draft. El número se genera desde
// BusinessSettings (PREFIX-AÑO-SECUENCIA) y la secuencia se consume dentro de
// la misma transacción que persiste cabecera y líneas.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: client_id y al menos una línea son requeridos", domain.ErrInvalidInput)
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClientID)
	}

	issueDate := time.Now()
	if in.IssueDate != "" {
		if issueDate, err = parseDate(in.IssueDate); err != nil {
			return nil, err
		}
	}
	var dueDate time.Time
	if in.DueDate != "" {
		if dueDate, err = parseDate(in.DueDate); err != nil {
			return nil, err
		}
	}

	invoiceID := uuid.New().String()
	lines, err := uc.buildLines(invoiceID, in.Lines)
	if err != nil {
		return nil, err
	}
	net, gross := billingdomain.Totals(lines)

	inv := &entity.Invoice{
		ID:           invoiceID,
		ClientID:     client.ID,
		ClientName:   client.Name,
		IssueDate:    issueDate,
		DueDate:      dueDate,
		Lines:        nil, // las líneas se persisten aparte
		NetTotal:     net,
		GrossTotal:   gross,
		Status:       entity.InvoiceStatusDraft,
		Notes:        in.Notes,
		PaymentTerms: in.PaymentTerms,
	}

	err = uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		settingsRepo repository.SettingsRepository,
	) error {
		settings, err := settingsRepo.GetForUpdate()
		if err != nil {
			return err
		}
		if settings == nil {
			// Primer acceso: inicialización perezosa del singleton.
			settings = entity.DefaultBusinessSettings()
			settings.ID = uuid.New().String()
			if err := settingsRepo.Create(settings); err != nil {
				return err
			}
		}

		inv.Number = fmt.Sprintf("%s-%d-%03d", settings.InvoicePrefix, issueDate.Year(), settings.InvoiceNextNumber)
		settings.InvoiceNextNumber++
		settings.UpdatedAt = time.Now()
		if err := settingsRepo.Update(settings); err != nil {
			return err
		}

		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, line := range lines {
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	inv.Lines = derefLines(lines)
	return toInvoiceResponse(inv), nil
}

// GetByID obtiene una factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	inv.Lines = derefLines(lines)
	return toInvoiceResponse(inv), nil
}

// GetBySequence resuelve una factura por la parte numérica final de su número
// (« facture 12 » → FACT-2026-012) y la devuelve con sus líneas. Es la vía de
// búsqueda del asistente: los usuarios citan el número visible, no el UUID.
func (uc *InvoiceUseCase) GetBySequence(ctx context.Context, seq int) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetBySequence(seq)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = derefLines(lines)
	return toInvoiceResponse(inv), nil
}

// List lista facturas (fecha de emisión descendente), opcionalmente filtradas
// por estado. Las respuestas del listado no incluyen líneas.
func (uc *InvoiceUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.InvoiceListResponse, error) {
	if status != "" && !entity.IsValidInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: estado de factura desconocido %q", domain.ErrInvalidInput, status)
	}
	list, err := uc.invoiceRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza la cabecera (parcial). Cambiar el cliente rehace el
// snapshot del nombre; el estado se valida contra el enum pero la transición
// manual es libre (draft→sent, →cancelled, correcciones).
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	if in.ClientID != nil && *in.ClientID != inv.ClientID {
		client, err := uc.clientRepo.GetByID(*in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, *in.ClientID)
		}
		inv.ClientID = client.ID
		inv.ClientName = client.Name
	}
	if in.IssueDate != nil {
		if inv.IssueDate, err = parseDate(*in.IssueDate); err != nil {
			return nil, err
		}
	}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			inv.DueDate = time.Time{}
		} else if inv.DueDate, err = parseDate(*in.DueDate); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if !entity.IsValidInvoiceStatus(*in.Status) {
			return nil, fmt.Errorf("%w: estado de factura desconocido %q", domain.ErrInvalidInput, *in.Status)
		}
		inv.Status = *in.Status
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if in.PaymentTerms != nil {
		inv.PaymentTerms = *in.PaymentTerms
	}

	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}

	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	inv.Lines = derefLines(lines)
	return toInvoiceResponse(inv), nil
}

// ReplaceLines sustituye todas las líneas de la factura y recalcula los
// totales, en una sola transacción con la fila de la factura bloqueada.
// Después reconcilia: un cambio de total puede dejar la factura cubierta o
// descubierta por los pagos existentes.
func (uc *InvoiceUseCase) ReplaceLines(ctx context.Context, id string, in dto.ReplaceLinesRequest) (*dto.InvoiceResponse, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: al menos una línea es requerida", domain.ErrInvalidInput)
	}
	lines, err := uc.buildLines(id, in.Lines)
	if err != nil {
		return nil, err
	}

	var inv *entity.Invoice
	err = uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.SettingsRepository,
	) error {
		inv, err = invoiceRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := invoiceRepo.DeleteLinesByInvoiceID(id); err != nil {
			return err
		}
		for _, line := range lines {
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		inv.NetTotal, inv.GrossTotal = billingdomain.Totals(lines)
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}

	uc.reconciler.Reconcile(ctx, id)

	inv.Lines = derefLines(lines)
	return toInvoiceResponse(inv), nil
}

// AddLine añade una línea y recalcula los totales.
func (uc *InvoiceUseCase) AddLine(ctx context.Context, id string, in dto.InvoiceLineRequest) (*dto.InvoiceResponse, error) {
	built, err := uc.buildLines(id, []dto.InvoiceLineRequest{in})
	if err != nil {
		return nil, err
	}
	line := built[0]

	var inv *entity.Invoice
	var lines []*entity.InvoiceLine
	err = uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.SettingsRepository,
	) error {
		inv, err = invoiceRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := invoiceRepo.CreateLine(line); err != nil {
			return err
		}
		if lines, err = invoiceRepo.GetLinesByInvoiceID(id); err != nil {
			return err
		}
		inv.NetTotal, inv.GrossTotal = billingdomain.Totals(lines)
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}

	uc.reconciler.Reconcile(ctx, id)

	inv.Lines = derefLines(lines)
	return toInvoiceResponse(inv), nil
}

// RemoveLine elimina una línea y recalcula los totales. La línea debe
// pertenecer a la factura: un id ajeno retorna ErrNotFound sin tocar nada.
func (uc *InvoiceUseCase) RemoveLine(ctx context.Context, id, lineID string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	var lines []*entity.InvoiceLine
	err := uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.SettingsRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := invoiceRepo.DeleteLine(id, lineID); err != nil {
			return err
		}
		if lines, err = invoiceRepo.GetLinesByInvoiceID(id); err != nil {
			return err
		}
		inv.NetTotal, inv.GrossTotal = billingdomain.Totals(lines)
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}

	uc.reconciler.Reconcile(ctx, id)

	inv.Lines = derefLines(lines)
	return toInvoiceResponse(inv), nil
}

// Delete borra la factura y sus líneas. Con pagos registrados el borrado se
// rechaza con un resultado estructurado, no con error.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResult, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	hasPayments, err := uc.paymentRepo.ExistsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	if hasPayments {
		return &dto.DeleteResult{
			Success: false,
			Message: "Impossible de supprimer cette facture : des paiements y sont rattachés.",
		}, nil
	}

	err = uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.SettingsRepository,
	) error {
		if err := invoiceRepo.DeleteLinesByInvoiceID(id); err != nil {
			return err
		}
		return invoiceRepo.Delete(id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteResult{Success: true}, nil
}

func derefLines(lines []*entity.InvoiceLine) []entity.InvoiceLine {
	out := make([]entity.InvoiceLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, *l)
	}
	return out
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		ClientID:     inv.ClientID,
		ClientName:   inv.ClientName,
		IssueDate:    formatDate(inv.IssueDate),
		DueDate:      formatDate(inv.DueDate),
		NetTotal:     inv.NetTotal,
		GrossTotal:   inv.GrossTotal,
		Status:       inv.Status,
		Notes:        inv.Notes,
		PaymentTerms: inv.PaymentTerms,
		Lines:        make([]dto.InvoiceLineResponse, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Discount:    l.Discount,
			NetAmount:   l.NetAmount,
			GrossAmount: l.GrossAmount,
		})
	}
	return resp
}
