package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	clientRepo   repository.ClientRepository
	settingsRepo repository.SettingsRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	settingsRepo repository.SettingsRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF recupera factura, líneas, cliente y datos del emisor y
// genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	inv.Lines = derefLines(lines)

	client, err := uc.clientRepo.GetByID(inv.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if client == nil {
		// Snapshot del nombre en la factura; el PDF sale sin dirección.
		client = &entity.Client{ID: inv.ClientID, Name: inv.ClientName}
	}

	seller, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener configuración: %w", err)
	}
	if seller == nil {
		seller = entity.DefaultBusinessSettings()
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, seller, client)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("facture_%s.pdf", inv.Number)
	return pdfBytes, filename, nil
}
