package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Tablas: factures y lignes_facture.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO factures (id, numero, client_id, client_nom, date_emission, date_echeance,
		                      montant_ht, montant_ttc, statut, notes, conditions_paiement)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	var dueDate any
	if !invoice.DueDate.IsZero() {
		dueDate = invoice.DueDate
	}
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.ClientID, invoice.ClientName,
		invoice.IssueDate, dueDate, invoice.NetTotal, invoice.GrossTotal,
		invoice.Status, nullIfEmpty(invoice.Notes), nullIfEmpty(invoice.PaymentTerms),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de factura.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lignes_facture (id, facture_id, produit_id, produit_nom, quantite,
		                            prix_unitaire, tva, remise, montant_ht, montant_ttc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ProductID, line.ProductName, line.Quantity,
		line.UnitPrice, line.TaxRate, line.Discount, line.NetAmount, line.GrossAmount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

const invoiceColumns = `id, numero, client_id, client_nom, date_emission, date_echeance,
	       montant_ht, montant_ttc, statut, notes, conditions_paiement`

func scanInvoice(row interface{ Scan(dest ...any) error }) (*entity.Invoice, error) {
	var inv entity.Invoice
	var notes, terms *string
	var dueDate *time.Time
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.ClientID, &inv.ClientName,
		&inv.IssueDate, &dueDate, &inv.NetTotal, &inv.GrossTotal,
		&inv.Status, &notes, &terms,
	)
	if err != nil {
		return nil, err
	}
	if dueDate != nil {
		inv.DueDate = *dueDate
	}
	inv.Notes = derefStr(notes)
	inv.PaymentTerms = derefStr(terms)
	return &inv, nil
}

// GetByID obtiene la cabecera de una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM factures WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByIDForUpdate obtiene la cabecera bloqueando la fila. Solo tiene sentido
// dentro de una transacción: serializa la reconciliación por factura.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM factures WHERE id = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	return inv, nil
}

// GetBySequence busca la factura por la parte numérica final de su número
// (« facture 12 » → FACT-2026-012). Con duplicados entre años gana la emisión
// más reciente.
func (r *InvoiceRepo) GetBySequence(seq int) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM factures
		WHERE NULLIF(substring(numero from '\d+$'), '')::int = $1
		ORDER BY date_emission DESC LIMIT 1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, seq))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by sequence: %w", err)
	}
	return inv, nil
}

// GetLinesByInvoiceID obtiene todas las líneas de una factura.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, facture_id, produit_id, produit_nom, quantite,
		       prix_unitaire, tva, remise, montant_ht, montant_ttc
		FROM lignes_facture WHERE facture_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.ProductName, &l.Quantity,
			&l.UnitPrice, &l.TaxRate, &l.Discount, &l.NetAmount, &l.GrossAmount); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update actualiza cabecera y totales de la factura.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE factures
		SET client_id = $2, client_nom = $3, date_emission = $4, date_echeance = $5,
		    montant_ht = $6, montant_ttc = $7, statut = $8, notes = $9, conditions_paiement = $10
		WHERE id = $1`
	var dueDate any
	if !invoice.DueDate.IsZero() {
		dueDate = invoice.DueDate
	}
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.ClientID, invoice.ClientName, invoice.IssueDate, dueDate,
		invoice.NetTotal, invoice.GrossTotal, invoice.Status,
		nullIfEmpty(invoice.Notes), nullIfEmpty(invoice.PaymentTerms),
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateStatus actualiza solo el estado (escritura de la reconciliación).
func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE factures SET statut = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// List devuelve facturas (fecha de emisión descendente), con filtro opcional
// por estado.
func (r *InvoiceRepo) List(status string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM factures`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE statut = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date_emission DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// DeleteLinesByInvoiceID elimina todas las líneas de una factura.
func (r *InvoiceRepo) DeleteLinesByInvoiceID(invoiceID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM lignes_facture WHERE facture_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	return nil
}

// DeleteLine elimina una línea acotada a su factura: el id de una línea de
// otra factura no borra nada y se reporta como no encontrada.
func (r *InvoiceRepo) DeleteLine(invoiceID, lineID string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM lignes_facture WHERE id = $1 AND facture_id = $2`, lineID, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ligne %s", domain.ErrNotFound, lineID)
	}
	return nil
}

// Delete elimina la cabecera de la factura.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM factures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// ExistsByClientID informa si alguna factura referencia al cliente.
func (r *InvoiceRepo) ExistsByClientID(clientID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM factures WHERE client_id = $1)`, clientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check invoices by client: %w", err)
	}
	return exists, nil
}

// ExistsLineByProductID informa si alguna línea referencia al producto.
func (r *InvoiceRepo) ExistsLineByProductID(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM lignes_facture WHERE produit_id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check lines by product: %w", err)
	}
	return exists, nil
}
