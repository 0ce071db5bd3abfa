package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
// Tabla: paiements.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO paiements (id, facture_id, facture_numero, client_id, client_nom,
		                       montant, methode, statut, reference, notes, date_paiement, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.InvoiceID, payment.InvoiceNumber, payment.ClientID, payment.ClientName,
		payment.Amount, payment.Method, payment.Status,
		nullIfEmpty(payment.Reference), nullIfEmpty(payment.Notes),
		payment.PaymentDate, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

const paymentColumns = `id, facture_id, facture_numero, client_id, client_nom,
	       montant, methode, statut, reference, notes, date_paiement, created_at`

func scanPayment(row interface{ Scan(dest ...any) error }) (*entity.Payment, error) {
	var p entity.Payment
	var reference, notes *string
	err := row.Scan(
		&p.ID, &p.InvoiceID, &p.InvoiceNumber, &p.ClientID, &p.ClientName,
		&p.Amount, &p.Method, &p.Status, &reference, &notes,
		&p.PaymentDate, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Reference = derefStr(reference)
	p.Notes = derefStr(notes)
	return &p, nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM paiements WHERE id = $1`
	payment, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

// ListByInvoice lista los pagos de una factura, fecha de pago descendente.
func (r *PaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM paiements WHERE facture_id = $1 ORDER BY date_paiement DESC`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments by invoice: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, payment)
	}
	return list, rows.Err()
}

// List lista pagos con filtros conjuntivos opcionales, fecha de pago
// descendente.
func (r *PaymentRepo) List(filter repository.PaymentFilter, limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM paiements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ClientID != "" {
		query += fmt.Sprintf(" AND client_id = $%d", pos)
		args = append(args, filter.ClientID)
		pos++
	}
	if filter.InvoiceID != "" {
		query += fmt.Sprintf(" AND facture_id = $%d", pos)
		args = append(args, filter.InvoiceID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND statut = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.Method != "" {
		query += fmt.Sprintf(" AND methode = $%d", pos)
		args = append(args, filter.Method)
		pos++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND date_paiement >= $%d", pos)
		args = append(args, *filter.DateFrom)
		pos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND date_paiement <= $%d", pos)
		args = append(args, *filter.DateTo)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date_paiement DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, payment)
	}
	return list, rows.Err()
}

// Update actualiza un pago existente. Los snapshots de factura y cliente no
// se tocan.
func (r *PaymentRepo) Update(payment *entity.Payment) error {
	query := `
		UPDATE paiements
		SET montant = $2, methode = $3, statut = $4, reference = $5, notes = $6, date_paiement = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Amount, payment.Method, payment.Status,
		nullIfEmpty(payment.Reference), nullIfEmpty(payment.Notes), payment.PaymentDate,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// Delete elimina un pago por ID.
func (r *PaymentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM paiements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// ExistsByInvoiceID informa si la factura tiene pagos registrados.
func (r *PaymentRepo) ExistsByInvoiceID(invoiceID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM paiements WHERE facture_id = $1)`, invoiceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check payments by invoice: %w", err)
	}
	return exists, nil
}
