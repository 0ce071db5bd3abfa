package billing_test

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	appbilling "github.com/tu-usuario/facturation-pro/internal/application/billing"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
//
// Implementan los puertos de persistencia sobre mapas y slices. El TxRunner en
// memoria ejecuta el callback directamente: sin transacción real, pero con la
// misma semántica de composición que la implementación pgx.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	clients  map[string]*entity.Client
	products map[string]*entity.Product
	invoices map[string]*entity.Invoice
	lines    []*entity.InvoiceLine
	payments []*entity.Payment
	settings *entity.BusinessSettings
}

func newMemStore() *memStore {
	return &memStore{
		clients:  map[string]*entity.Client{},
		products: map[string]*entity.Product{},
		invoices: map[string]*entity.Invoice{},
	}
}

// ── ClientRepository ──────────────────────────────────────────────────────────

type memClientRepo struct{ s *memStore }

var _ repository.ClientRepository = (*memClientRepo)(nil)

func (r *memClientRepo) Create(c *entity.Client) error { r.s.clients[c.ID] = c; return nil }
func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.s.clients[id], nil
}
func (r *memClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		out = append(out, c)
	}
	return out, nil
}
func (r *memClientRepo) Update(c *entity.Client) error { r.s.clients[c.ID] = c; return nil }
func (r *memClientRepo) Delete(id string) error        { delete(r.s.clients, id); return nil }

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *memProductRepo) List(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) Delete(id string) error         { delete(r.s.products, id); return nil }

// ── InvoiceRepository ─────────────────────────────────────────────────────────

type memInvoiceRepo struct{ s *memStore }

var _ repository.InvoiceRepository = (*memInvoiceRepo)(nil)

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error { r.s.invoices[inv.ID] = inv; return nil }
func (r *memInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	r.s.lines = append(r.s.lines, line)
	return nil
}
func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.s.invoices[id], nil
}
func (r *memInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.s.invoices[id], nil
}
func (r *memInvoiceRepo) GetBySequence(seq int) (*entity.Invoice, error) {
	for _, inv := range r.s.invoices {
		if trailingSeq(inv.Number) == seq {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *memInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	for _, l := range r.s.lines {
		if l.InvoiceID == invoiceID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *memInvoiceRepo) Update(inv *entity.Invoice) error { r.s.invoices[inv.ID] = inv; return nil }
func (r *memInvoiceRepo) UpdateStatus(id, status string) error {
	if inv, ok := r.s.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}
func (r *memInvoiceRepo) List(status string, limit, offset int) ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}
func (r *memInvoiceRepo) DeleteLinesByInvoiceID(invoiceID string) error {
	kept := r.s.lines[:0]
	for _, l := range r.s.lines {
		if l.InvoiceID != invoiceID {
			kept = append(kept, l)
		}
	}
	r.s.lines = kept
	return nil
}
func (r *memInvoiceRepo) DeleteLine(invoiceID, lineID string) error {
	for i, l := range r.s.lines {
		if l.ID == lineID && l.InvoiceID == invoiceID {
			r.s.lines = append(r.s.lines[:i], r.s.lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
func (r *memInvoiceRepo) Delete(id string) error { delete(r.s.invoices, id); return nil }
func (r *memInvoiceRepo) ExistsByClientID(clientID string) (bool, error) {
	for _, inv := range r.s.invoices {
		if inv.ClientID == clientID {
			return true, nil
		}
	}
	return false, nil
}
func (r *memInvoiceRepo) ExistsLineByProductID(productID string) (bool, error) {
	for _, l := range r.s.lines {
		if l.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// ── PaymentRepository ─────────────────────────────────────────────────────────

type memPaymentRepo struct{ s *memStore }

var _ repository.PaymentRepository = (*memPaymentRepo)(nil)

func (r *memPaymentRepo) Create(p *entity.Payment) error {
	r.s.payments = append(r.s.payments, p)
	return nil
}
func (r *memPaymentRepo) GetByID(id string) (*entity.Payment, error) {
	for _, p := range r.s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memPaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memPaymentRepo) List(f repository.PaymentFilter, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.InvoiceID != "" && p.InvoiceID != f.InvoiceID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Method != "" && p.Method != f.Method {
			continue
		}
		if f.DateFrom != nil && p.PaymentDate.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && p.PaymentDate.After(*f.DateTo) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
func (r *memPaymentRepo) Update(p *entity.Payment) error {
	for i, existing := range r.s.payments {
		if existing.ID == p.ID {
			r.s.payments[i] = p
		}
	}
	return nil
}
func (r *memPaymentRepo) Delete(id string) error {
	kept := r.s.payments[:0]
	for _, p := range r.s.payments {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.s.payments = kept
	return nil
}
func (r *memPaymentRepo) ExistsByInvoiceID(invoiceID string) (bool, error) {
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			return true, nil
		}
	}
	return false, nil
}

// ── SettingsRepository ────────────────────────────────────────────────────────

type memSettingsRepo struct{ s *memStore }

var _ repository.SettingsRepository = (*memSettingsRepo)(nil)

func (r *memSettingsRepo) Get() (*entity.BusinessSettings, error)          { return r.s.settings, nil }
func (r *memSettingsRepo) GetForUpdate() (*entity.BusinessSettings, error) { return r.s.settings, nil }
func (r *memSettingsRepo) Create(bs *entity.BusinessSettings) error        { r.s.settings = bs; return nil }
func (r *memSettingsRepo) Update(bs *entity.BusinessSettings) error        { r.s.settings = bs; return nil }

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

var _ appbilling.TxRunner = (*memTxRunner)(nil)

func (t *memTxRunner) RunInvoice(ctx context.Context, fn func(repository.InvoiceRepository, repository.SettingsRepository) error) error {
	return fn(&memInvoiceRepo{t.s}, &memSettingsRepo{t.s})
}

func (t *memTxRunner) RunReconcile(ctx context.Context, fn func(repository.InvoiceRepository, repository.PaymentRepository) error) error {
	return fn(&memInvoiceRepo{t.s}, &memPaymentRepo{t.s})
}

// ── Entorno de pruebas ────────────────────────────────────────────────────────

type billingEnv struct {
	store     *memStore
	invoiceUC *appbilling.InvoiceUseCase
	paymentUC *appbilling.PaymentUseCase
}

// newBillingEnv arma los casos de uso sobre los dobles en memoria y siembra un
// cliente y dos productos de trabajo.
func newBillingEnv() *billingEnv {
	s := newMemStore()
	tx := &memTxRunner{s}
	reconciler := appbilling.NewStatusReconciler(tx)

	invoiceRepo := &memInvoiceRepo{s}
	paymentRepo := &memPaymentRepo{s}
	invoiceUC := appbilling.NewInvoiceUseCase(tx, invoiceRepo, &memClientRepo{s}, &memProductRepo{s}, paymentRepo, reconciler)
	paymentUC := appbilling.NewPaymentUseCase(paymentRepo, invoiceRepo, reconciler)

	s.clients["cli-1"] = &entity.Client{ID: "cli-1", Name: "Dupont SARL", Email: "contact@dupont.fr"}
	s.products["prod-100"] = &entity.Product{
		ID: "prod-100", Name: "Consultation", Price: dec("500"), TaxRate: dec("0"), Active: true,
	}
	s.products["prod-tva"] = &entity.Product{
		ID: "prod-tva", Name: "Développement", Price: dec("100"), TaxRate: dec("20"), Active: true,
	}
	s.products["prod-off"] = &entity.Product{
		ID: "prod-off", Name: "Ancien forfait", Price: dec("50"), TaxRate: dec("20"), Active: false,
	}

	return &billingEnv{store: s, invoiceUC: invoiceUC, paymentUC: paymentUC}
}

func strPtr(s string) *string { return &s }

// trailingSeq extrae la parte numérica final de un número de factura
// (FACT-2026-012 → 12); -1 si no termina en dígitos.
func trailingSeq(number string) int {
	i := len(number)
	for i > 0 && number[i-1] >= '0' && number[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(number[i:])
	if err != nil {
		return -1
	}
	return n
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func hasSubstr(s, sub string) bool { return strings.Contains(s, sub) }
