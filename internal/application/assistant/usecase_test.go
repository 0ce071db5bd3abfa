package assistant_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/facturation-pro/internal/application/assistant"
	appbilling "github.com/tu-usuario/facturation-pro/internal/application/billing"
	"github.com/tu-usuario/facturation-pro/internal/application/dto"
	"github.com/tu-usuario/facturation-pro/internal/application/usecase"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del asistente de comandos
//
// El asistente se prueba de punta a punta: texto francés → intención → consulta
// a los casos de uso reales sobre dobles en memoria. Las acciones mutantes
// nunca se ejecutan directamente: se devuelven a confirmar.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	clients  map[string]*entity.Client
	products map[string]*entity.Product
	invoices map[string]*entity.Invoice
	settings *entity.BusinessSettings
}

type stateClientRepo struct{ s *memState }

func (r *stateClientRepo) Create(c *entity.Client) error             { r.s.clients[c.ID] = c; return nil }
func (r *stateClientRepo) GetByID(id string) (*entity.Client, error) { return r.s.clients[id], nil }
func (r *stateClientRepo) Update(c *entity.Client) error             { r.s.clients[c.ID] = c; return nil }
func (r *stateClientRepo) Delete(id string) error                    { delete(r.s.clients, id); return nil }
func (r *stateClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		out = append(out, c)
	}
	return out, nil
}

type stateProductRepo struct{ s *memState }

func (r *stateProductRepo) Create(p *entity.Product) error             { r.s.products[p.ID] = p; return nil }
func (r *stateProductRepo) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }
func (r *stateProductRepo) Update(p *entity.Product) error             { r.s.products[p.ID] = p; return nil }
func (r *stateProductRepo) Delete(id string) error                     { delete(r.s.products, id); return nil }
func (r *stateProductRepo) List(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type stateInvoiceRepo struct{ s *memState }

func (r *stateInvoiceRepo) Create(inv *entity.Invoice) error { r.s.invoices[inv.ID] = inv; return nil }
func (r *stateInvoiceRepo) CreateLine(*entity.InvoiceLine) error { return nil }
func (r *stateInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.s.invoices[id], nil
}
func (r *stateInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.s.invoices[id], nil
}
func (r *stateInvoiceRepo) GetBySequence(seq int) (*entity.Invoice, error) {
	for _, inv := range r.s.invoices {
		if strings.HasSuffix(inv.Number, fmt.Sprintf("-%03d", seq)) {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *stateInvoiceRepo) GetLinesByInvoiceID(string) ([]*entity.InvoiceLine, error) {
	return nil, nil
}
func (r *stateInvoiceRepo) Update(inv *entity.Invoice) error { r.s.invoices[inv.ID] = inv; return nil }
func (r *stateInvoiceRepo) UpdateStatus(id, status string) error {
	if inv, ok := r.s.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}
func (r *stateInvoiceRepo) List(status string, limit, offset int) ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}
func (r *stateInvoiceRepo) DeleteLinesByInvoiceID(string) error { return nil }
func (r *stateInvoiceRepo) DeleteLine(string, string) error     { return nil }
func (r *stateInvoiceRepo) Delete(id string) error              { delete(r.s.invoices, id); return nil }
func (r *stateInvoiceRepo) ExistsByClientID(string) (bool, error)     { return false, nil }
func (r *stateInvoiceRepo) ExistsLineByProductID(string) (bool, error) { return false, nil }

type statePaymentRepo struct{}

func (statePaymentRepo) Create(*entity.Payment) error                { return nil }
func (statePaymentRepo) GetByID(string) (*entity.Payment, error)     { return nil, nil }
func (statePaymentRepo) ListByInvoice(string) ([]*entity.Payment, error) { return nil, nil }
func (statePaymentRepo) List(repository.PaymentFilter, int, int) ([]*entity.Payment, error) {
	return nil, nil
}
func (statePaymentRepo) Update(*entity.Payment) error            { return nil }
func (statePaymentRepo) Delete(string) error                     { return nil }
func (statePaymentRepo) ExistsByInvoiceID(string) (bool, error)  { return false, nil }

type stateSettingsRepo struct{ s *memState }

func (r *stateSettingsRepo) Get() (*entity.BusinessSettings, error)          { return r.s.settings, nil }
func (r *stateSettingsRepo) GetForUpdate() (*entity.BusinessSettings, error) { return r.s.settings, nil }
func (r *stateSettingsRepo) Create(bs *entity.BusinessSettings) error        { r.s.settings = bs; return nil }
func (r *stateSettingsRepo) Update(bs *entity.BusinessSettings) error        { r.s.settings = bs; return nil }

type stateTxRunner struct{ s *memState }

func (t *stateTxRunner) RunInvoice(ctx context.Context, fn func(repository.InvoiceRepository, repository.SettingsRepository) error) error {
	return fn(&stateInvoiceRepo{t.s}, &stateSettingsRepo{t.s})
}
func (t *stateTxRunner) RunReconcile(ctx context.Context, fn func(repository.InvoiceRepository, repository.PaymentRepository) error) error {
	return fn(&stateInvoiceRepo{t.s}, statePaymentRepo{})
}

func newAssistant() (*assistant.UseCase, *memState) {
	s := &memState{
		clients:  map[string]*entity.Client{},
		products: map[string]*entity.Product{},
		invoices: map[string]*entity.Invoice{},
	}
	tx := &stateTxRunner{s}
	reconciler := appbilling.NewStatusReconciler(tx)
	invoiceRepo := &stateInvoiceRepo{s}

	clientUC := usecase.NewClientUseCase(&stateClientRepo{s}, invoiceRepo)
	productUC := usecase.NewProductUseCase(&stateProductRepo{s}, invoiceRepo, &stateSettingsRepo{s})
	invoiceUC := appbilling.NewInvoiceUseCase(tx, invoiceRepo, &stateClientRepo{s}, &stateProductRepo{s}, statePaymentRepo{}, reconciler)

	return assistant.NewUseCase(clientUC, productUC, invoiceUC), s
}

func execute(t *testing.T, uc *assistant.UseCase, text string) *dto.CommandResponse {
	t.Helper()
	resp, err := uc.Execute(context.Background(), dto.CommandRequest{Text: text})
	require.NoError(t, err)
	return resp
}

func TestAssistant_ComandoIncomprensible(t *testing.T) {
	uc, _ := newAssistant()
	resp := execute(t, uc, "bonjour, ça va ?")

	assert.False(t, resp.Understood)
	assert.Contains(t, resp.Answer, "Je n'ai pas compris",
		"un texto incomprensible responde con el mensaje de fallback")
	assert.Contains(t, resp.Answer, "Liste toutes les factures payées",
		"el fallback sugiere un ejemplo de comando")
}

func TestAssistant_ListeFacturesPayees(t *testing.T) {
	uc, s := newAssistant()
	s.invoices["inv-1"] = &entity.Invoice{
		ID: "inv-1", Number: "FACT-2026-001", ClientName: "Dupont SARL",
		Status: entity.InvoiceStatusPaid, GrossTotal: decimal.NewFromInt(1200),
	}
	s.invoices["inv-2"] = &entity.Invoice{
		ID: "inv-2", Number: "FACT-2026-002", ClientName: "Martin & Fils",
		Status: entity.InvoiceStatusSent, GrossTotal: decimal.NewFromInt(500),
	}

	resp := execute(t, uc, "Liste toutes les factures payées")

	assert.True(t, resp.Understood)
	assert.Equal(t, "list", resp.Action)
	assert.Equal(t, "invoice", resp.Entity)
	assert.Contains(t, resp.Answer, "1 facture(s) trouvée(s)", "solo la factura pagada entra en el listado")
	assert.Contains(t, resp.Answer, "FACT-2026-001")
	assert.Contains(t, resp.Answer, "1200.00")
	assert.NotContains(t, resp.Answer, "FACT-2026-002")
}

func TestAssistant_ListeFacturesVide(t *testing.T) {
	uc, _ := newAssistant()
	resp := execute(t, uc, "Liste les factures")
	assert.Equal(t, "Aucune facture trouvée.", resp.Answer,
		"sin facturas la respuesta lo dice en claro")
}

func TestAssistant_ListeClients(t *testing.T) {
	uc, s := newAssistant()
	s.clients["cli-1"] = &entity.Client{ID: "cli-1", Name: "Dupont SARL", Email: "contact@dupont.fr"}

	resp := execute(t, uc, "Liste tous les clients")

	assert.Contains(t, resp.Answer, "1 client(s) trouvé(s)")
	assert.Contains(t, resp.Answer, "Dupont SARL <contact@dupont.fr>")
}

// El usuario cita el número visible de la factura, nunca el UUID interno:
// la referencia numérica debe resolverse contra la secuencia del número.
func TestAssistant_AfficherFacture_ResueltaPorNumero(t *testing.T) {
	uc, s := newAssistant()
	id := "3f2a1c60-9f1b-4e0a-8c5d-2b7e4d9a6f01"
	s.invoices[id] = &entity.Invoice{
		ID: id, Number: "FACT-2026-007", ClientName: "Dupont SARL",
		Status:   entity.InvoiceStatusSent,
		NetTotal: decimal.NewFromInt(1000), GrossTotal: decimal.NewFromInt(1200),
	}

	resp := execute(t, uc, "Montre la facture numéro 7")

	assert.Equal(t, "show", resp.Action)
	assert.Contains(t, resp.Answer, "FACT-2026-007")
	assert.Contains(t, resp.Answer, "1000.00")
	assert.Contains(t, resp.Answer, "1200.00")
}

func TestAssistant_AfficherFactureInconnue(t *testing.T) {
	uc, _ := newAssistant()
	resp := execute(t, uc, "Montre la facture numéro 99")

	assert.True(t, resp.Understood)
	assert.Equal(t, "Aucune facture n°99 trouvée.", resp.Answer,
		"una referencia sin factura responde en claro, no con error HTTP")
}

func TestAssistant_AfficherSinID(t *testing.T) {
	uc, _ := newAssistant()
	resp := execute(t, uc, "Montre la facture")

	assert.True(t, resp.Understood)
	assert.Contains(t, resp.Answer, "Précisez l'identifiant",
		"mostrar sin identificador pide precisión en lugar de fallar")
}

// Las acciones mutantes no se ejecutan: se devuelve la intención a confirmar.
func TestAssistant_SuppressionDevuelveConfirmacion(t *testing.T) {
	uc, s := newAssistant()
	s.invoices["12"] = &entity.Invoice{ID: "12", Number: "FACT-2026-012"}

	resp := execute(t, uc, "Supprime la facture numéro 12")

	assert.Equal(t, "delete", resp.Action)
	assert.Equal(t, "12", resp.ID)
	assert.Contains(t, resp.Answer, "Vous souhaitez supprimer la facture n°12")
	assert.Contains(t, resp.Answer, "Confirmez pour continuer")
	assert.NotNil(t, s.invoices["12"], "la factura NO debe borrarse sin confirmación")
}

func TestAssistant_CreationDevuelveIntencion(t *testing.T) {
	uc, _ := newAssistant()
	resp := execute(t, uc, "Crée un client nom : Durand, email durand@exemple.fr")

	assert.Equal(t, "create", resp.Action)
	assert.Equal(t, "client", resp.Entity)
	assert.Equal(t, "durand", resp.Data["name"])
	assert.Equal(t, "durand@exemple.fr", resp.Data["email"])
	assert.Contains(t, resp.Answer, "Vous souhaitez créer un client")
}
