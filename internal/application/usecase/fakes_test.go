package usecase_test

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria para los casos de uso CRUD
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*entity.Client{}}
}

func (r *fakeClientRepo) Create(c *entity.Client) error              { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error)  { return r.clients[id], nil }
func (r *fakeClientRepo) Update(c *entity.Client) error              { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) Delete(id string) error                     { delete(r.clients, id); return nil }
func (r *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error             { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) Update(p *entity.Product) error             { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error                     { delete(r.products, id); return nil }
func (r *fakeProductRepo) List(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings *entity.BusinessSettings
}

var _ repository.SettingsRepository = (*fakeSettingsRepo)(nil)

func (r *fakeSettingsRepo) Get() (*entity.BusinessSettings, error)          { return r.settings, nil }
func (r *fakeSettingsRepo) GetForUpdate() (*entity.BusinessSettings, error) { return r.settings, nil }
func (r *fakeSettingsRepo) Create(s *entity.BusinessSettings) error         { r.settings = s; return nil }
func (r *fakeSettingsRepo) Update(s *entity.BusinessSettings) error         { r.settings = s; return nil }

// fakeInvoiceRefs solo responde a las guardas de borrado; el resto del puerto
// no se ejercita desde estos casos de uso.
type fakeInvoiceRefs struct {
	clientRefs  map[string]bool
	productRefs map[string]bool
}

var _ repository.InvoiceRepository = (*fakeInvoiceRefs)(nil)

func newFakeInvoiceRefs() *fakeInvoiceRefs {
	return &fakeInvoiceRefs{clientRefs: map[string]bool{}, productRefs: map[string]bool{}}
}

func (r *fakeInvoiceRefs) ExistsByClientID(clientID string) (bool, error) {
	return r.clientRefs[clientID], nil
}
func (r *fakeInvoiceRefs) ExistsLineByProductID(productID string) (bool, error) {
	return r.productRefs[productID], nil
}

func (r *fakeInvoiceRefs) Create(*entity.Invoice) error                  { return nil }
func (r *fakeInvoiceRefs) CreateLine(*entity.InvoiceLine) error          { return nil }
func (r *fakeInvoiceRefs) GetByID(string) (*entity.Invoice, error)       { return nil, nil }
func (r *fakeInvoiceRefs) GetByIDForUpdate(string) (*entity.Invoice, error) { return nil, nil }
func (r *fakeInvoiceRefs) GetBySequence(int) (*entity.Invoice, error)       { return nil, nil }
func (r *fakeInvoiceRefs) GetLinesByInvoiceID(string) ([]*entity.InvoiceLine, error) {
	return nil, nil
}
func (r *fakeInvoiceRefs) Update(*entity.Invoice) error          { return nil }
func (r *fakeInvoiceRefs) UpdateStatus(string, string) error     { return nil }
func (r *fakeInvoiceRefs) List(string, int, int) ([]*entity.Invoice, error) { return nil, nil }
func (r *fakeInvoiceRefs) DeleteLinesByInvoiceID(string) error   { return nil }
func (r *fakeInvoiceRefs) DeleteLine(string, string) error       { return nil }
func (r *fakeInvoiceRefs) Delete(string) error                   { return nil }

func strPtr(s string) *string                 { return &s }
func decPtr(s string) *decimal.Decimal        { d := decimal.RequireFromString(s); return &d }
func dec(s string) decimal.Decimal            { return decimal.RequireFromString(s) }
