package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturation-pro/internal/application/dto"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

var maxPercent = decimal.NewFromInt(100)

// ProductUseCase casos de uso CRUD para productos. El borrado está guardado:
// un producto referenciado por líneas de factura se desactiva en su lugar.
type ProductUseCase struct {
	repo         repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
	settingsRepo repository.SettingsRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	settingsRepo repository.SettingsRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, invoiceRepo: invoiceRepo, settingsRepo: settingsRepo}
}

func validateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxPercent) {
		return fmt.Errorf("%w: la TVA debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return nil
}

// Create crea un nuevo producto activo. Sin TVA explícita se aplica la TVA
// por defecto de la configuración del negocio.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}

	var taxRate decimal.Decimal
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	} else {
		settings, err := uc.settingsRepo.Get()
		if err != nil {
			return nil, err
		}
		if settings != nil {
			taxRate = settings.DefaultTaxRate
		} else {
			taxRate = entity.DefaultBusinessSettings().DefaultTaxRate
		}
	}
	if err := validateTaxRate(taxRate); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		TaxRate:     taxRate,
		Unit:        in.Unit,
		Reference:   in.Reference,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto (parcial).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.TaxRate != nil {
		if err := validateTaxRate(*in.TaxRate); err != nil {
			return nil, err
		}
		product.TaxRate = *in.TaxRate
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Reference != nil {
		product.Reference = *in.Reference
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación; activeOnly omite los desactivados.
func (uc *ProductUseCase) List(activeOnly bool, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto. Si alguna línea de factura lo referencia, el
// borrado se rechaza y se sugiere desactivarlo.
func (uc *ProductUseCase) Delete(id string) (*dto.DeleteResult, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	referenced, err := uc.invoiceRepo.ExistsLineByProductID(id)
	if err != nil {
		return nil, err
	}
	if referenced {
		return &dto.DeleteResult{
			Success: false,
			Message: "Impossible de supprimer ce produit : il est utilisé dans des factures. Vous pouvez le désactiver.",
		}, nil
	}
	if err := uc.repo.Delete(id); err != nil {
		return nil, err
	}
	return &dto.DeleteResult{Success: true}, nil
}

// Deactivate marca el producto como inactivo (alternativa al borrado).
func (uc *ProductUseCase) Deactivate(id string) (*dto.ProductResponse, error) {
	inactive := false
	return uc.Update(id, dto.UpdateProductRequest{Active: &inactive})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		TaxRate:     p.TaxRate,
		Unit:        p.Unit,
		Reference:   p.Reference,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt.Format("2006-01-02"),
	}
}
