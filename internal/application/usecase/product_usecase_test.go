package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/facturation-pro/internal/application/dto"
	"github.com/tu-usuario/facturation-pro/internal/application/usecase"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
)

func newProductEnv() (*usecase.ProductUseCase, *fakeProductRepo, *fakeInvoiceRefs, *fakeSettingsRepo) {
	repo := newFakeProductRepo()
	refs := newFakeInvoiceRefs()
	settings := &fakeSettingsRepo{}
	return usecase.NewProductUseCase(repo, refs, settings), repo, refs, settings
}

func TestProductCreate_ConTvaExplicita(t *testing.T) {
	uc, _, _, _ := newProductEnv()

	product, err := uc.Create(dto.CreateProductRequest{
		Name: "Consultation", Price: dec("150"), TaxRate: decPtr("10"), Unit: "heure",
	})
	require.NoError(t, err)

	assert.True(t, product.Active, "un producto nace activo")
	assert.True(t, product.TaxRate.Equal(dec("10")))
}

// Sin TVA explícita se aplica la TVA por defecto de la configuración; sin
// configuración todavía, el valor por defecto de fábrica (20).
func TestProductCreate_TvaPorDefecto(t *testing.T) {
	uc, _, _, settingsRepo := newProductEnv()

	product, err := uc.Create(dto.CreateProductRequest{Name: "Forfait", Price: dec("100")})
	require.NoError(t, err)
	assert.True(t, product.TaxRate.Equal(dec("20")), "sin configuración aplica la TVA de fábrica")

	settingsRepo.settings = &entity.BusinessSettings{DefaultTaxRate: dec("5.5")}
	product, err = uc.Create(dto.CreateProductRequest{Name: "Livre", Price: dec("30")})
	require.NoError(t, err)
	assert.True(t, product.TaxRate.Equal(dec("5.5")), "con configuración aplica su TVA por defecto")
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc, _, _, _ := newProductEnv()

	_, err := uc.Create(dto.CreateProductRequest{Price: dec("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre requerido")

	_, err = uc.Create(dto.CreateProductRequest{Name: "X", Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	_, err = uc.Create(dto.CreateProductRequest{Name: "X", Price: dec("10"), TaxRate: decPtr("120")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "TVA fuera de rango")
}

func TestProductUpdate_Parcial(t *testing.T) {
	uc, _, _, _ := newProductEnv()
	product, err := uc.Create(dto.CreateProductRequest{
		Name: "Consultation", Description: "à l'heure", Price: dec("150"),
	})
	require.NoError(t, err)

	updated, err := uc.Update(product.ID, dto.UpdateProductRequest{Price: decPtr("180")})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(dec("180")))
	assert.Equal(t, "Consultation", updated.Name, "los campos omitidos se conservan")
	assert.Equal(t, "à l'heure", updated.Description)
}

func TestProductList_SoloActivos(t *testing.T) {
	uc, _, _, _ := newProductEnv()
	_, err := uc.Create(dto.CreateProductRequest{Name: "Actif", Price: dec("10")})
	require.NoError(t, err)
	inactive, err := uc.Create(dto.CreateProductRequest{Name: "Retiré", Price: dec("10")})
	require.NoError(t, err)
	_, err = uc.Deactivate(inactive.ID)
	require.NoError(t, err)

	all, err := uc.List(false, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	active, err := uc.List(true, 20, 0)
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
	assert.Equal(t, "Actif", active.Items[0].Name)
}

func TestProductDeactivate(t *testing.T) {
	uc, repo, _, _ := newProductEnv()
	product, err := uc.Create(dto.CreateProductRequest{Name: "Ancien forfait", Price: dec("50")})
	require.NoError(t, err)

	deactivated, err := uc.Deactivate(product.ID)
	require.NoError(t, err)

	assert.False(t, deactivated.Active)
	assert.False(t, repo.products[product.ID].Active, "la desactivación debe persistirse")
}

func TestProductDelete_SinReferencias(t *testing.T) {
	uc, repo, _, _ := newProductEnv()
	product, err := uc.Create(dto.CreateProductRequest{Name: "Jetable", Price: dec("5")})
	require.NoError(t, err)

	result, err := uc.Delete(product.ID)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Nil(t, repo.products[product.ID])
}

func TestProductDelete_BloqueadoPorLineas(t *testing.T) {
	uc, repo, refs, _ := newProductEnv()
	product, err := uc.Create(dto.CreateProductRequest{Name: "Facturé", Price: dec("100")})
	require.NoError(t, err)
	refs.productRefs[product.ID] = true

	result, err := uc.Delete(product.ID)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.True(t, strings.Contains(result.Message, "désactiver"),
		"el mensaje debe sugerir la desactivación: %q", result.Message)
	assert.NotNil(t, repo.products[product.ID], "el producto debe seguir existiendo")
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc, _, _, _ := newProductEnv()
	_, err := uc.Delete("prod-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
