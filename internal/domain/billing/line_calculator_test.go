package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/billing"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de cálculo de líneas de factura
//
// Las fórmulas son el núcleo aritmético de la facturación:
//
//	net   = precio × cantidad × (1 − descuento/100)
//	gross = net × (1 + tva/100)
//
// Todo en decimal exacto; el redondeo a 2 decimales es solo de presentación.
// ──────────────────────────────────────────────────────────────────────────────

func testProduct() *entity.Product {
	return &entity.Product{
		ID:      "prod-1",
		Name:    "Consultation",
		Price:   decimal.NewFromInt(100),
		TaxRate: decimal.NewFromInt(20),
		Active:  true,
	}
}

func TestNewLine_MontosBasicos(t *testing.T) {
	line, err := billing.NewLine(testProduct(), 2, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, line.NetAmount.Equal(decimal.NewFromInt(200)),
		"net = 100 × 2 sin descuento debe ser 200, fue %s", line.NetAmount)
	assert.True(t, line.GrossAmount.Equal(decimal.NewFromInt(240)),
		"gross = 200 × 1.20 debe ser 240, fue %s", line.GrossAmount)
}

func TestNewLine_ConDescuento(t *testing.T) {
	// 100 × 3 × (1 − 10/100) = 270; TTC = 270 × 1.20 = 324
	line, err := billing.NewLine(testProduct(), 3, decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, line.NetAmount.Equal(decimal.NewFromInt(270)),
		"net con 10%% de remise debe ser 270, fue %s", line.NetAmount)
	assert.True(t, line.GrossAmount.Equal(decimal.NewFromInt(324)),
		"gross con 10%% de remise debe ser 324, fue %s", line.GrossAmount)
}

func TestNewLine_DescuentoTotal(t *testing.T) {
	// Remise de 100% → línea gratuita, montos en cero.
	line, err := billing.NewLine(testProduct(), 5, decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.True(t, line.NetAmount.IsZero(), "remise 100%% debe dejar el net en cero")
	assert.True(t, line.GrossAmount.IsZero(), "remise 100%% debe dejar el gross en cero")
}

func TestNewLine_TvaCero(t *testing.T) {
	product := testProduct()
	product.TaxRate = decimal.Zero

	line, err := billing.NewLine(product, 1, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, line.NetAmount.Equal(line.GrossAmount),
		"con TVA 0 el net y el gross deben coincidir")
}

func TestNewLine_PrecioDecimalExacto(t *testing.T) {
	// 19.99 × 3 = 59.97 exacto en decimal; con float se acumularía error.
	product := testProduct()
	product.Price = decimal.RequireFromString("19.99")
	product.TaxRate = decimal.Zero

	line, err := billing.NewLine(product, 3, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, "59.97", line.NetAmount.StringFixed(2))
}

func TestNewLine_SnapshotDeProducto(t *testing.T) {
	product := testProduct()
	line, err := billing.NewLine(product, 1, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, product.ID, line.ProductID)
	assert.Equal(t, product.Name, line.ProductName, "la línea debe congelar el nombre del producto")
	assert.True(t, line.UnitPrice.Equal(product.Price), "la línea debe congelar el precio")
	assert.True(t, line.TaxRate.Equal(product.TaxRate), "la línea debe congelar la TVA")
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestNewLine_ErrorSiProductoNil(t *testing.T) {
	_, err := billing.NewLine(nil, 1, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewLine_ErrorSiCantidadCero(t *testing.T) {
	_, err := billing.NewLine(testProduct(), 0, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad 0 debe rechazarse")
}

func TestNewLine_ErrorSiDescuentoNegativo(t *testing.T) {
	_, err := billing.NewLine(testProduct(), 1, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewLine_ErrorSiDescuentoMayorQueCien(t *testing.T) {
	_, err := billing.NewLine(testProduct(), 1, decimal.NewFromInt(101))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Totales ───────────────────────────────────────────────────────────────────

func TestTotals_SumaLineas(t *testing.T) {
	l1, err := billing.NewLine(testProduct(), 2, decimal.Zero) // 200 / 240
	require.NoError(t, err)
	l2, err := billing.NewLine(testProduct(), 1, decimal.NewFromInt(50)) // 50 / 60
	require.NoError(t, err)

	net, gross := billing.Totals([]*entity.InvoiceLine{l1, l2})

	assert.True(t, net.Equal(decimal.NewFromInt(250)), "total HT debe ser 250, fue %s", net)
	assert.True(t, gross.Equal(decimal.NewFromInt(300)), "total TTC debe ser 300, fue %s", gross)
}

func TestTotals_SinLineas(t *testing.T) {
	net, gross := billing.Totals(nil)
	assert.True(t, net.IsZero(), "sin líneas el total HT es cero")
	assert.True(t, gross.IsZero(), "sin líneas el total TTC es cero")
}
