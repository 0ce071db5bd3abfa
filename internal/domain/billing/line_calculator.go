package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// NewLine construye una línea de factura a partir del producto, tomando
// snapshot de nombre, precio y TVA. Los montos se calculan sin redondear:
//
//	net   = precio × cantidad × (1 − descuento/100)
//	gross = net × (1 + tva/100)
//
// El redondeo a 2 decimales ocurre solo en presentación.
func NewLine(product *entity.Product, quantity int, discount decimal.Decimal) (*entity.InvoiceLine, error) {
	if product == nil {
		return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: el descuento debe estar entre 0 y 100", domain.ErrInvalidInput)
	}

	qty := decimal.NewFromInt(int64(quantity))
	// Shift(-2) divide por 100 de forma exacta (sin precisión de Div).
	net := product.Price.Mul(qty).Mul(one.Sub(discount.Shift(-2)))
	gross := net.Mul(one.Add(product.TaxRate.Shift(-2)))

	return &entity.InvoiceLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.Price,
		TaxRate:     product.TaxRate,
		Discount:    discount,
		NetAmount:   net,
		GrossAmount: gross,
	}, nil
}

// Totals agrega los montos de las líneas: total HT y total TTC de la factura.
func Totals(lines []*entity.InvoiceLine) (net, gross decimal.Decimal) {
	net, gross = decimal.Zero, decimal.Zero
	for _, line := range lines {
		net = net.Add(line.NetAmount)
		gross = gross.Add(line.GrossAmount)
	}
	return net, gross
}
