package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio facturable.
// Un producto referenciado por líneas de factura no se elimina: se desactiva (Active=false).
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio unitario HT (sin impuestos)
	TaxRate     decimal.Decimal // porcentaje de TVA: 0–100
	Unit        string          // unidad de venta (hora, pieza, día...)
	Reference   string
	Active      bool
	CreatedAt   time.Time
}
