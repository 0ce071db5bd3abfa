package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessSettings es el registro singleton de configuración del negocio.
// Se crea perezosamente con valores por defecto en el primer acceso.
type BusinessSettings struct {
	ID                 string
	Name               string
	Address            string
	City               string
	PostalCode         string
	Country            string
	Phone              string
	Email              string
	Website            string
	SIRET              string
	VATNumber          string
	DefaultTaxRate     decimal.Decimal // TVA por defecto para nuevos productos
	InvoicePrefix      string          // prefijo de numeración, ej. FACT
	InvoiceNextNumber  int             // siguiente secuencia de numeración
	PrimaryColor       string
	SecondaryColor     string
	TermsAndConditions string
	BankDetails        string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultBusinessSettings devuelve los valores por defecto usados en la
// creación perezosa del registro.
func DefaultBusinessSettings() *BusinessSettings {
	now := time.Now()
	return &BusinessSettings{
		Name:              "Mon Entreprise",
		Country:           "France",
		DefaultTaxRate:    decimal.NewFromInt(20),
		InvoicePrefix:     "FACT",
		InvoiceNextNumber: 1,
		PrimaryColor:      "#2563eb",
		SecondaryColor:    "#64748b",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
