package dto

import "github.com/shopspring/decimal"

// UpdateSettingsRequest body para PUT /api/settings (parcial).
// InvoiceNextNumber no es editable por esta vía: lo consume la numeración.
type UpdateSettingsRequest struct {
	Name               *string          `json:"name,omitempty"`
	Address            *string          `json:"address,omitempty"`
	City               *string          `json:"city,omitempty"`
	PostalCode         *string          `json:"postal_code,omitempty"`
	Country            *string          `json:"country,omitempty"`
	Phone              *string          `json:"phone,omitempty"`
	Email              *string          `json:"email,omitempty"`
	Website            *string          `json:"website,omitempty"`
	SIRET              *string          `json:"siret,omitempty"`
	VATNumber          *string          `json:"vat_number,omitempty"`
	DefaultTaxRate     *decimal.Decimal `json:"default_tax_rate,omitempty"`
	InvoicePrefix      *string          `json:"invoice_prefix,omitempty"`
	PrimaryColor       *string          `json:"primary_color,omitempty"`
	SecondaryColor     *string          `json:"secondary_color,omitempty"`
	TermsAndConditions *string          `json:"terms_and_conditions,omitempty"`
	BankDetails        *string          `json:"bank_details,omitempty"`
}

// SettingsResponse configuración del negocio en respuestas.
type SettingsResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Address            string          `json:"address,omitempty"`
	City               string          `json:"city,omitempty"`
	PostalCode         string          `json:"postal_code,omitempty"`
	Country            string          `json:"country,omitempty"`
	Phone              string          `json:"phone,omitempty"`
	Email              string          `json:"email,omitempty"`
	Website            string          `json:"website,omitempty"`
	SIRET              string          `json:"siret,omitempty"`
	VATNumber          string          `json:"vat_number,omitempty"`
	DefaultTaxRate     decimal.Decimal `json:"default_tax_rate"`
	InvoicePrefix      string          `json:"invoice_prefix"`
	InvoiceNextNumber  int             `json:"invoice_next_number"`
	PrimaryColor       string          `json:"primary_color,omitempty"`
	SecondaryColor     string          `json:"secondary_color,omitempty"`
	TermsAndConditions string          `json:"terms_and_conditions,omitempty"`
	BankDetails        string          `json:"bank_details,omitempty"`
}
