package dto

import "github.com/shopspring/decimal"

// InvoiceLineRequest línea de factura en peticiones: producto, cantidad y
// descuento porcentual (0–100). Precio y TVA se toman del producto.
type InvoiceLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// IssueDate/DueDate en formato "2006-01-02"; si IssueDate va vacío se usa hoy.
type CreateInvoiceRequest struct {
	ClientID     string               `json:"client_id"`
	IssueDate    string               `json:"issue_date,omitempty"`
	DueDate      string               `json:"due_date,omitempty"`
	Lines        []InvoiceLineRequest `json:"lines"`
	Notes        string               `json:"notes,omitempty"`
	PaymentTerms string               `json:"payment_terms,omitempty"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id (cabecera, parcial).
type UpdateInvoiceRequest struct {
	ClientID     *string `json:"client_id,omitempty"`
	IssueDate    *string `json:"issue_date,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	PaymentTerms *string `json:"payment_terms,omitempty"`
}

// ReplaceLinesRequest body para PUT /api/invoices/:id/lines.
type ReplaceLinesRequest struct {
	Lines []InvoiceLineRequest `json:"lines"`
}

// InvoiceLineResponse línea en respuestas, con montos derivados.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Discount    decimal.Decimal `json:"discount"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
}

// InvoiceResponse factura con líneas para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	ClientID     string                `json:"client_id"`
	ClientName   string                `json:"client_name,omitempty"`
	IssueDate    string                `json:"issue_date"`
	DueDate      string                `json:"due_date,omitempty"`
	NetTotal     decimal.Decimal       `json:"net_total"`
	GrossTotal   decimal.Decimal       `json:"gross_total"`
	Status       string                `json:"status"`
	Notes        string                `json:"notes,omitempty"`
	PaymentTerms string                `json:"payment_terms,omitempty"`
	Lines        []InvoiceLineResponse `json:"lines"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
