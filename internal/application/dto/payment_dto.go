package dto

import "github.com/shopspring/decimal"

// CreatePaymentRequest body para POST /api/payments.
// PaymentDate en formato "2006-01-02"; vacío = hoy. Status vacío = "pending".
type CreatePaymentRequest struct {
	InvoiceID   string          `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Status      string          `json:"status,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	PaymentDate string          `json:"payment_date,omitempty"`
}

// UpdatePaymentRequest body para PUT /api/payments/:id (parcial).
type UpdatePaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Method      *string          `json:"method,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Reference   *string          `json:"reference,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	PaymentDate *string          `json:"payment_date,omitempty"`
}

// PaymentFilterRequest filtros opcionales de GET /api/payments (AND).
type PaymentFilterRequest struct {
	ClientID  string `query:"client_id"`
	InvoiceID string `query:"invoice_id"`
	Status    string `query:"status"`
	Method    string `query:"method"`
	DateFrom  string `query:"date_from"`
	DateTo    string `query:"date_to"`
}

// PaymentResponse pago en respuestas, con los snapshots desnormalizados.
type PaymentResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaymentDate   string          `json:"payment_date"`
	CreatedAt     string          `json:"created_at"`
}

// PaymentListResponse lista paginada de pagos.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
