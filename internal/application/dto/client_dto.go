package dto

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	SIRET      string `json:"siret,omitempty"`
	VATNumber  string `json:"vat_number,omitempty"`
}

// UpdateClientRequest body para PUT /api/clients/:id.
type UpdateClientRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	SIRET      string `json:"siret,omitempty"`
	VATNumber  string `json:"vat_number,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	SIRET      string `json:"siret,omitempty"`
	VATNumber  string `json:"vat_number,omitempty"`
	CreatedAt  string `json:"created_at"`
}
