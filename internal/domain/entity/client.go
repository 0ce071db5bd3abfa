package entity

import "time"

// Client representa un cliente facturable.
// Los campos de dirección e identificación fiscal (SIRET, número de TVA) son opcionales.
type Client struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
	SIRET      string // identificación de empresa (Francia)
	VATNumber  string // número de TVA intracomunitario
	CreatedAt  time.Time
}
