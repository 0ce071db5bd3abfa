package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
// Tabla: clients, columnas en francés (esquema heredado de la app original).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	query := `
		INSERT INTO clients (id, nom, email, telephone, adresse, ville, code_postal, pays, siret, numero_tva, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, nullIfEmpty(client.Email), nullIfEmpty(client.Phone),
		nullIfEmpty(client.Address), nullIfEmpty(client.City), nullIfEmpty(client.PostalCode),
		nullIfEmpty(client.Country), nullIfEmpty(client.SIRET), nullIfEmpty(client.VATNumber),
		client.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("client already exists: %w", err)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

const clientColumns = `id, nom, email, telephone, adresse, ville, code_postal, pays, siret, numero_tva, created_at`

func scanClient(row interface{ Scan(dest ...any) error }) (*entity.Client, error) {
	var c entity.Client
	var email, phone, address, city, postalCode, country, siret, vat *string
	err := row.Scan(&c.ID, &c.Name, &email, &phone, &address, &city, &postalCode, &country, &siret, &vat, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Email = derefStr(email)
	c.Phone = derefStr(phone)
	c.Address = derefStr(address)
	c.City = derefStr(city)
	c.PostalCode = derefStr(postalCode)
	c.Country = derefStr(country)
	c.SIRET = derefStr(siret)
	c.VATNumber = derefStr(vat)
	return &c, nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return client, nil
}

// List devuelve clientes ordenados por nombre, con paginación.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY nom LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, client)
	}
	return list, rows.Err()
}

// Update actualiza un cliente existente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET nom = $2, email = $3, telephone = $4, adresse = $5, ville = $6,
		    code_postal = $7, pays = $8, siret = $9, numero_tva = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, nullIfEmpty(client.Email), nullIfEmpty(client.Phone),
		nullIfEmpty(client.Address), nullIfEmpty(client.City), nullIfEmpty(client.PostalCode),
		nullIfEmpty(client.Country), nullIfEmpty(client.SIRET), nullIfEmpty(client.VATNumber),
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
