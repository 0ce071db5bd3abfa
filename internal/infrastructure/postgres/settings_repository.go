package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository (usable con pool o tx).
// Tabla: business_settings, una sola fila.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

const settingsColumns = `id, nom, adresse, ville, code_postal, pays, telephone, email, site_web,
	       siret, numero_tva, tva_defaut, prefixe_facture, prochain_numero,
	       couleur_primaire, couleur_secondaire, conditions, coordonnees_bancaires,
	       created_at, updated_at`

func scanSettings(row interface{ Scan(dest ...any) error }) (*entity.BusinessSettings, error) {
	var s entity.BusinessSettings
	var address, city, postalCode, country, phone, email, website *string
	var siret, vat, primary, secondary, terms, bank *string
	err := row.Scan(
		&s.ID, &s.Name, &address, &city, &postalCode, &country, &phone, &email, &website,
		&siret, &vat, &s.DefaultTaxRate, &s.InvoicePrefix, &s.InvoiceNextNumber,
		&primary, &secondary, &terms, &bank,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Address = derefStr(address)
	s.City = derefStr(city)
	s.PostalCode = derefStr(postalCode)
	s.Country = derefStr(country)
	s.Phone = derefStr(phone)
	s.Email = derefStr(email)
	s.Website = derefStr(website)
	s.SIRET = derefStr(siret)
	s.VATNumber = derefStr(vat)
	s.PrimaryColor = derefStr(primary)
	s.SecondaryColor = derefStr(secondary)
	s.TermsAndConditions = derefStr(terms)
	s.BankDetails = derefStr(bank)
	return &s, nil
}

// Get devuelve el registro o nil si todavía no existe.
func (r *SettingsRepo) Get() (*entity.BusinessSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM business_settings LIMIT 1`
	settings, err := scanSettings(r.q.QueryRow(context.Background(), query))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// GetForUpdate devuelve el registro bloqueando su fila; serializa el consumo
// de la secuencia de numeración. Solo tiene sentido dentro de una transacción.
func (r *SettingsRepo) GetForUpdate() (*entity.BusinessSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM business_settings LIMIT 1 FOR UPDATE`
	settings, err := scanSettings(r.q.QueryRow(context.Background(), query))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings for update: %w", err)
	}
	return settings, nil
}

// Create persiste el registro inicial.
func (r *SettingsRepo) Create(settings *entity.BusinessSettings) error {
	query := `
		INSERT INTO business_settings (id, nom, adresse, ville, code_postal, pays, telephone, email, site_web,
		                               siret, numero_tva, tva_defaut, prefixe_facture, prochain_numero,
		                               couleur_primaire, couleur_secondaire, conditions, coordonnees_bancaires,
		                               created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		settings.ID, settings.Name, nullIfEmpty(settings.Address), nullIfEmpty(settings.City),
		nullIfEmpty(settings.PostalCode), nullIfEmpty(settings.Country), nullIfEmpty(settings.Phone),
		nullIfEmpty(settings.Email), nullIfEmpty(settings.Website), nullIfEmpty(settings.SIRET),
		nullIfEmpty(settings.VATNumber), settings.DefaultTaxRate, settings.InvoicePrefix,
		settings.InvoiceNextNumber, nullIfEmpty(settings.PrimaryColor), nullIfEmpty(settings.SecondaryColor),
		nullIfEmpty(settings.TermsAndConditions), nullIfEmpty(settings.BankDetails),
		settings.CreatedAt, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert settings: %w", err)
	}
	return nil
}

// Update actualiza el registro existente.
func (r *SettingsRepo) Update(settings *entity.BusinessSettings) error {
	query := `
		UPDATE business_settings
		SET nom = $2, adresse = $3, ville = $4, code_postal = $5, pays = $6, telephone = $7,
		    email = $8, site_web = $9, siret = $10, numero_tva = $11, tva_defaut = $12,
		    prefixe_facture = $13, prochain_numero = $14, couleur_primaire = $15,
		    couleur_secondaire = $16, conditions = $17, coordonnees_bancaires = $18, updated_at = $19
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		settings.ID, settings.Name, nullIfEmpty(settings.Address), nullIfEmpty(settings.City),
		nullIfEmpty(settings.PostalCode), nullIfEmpty(settings.Country), nullIfEmpty(settings.Phone),
		nullIfEmpty(settings.Email), nullIfEmpty(settings.Website), nullIfEmpty(settings.SIRET),
		nullIfEmpty(settings.VATNumber), settings.DefaultTaxRate, settings.InvoicePrefix,
		settings.InvoiceNextNumber, nullIfEmpty(settings.PrimaryColor), nullIfEmpty(settings.SecondaryColor),
		nullIfEmpty(settings.TermsAndConditions), nullIfEmpty(settings.BankDetails), settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
