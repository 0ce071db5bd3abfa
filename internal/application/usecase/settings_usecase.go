package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/facturation-pro/internal/application/dto"
	"github.com/tu-usuario/facturation-pro/internal/domain"
	"github.com/tu-usuario/facturation-pro/internal/domain/entity"
	"github.com/tu-usuario/facturation-pro/internal/domain/repository"
)

// SettingsUseCase gestiona el singleton BusinessSettings con inicialización
// perezosa: el primer Get crea el registro con valores por defecto.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve la configuración, creándola con los valores por defecto si
// todavía no existe.
func (uc *SettingsUseCase) Get() (*dto.SettingsResponse, error) {
	settings, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultBusinessSettings()
		settings.ID = uuid.New().String()
		if err := uc.repo.Create(settings); err != nil {
			return nil, err
		}
	}
	return toSettingsResponse(settings), nil
}

// Update actualiza la configuración (parcial). InvoiceNextNumber no se toca:
// solo lo consume la numeración de facturas.
func (uc *SettingsUseCase) Update(in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultBusinessSettings()
		settings.ID = uuid.New().String()
		if err := uc.repo.Create(settings); err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: el nombre del negocio es requerido", domain.ErrInvalidInput)
		}
		settings.Name = *in.Name
	}
	if in.Address != nil {
		settings.Address = *in.Address
	}
	if in.City != nil {
		settings.City = *in.City
	}
	if in.PostalCode != nil {
		settings.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		settings.Country = *in.Country
	}
	if in.Phone != nil {
		settings.Phone = *in.Phone
	}
	if in.Email != nil {
		settings.Email = *in.Email
	}
	if in.Website != nil {
		settings.Website = *in.Website
	}
	if in.SIRET != nil {
		settings.SIRET = *in.SIRET
	}
	if in.VATNumber != nil {
		settings.VATNumber = *in.VATNumber
	}
	if in.DefaultTaxRate != nil {
		if err := validateTaxRate(*in.DefaultTaxRate); err != nil {
			return nil, err
		}
		settings.DefaultTaxRate = *in.DefaultTaxRate
	}
	if in.InvoicePrefix != nil {
		if *in.InvoicePrefix == "" {
			return nil, fmt.Errorf("%w: el prefijo de facturación es requerido", domain.ErrInvalidInput)
		}
		settings.InvoicePrefix = *in.InvoicePrefix
	}
	if in.PrimaryColor != nil {
		settings.PrimaryColor = *in.PrimaryColor
	}
	if in.SecondaryColor != nil {
		settings.SecondaryColor = *in.SecondaryColor
	}
	if in.TermsAndConditions != nil {
		settings.TermsAndConditions = *in.TermsAndConditions
	}
	if in.BankDetails != nil {
		settings.BankDetails = *in.BankDetails
	}

	settings.UpdatedAt = time.Now()
	if err := uc.repo.Update(settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func toSettingsResponse(s *entity.BusinessSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Address:            s.Address,
		City:               s.City,
		PostalCode:         s.PostalCode,
		Country:            s.Country,
		Phone:              s.Phone,
		Email:              s.Email,
		Website:            s.Website,
		SIRET:              s.SIRET,
		VATNumber:          s.VATNumber,
		DefaultTaxRate:     s.DefaultTaxRate,
		InvoicePrefix:      s.InvoicePrefix,
		InvoiceNextNumber:  s.InvoiceNextNumber,
		PrimaryColor:       s.PrimaryColor,
		SecondaryColor:     s.SecondaryColor,
		TermsAndConditions: s.TermsAndConditions,
		BankDetails:        s.BankDetails,
	}
}
