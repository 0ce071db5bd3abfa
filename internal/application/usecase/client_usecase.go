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

// ClientUseCase casos de uso CRUD para clientes. El borrado está guardado:
// un cliente referenciado por facturas no se elimina.
type ClientUseCase struct {
	repo        repository.ClientRepository
	invoiceRepo repository.InvoiceRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, invoiceRepo repository.InvoiceRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, invoiceRepo: invoiceRepo}
}

// Create crea un nuevo cliente.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	client := &entity.Client{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		City:       in.City,
		PostalCode: in.PostalCode,
		Country:    in.Country,
		SIRET:      in.SIRET,
		VATNumber:  in.VATNumber,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(limit, offset int) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update actualiza un cliente (reemplazo completo de campos editables).
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	client.Name = in.Name
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.City = in.City
	client.PostalCode = in.PostalCode
	client.Country = in.Country
	client.SIRET = in.SIRET
	client.VATNumber = in.VATNumber
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente. Con facturas que lo referencian, el borrado se
// rechaza con un resultado estructurado.
func (uc *ClientUseCase) Delete(id string) (*dto.DeleteResult, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	referenced, err := uc.invoiceRepo.ExistsByClientID(id)
	if err != nil {
		return nil, err
	}
	if referenced {
		return &dto.DeleteResult{
			Success: false,
			Message: "Impossible de supprimer ce client : des factures lui sont rattachées.",
		}, nil
	}
	if err := uc.repo.Delete(id); err != nil {
		return nil, err
	}
	return &dto.DeleteResult{Success: true}, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		Country:    c.Country,
		SIRET:      c.SIRET,
		VATNumber:  c.VATNumber,
		CreatedAt:  c.CreatedAt.Format("2006-01-02"),
	}
}
