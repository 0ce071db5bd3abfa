package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/facturation-pro/internal/application/dto"
	"github.com/tu-usuario/facturation-pro/internal/application/usecase"
	"github.com/tu-usuario/facturation-pro/internal/domain"
)

func newClientEnv() (*usecase.ClientUseCase, *fakeClientRepo, *fakeInvoiceRefs) {
	repo := newFakeClientRepo()
	refs := newFakeInvoiceRefs()
	return usecase.NewClientUseCase(repo, refs), repo, refs
}

func TestClientCreate(t *testing.T) {
	uc, repo, _ := newClientEnv()

	client, err := uc.Create(dto.CreateClientRequest{
		Name:      "Dupont SARL",
		Email:     "contact@dupont.fr",
		City:      "Lyon",
		SIRET:     "12345678900011",
		VATNumber: "FR12345678901",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "Dupont SARL", client.Name)
	assert.Equal(t, "FR12345678901", client.VATNumber)
	assert.NotNil(t, repo.clients[client.ID], "el cliente debe persistirse")
}

func TestClientCreate_NombreRequerido(t *testing.T) {
	uc, _, _ := newClientEnv()
	_, err := uc.Create(dto.CreateClientRequest{Email: "sin-nombre@exemple.fr"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientGetByID_Inexistente(t *testing.T) {
	uc, _, _ := newClientEnv()
	_, err := uc.GetByID("cli-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUpdate_ReemplazoCompleto(t *testing.T) {
	uc, _, _ := newClientEnv()
	client, err := uc.Create(dto.CreateClientRequest{Name: "Dupont SARL", Email: "contact@dupont.fr"})
	require.NoError(t, err)

	updated, err := uc.Update(client.ID, dto.UpdateClientRequest{Name: "Dupont & Associés"})
	require.NoError(t, err)

	assert.Equal(t, "Dupont & Associés", updated.Name)
	assert.Empty(t, updated.Email, "Update es reemplazo completo: los campos omitidos se vacían")
}

func TestClientUpdate_NombreRequerido(t *testing.T) {
	uc, _, _ := newClientEnv()
	client, err := uc.Create(dto.CreateClientRequest{Name: "Dupont SARL"})
	require.NoError(t, err)

	_, err = uc.Update(client.ID, dto.UpdateClientRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientDelete_SinFacturas(t *testing.T) {
	uc, repo, _ := newClientEnv()
	client, err := uc.Create(dto.CreateClientRequest{Name: "Dupont SARL"})
	require.NoError(t, err)

	result, err := uc.Delete(client.ID)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Nil(t, repo.clients[client.ID])
}

func TestClientDelete_BloqueadoPorFacturas(t *testing.T) {
	uc, repo, refs := newClientEnv()
	client, err := uc.Create(dto.CreateClientRequest{Name: "Dupont SARL"})
	require.NoError(t, err)
	refs.clientRefs[client.ID] = true

	result, err := uc.Delete(client.ID)
	require.NoError(t, err, "el borrado bloqueado no es un error técnico")

	assert.False(t, result.Success)
	assert.True(t, strings.Contains(result.Message, "factures"),
		"el mensaje debe explicar que hay facturas rattachées: %q", result.Message)
	assert.NotNil(t, repo.clients[client.ID], "el cliente debe seguir existiendo")
}

func TestClientDelete_Inexistente(t *testing.T) {
	uc, _, _ := newClientEnv()
	_, err := uc.Delete("cli-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
