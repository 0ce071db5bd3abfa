package repository

import "github.com/tu-usuario/facturation-pro/internal/domain/entity"

// SettingsRepository define el puerto de persistencia para el registro
// singleton BusinessSettings.
type SettingsRepository interface {
	// Get devuelve el registro o nil si todavía no existe.
	Get() (*entity.BusinessSettings, error)
	// GetForUpdate lee el registro bloqueando su fila; serializa el consumo
	// de la secuencia de numeración de facturas.
	GetForUpdate() (*entity.BusinessSettings, error)
	Create(settings *entity.BusinessSettings) error
	Update(settings *entity.BusinessSettings) error
}
