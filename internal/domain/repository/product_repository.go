package repository

import "github.com/tu-usuario/facturation-pro/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// List devuelve productos ordenados por nombre; con activeOnly=true omite los desactivados.
	List(activeOnly bool, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
