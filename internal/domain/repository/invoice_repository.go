package repository

import "github.com/tu-usuario/facturation-pro/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByIDForUpdate lee la factura bloqueando su fila (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción; serializa la reconciliación por factura.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	// GetBySequence busca la factura cuyo número termina en la secuencia dada
	// (parte numérica final de PREFIX-AÑO-SEQ); la más reciente si hay varias.
	GetBySequence(seq int) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	// Update actualiza cabecera y totales: client_id, client_nom, fechas, montos, statut, notes, conditions.
	Update(invoice *entity.Invoice) error
	UpdateStatus(id, status string) error
	List(status string, limit, offset int) ([]*entity.Invoice, error)
	DeleteLinesByInvoiceID(invoiceID string) error
	// DeleteLine elimina una línea acotada a su factura; retorna
	// domain.ErrNotFound si la línea no existe o pertenece a otra factura.
	DeleteLine(invoiceID, lineID string) error
	Delete(id string) error
	// ExistsByClientID informa si alguna factura referencia al cliente (guarda de borrado).
	ExistsByClientID(clientID string) (bool, error)
	// ExistsLineByProductID informa si alguna línea referencia al producto (guarda de borrado).
	ExistsLineByProductID(productID string) (bool, error)
}
