package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error)
	// NumberExists indica si la empresa ya tiene una factura viva con ese número.
	NumberExists(ctx context.Context, companyID, number string) (bool, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
	// UpdateStatus cambia el estado y registra quién lo modificó.
	UpdateStatus(ctx context.Context, id, status, modifiedBy string) error
	// UpdateDate alinea la fecha de la factura viva del pedido con la fecha del pedido.
	UpdateDate(ctx context.Context, orderID string, date time.Time, modifiedBy string) error
	SoftDelete(ctx context.Context, id, modifiedBy string) error
	// Delete borra físicamente la factura.
	Delete(ctx context.Context, id string) error
}
