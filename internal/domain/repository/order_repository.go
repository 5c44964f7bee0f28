package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Las búsquedas ignoran pedidos eliminados (deleted_at IS NOT NULL).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// NumberExists indica si la empresa ya tiene un pedido vivo con ese número.
	NumberExists(ctx context.Context, companyID, number string) (bool, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Order, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Update(ctx context.Context, order *entity.Order) error
	SoftDelete(ctx context.Context, id, modifiedBy string) error
	// Delete borra físicamente; las líneas caen en cascada y una factura existente lo impide.
	Delete(ctx context.Context, id string) error
}

// OrderItemRepository define el puerto de persistencia para las líneas de pedido.
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
}
