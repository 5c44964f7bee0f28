package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	SoftDelete(ctx context.Context, id, modifiedBy string) error
	// Delete borra físicamente; si otra fila lo referencia devuelve domain.ErrConflict.
	Delete(ctx context.Context, id string) error
}
