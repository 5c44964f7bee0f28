package postgres

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, COALESCE(sku, ''), name, price, type, created_at, updated_at, deleted_at, modified_by`

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Un SKU repetido en la empresa devuelve domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, sku, name, price, type, created_at, updated_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, nullIfEmpty(p.SKU), p.Name, p.Price, p.Type, p.CreatedAt, p.UpdatedAt, p.ModifiedBy,
	)
	return mapError("insert product", err)
}

// GetByID obtiene un producto vivo por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapError("get product", err)
	}
	return p, nil
}

// Update actualiza un producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, price = $4, type = $5, updated_at = $6, modified_by = $7
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		p.ID, nullIfEmpty(p.SKU), p.Name, p.Price, p.Type, p.UpdatedAt, p.ModifiedBy,
	)
	if err != nil {
		return mapError("update product", err)
	}
	return affected(tag)
}

// ListByCompany lista productos de la empresa con paginación.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, mapError("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SoftDelete marca el producto como eliminado. Las líneas de pedido históricas lo siguen referenciando.
func (r *ProductRepo) SoftDelete(ctx context.Context, id, modifiedBy string) error {
	return softDelete(ctx, r.q, "products", id, modifiedBy)
}

// Delete borra físicamente el producto; falla con domain.ErrConflict si alguna línea de pedido lo usa.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.q, "products", id)
}

func scanProduct(row pgxScanner) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Price, &p.Type,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt, &p.ModifiedBy,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
