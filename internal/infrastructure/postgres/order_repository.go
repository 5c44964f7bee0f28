package postgres

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.OrderItemRepository = (*OrderItemRepo)(nil)
)

const orderColumns = `id, company_id, number, type, customer_id, warehouse_id, date, created_at, updated_at, deleted_at, modified_by`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta el pedido. Un número repetido entre pedidos vivos devuelve domain.ErrDuplicateIdentifier.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, company_id, number, type, customer_id, warehouse_id, date, created_at, updated_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.Number, string(o.Type), o.CustomerID, o.WarehouseID, o.Date,
		o.CreatedAt, o.UpdatedAt, o.ModifiedBy,
	)
	return mapError("insert order", err)
}

// GetByID obtiene un pedido vivo por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND deleted_at IS NULL`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapError("get order", err)
	}
	return o, nil
}

// NumberExists indica si la empresa ya tiene un pedido vivo con ese número.
func (r *OrderRepo) NumberExists(ctx context.Context, companyID, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE company_id = $1 AND number = $2 AND deleted_at IS NULL)`,
		companyID, number,
	).Scan(&exists)
	if err != nil {
		return false, mapError("order number exists", err)
	}
	return exists, nil
}

// ListByCompany lista pedidos vivos de la empresa, más recientes primero.
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY date DESC, number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, mapError("list orders", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, mapError("scan order", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// CountByCompany cuenta los pedidos vivos de la empresa.
func (r *OrderRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE company_id = $1 AND deleted_at IS NULL`, companyID,
	).Scan(&n)
	if err != nil {
		return 0, mapError("count orders", err)
	}
	return n, nil
}

// Update actualiza la cabecera del pedido.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET number = $2, type = $3, customer_id = $4, warehouse_id = $5, date = $6,
		       updated_at = $7, modified_by = $8
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.Number, string(o.Type), o.CustomerID, o.WarehouseID, o.Date, o.UpdatedAt, o.ModifiedBy,
	)
	if err != nil {
		return mapError("update order", err)
	}
	return affected(tag)
}

// SoftDelete marca el pedido como eliminado; su número queda libre para la empresa.
func (r *OrderRepo) SoftDelete(ctx context.Context, id, modifiedBy string) error {
	return softDelete(ctx, r.q, "orders", id, modifiedBy)
}

// Delete borra físicamente el pedido. Las líneas caen en cascada; una factura lo impide (domain.ErrConflict).
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return mapError("delete order", err)
	}
	return affected(tag)
}

func scanOrder(row pgxScanner) (*entity.Order, error) {
	var o entity.Order
	var typ string
	if err := row.Scan(
		&o.ID, &o.CompanyID, &o.Number, &typ, &o.CustomerID, &o.WarehouseID, &o.Date,
		&o.CreatedAt, &o.UpdatedAt, &o.DeletedAt, &o.ModifiedBy,
	); err != nil {
		return nil, err
	}
	o.Type = entity.OrderType(typ)
	return &o, nil
}

// ── order items ─────────────────────────────────────────────────────────────

// OrderItemRepo implementación de OrderItemRepository (usable con pool o tx).
type OrderItemRepo struct {
	q Querier
}

// NewOrderItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderItemRepository(q Querier) *OrderItemRepo {
	return &OrderItemRepo{q: q}
}

// Create inserta una línea. El producto repetido en el pedido devuelve domain.ErrDuplicateOrderItem.
func (r *OrderItemRepo) Create(ctx context.Context, it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at, updated_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.OrderID, it.ProductID, it.Quantity, it.Price, it.CreatedAt, it.UpdatedAt, it.ModifiedBy,
	)
	return mapError("insert order item", err)
}

// ListByOrder lista las líneas vivas del pedido en orden de inserción.
func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price, created_at, updated_at, deleted_at, modified_by
		FROM order_items WHERE order_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, mapError("list order items", err)
	}
	defer rows.Close()
	list := make([]*entity.OrderItem, 0)
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price,
			&it.CreatedAt, &it.UpdatedAt, &it.DeletedAt, &it.ModifiedBy,
		); err != nil {
			return nil, mapError("scan order item", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
