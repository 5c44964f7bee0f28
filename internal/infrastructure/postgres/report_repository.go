package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura sobre pedidos vivos.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// BestsellingProducts devuelve los `limit` productos con mayor cantidad pedida y su ingreso (cantidad × precio de línea).
func (r *ReportRepo) BestsellingProducts(ctx context.Context, companyID string, limit int) ([]repository.ProductSales, error) {
	const query = `
	SELECT
	    p.id                              AS product_id,
	    p.name                            AS product_name,
	    SUM(oi.quantity)::BIGINT          AS total_ordered,
	    SUM(oi.quantity * oi.price)       AS revenue
	FROM order_items oi
	JOIN orders   o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE o.company_id  = $1
	  AND o.deleted_at  IS NULL
	  AND oi.deleted_at IS NULL
	GROUP BY p.id, p.name
	ORDER BY total_ordered DESC, p.name
	LIMIT $2`

	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.BestsellingProducts: %w", err)
	}
	defer rows.Close()

	results := []repository.ProductSales{}
	for rows.Next() {
		var row repository.ProductSales
		if err := rows.Scan(&row.ProductID, &row.Name, &row.TotalOrdered, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.BestsellingProducts scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reports.BestsellingProducts rows: %w", err)
	}
	return results, nil
}

// TopCustomerByOrders devuelve el cliente vivo con más pedidos vivos; (nil, nil) si la empresa no tiene pedidos.
func (r *ReportRepo) TopCustomerByOrders(ctx context.Context, companyID string) (*repository.CustomerOrders, error) {
	const query = `
	SELECT
	    c.id             AS customer_id,
	    c.name           AS customer_name,
	    COUNT(o.id)      AS order_count
	FROM customers c
	JOIN orders o ON o.customer_id = c.id
	             AND o.company_id  = $1
	             AND o.deleted_at  IS NULL
	WHERE c.company_id = $1
	  AND c.deleted_at IS NULL
	GROUP BY c.id, c.name
	ORDER BY order_count DESC, c.name
	LIMIT 1`

	var row repository.CustomerOrders
	err := r.q.QueryRow(ctx, query, companyID).Scan(&row.CustomerID, &row.Name, &row.OrderCount)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reports.TopCustomerByOrders: %w", err)
	}
	return &row, nil
}

// TopProductPerWarehouse devuelve, por cada bodega viva, el producto con mayor cantidad pedida.
// DISTINCT ON conserva la primera fila por bodega según el ORDER BY.
func (r *ReportRepo) TopProductPerWarehouse(ctx context.Context, companyID string) ([]repository.WarehouseTopProduct, error) {
	const query = `
	SELECT DISTINCT ON (w.id)
	    w.id                      AS warehouse_id,
	    w.name                    AS warehouse_name,
	    p.id                      AS product_id,
	    p.name                    AS product_name,
	    SUM(oi.quantity)::BIGINT  AS total_ordered
	FROM warehouses w
	JOIN orders      o  ON o.warehouse_id = w.id
	                   AND o.company_id   = $1
	                   AND o.deleted_at   IS NULL
	JOIN order_items oi ON oi.order_id    = o.id
	                   AND oi.deleted_at  IS NULL
	JOIN products    p  ON p.id           = oi.product_id
	                   AND p.deleted_at   IS NULL
	WHERE w.company_id = $1
	  AND w.deleted_at IS NULL
	GROUP BY w.id, w.name, p.id, p.name
	ORDER BY w.id, total_ordered DESC, p.name`

	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("reports.TopProductPerWarehouse: %w", err)
	}
	defer rows.Close()

	results := []repository.WarehouseTopProduct{}
	for rows.Next() {
		var row repository.WarehouseTopProduct
		if err := rows.Scan(
			&row.WarehouseID,
			&row.WarehouseName,
			&row.ProductID,
			&row.ProductName,
			&row.TotalOrdered,
		); err != nil {
			return nil, fmt.Errorf("reports.TopProductPerWarehouse scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
