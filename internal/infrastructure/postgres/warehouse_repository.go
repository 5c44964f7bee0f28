package postgres

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, company_id, COALESCE(type, ''), name, address, created_at, updated_at, deleted_at, modified_by`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, company_id, type, name, address, created_at, updated_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.CompanyID, nullIfEmpty(w.Type), w.Name, w.Address, w.CreatedAt, w.UpdatedAt, w.ModifiedBy,
	)
	return mapError("insert warehouse", err)
}

// GetByID obtiene una bodega viva por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1 AND deleted_at IS NULL`
	w, err := scanWarehouse(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapError("get warehouse", err)
	}
	return w, nil
}

// Update actualiza una bodega.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET type = $2, name = $3, address = $4, updated_at = $5, modified_by = $6
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query, w.ID, nullIfEmpty(w.Type), w.Name, w.Address, w.UpdatedAt, w.ModifiedBy)
	if err != nil {
		return mapError("update warehouse", err)
	}
	return affected(tag)
}

// ListByCompany lista bodegas de la empresa con paginación.
func (r *WarehouseRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, mapError("list warehouses", err)
	}
	defer rows.Close()
	list := make([]*entity.Warehouse, 0)
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, mapError("scan warehouse", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// SoftDelete marca la bodega como eliminada.
func (r *WarehouseRepo) SoftDelete(ctx context.Context, id, modifiedBy string) error {
	return softDelete(ctx, r.q, "warehouses", id, modifiedBy)
}

// Delete borra físicamente la bodega.
func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.q, "warehouses", id)
}

func scanWarehouse(row pgxScanner) (*entity.Warehouse, error) {
	var w entity.Warehouse
	if err := row.Scan(
		&w.ID, &w.CompanyID, &w.Type, &w.Name, &w.Address,
		&w.CreatedAt, &w.UpdatedAt, &w.DeletedAt, &w.ModifiedBy,
	); err != nil {
		return nil, err
	}
	return &w, nil
}
