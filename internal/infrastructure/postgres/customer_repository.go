package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, company_id, type, name, email, created_at, updated_at, deleted_at, modified_by`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, company_id, type, name, email, created_at, updated_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.CompanyID, customer.Type, customer.Name, customer.Email,
		customer.CreatedAt, customer.UpdatedAt, customer.ModifiedBy,
	)
	return mapError("insert customer", err)
}

// GetByID obtiene un cliente vivo por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND deleted_at IS NULL`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapError("get customer", err)
	}
	return c, nil
}

// ListByCompany lista clientes de la empresa con paginación.
func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, mapError("list customers", err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, mapError("scan customer", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers SET type = $2, name = $3, email = $4, updated_at = $5, modified_by = $6
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		customer.ID, customer.Type, customer.Name, customer.Email, customer.UpdatedAt, customer.ModifiedBy,
	)
	if err != nil {
		return mapError("update customer", err)
	}
	return affected(tag)
}

// SoftDelete marca el cliente como eliminado.
func (r *CustomerRepo) SoftDelete(ctx context.Context, id, modifiedBy string) error {
	return softDelete(ctx, r.q, "customers", id, modifiedBy)
}

// Delete borra físicamente el cliente; si tiene pedidos devuelve domain.ErrConflict.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.q, "customers", id)
}

func scanCustomer(row pgxScanner) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(
		&c.ID, &c.CompanyID, &c.Type, &c.Name, &c.Email,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt, &c.ModifiedBy,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// softDelete marca deleted_at y modified_by en una tabla con esas columnas. table es siempre una constante interna.
func softDelete(ctx context.Context, q Querier, table, id, modifiedBy string) error {
	now := time.Now().UTC()
	tag, err := q.Exec(ctx,
		`UPDATE `+table+` SET deleted_at = $2, updated_at = $2, modified_by = $3 WHERE id = $1 AND deleted_at IS NULL`,
		id, now, nullIfEmpty(modifiedBy),
	)
	if err != nil {
		return mapError("soft delete "+table, err)
	}
	return affected(tag)
}

// hardDelete borra la fila por ID. Una FK RESTRICT que la referencia se traduce a domain.ErrConflict.
func hardDelete(ctx context.Context, q Querier, table, id string) error {
	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return mapError("delete "+table, err)
	}
	return affected(tag)
}
