package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, company_id, order_id, number, date, status, created_at, updated_at, deleted_at, modified_by`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura. Número repetido: domain.ErrDuplicateIdentifier; pedido ya facturado: domain.ErrConflict.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, order_id, number, date, status, created_at, updated_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.OrderID, inv.Number, inv.Date, inv.Status,
		inv.CreatedAt, inv.UpdatedAt, inv.ModifiedBy,
	)
	return mapError("insert invoice", err)
}

// GetByID obtiene una factura viva por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND deleted_at IS NULL`
	return r.findOne(ctx, "get invoice", query, id)
}

// GetByOrderID obtiene la factura viva del pedido.
func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1 AND deleted_at IS NULL`
	return r.findOne(ctx, "get invoice by order", query, orderID)
}

// NumberExists indica si la empresa ya tiene una factura viva con ese número.
func (r *InvoiceRepo) NumberExists(ctx context.Context, companyID, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE company_id = $1 AND number = $2 AND deleted_at IS NULL)`,
		companyID, number,
	).Scan(&exists)
	if err != nil {
		return false, mapError("invoice number exists", err)
	}
	return exists, nil
}

// ListByCompany lista facturas vivas de la empresa, más recientes primero.
func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY date DESC, number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, mapError("list invoices", err)
	}
	defer rows.Close()
	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, mapError("scan invoice", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado y registra quién lo modificó.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status, modifiedBy string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET status = $2, updated_at = $3, modified_by = $4
		WHERE id = $1 AND deleted_at IS NULL`,
		id, status, time.Now().UTC(), nullIfEmpty(modifiedBy),
	)
	if err != nil {
		return mapError("update invoice status", err)
	}
	return affected(tag)
}

// SoftDelete marca la factura como eliminada; su número y el pedido quedan libres.
func (r *InvoiceRepo) SoftDelete(ctx context.Context, id, modifiedBy string) error {
	return softDelete(ctx, r.q, "invoices", id, modifiedBy)
}

// UpdateDate copia la fecha del pedido a su factura viva. Un pedido sin factura no es un error.
func (r *InvoiceRepo) UpdateDate(ctx context.Context, orderID string, date time.Time, modifiedBy string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE invoices SET date = $2, updated_at = $3, modified_by = $4 WHERE order_id = $1 AND deleted_at IS NULL`,
		orderID, date, time.Now().UTC(), nullIfEmpty(modifiedBy),
	)
	return mapError("update invoice date", err)
}

// Delete borra físicamente la factura.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	return hardDelete(ctx, r.q, "invoices", id)
}

func (r *InvoiceRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return inv, nil
}

func scanInvoice(row pgxScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.OrderID, &inv.Number, &inv.Date, &inv.Status,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt, &inv.ModifiedBy,
	); err != nil {
		return nil, err
	}
	return &inv, nil
}
