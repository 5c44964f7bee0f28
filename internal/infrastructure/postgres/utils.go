package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraintErrors índices únicos con significado de negocio propio. El resto de 23505 es ErrDuplicate.
var constraintErrors = map[string]error{
	"orders_company_number_live_key":     domain.ErrDuplicateIdentifier,
	"invoices_company_number_live_key":   domain.ErrDuplicateIdentifier,
	"order_items_order_product_live_key": domain.ErrDuplicateOrderItem,
	"invoices_order_live_key":            domain.ErrConflict,
	"users_email_key":                    domain.ErrEmailAlreadyExists,
}

// mapError traduce errores de PostgreSQL a errores de dominio; cualquier otro se envuelve con op.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
				return mapped
			}
			return domain.ErrDuplicate
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// affected devuelve domain.ErrNotFound si la sentencia no tocó ninguna fila viva.
func affected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
