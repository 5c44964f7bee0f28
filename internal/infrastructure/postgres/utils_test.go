package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

func TestMapError_IndicesUnicosDeNegocio(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{"orders_company_number_live_key", domain.ErrDuplicateIdentifier},
		{"invoices_company_number_live_key", domain.ErrDuplicateIdentifier},
		{"order_items_order_product_live_key", domain.ErrDuplicateOrderItem},
		{"invoices_order_live_key", domain.ErrConflict},
		{"users_email_key", domain.ErrEmailAlreadyExists},
		{"products_company_sku_live_key", domain.ErrDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			err := mapError("insert", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: tc.constraint})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMapError_LlaveForaneaEsConflicto(t *testing.T) {
	err := mapError("delete order", &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "invoices_order_id_fkey"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "invoices_order_id_fkey")
}

func TestMapError_OtrosErroresSeEnvuelven(t *testing.T) {
	cause := errors.New("conexión perdida")
	err := mapError("insert order", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert order")
	assert.False(t, domain.IsBusiness(err))

	assert.NoError(t, mapError("noop", nil))
}

func TestAffected_SinFilasEsNotFound(t *testing.T) {
	assert.ErrorIs(t, affected(pgconn.NewCommandTag("UPDATE 0")), domain.ErrNotFound)
	assert.NoError(t, affected(pgconn.NewCommandTag("UPDATE 1")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.False(t, isNoRows(errors.New("otro")))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	if v := nullIfEmpty("x"); assert.NotNil(t, v) {
		assert.Equal(t, "x", *v)
	}
}
