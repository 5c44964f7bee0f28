package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/ordering"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements ordering.TxRunner and auth.RegistrationTxRunner.
var (
	_ ordering.TxRunner          = (*TxRunner)(nil)
	_ auth.RegistrationTxRunner = (*TxRunner)(nil)
)

var isoLevels = map[string]pgx.TxIsoLevel{
	"read_committed":  pgx.ReadCommitted,
	"repeatable_read": pgx.RepeatableRead,
	"serializable":    pgx.Serializable,
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Cada llamada crea sus propios
// repositorios atados a la tx; nada se comparte entre transacciones.
type TxRunner struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxRunner construye el runner con el pool y el nivel de aislamiento (read_committed,
// repeatable_read, serializable). Un nivel desconocido usa repeatable_read.
func NewTxRunner(pool *pgxpool.Pool, isolation string) *TxRunner {
	level, ok := isoLevels[isolation]
	if !ok {
		level = pgx.RepeatableRead
	}
	return &TxRunner{pool: pool, opts: pgx.TxOptions{IsoLevel: level}}
}

// RunOrder inicia una transacción con los repositorios del flujo de pedidos y hace Commit o Rollback.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(repos ordering.TxRepos) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(ordering.TxRepos{
			Customers:  NewCustomerRepository(tx),
			Warehouses: NewWarehouseRepository(tx),
			Products:   NewProductRepository(tx),
			Orders:     NewOrderRepository(tx),
			OrderItems: NewOrderItemRepository(tx),
			Invoices:   NewInvoiceRepository(tx),
		})
	})
}

// RunRegistration inicia una transacción con repos de empresa y usuario (alta de empresa + owner).
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCompanyRepository(tx), NewUserRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, r.opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// El rollback debe ejecutarse aunque ctx ya esté cancelado; tras un Commit exitoso es un no-op.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
