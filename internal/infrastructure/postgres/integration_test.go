package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ordering"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

// Pruebas contra PostgreSQL real. Se omiten si DATABASE_URL no está definido.

type seed struct {
	pool      *pgxpool.Pool
	runner    *postgres.TxRunner
	companyID string
	userID    string
	customer  *entity.Customer
	warehouse *entity.Warehouse
	p1, p2    *entity.Product
}

func newSeed(t *testing.T) *seed {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()

	m, err := postgres.NewMigrator(dsn)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	now := time.Now().UTC().Truncate(time.Microsecond)
	s := &seed{
		pool:      pool,
		runner:    postgres.NewTxRunner(pool, "repeatable_read"),
		companyID: uuid.New().String(),
		userID:    uuid.New().String(),
	}
	require.NoError(t, postgres.NewCompanyRepository(pool).Create(ctx, &entity.Company{
		ID: s.companyID, Name: "Almacén " + s.companyID[:8], CreatedAt: now, UpdatedAt: now,
	}))
	s.customer = &entity.Customer{ID: uuid.New().String(), CompanyID: s.companyID, Type: entity.CustomerTypeCustomer, Name: "Cliente", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewCustomerRepository(pool).Create(ctx, s.customer))
	s.warehouse = &entity.Warehouse{ID: uuid.New().String(), CompanyID: s.companyID, Name: "Bodega", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewWarehouseRepository(pool).Create(ctx, s.warehouse))
	products := postgres.NewProductRepository(pool)
	s.p1 = &entity.Product{ID: uuid.New().String(), CompanyID: s.companyID, Name: "Arena", Price: decimal.NewFromInt(3), Type: entity.StorageSolid, CreatedAt: now, UpdatedAt: now}
	s.p2 = &entity.Product{ID: uuid.New().String(), CompanyID: s.companyID, Name: "Agua", Price: decimal.NewFromInt(1), Type: entity.StorageLiquid, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, s.p1))
	require.NoError(t, products.Create(ctx, s.p2))
	return s
}

func (s *seed) createOrder(t *testing.T, number string) *ordering.OrderWithItems {
	t.Helper()
	uc := ordering.NewCreateOrderUseCase(s.runner, ordering.NewIdentifierGenerator(0), nil, zerolog.Nop())
	out, err := uc.CreateOrderWithItems(context.Background(), ordering.CreateOrderCommand{
		CompanyID:   s.companyID,
		UserID:      s.userID,
		Type:        "sales",
		CustomerID:  s.customer.ID,
		WarehouseID: s.warehouse.ID,
		Number:      number,
		Items: []ordering.ItemInput{
			{ProductID: s.p1.ID, Quantity: 2, UnitPrice: "10.50"},
			{ProductID: s.p2.ID, Quantity: 1, UnitPrice: "3.00"},
		},
	})
	require.NoError(t, err)
	return out
}

// ── Índices únicos ──────────────────────────────────────────────────────────

func TestPostgres_NumeroDePedidoDuplicadoLoDetectaElIndice(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	created := s.createOrder(t, "ORD-INT-1")

	dup := *created.Order
	dup.ID = uuid.New().String()
	err := s.runner.RunOrder(ctx, func(repos ordering.TxRepos) error {
		return repos.Orders.Create(ctx, &dup)
	})
	require.ErrorIs(t, err, domain.ErrDuplicateIdentifier)

	require.NoError(t, postgres.NewOrderRepository(s.pool).SoftDelete(ctx, created.Order.ID, s.userID))
	again := s.createOrder(t, "ORD-INT-1")
	assert.Equal(t, "ORD-INT-1", again.Order.Number, "el índice parcial ignora pedidos eliminados")
}

func TestPostgres_LineaDuplicadaLoDetectaElIndice(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	created := s.createOrder(t, "")

	now := time.Now().UTC()
	err := s.runner.RunOrder(ctx, func(repos ordering.TxRepos) error {
		return repos.OrderItems.Create(ctx, &entity.OrderItem{
			ID: uuid.New().String(), OrderID: created.Order.ID, ProductID: s.p1.ID,
			Quantity: 1, Price: decimal.NewFromInt(1), CreatedAt: now, UpdatedAt: now,
		})
	})
	require.ErrorIs(t, err, domain.ErrDuplicateOrderItem)
}

// ── TxRunner ────────────────────────────────────────────────────────────────

func TestPostgres_CallbackFallidoRevierteTodo(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	boom := errors.New("falla después de insertar")
	now := time.Now().UTC()
	order := &entity.Order{
		ID: uuid.New().String(), CompanyID: s.companyID, Number: "ORD-ROLLBACK", Type: entity.OrderTypeSales,
		CustomerID: s.customer.ID, WarehouseID: s.warehouse.ID, Date: now, CreatedAt: now, UpdatedAt: now,
	}

	err := s.runner.RunOrder(ctx, func(repos ordering.TxRepos) error {
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := postgres.NewOrderRepository(s.pool).GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostgres_UpdateFechaAlineaFactura(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	created := s.createOrder(t, "")
	uc := ordering.NewOrderUseCase(s.runner,
		postgres.NewOrderRepository(s.pool), postgres.NewOrderItemRepository(s.pool), postgres.NewInvoiceRepository(s.pool))

	date := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Update(ctx, s.companyID, s.userID, created.Order.ID, dto.UpdateOrderRequest{Date: &date})
	require.NoError(t, err)

	inv, err := postgres.NewInvoiceRepository(s.pool).GetByOrderID(ctx, created.Order.ID)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.True(t, inv.Date.Equal(date), "factura con fecha %s", inv.Date)
}

// ── Llaves foráneas ─────────────────────────────────────────────────────────

func TestPostgres_HardDeleteProductoReferenciadoEsConflicto(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	s.createOrder(t, "")
	uc := usecase.NewProductUseCase(postgres.NewProductRepository(s.pool))

	err := uc.HardDelete(ctx, s.companyID, s.p1.ID)
	require.ErrorIs(t, err, domain.ErrConflict)

	free, err := uc.Create(ctx, s.companyID, s.userID, dto.CreateProductRequest{Name: "Suelto", Price: "1", Type: "solid"})
	require.NoError(t, err)
	require.NoError(t, uc.HardDelete(ctx, s.companyID, free.ID))
}
