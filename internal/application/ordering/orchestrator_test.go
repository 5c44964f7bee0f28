package ordering_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ordering"
	"github.com/jhoicas/Almacen-api/internal/application/ordering/orderingtest"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type recordingMetrics struct {
	mu      sync.Mutex
	created []entity.OrderType
	failed  []string
}

func (m *recordingMetrics) OrderCreated(t entity.OrderType, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, t)
}

func (m *recordingMetrics) OrderFailed(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, reason)
}

func newUseCase(f *fixture, ids *ordering.IdentifierGenerator, m ordering.Metrics) *ordering.CreateOrderUseCase {
	if ids == nil {
		ids = ordering.NewIdentifierGenerator(0)
	}
	return ordering.NewCreateOrderUseCase(f.store, ids, m, zerolog.Nop())
}

// fixedIDs genera siempre el mismo número para forzar choques en el índice único.
func fixedIDs() *ordering.IdentifierGenerator {
	stamp := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	return ordering.NewIdentifierGenerator(0).
		WithClock(func() time.Time { return stamp }).
		WithSuffixSource(sequence("AAAAAAAA"))
}

// ── Escenarios ──────────────────────────────────────────────────────────────

// Pedido con dos líneas: una fila de pedido, dos líneas y una factura pendiente con la fecha del pedido.
func TestCreateOrderWithItems_Exito(t *testing.T) {
	f := newFixture()
	m := &recordingMetrics{}
	uc := newUseCase(f, nil, m)

	cmd := f.command()
	cmd.Items[0].Quantity, cmd.Items[0].UnitPrice = 2, "9.99"
	cmd.Items[1].Quantity, cmd.Items[1].UnitPrice = 1, "19.99"

	out, err := uc.CreateOrderWithItems(context.Background(), cmd)
	require.NoError(t, err)

	assert.Regexp(t, generatedOrder, out.Order.Number)
	assert.Equal(t, testCompany, out.Order.CompanyID)
	assert.Equal(t, entity.OrderTypeSales, out.Order.Type)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Items[0].Quantity)
	assert.True(t, out.Items[0].Price.Equal(decimal.RequireFromString("9.99")))
	assert.True(t, out.Items[1].Price.Equal(decimal.RequireFromString("19.99")))

	require.NotNil(t, out.Invoice)
	assert.Equal(t, entity.InvoiceStatusPending, out.Invoice.Status)
	assert.Equal(t, out.Order.ID, out.Invoice.OrderID)
	assert.True(t, out.Invoice.Date.Equal(out.Order.Date))
	assert.Regexp(t, `^INV-\d{12}-[A-Z0-9]{8}$`, out.Invoice.Number)

	assert.Equal(t, orderingtest.Counts{Orders: 1, Items: 2, Invoices: 1}, f.store.Counts())
	assert.Len(t, f.store.InvoicesFor(out.Order.ID), 1)
	assert.Equal(t, []entity.OrderType{entity.OrderTypeSales}, m.created)
	assert.Equal(t, 1, f.store.Commits)
}

func TestCreateOrderWithItems_PedidoVacioNoAbreTransaccion(t *testing.T) {
	f := newFixture()
	m := &recordingMetrics{}
	uc := newUseCase(f, nil, m)

	cmd := f.command()
	cmd.Items = nil
	_, err := uc.CreateOrderWithItems(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrEmptyOrder)

	assert.Equal(t, orderingtest.Counts{}, f.store.Counts())
	assert.Zero(t, f.store.Commits+f.store.Rollbacks)
	assert.Equal(t, []string{"empty_order"}, m.failed)
}

func TestCreateOrderWithItems_CantidadCeroNoPersisteNada(t *testing.T) {
	f := newFixture()
	uc := newUseCase(f, nil, nil)

	cmd := f.command()
	cmd.Items[1].Quantity = 0
	_, err := uc.CreateOrderWithItems(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, orderingtest.Counts{}, f.store.Counts())
	assert.Zero(t, f.store.Commits+f.store.Rollbacks)
}

// Número suministrado repetido: DuplicateIdentifier sin filas nuevas; con otro número, éxito.
func TestCreateOrderWithItems_NumeroDuplicadoYReintento(t *testing.T) {
	f := newFixture()
	f.store.AddOrder(testCompany, f.customer.ID, f.warehouse.ID, "ORD-1")
	uc := newUseCase(f, nil, nil)

	cmd := f.command()
	cmd.Number = "ORD-1"
	_, err := uc.CreateOrderWithItems(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
	assert.False(t, errors.Is(err, domain.ErrTransactionFailure))
	assert.Equal(t, orderingtest.Counts{Orders: 1}, f.store.Counts())

	cmd.Number = "ORD-2"
	out, err := uc.CreateOrderWithItems(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "ORD-2", out.Order.Number)
	assert.Equal(t, orderingtest.Counts{Orders: 2, Items: 2, Invoices: 1}, f.store.Counts())
}

func TestCreateOrderWithItems_ClienteDeOtraEmpresaRevierte(t *testing.T) {
	f := newFixture()
	uc := newUseCase(f, nil, nil)

	cmd := f.command()
	cmd.CustomerID = f.store.AddCustomer(otherCompany).ID
	_, err := uc.CreateOrderWithItems(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 1, f.store.Rollbacks)
	assert.Equal(t, orderingtest.Counts{}, f.store.Counts())
}

// ── Atomicidad ──────────────────────────────────────────────────────────────

func TestCreateOrderWithItems_FalloEnCualquierEtapaRevierteTodo(t *testing.T) {
	cases := []struct {
		name  string
		fail  orderingtest.Failures
		stage ordering.Stage
	}{
		{"insert pedido", orderingtest.Failures{OrderInsert: orderingtest.ErrInjected}, ordering.StageStarted},
		{"segunda línea", orderingtest.Failures{ItemInsert: orderingtest.ErrInjected, ItemInsertAt: 2}, ordering.StageOrderInserted},
		{"insert factura", orderingtest.Failures{InvoiceInsert: orderingtest.ErrInjected}, ordering.StageItemsInserted},
		{"commit", orderingtest.Failures{Commit: orderingtest.ErrInjected}, ordering.StageInvoiceInserted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.store.Fail(tc.fail)
			m := &recordingMetrics{}
			uc := newUseCase(f, nil, m)

			_, err := uc.CreateOrderWithItems(context.Background(), f.command())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrTransactionFailure)
			assert.ErrorIs(t, err, orderingtest.ErrInjected, "se conserva la causa original")

			var txErr *domain.TxError
			require.ErrorAs(t, err, &txErr)
			assert.Equal(t, string(tc.stage), txErr.Stage)

			assert.Equal(t, orderingtest.Counts{}, f.store.Counts())
			assert.Equal(t, 1, f.store.Rollbacks)
			assert.Equal(t, []string{"transaction_failure"}, m.failed)
		})
	}
}

func TestCreateOrderWithItems_ContextoCancelado(t *testing.T) {
	f := newFixture()
	uc := newUseCase(f, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.CreateOrderWithItems(ctx, f.command())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, orderingtest.Counts{}, f.store.Counts())
}

// ── Índice único como árbitro final ─────────────────────────────────────────

// Un número generado que pasa la verificación pero choca en el insert se reporta como agotamiento.
func TestCreateOrderWithItems_NumeroGeneradoChocaEnInsert(t *testing.T) {
	f := newFixture()
	uc := newUseCase(f, fixedIDs(), nil)

	first, err := uc.CreateOrderWithItems(context.Background(), f.command())
	require.NoError(t, err)

	f.store.BlindNumberChecks(true)
	_, err = uc.CreateOrderWithItems(context.Background(), f.command())
	require.ErrorIs(t, err, domain.ErrIdentifierExhausted)
	assert.False(t, errors.Is(err, domain.ErrDuplicate))

	assert.Equal(t, orderingtest.Counts{Orders: 1, Items: 2, Invoices: 1}, f.store.Counts())
	assert.Len(t, f.store.InvoicesFor(first.Order.ID), 1)
}

// El número de factura generado también está respaldado por el índice: el segundo pedido se revierte completo.
func TestCreateOrderWithItems_NumeroDeFacturaChocaEnInsert(t *testing.T) {
	f := newFixture()
	uc := newUseCase(f, fixedIDs(), nil)
	f.store.BlindNumberChecks(true)

	cmd := f.command()
	cmd.Number = "ORD-A"
	_, err := uc.CreateOrderWithItems(context.Background(), cmd)
	require.NoError(t, err)

	cmd.Number = "ORD-B"
	_, err = uc.CreateOrderWithItems(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrIdentifierExhausted)
	assert.Equal(t, orderingtest.Counts{Orders: 1, Items: 2, Invoices: 1}, f.store.Counts())
}

// Un número suministrado que pasa la verificación pero choca en el insert sigue siendo duplicado.
func TestCreateOrderWithItems_NumeroSuministradoChocaEnInsert(t *testing.T) {
	f := newFixture()
	f.store.AddOrder(testCompany, f.customer.ID, f.warehouse.ID, "ORD-1")
	f.store.BlindNumberChecks(true)
	uc := newUseCase(f, nil, nil)

	cmd := f.command()
	cmd.Number = "ORD-1"
	_, err := uc.CreateOrderWithItems(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
	assert.Equal(t, orderingtest.Counts{Orders: 1}, f.store.Counts())
}

// ── Concurrencia ────────────────────────────────────────────────────────────

func TestCreateOrderWithItems_ConcurrentesMismaEmpresa(t *testing.T) {
	f := newFixture()
	m := &recordingMetrics{}
	uc := newUseCase(f, nil, m)

	const n = 20
	var wg sync.WaitGroup
	results := make([]*ordering.OrderWithItems, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = uc.CreateOrderWithItems(context.Background(), f.command())
		}(i)
	}
	wg.Wait()

	orderNumbers := map[string]bool{}
	invoiceNumbers := map[string]bool{}
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, orderNumbers[results[i].Order.Number], "número de pedido repetido")
		assert.False(t, invoiceNumbers[results[i].Invoice.Number], "número de factura repetido")
		orderNumbers[results[i].Order.Number] = true
		invoiceNumbers[results[i].Invoice.Number] = true
		assert.Len(t, f.store.InvoicesFor(results[i].Order.ID), 1)
	}
	assert.Equal(t, orderingtest.Counts{Orders: n, Items: 2 * n, Invoices: n}, f.store.Counts())
	assert.Len(t, m.created, n)
}
