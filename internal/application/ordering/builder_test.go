package ordering_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ordering"
	"github.com/jhoicas/Almacen-api/internal/application/ordering/orderingtest"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

const (
	otherCompany = "00000000-0000-0000-0000-0000000000c2"
	testUser     = "00000000-0000-0000-0000-0000000000a1"
)

func validCommand(customerID, warehouseID string, productIDs ...string) ordering.CreateOrderCommand {
	items := make([]ordering.ItemInput, 0, len(productIDs))
	for _, id := range productIDs {
		items = append(items, ordering.ItemInput{ProductID: id, Quantity: 1, UnitPrice: "10.00"})
	}
	return ordering.CreateOrderCommand{
		CompanyID:   testCompany,
		UserID:      testUser,
		Type:        "sales",
		CustomerID:  customerID,
		WarehouseID: warehouseID,
		Items:       items,
	}
}

// ── Validate: reglas sin almacenamiento ─────────────────────────────────────

func TestValidate_PedidoVacio(t *testing.T) {
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	cmd := validCommand("c", "w")
	cmd.Type = "rental" // la regla de líneas vacías va primero

	_, err := b.Validate(cmd)
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_CantidadInvalida(t *testing.T) {
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	cmd := validCommand("c", "w", "p1", "p2")
	cmd.Items[0].UnitPrice = "no-es-precio" // cantidades se revisan antes que precios
	cmd.Items[1].Quantity = 0

	_, err := b.Validate(cmd)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	cmd.Items[1].Quantity = -3
	_, err = b.Validate(cmd)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestValidate_CantidadFueraDeRangoDeColumna(t *testing.T) {
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	cmd := validCommand("c", "w", "p1")
	q := ordering.MaxQuantity
	cmd.Items[0].Quantity = q + 1

	_, err := b.Validate(cmd)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	cmd.Items[0].Quantity = q
	d, err := b.Validate(cmd)
	require.NoError(t, err)
	assert.Equal(t, ordering.MaxQuantity, d.Items[0].Quantity)
}

func TestValidate_NumeroDemasiadoLargo(t *testing.T) {
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	cmd := validCommand("c", "w", "p1")
	cmd.Number = strings.Repeat("N", ordering.MaxNumberLength+16)

	_, err := b.Validate(cmd)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	cmd.Number = "  " + strings.Repeat("N", ordering.MaxNumberLength) + "  "
	d, err := b.Validate(cmd)
	require.NoError(t, err, "los espacios recortados no cuentan")
	assert.Len(t, d.Number, ordering.MaxNumberLength)
}

func TestValidate_PrecioInvalido(t *testing.T) {
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	for _, price := range []string{"", "abc", "-1", "1.999", "1e3", " 1.00", "1.", ".5", "100000000.00"} {
		cmd := validCommand("c", "w", "p1")
		cmd.Items[0].UnitPrice = price

		_, err := b.Validate(cmd)
		assert.ErrorIs(t, err, domain.ErrInvalidPrice, "precio %q", price)
	}
}

func TestValidate_PreciosAceptados(t *testing.T) {
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	for price, want := range map[string]string{"0": "0", "9.9": "9.9", "19.99": "19.99", "99999999.99": "99999999.99"} {
		cmd := validCommand("c", "w", "p1")
		cmd.Items[0].UnitPrice = price

		d, err := b.Validate(cmd)
		require.NoError(t, err, "precio %q", price)
		assert.True(t, d.Items[0].Price.Equal(decimal.RequireFromString(want)), "precio %q", price)
	}
}

func TestValidate_ProductoRepetido(t *testing.T) {
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	cmd := validCommand("c", "w", "p1", "p1")

	_, err := b.Validate(cmd)
	require.ErrorIs(t, err, domain.ErrDuplicateOrderItem)
}

func TestValidate_TipoInvalido(t *testing.T) {
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	cmd := validCommand("c", "w", "p1")
	cmd.Type = "rental"

	_, err := b.Validate(cmd)
	require.ErrorIs(t, err, domain.ErrInvalidType)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_FechaPorDefectoYSuministrada(t *testing.T) {
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	cmd := validCommand("c", "w", "p1")
	cmd.Type = "Purchase"

	before := time.Now().UTC().Add(-time.Second)
	d, err := b.Validate(cmd)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderTypePurchase, d.Type)
	assert.True(t, d.Date.After(before))

	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	cmd.Date = &date
	d, err = b.Validate(cmd)
	require.NoError(t, err)
	assert.True(t, d.Date.Equal(date))
}

// ── Build: referencias dentro de la transacción ─────────────────────────────

type fixture struct {
	store     *orderingtest.Store
	customer  *entity.Customer
	warehouse *entity.Warehouse
	p1, p2    *entity.Product
}

func newFixture() *fixture {
	s := orderingtest.NewStore()
	return &fixture{
		store:     s,
		customer:  s.AddCustomer(testCompany),
		warehouse: s.AddWarehouse(testCompany),
		p1:        s.AddProduct(testCompany),
		p2:        s.AddProduct(testCompany),
	}
}

func (f *fixture) command() ordering.CreateOrderCommand {
	return validCommand(f.customer.ID, f.warehouse.ID, f.p1.ID, f.p2.ID)
}

func build(t *testing.T, f *fixture, cmd ordering.CreateOrderCommand) (*ordering.Aggregate, error) {
	t.Helper()
	b := ordering.NewBuilder(ordering.NewIdentifierGenerator(0))
	d, err := b.Validate(cmd)
	require.NoError(t, err)
	var agg *ordering.Aggregate
	err = f.store.RunOrder(context.Background(), func(repos ordering.TxRepos) error {
		var err error
		agg, err = b.Build(context.Background(), repos, d)
		return err
	})
	return agg, err
}

func TestBuild_ArmaAgregado(t *testing.T) {
	f := newFixture()

	agg, err := build(t, f, f.command())
	require.NoError(t, err)
	assert.Regexp(t, generatedOrder, agg.Order.Number)
	assert.False(t, agg.NumberSupplied)
	require.Len(t, agg.Items, 2)
	for _, it := range agg.Items {
		assert.Equal(t, agg.Order.ID, it.OrderID)
	}
	require.NotNil(t, agg.Order.ModifiedBy)
	assert.Equal(t, testUser, *agg.Order.ModifiedBy)
	assert.Equal(t, orderingtest.Counts{}, f.store.Counts(), "Build no escribe nada")
}

func TestBuild_ClienteInexistente(t *testing.T) {
	f := newFixture()
	cmd := f.command()
	cmd.CustomerID = "00000000-0000-0000-0000-00000000dead"

	_, err := build(t, f, cmd)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuild_IDMalFormadoEsNotFound(t *testing.T) {
	f := newFixture()
	cmd := f.command()
	cmd.WarehouseID = "W1"

	_, err := build(t, f, cmd)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuild_ClienteEliminado(t *testing.T) {
	f := newFixture()
	f.store.DeleteCustomer(f.customer.ID)

	_, err := build(t, f, f.command())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuild_ReferenciasDeOtraEmpresa(t *testing.T) {
	f := newFixture()
	foreignWarehouse := f.store.AddWarehouse(otherCompany)
	foreignProduct := f.store.AddProduct(otherCompany)

	cmd := f.command()
	cmd.WarehouseID = foreignWarehouse.ID
	_, err := build(t, f, cmd)
	require.ErrorIs(t, err, domain.ErrForbidden)

	cmd = f.command()
	cmd.Items[1].ProductID = foreignProduct.ID
	_, err = build(t, f, cmd)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBuild_NumeroSuministrado(t *testing.T) {
	f := newFixture()
	f.store.AddOrder(testCompany, f.customer.ID, f.warehouse.ID, "ORD-1")

	cmd := f.command()
	cmd.Number = "ORD-1"
	_, err := build(t, f, cmd)
	require.ErrorIs(t, err, domain.ErrDuplicateIdentifier)

	cmd.Number = "ORD-2"
	agg, err := build(t, f, cmd)
	require.NoError(t, err)
	assert.Equal(t, "ORD-2", agg.Order.Number)
	assert.True(t, agg.NumberSupplied)
}

func TestBuild_MismoNumeroEnOtraEmpresa(t *testing.T) {
	f := newFixture()
	f.store.AddOrder(otherCompany, f.customer.ID, f.warehouse.ID, "ORD-1")

	cmd := f.command()
	cmd.Number = "ORD-1"
	_, err := build(t, f, cmd)
	require.NoError(t, err)
}
