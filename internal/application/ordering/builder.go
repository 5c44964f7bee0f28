package ordering

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ItemInput línea tal como llega del cliente. UnitPrice es texto para no perder precisión.
type ItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice string
}

// CreateOrderCommand datos para crear un pedido con sus líneas.
type CreateOrderCommand struct {
	CompanyID   string
	UserID      string
	Type        string
	CustomerID  string
	WarehouseID string
	Date        *time.Time // nil = ahora
	Number      string     // vacío = generado
	Items       []ItemInput
}

// DraftItem línea ya validada en forma.
type DraftItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Draft pedido validado en forma (reglas sin acceso a almacenamiento).
type Draft struct {
	CompanyID   string
	UserID      string
	Type        entity.OrderType
	CustomerID  string
	WarehouseID string
	Date        time.Time
	Number      string
	Items       []DraftItem
}

// Aggregate pedido listo para persistir: cabecera con número resuelto más sus líneas.
type Aggregate struct {
	Order          *entity.Order
	Items          []*entity.OrderItem
	NumberSupplied bool
}

// Límites de las columnas orders.number (VARCHAR(64)) y order_items.quantity (INTEGER).
const (
	MaxNumberLength = 64
	MaxQuantity     = math.MaxInt32
)

// Builder valida y arma el agregado de pedido.
type Builder struct {
	ids *IdentifierGenerator
	now func() time.Time
}

// NewBuilder construye el builder.
func NewBuilder(ids *IdentifierGenerator) *Builder {
	return &Builder{ids: ids, now: time.Now}
}

// Validate aplica, en orden y sin tocar almacenamiento: líneas no vacías, cantidades positivas,
// precios válidos, producto sin repetir y tipo de pedido admitido. Devuelve el primer error.
func (b *Builder) Validate(cmd CreateOrderCommand) (*Draft, error) {
	if len(cmd.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, it := range cmd.Items {
		if it.Quantity < 1 || it.Quantity > MaxQuantity {
			return nil, domain.ErrInvalidQuantity
		}
	}
	items := make([]DraftItem, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		price, err := entity.ParsePrice(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, DraftItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: price})
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ProductID]; dup {
			return nil, domain.ErrDuplicateOrderItem
		}
		seen[it.ProductID] = struct{}{}
	}
	orderType, err := entity.ParseOrderType(cmd.Type)
	if err != nil {
		return nil, err
	}
	number, err := checkNumber(cmd.Number)
	if err != nil {
		return nil, err
	}

	date := b.now().UTC()
	if cmd.Date != nil && !cmd.Date.IsZero() {
		date = cmd.Date.UTC()
	}
	return &Draft{
		CompanyID:   cmd.CompanyID,
		UserID:      cmd.UserID,
		Type:        orderType,
		CustomerID:  cmd.CustomerID,
		WarehouseID: cmd.WarehouseID,
		Date:        date,
		Number:      number,
		Items:       items,
	}, nil
}

// Build verifica referencias dentro de la transacción (cliente, bodega y productos vivos de la empresa)
// y resuelve el número del pedido. No escribe nada.
func (b *Builder) Build(ctx context.Context, repos TxRepos, d *Draft) (*Aggregate, error) {
	customer, err := lookup(ctx, d.CustomerID, repos.Customers.GetByID)
	if err != nil {
		return nil, fmt.Errorf("cliente: %w", err)
	}
	if customer.CompanyID != d.CompanyID {
		return nil, fmt.Errorf("cliente: %w", domain.ErrForbidden)
	}
	warehouse, err := lookup(ctx, d.WarehouseID, repos.Warehouses.GetByID)
	if err != nil {
		return nil, fmt.Errorf("bodega: %w", err)
	}
	if warehouse.CompanyID != d.CompanyID {
		return nil, fmt.Errorf("bodega: %w", domain.ErrForbidden)
	}
	for _, it := range d.Items {
		product, err := lookup(ctx, it.ProductID, repos.Products.GetByID)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, err)
		}
		if product.CompanyID != d.CompanyID {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrForbidden)
		}
	}

	number, err := b.ids.Resolve(ctx, repos.Orders, d.CompanyID, KindOrder, d.Number)
	if err != nil {
		return nil, err
	}

	now := b.now().UTC()
	modifiedBy := optional(d.UserID)
	order := &entity.Order{
		ID:          uuid.New().String(),
		CompanyID:   d.CompanyID,
		Number:      number,
		Type:        d.Type,
		CustomerID:  d.CustomerID,
		WarehouseID: d.WarehouseID,
		Date:        d.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
		ModifiedBy:  modifiedBy,
	}
	items := make([]*entity.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, &entity.OrderItem{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			Price:      it.Price,
			CreatedAt:  now,
			UpdatedAt:  now,
			ModifiedBy: modifiedBy,
		})
	}
	return &Aggregate{Order: order, Items: items, NumberSupplied: d.Number != ""}, nil
}

// checkNumber recorta el número suministrado y rechaza los que no caben en la columna.
func checkNumber(s string) (string, error) {
	n := strings.TrimSpace(s)
	if utf8.RuneCountInString(n) > MaxNumberLength {
		return "", fmt.Errorf("%w: el número admite máximo %d caracteres", domain.ErrInvalidInput, MaxNumberLength)
	}
	return n, nil
}

// lookup resuelve una referencia por ID. Un ID que no es UUID no puede existir: ErrNotFound.
func lookup[T any](ctx context.Context, id string, get func(context.Context, string) (*T, error)) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	v, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
