package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// OrderType tipo de pedido.
type OrderType string

const (
	OrderTypeSales    OrderType = "sales"
	OrderTypePurchase OrderType = "purchase"
	OrderTypeTransfer OrderType = "transfer"
)

// ParseOrderType valida el tipo recibido en el borde. Devuelve domain.ErrInvalidType si no es admitido.
func ParseOrderType(s string) (OrderType, error) {
	switch t := OrderType(strings.ToLower(strings.TrimSpace(s))); t {
	case OrderTypeSales, OrderTypePurchase, OrderTypeTransfer:
		return t, nil
	default:
		return "", domain.ErrInvalidType
	}
}

// Order cabecera de pedido. Number es único por empresa entre pedidos no eliminados.
type Order struct {
	ID          string
	CompanyID   string
	Number      string
	Type        OrderType
	CustomerID  string
	WarehouseID string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
	ModifiedBy  *string
}

// OrderItem línea de pedido. Precio y cantidad se guardan tal como llegaron.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   int
	Price      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	ModifiedBy *string
}

// Total cantidad × precio de la línea.
func (i OrderItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
