package ordering

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// NumberLookup consulta si un número de documento ya está tomado por una fila viva de la empresa.
type NumberLookup interface {
	NumberExists(ctx context.Context, companyID, number string) (bool, error)
}

// CustomerReader lectura de clientes vivos; (nil, nil) si no existe.
type CustomerReader interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}

// WarehouseReader lectura de bodegas vivas; (nil, nil) si no existe.
type WarehouseReader interface {
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
}

// ProductReader lectura de productos vivos; (nil, nil) si no existe.
type ProductReader interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}

// OrderWriter persistencia de cabeceras de pedido. GetByID devuelve (nil, nil) si no existe o está eliminado.
type OrderWriter interface {
	NumberLookup
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
}

// OrderItemWriter persistencia de líneas de pedido.
type OrderItemWriter interface {
	Create(ctx context.Context, item *entity.OrderItem) error
}

// InvoiceWriter persistencia de facturas.
type InvoiceWriter interface {
	NumberLookup
	Create(ctx context.Context, invoice *entity.Invoice) error
	// UpdateDate alinea la fecha de la factura viva del pedido con la del pedido.
	UpdateDate(ctx context.Context, orderID string, date time.Time, modifiedBy string) error
}

// TxRepos repositorios atados a una única transacción. Se crea uno por invocación y se pasa
// explícitamente; nunca se comparte entre operaciones concurrentes.
type TxRepos struct {
	Customers  CustomerReader
	Warehouses WarehouseReader
	Products   ProductReader
	Orders     OrderWriter
	OrderItems OrderItemWriter
	Invoices   InvoiceWriter
}

// TxRunner abre una transacción, ejecuta fn con repos atados a ella y hace Commit si fn no falla.
// Si fn o el Commit fallan, la transacción queda revertida antes de retornar.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(repos TxRepos) error) error
}

// Metrics registra el resultado del flujo de creación de pedidos.
type Metrics interface {
	OrderCreated(orderType entity.OrderType, elapsed time.Duration)
	OrderFailed(reason string)
}

type noopMetrics struct{}

func (noopMetrics) OrderCreated(entity.OrderType, time.Duration) {}
func (noopMetrics) OrderFailed(string)                           {}
