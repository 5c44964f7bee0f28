package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InvoiceLine línea de factura derivada de una línea de pedido.
type InvoiceLine struct {
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoiceDocument datos completos para la representación gráfica de una factura.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Order    *entity.Order
	Company  *entity.Company
	Customer *entity.Customer // nil si fue eliminado
	Lines    []InvoiceLine
	Total    decimal.Decimal
}

// Lectores que necesita la generación del PDF.
type (
	OrderReader interface {
		GetByID(ctx context.Context, id string) (*entity.Order, error)
	}
	CompanyReader interface {
		GetByID(ctx context.Context, id string) (*entity.Company, error)
	}
	CustomerReader interface {
		GetByID(ctx context.Context, id string) (*entity.Customer, error)
	}
	ProductReader interface {
		GetByID(ctx context.Context, id string) (*entity.Product, error)
	}
)

// InvoicePDFGenerator genera el PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}
