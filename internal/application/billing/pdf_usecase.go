package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoices  *InvoiceUseCase
	orders    OrderReader
	companies CompanyReader
	customers CustomerReader
	products  ProductReader
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoices *InvoiceUseCase,
	orders OrderReader,
	companies CompanyReader,
	customers CustomerReader,
	products ProductReader,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoices:  invoices,
		orders:    orders,
		companies: companies,
		customers: customers,
		products:  products,
		generator: generator,
	}
}

// DownloadInvoicePDF arma el documento (factura, pedido, empresa, cliente, líneas) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe, es de otra empresa o su pedido fue eliminado.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.document(ctx, companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", doc.Invoice.Number), nil
}

func (uc *PDFUseCase) document(ctx context.Context, companyID, invoiceID string) (*InvoiceDocument, error) {
	inv, err := uc.invoices.owned(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, inv.OrderID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	items, err := uc.invoices.itemRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	lines := make([]InvoiceLine, 0, len(items))
	for _, it := range items {
		line := InvoiceLine{
			ProductName: "Producto " + it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
			Subtotal:    it.Total(),
		}
		if p, pErr := uc.products.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
			line.ProductName, line.SKU = p.Name, p.SKU
		}
		lines = append(lines, line)
	}
	return &InvoiceDocument{
		Invoice:  inv,
		Order:    order,
		Company:  company,
		Customer: customer,
		Lines:    lines,
		Total:    orderTotal(items),
	}, nil
}
