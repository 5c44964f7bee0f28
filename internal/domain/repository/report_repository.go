package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductSales producto con la cantidad total vendida.
type ProductSales struct {
	ProductID    string
	Name         string
	TotalOrdered int64
	Revenue      decimal.Decimal
}

// CustomerOrders cliente con su número de pedidos.
type CustomerOrders struct {
	CustomerID string
	Name       string
	OrderCount int64
}

// WarehouseTopProduct producto más pedido en una bodega.
type WarehouseTopProduct struct {
	WarehouseID   string
	WarehouseName string
	ProductID     string
	ProductName   string
	TotalOrdered  int64
}

// ReportRepository consultas agregadas de solo lectura sobre pedidos vivos.
type ReportRepository interface {
	BestsellingProducts(ctx context.Context, companyID string, limit int) ([]ProductSales, error)
	TopCustomerByOrders(ctx context.Context, companyID string) (*CustomerOrders, error)
	TopProductPerWarehouse(ctx context.Context, companyID string) ([]WarehouseTopProduct, error)
}
