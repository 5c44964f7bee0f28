package dto

import "github.com/shopspring/decimal"

// BestsellingProductResponse producto con su cantidad vendida.
type BestsellingProductResponse struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	TotalOrdered int64           `json:"total_ordered"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopCustomerResponse cliente con más pedidos.
type TopCustomerResponse struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	OrderCount int64  `json:"order_count"`
}

// WarehouseTopProductResponse producto más pedido en una bodega.
type WarehouseTopProductResponse struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalOrdered  int64  `json:"total_ordered"`
}
