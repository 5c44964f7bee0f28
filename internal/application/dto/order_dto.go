package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders. Number vacío = generado; Date vacía = ahora.
type CreateOrderRequest struct {
	Number      string                   `json:"number" validate:"omitempty,max=64"`
	Type        string                   `json:"type"`
	CustomerID  string                   `json:"customer_id" validate:"required"`
	WarehouseID string                   `json:"warehouse_id" validate:"required"`
	Date        *time.Time               `json:"date"`
	Items       []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest línea del pedido. Price se recibe como texto para validar sus decimales.
type CreateOrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// UpdateOrderRequest actualización de cabecera (las líneas no se editan).
type UpdateOrderRequest struct {
	Number      *string    `json:"number" validate:"omitempty,min=1,max=64"`
	Type        *string    `json:"type"`
	CustomerID  *string    `json:"customer_id"`
	WarehouseID *string    `json:"warehouse_id"`
	Date        *time.Time `json:"date"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// InvoiceSummary factura generada junto al pedido.
type InvoiceSummary struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Status string `json:"status"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID          string              `json:"id"`
	CompanyID   string              `json:"company_id"`
	Number      string              `json:"number"`
	Type        string              `json:"type"`
	CustomerID  string              `json:"customer_id"`
	WarehouseID string              `json:"warehouse_id"`
	Date        time.Time           `json:"date"`
	Items       []OrderItemResponse `json:"items,omitempty"`
	Invoice     *InvoiceSummary     `json:"invoice,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos (sin líneas).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
