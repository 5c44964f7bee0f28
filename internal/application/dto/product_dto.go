package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Price es texto decimal con máximo 2 decimales.
type CreateProductRequest struct {
	SKU   string `json:"sku" validate:"omitempty,max=100"`
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Price string `json:"price" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=solid liquid"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	SKU   *string `json:"sku" validate:"omitempty,max=100"`
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Price *string `json:"price"`
	Type  *string `json:"type" validate:"omitempty,oneof=solid liquid"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	SKU       string          `json:"sku,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
