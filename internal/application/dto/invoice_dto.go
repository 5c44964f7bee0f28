package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid cancelled"`
}

// InvoiceResponse factura para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID        string           `json:"id"`
	CompanyID string           `json:"company_id"`
	OrderID   string           `json:"order_id"`
	Number    string           `json:"number"`
	Date      time.Time        `json:"date"`
	Status    string           `json:"status"`
	Total     *decimal.Decimal `json:"total,omitempty"` // solo en el detalle
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
