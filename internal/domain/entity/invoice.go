package entity

import "time"

// Estados de factura.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// ValidInvoiceStatus indica si s es un estado de factura admitido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice representa la factura generada para un pedido (1:1 con Order mientras ambas estén vivas).
type Invoice struct {
	ID         string
	CompanyID  string
	OrderID    string
	Number     string
	Date       time.Time // igual a la fecha del pedido
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	ModifiedBy *string
}
