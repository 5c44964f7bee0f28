package entity

import "time"

// Tipos de contraparte.
const (
	CustomerTypeCustomer = "customer"
	CustomerTypeSupplier = "supplier"
)

// Customer representa un cliente o proveedor de la empresa.
type Customer struct {
	ID         string
	CompanyID  string
	Type       string // customer, supplier
	Name       string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	ModifiedBy *string
}

// ValidCustomerType indica si t es un tipo de contraparte admitido.
func ValidCustomerType(t string) bool {
	return t == CustomerTypeCustomer || t == CustomerTypeSupplier
}
