package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la empresa.
type Product struct {
	ID         string
	CompanyID  string
	SKU        string // opcional, único por empresa
	Name       string
	Price      decimal.Decimal // precio de lista; el pedido guarda su propio precio por línea
	Type       string          // solid, liquid
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	ModifiedBy *string
}
