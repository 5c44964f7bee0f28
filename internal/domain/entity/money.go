package entity

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// MaxPrice mayor valor representable en NUMERIC(10,2).
var MaxPrice = decimal.RequireFromString("99999999.99")

var priceFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ParsePrice convierte un precio textual ("12.5", "0", "1999.99") en decimal.
// Rechaza negativos, notación científica, más de dos decimales y valores fuera de NUMERIC(10,2).
func ParsePrice(s string) (decimal.Decimal, error) {
	if !priceFormat.MatchString(s) {
		return decimal.Zero, domain.ErrInvalidPrice
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.GreaterThan(MaxPrice) {
		return decimal.Zero, domain.ErrInvalidPrice
	}
	return d, nil
}
