package ordering

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// DocumentKind tipo de documento numerado.
type DocumentKind string

const (
	KindOrder   DocumentKind = "order"
	KindInvoice DocumentKind = "invoice"
)

// DefaultMaxAttempts intentos de generación antes de ErrIdentifierExhausted.
const DefaultMaxAttempts = 10

const (
	suffixLen      = 8
	suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	stampLayout    = "200601021504"
)

// Prefix prefijo del número según el tipo de documento.
func (k DocumentKind) Prefix() string {
	switch k {
	case KindInvoice:
		return "INV"
	default:
		return "ORD"
	}
}

// IdentifierGenerator produce números de documento legibles y únicos por empresa.
// La unicidad real la garantiza el índice único en base de datos; la consulta previa solo evita
// chocar con él en el caso común.
type IdentifierGenerator struct {
	maxAttempts int
	now         func() time.Time
	suffix      func() (string, error)
}

// NewIdentifierGenerator construye el generador. maxAttempts <= 0 usa DefaultMaxAttempts.
func NewIdentifierGenerator(maxAttempts int) *IdentifierGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &IdentifierGenerator{maxAttempts: maxAttempts, now: time.Now, suffix: randomSuffix}
}

// WithSuffixSource reemplaza la fuente del sufijo aleatorio (tests).
func (g *IdentifierGenerator) WithSuffixSource(fn func() (string, error)) *IdentifierGenerator {
	cp := *g
	cp.suffix = fn
	return &cp
}

// WithClock reemplaza el reloj usado para la marca de tiempo (tests).
func (g *IdentifierGenerator) WithClock(now func() time.Time) *IdentifierGenerator {
	cp := *g
	cp.now = now
	return &cp
}

// Resolve devuelve el número a usar. Si supplied no está vacío se valida una sola vez y se devuelve
// tal cual (ErrDuplicateIdentifier si ya existe). Si está vacío se genera
// PREFIJO-yyyymmddHHMM-XXXXXXXX reintentando ante colisión hasta maxAttempts.
func (g *IdentifierGenerator) Resolve(ctx context.Context, lookup NumberLookup, companyID string, kind DocumentKind, supplied string) (string, error) {
	if supplied = strings.TrimSpace(supplied); supplied != "" {
		taken, err := lookup.NumberExists(ctx, companyID, supplied)
		if err != nil {
			return "", fmt.Errorf("verificar número %s: %w", kind, err)
		}
		if taken {
			return "", domain.ErrDuplicateIdentifier
		}
		return supplied, nil
	}

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		sfx, err := g.suffix()
		if err != nil {
			return "", fmt.Errorf("generar sufijo: %w", err)
		}
		candidate := kind.Prefix() + "-" + g.now().UTC().Format(stampLayout) + "-" + sfx
		taken, err := lookup.NumberExists(ctx, companyID, candidate)
		if err != nil {
			return "", fmt.Errorf("verificar número %s: %w", kind, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", domain.ErrIdentifierExhausted
}

func randomSuffix() (string, error) {
	max := big.NewInt(int64(len(suffixAlphabet)))
	b := make([]byte, suffixLen)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = suffixAlphabet[n.Int64()]
	}
	return string(b), nil
}
