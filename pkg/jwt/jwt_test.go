package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

var cfg = pkgjwt.Config{Secret: "test-secret", Issuer: "almacen-test", ExpMinutes: 5}

func TestGenerateParse_RoundTrip(t *testing.T) {
	p := pkgjwt.Principal{UserID: "u1", CompanyID: "c1", Role: "OPERATOR"}
	tok, err := pkgjwt.Generate(cfg, p)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestParse_RechazaFirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(cfg, pkgjwt.Principal{UserID: "u1", CompanyID: "c1", Role: "OWNER"})
	require.NoError(t, err)

	other := cfg
	other.Secret = "otro-secreto"
	_, err = pkgjwt.Parse(other, tok)
	assert.Error(t, err)
}

func TestParse_RechazaTokenExpirado(t *testing.T) {
	expired := cfg
	expired.ExpMinutes = -1
	tok, err := pkgjwt.Generate(expired, pkgjwt.Principal{UserID: "u1", CompanyID: "c1", Role: "OWNER"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse(cfg, tok)
	assert.Error(t, err)
}

func TestParse_RechazaEmisorDistinto(t *testing.T) {
	foreign := cfg
	foreign.Issuer = "otro"
	tok, err := pkgjwt.Generate(foreign, pkgjwt.Principal{UserID: "u1", CompanyID: "c1", Role: "OWNER"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse(cfg, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate(pkgjwt.Config{}, pkgjwt.Principal{UserID: "u1"})
	assert.Error(t, err)
}
