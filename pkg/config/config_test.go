package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "repeatable_read", cfg.DB.TxIsolation)
	assert.Equal(t, 10, cfg.Order.MaxNumberAttempts)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("DB_TX_ISOLATION", "SERIALIZABLE")
	t.Setenv("ORDER_NUMBER_MAX_ATTEMPTS", "3")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "3s")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "serializable", cfg.DB.TxIsolation)
	assert.Equal(t, 3, cfg.Order.MaxNumberAttempts)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
}

func TestLoad_RechazaIsolationDesconocida(t *testing.T) {
	t.Setenv("DB_TX_ISOLATION", "read_uncommitted")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "almacen", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/almacen?sslmode=disable", c.DSN())
}
