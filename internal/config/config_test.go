package config_test

import (
	"testing"
	"time"

	"vibecart/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "vibecart.db", cfg.Store.DSN)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "order_events", cfg.RabbitMQ.Queue)
	assert.Equal(t, "https://fakestoreapi.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, 256, cfg.Catalog.CacheSize)
	assert.True(t, cfg.Cart.SerializeWrites)
}

func TestFromViper_Overrides(t *testing.T) {
	v := newViper()
	v.Set("APP_PORT", "8080")
	v.Set("STORE_DRIVER", " Memory ")
	v.Set("CATALOG_TIMEOUT", "750ms")
	v.Set("CART_SERIALIZE_WRITES", "false")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 750*time.Millisecond, cfg.Catalog.Timeout)
	assert.False(t, cfg.Cart.SerializeWrites)
}

func TestFromViper_UnknownDriver(t *testing.T) {
	v := newViper()
	v.Set("STORE_DRIVER", "cassandra")

	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "cassandra")
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=db user=app")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "host=db user=app", cfg.Store.DSN)
}
