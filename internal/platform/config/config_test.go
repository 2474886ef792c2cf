package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, DriverSQLite, cfg.Store.Driver)
	require.Equal(t, int64(5242880), cfg.Store.QuotaBytes)
	require.Equal(t, time.Second, cfg.Catalog.RefreshDelay)
	require.Equal(t, 2*time.Hour, cfg.Admin.SessionTTL)
	require.Equal(t, "919876543210", cfg.Order.DefaultRecipient)
	require.Equal(t, "https://wa.me", cfg.Order.WhatsAppEndpoint)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CATALOG_REFRESH_DELAY", "250ms")
	t.Setenv("SHOP_NAME", "PureShop")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, DriverMemory, cfg.Store.Driver)
	require.Equal(t, 250*time.Millisecond, cfg.Catalog.RefreshDelay)
	require.Equal(t, "PureShop", cfg.Order.ShopName)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DEFAULT_RECIPIENT=911234567890\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("DEFAULT_RECIPIENT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "911234567890", cfg.Order.DefaultRecipient)
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mysql")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)

	t.Setenv("STORE_DRIVER", "redis")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)

	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("PG_DSN", "postgres://u:p@localhost/db")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}
