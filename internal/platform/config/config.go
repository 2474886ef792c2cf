package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"APP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Store   StoreConfig
	Catalog CatalogConfig
	Admin   AdminConfig
	Order   OrderConfig
}

type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/aquapure.db"`
	MySQLDSN   string `env:"MYSQL_DSN"`
	PGDSN      string `env:"PG_DSN"`
	QuotaBytes int64  `env:"STORE_QUOTA_BYTES" envDefault:"5242880"`
}

type CatalogConfig struct {
	Source       string        `env:"CATALOG_SOURCE" envDefault:"products.json"`
	RefreshDelay time.Duration `env:"CATALOG_REFRESH_DELAY" envDefault:"1s"`
	FetchTimeout time.Duration `env:"CATALOG_FETCH_TIMEOUT" envDefault:"10s"`
}

type AdminConfig struct {
	JWTSecret          string        `env:"JWT_SECRET" envDefault:"change-me"`
	SessionTTL         time.Duration `env:"ADMIN_SESSION_TTL" envDefault:"2h"`
	LoginRatePerMinute int           `env:"LOGIN_RATE_PER_MINUTE" envDefault:"5"`
}

type OrderConfig struct {
	ShopName         string `env:"SHOP_NAME" envDefault:"AquaPure"`
	WhatsAppEndpoint string `env:"WHATSAPP_ENDPOINT" envDefault:"https://wa.me"`
	DefaultRecipient string `env:"DEFAULT_RECIPIENT" envDefault:"919876543210"`
	Locale           string `env:"LOCALE" envDefault:"en-IN"`
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Load reads an optional .env file, then parses the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	case DriverMySQL:
		if c.Store.MySQLDSN == "" {
			return errors.New("MYSQL_DSN is required for the mysql store driver")
		}
	case DriverPostgres:
		if c.Store.PGDSN == "" {
			return errors.New("PG_DSN is required for the postgres store driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Admin.SessionTTL <= 0 {
		return errors.New("ADMIN_SESSION_TTL must be positive")
	}
	return nil
}
