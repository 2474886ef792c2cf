package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"example.com/aquapure-store/internal/infra/eventbus"
	"example.com/aquapure-store/internal/infra/kv"
	"example.com/aquapure-store/internal/infra/persistence/kvstore"
	"example.com/aquapure-store/internal/infra/persistence/memory"
	"example.com/aquapure-store/internal/infra/persistence/mysql"
	"example.com/aquapure-store/internal/infra/persistence/postgres"
	"example.com/aquapure-store/internal/infra/persistence/sqlite"
	"example.com/aquapure-store/internal/infra/security"
	"example.com/aquapure-store/internal/infra/source"
	httpapi "example.com/aquapure-store/internal/interface/http"
	"example.com/aquapure-store/internal/platform/config"
	"example.com/aquapure-store/internal/platform/currency"
	"example.com/aquapure-store/internal/platform/logging"
	authuc "example.com/aquapure-store/internal/usecase/auth"
	cartuc "example.com/aquapure-store/internal/usecase/cart"
	cataloguc "example.com/aquapure-store/internal/usecase/catalog"
	categoryuc "example.com/aquapure-store/internal/usecase/category"
	checkoutuc "example.com/aquapure-store/internal/usecase/checkout"
	settingsuc "example.com/aquapure-store/internal/usecase/settings"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore.Close(); err != nil {
			logger.Warn("closing store failed", zap.Error(err))
		}
	}()
	store := kv.WithQuota(backend, cfg.Store.QuotaBytes)
	logger.Info("store ready", zap.String("driver", cfg.Store.Driver))

	bus := eventbus.New()
	unsubscribe := bus.Subscribe(eventbus.LogEvents(logger.Named("events")))
	defer unsubscribe()

	money := currency.NewFormatter(cfg.Order.Locale)
	settingsRepo := kvstore.NewSettingsRepository(store)

	catalogSvc := cataloguc.NewService(
		kvstore.NewCatalogRepository(store),
		source.New(cfg.Catalog.Source, cfg.Catalog.FetchTimeout),
		kvstore.ProductCodec{},
		bus,
		logger,
		cataloguc.Config{
			RefreshDelay: cfg.Catalog.RefreshDelay,
			FetchTimeout: cfg.Catalog.FetchTimeout,
		},
	)
	defer catalogSvc.Close()

	cartSvc := cartuc.NewService(kvstore.NewCartRepository(store), catalogSvc, bus, logger)
	checkoutSvc := checkoutuc.NewService(cartSvc, settingsRepo, bus, logger, checkoutuc.Config{
		ShopName:         cfg.Order.ShopName,
		Endpoint:         cfg.Order.WhatsAppEndpoint,
		DefaultRecipient: cfg.Order.DefaultRecipient,
		Formatter:        money,
	})
	authSvc := authuc.NewService(
		kvstore.NewAdminRepository(store),
		security.NewBcryptService(0),
		security.NewJWTService(cfg.Admin.JWTSecret, cfg.Admin.SessionTTL),
		bus,
		logger,
		authuc.Config{SessionTTL: cfg.Admin.SessionTTL},
	)
	settingsSvc := settingsuc.NewService(settingsRepo, catalogSvc, cartSvc, bus, logger, settingsuc.Config{
		QuotaBytes: cfg.Store.QuotaBytes,
	})

	api := httpapi.NewAPI(httpapi.Dependencies{
		CatalogService:     catalogSvc,
		CategoryService:    categoryuc.NewService(catalogSvc),
		CartService:        cartSvc,
		CheckoutService:    checkoutSvc,
		AuthService:        authSvc,
		SettingsService:    settingsSvc,
		Events:             bus,
		Formatter:          money,
		Logger:             logger,
		LoginRatePerMinute: cfg.Admin.LoginRatePerMinute,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore connects the configured key-value backend. The returned closer
// releases its connections.
func openStore(ctx context.Context, cfg config.StoreConfig) (kv.Store, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nopCloser{}, nil
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s, nil
	case config.DriverMySQL:
		s, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql store: %w", err)
		}
		return s, s, nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
