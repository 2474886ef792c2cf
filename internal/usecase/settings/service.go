package settings

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"example.com/aquapure-store/internal/domain/event"
	"example.com/aquapure-store/internal/platform/logging"
)

type Repository interface {
	LastBackup(ctx context.Context) (time.Time, error)
	SetLastBackup(ctx context.Context, at time.Time) error
	Usage(ctx context.Context) (int64, error)
}

type Clearer interface {
	Clear(ctx context.Context) error
}

type Storage struct {
	UsageBytes int64
	QuotaBytes int64
	// LastBackup is nil when no export was ever recorded.
	LastBackup *time.Time
}

type Config struct {
	QuotaBytes int64
	Now        func() time.Time
}

type Service struct {
	repo    Repository
	catalog Clearer
	cart    Clearer
	events  event.Publisher
	logger  *zap.Logger

	quota int64
	now   func() time.Time
}

func NewService(repo Repository, catalog, cart Clearer, events event.Publisher, logger *zap.Logger, cfg Config) *Service {
	if events == nil {
		events = event.NopPublisher{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		repo:    repo,
		catalog: catalog,
		cart:    cart,
		events:  events,
		logger:  logging.OrNop(logger).Named("settings"),
		quota:   cfg.QuotaBytes,
		now:     cfg.Now,
	}
}

func (s *Service) Storage(ctx context.Context) (*Storage, error) {
	used, err := s.repo.Usage(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage usage: %w", err)
	}
	last, err := s.repo.LastBackup(ctx)
	if err != nil {
		return nil, fmt.Errorf("last backup: %w", err)
	}

	out := &Storage{UsageBytes: used, QuotaBytes: s.quota}
	if !last.IsZero() {
		out.LastBackup = &last
	}
	return out, nil
}

// RecordBackup stamps the current time as the last export.
func (s *Service) RecordBackup(ctx context.Context) (time.Time, error) {
	at := s.now()
	if err := s.repo.SetLastBackup(ctx, at); err != nil {
		return time.Time{}, fmt.Errorf("record backup: %w", err)
	}
	s.events.Publish(event.Event{
		Kind:    event.KindCatalogExported,
		Level:   event.LevelSuccess,
		Message: "Products exported successfully! Backup time recorded.",
	})
	return at, nil
}

// ClearAll removes the cached catalog and the cart. Settings and the admin
// password are kept.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.catalog.Clear(ctx); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	if err := s.cart.Clear(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.logger.Warn("catalog and cart cleared")
	s.events.Publish(event.Event{
		Kind:    event.KindDataCleared,
		Level:   event.LevelSuccess,
		Message: "All data cleared successfully!",
	})
	return nil
}
