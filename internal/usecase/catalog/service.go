package catalog

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"example.com/aquapure-store/internal/domain/event"
	dom "example.com/aquapure-store/internal/domain/product"
	"example.com/aquapure-store/internal/platform/logging"
)

type Source string

const (
	SourceCache      Source = "cache"
	SourceOrigin     Source = "origin"
	SourceStaleCache Source = "stale-cache"
)

const (
	msgServerUnavailable = "Unable to load products from server. Showing cached products if available."
	msgSaveFailed        = "Error saving products. Please try again."
)

type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type LoadResult struct {
	Products []*dom.Product
	Source   Source
}

type ImportResult struct {
	Count   int
	Applied bool
}

type Export struct {
	Filename string
	Data     []byte
}

type ProductInput struct {
	Name        string
	Price       int64
	Description string
	Image       string
	Features    []string
	Category    string
	Stock       int64
}

type Config struct {
	// RefreshDelay is how long Load waits before refreshing a cached catalog
	// in the background. Negative disables the refresh.
	RefreshDelay time.Duration
	FetchTimeout time.Duration
	Now          func() time.Time
}

type Service struct {
	repo    dom.Repository
	fetcher Fetcher
	codec   dom.Codec
	events  event.Publisher
	logger  *zap.Logger

	refreshDelay time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	// mu serializes read-modify-write cycles on the catalog blob.
	mu sync.Mutex

	refreshMu    sync.Mutex
	refreshTimer *time.Timer
	closed       bool
}

func NewService(repo dom.Repository, fetcher Fetcher, codec dom.Codec, events event.Publisher, logger *zap.Logger, cfg Config) *Service {
	if events == nil {
		events = event.NopPublisher{}
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		repo:         repo,
		fetcher:      fetcher,
		codec:        codec,
		events:       events,
		logger:       logging.OrNop(logger).Named("catalog"),
		refreshDelay: cfg.RefreshDelay,
		fetchTimeout: cfg.FetchTimeout,
		now:          cfg.Now,
	}
}

// Load prefers the cached catalog and schedules a background refresh when it
// is used. Without a usable cache the static resource is fetched and cached.
func (s *Service) Load(ctx context.Context) (*LoadResult, error) {
	products, err := s.repo.Load(ctx)
	if err == nil {
		s.logger.Debug("loaded products from cache", zap.Int("count", len(products)))
		s.scheduleRefresh()
		return &LoadResult{Products: products, Source: SourceCache}, nil
	}
	if !errors.Is(err, dom.ErrCatalogNotCached) {
		s.logger.Warn("cached catalog unreadable, loading from source", zap.Error(err))
	}
	return s.loadFromSource(ctx)
}

func (s *Service) loadFromSource(ctx context.Context) (*LoadResult, error) {
	products, err := s.fetch(ctx)
	if err == nil {
		s.mu.Lock()
		_ = s.saveLocked(ctx, products)
		s.mu.Unlock()

		s.publish(event.KindCatalogLoaded, event.LevelInfo, fmt.Sprintf("Loaded %d products", len(products)))
		return &LoadResult{Products: products, Source: SourceOrigin}, nil
	}

	s.logger.Warn("loading from source failed", zap.Error(err))
	s.publish(event.KindCatalogError, event.LevelError, msgServerUnavailable)

	cached, cacheErr := s.repo.Load(ctx)
	if cacheErr == nil {
		return &LoadResult{Products: cached, Source: SourceStaleCache}, nil
	}
	return nil, fmt.Errorf("%w: %w", dom.ErrNoProducts, err)
}

// Refresh fetches the static resource and overwrites the cache wholesale.
func (s *Service) Refresh(ctx context.Context) ([]*dom.Product, error) {
	products, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("background refresh failed", zap.Error(err))
		s.publish(event.KindCatalogError, event.LevelWarning, msgServerUnavailable)
		return nil, err
	}

	s.mu.Lock()
	err = s.saveLocked(ctx, products)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.publish(event.KindCatalogRefreshed, event.LevelInfo, fmt.Sprintf("Loaded %d products from server", len(products)))
	return products, nil
}

func (s *Service) scheduleRefresh() {
	if s.refreshDelay < 0 {
		return
	}
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if s.closed || s.refreshTimer != nil {
		return
	}
	s.refreshTimer = time.AfterFunc(s.refreshDelay, s.runScheduledRefresh)
}

func (s *Service) runScheduledRefresh() {
	s.refreshMu.Lock()
	s.refreshTimer = nil
	s.refreshMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()
	_, _ = s.Refresh(ctx)
}

// Close stops a pending background refresh. A refresh already running finishes.
func (s *Service) Close() {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	s.closed = true
	if s.refreshTimer != nil {
		s.refreshTimer.Stop()
		s.refreshTimer = nil
	}
}

func (s *Service) fetch(ctx context.Context) ([]*dom.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	data, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(data)
}

// GetByID checks the cache first and falls back to a fresh fetch. A failed
// fetch reports the product as not found.
func (s *Service) GetByID(ctx context.Context, id string) (*dom.Product, error) {
	if products, err := s.repo.Load(ctx); err == nil {
		if p, ok := dom.FindByID(products, id); ok {
			return p, nil
		}
	}

	products, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("error fetching product", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", dom.ErrProductNotFound, err)
	}
	if p, ok := dom.FindByID(products, id); ok {
		return p, nil
	}
	return nil, dom.ErrProductNotFound
}

func (s *Service) Save(ctx context.Context, products []*dom.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, products)
}

func (s *Service) saveLocked(ctx context.Context, products []*dom.Product) error {
	if err := s.repo.Save(ctx, products); err != nil {
		s.logger.Error("error saving products", zap.Error(err))
		s.publish(event.KindCatalogError, event.LevelError, msgSaveFailed)
		return fmt.Errorf("%w: %w", dom.ErrSaveFailed, err)
	}
	return nil
}

func (s *Service) Reset(ctx context.Context) ([]*dom.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := dom.DefaultProducts()
	if err := s.saveLocked(ctx, products); err != nil {
		return nil, err
	}
	s.publish(event.KindCatalogSaved, event.LevelSuccess, "Reset to default products successfully!")
	return products, nil
}

// List is the admin view: the cached catalog, or the seed set (saved) when the
// cache is missing or unreadable.
func (s *Service) List(ctx context.Context) ([]*dom.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(ctx), nil
}

func (s *Service) listLocked(ctx context.Context) []*dom.Product {
	products, err := s.repo.Load(ctx)
	if err == nil {
		return products
	}
	if !errors.Is(err, dom.ErrCatalogNotCached) {
		s.logger.Error("error loading products", zap.Error(err))
	}
	products = dom.DefaultProducts()
	_ = s.saveLocked(ctx, products)
	return products
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*dom.Product, error) {
	p := in.toProduct("")
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.listLocked(ctx)
	p.ID = s.newID(products)
	products = append(products, p)
	if err := s.saveLocked(ctx, products); err != nil {
		return nil, err
	}
	s.publish(event.KindCatalogSaved, event.LevelSuccess, "Product added successfully!")
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*dom.Product, error) {
	p := in.toProduct(id)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.listLocked(ctx)
	idx := indexOf(products, id)
	if idx < 0 {
		return nil, dom.ErrProductNotFound
	}
	products[idx] = p
	if err := s.saveLocked(ctx, products); err != nil {
		return nil, err
	}
	s.publish(event.KindCatalogSaved, event.LevelSuccess, "Product updated successfully!")
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.listLocked(ctx)
	idx := indexOf(products, id)
	if idx < 0 {
		return dom.ErrProductNotFound
	}
	products = append(products[:idx], products[idx+1:]...)
	if err := s.saveLocked(ctx, products); err != nil {
		return err
	}
	s.publish(event.KindCatalogSaved, event.LevelSuccess, "Product deleted successfully!")
	return nil
}

// Import validates data as a product array. Nothing is written unless confirm is set.
func (s *Service) Import(ctx context.Context, data []byte, confirm bool) (*ImportResult, error) {
	products, err := s.codec.Decode(data)
	if err != nil {
		return nil, err
	}
	if !confirm {
		return &ImportResult{Count: len(products)}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveLocked(ctx, products); err != nil {
		return nil, err
	}
	s.publish(event.KindCatalogSaved, event.LevelSuccess, "Products imported successfully!")
	return &ImportResult{Count: len(products), Applied: true}, nil
}

func (s *Service) Export(ctx context.Context) (*Export, error) {
	s.mu.Lock()
	products := s.listLocked(ctx)
	s.mu.Unlock()

	data, err := s.codec.EncodeIndent(products)
	if err != nil {
		return nil, err
	}
	return &Export{
		Filename: fmt.Sprintf("aquapure-backup-%s.json", s.now().UTC().Format("2006-01-02")),
		Data:     data,
	}, nil
}

func (s *Service) Stats(ctx context.Context) (dom.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dom.ComputeStats(s.listLocked(ctx)), nil
}

// Clear removes the cached catalog entirely.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Clear(ctx)
}

func (s *Service) newID(products []*dom.Product) string {
	ms := s.now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if indexOf(products, id) < 0 {
			return id
		}
		ms++
	}
}

func (s *Service) publish(kind event.Kind, level event.Level, msg string) {
	s.events.Publish(event.Event{Kind: kind, Level: level, Message: msg, At: s.now()})
}

func indexOf(products []*dom.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// ParseFeatures splits a comma separated list, trimming entries and dropping empty ones.
func ParseFeatures(raw string) []string {
	features := []string{}
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	return features
}

// plainText strips markup from admin-entered text; storefront pages render it as HTML.
var plainText = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}

func (in ProductInput) toProduct(id string) *dom.Product {
	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		if f = sanitize(f); f != "" {
			features = append(features, f)
		}
	}
	return &dom.Product{
		ID:          id,
		Name:        sanitize(in.Name),
		Price:       in.Price,
		Description: sanitize(in.Description),
		Image:       strings.TrimSpace(in.Image),
		Features:    features,
		Category:    sanitize(in.Category),
		Stock:       in.Stock,
	}
}
