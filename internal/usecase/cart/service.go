package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domcart "example.com/aquapure-store/internal/domain/cart"
	"example.com/aquapure-store/internal/domain/event"
	domproduct "example.com/aquapure-store/internal/domain/product"
	"example.com/aquapure-store/internal/platform/logging"
)

type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*domproduct.Product, error)
}

type Service struct {
	repo     domcart.Repository
	products ProductLookup
	events   event.Publisher
	logger   *zap.Logger

	mu       sync.Mutex
	cart     domcart.Cart
	restored bool
}

func NewService(repo domcart.Repository, products ProductLookup, events event.Publisher, logger *zap.Logger) *Service {
	if events == nil {
		events = event.NopPublisher{}
	}
	return &Service{
		repo:     repo,
		products: products,
		events:   events,
		logger:   logging.OrNop(logger).Named("cart"),
	}
}

// restoreLocked reads the persisted cart once. Missing or unreadable data
// starts an empty cart.
func (s *Service) restoreLocked(ctx context.Context) {
	if s.restored {
		return
	}
	s.restored = true

	c, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.cart = c
	case errors.Is(err, domcart.ErrCartNotPersisted):
		s.cart = domcart.Cart{}
	default:
		s.logger.Error("error loading cart", zap.Error(err))
		s.cart = domcart.Cart{}
	}
}

// commitLocked persists next and only then makes it the current cart.
func (s *Service) commitLocked(ctx context.Context, next domcart.Cart) error {
	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("error saving cart", zap.Error(err))
		return fmt.Errorf("save cart: %w", err)
	}
	s.cart = next
	return nil
}

func (s *Service) Add(ctx context.Context, productID string) (domcart.Cart, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return domcart.Cart{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(ctx)

	next, err := s.cart.Added(p)
	if err != nil {
		s.publish(event.LevelError, stockMessage(err, p))
		return domcart.Cart{}, err
	}
	if err := s.commitLocked(ctx, next); err != nil {
		return domcart.Cart{}, err
	}

	s.publish(event.LevelSuccess, fmt.Sprintf("%s added to cart!", p.Name))
	return s.cart.Clone(), nil
}

func (s *Service) Remove(ctx context.Context, productID string) (domcart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(ctx)

	i := s.cart.Find(productID)
	if i < 0 {
		return s.cart.Clone(), nil
	}
	name := s.cart.Items[i].Name

	if err := s.commitLocked(ctx, s.cart.Removed(productID)); err != nil {
		return domcart.Cart{}, err
	}

	s.publish(event.LevelInfo, fmt.Sprintf("%s removed from cart", name))
	return s.cart.Clone(), nil
}

func (s *Service) ChangeQuantity(ctx context.Context, productID string, delta int64) (domcart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(ctx)

	i := s.cart.Find(productID)
	if i < 0 {
		return s.cart.Clone(), nil
	}
	name := s.cart.Items[i].Name
	removed := s.cart.Items[i].Quantity+delta < 1

	if err := s.commitLocked(ctx, s.cart.Adjusted(productID, delta)); err != nil {
		return domcart.Cart{}, err
	}

	if removed {
		s.publish(event.LevelInfo, fmt.Sprintf("%s removed from cart", name))
	} else {
		s.publish(event.LevelInfo, "Cart updated")
	}
	return s.cart.Clone(), nil
}

func (s *Service) Snapshot(ctx context.Context) domcart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(ctx)
	return s.cart.Clone()
}

func (s *Service) Total(ctx context.Context) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(ctx)
	return s.cart.Total()
}

func (s *Service) Count(ctx context.Context) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(ctx)
	return s.cart.Count()
}

// Clear removes the persisted cart and empties the in-memory one.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.cart = domcart.Cart{}
	s.restored = true
	s.publish(event.LevelInfo, "Cart cleared")
	return nil
}

func (s *Service) publish(level event.Level, msg string) {
	s.events.Publish(event.Event{Kind: event.KindCartChanged, Level: level, Message: msg})
}

func stockMessage(err error, p *domproduct.Product) string {
	if errors.Is(err, domcart.ErrStockExceeded) {
		return fmt.Sprintf("Only %d items available in stock!", p.Stock)
	}
	return "This product is out of stock!"
}
