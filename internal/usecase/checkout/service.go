package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domcart "example.com/aquapure-store/internal/domain/cart"
	"example.com/aquapure-store/internal/domain/event"
	domorder "example.com/aquapure-store/internal/domain/order"
	"example.com/aquapure-store/internal/platform/currency"
	"example.com/aquapure-store/internal/platform/logging"
)

type CartSource interface {
	Snapshot(ctx context.Context) domcart.Cart
}

type Config struct {
	ShopName         string
	Endpoint         string
	DefaultRecipient string
	Formatter        *currency.Formatter
}

type Service struct {
	carts      CartSource
	recipients domorder.RecipientRepository
	events     event.Publisher
	logger     *zap.Logger

	shopName         string
	endpoint         string
	defaultRecipient string
	money            *currency.Formatter
}

func NewService(carts CartSource, recipients domorder.RecipientRepository, events event.Publisher, logger *zap.Logger, cfg Config) *Service {
	if events == nil {
		events = event.NopPublisher{}
	}
	if cfg.ShopName == "" {
		cfg.ShopName = "AquaPure"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://wa.me"
	}
	if cfg.DefaultRecipient == "" {
		cfg.DefaultRecipient = domorder.DefaultRecipient
	}
	if cfg.Formatter == nil {
		cfg.Formatter = currency.NewFormatter("en-IN")
	}
	return &Service{
		carts:            carts,
		recipients:       recipients,
		events:           events,
		logger:           logging.OrNop(logger).Named("checkout"),
		shopName:         cfg.ShopName,
		endpoint:         strings.TrimRight(cfg.Endpoint, "/"),
		defaultRecipient: cfg.DefaultRecipient,
		money:            cfg.Formatter,
	}
}

// Compose builds the order link for the current cart. The cart is left as is.
func (s *Service) Compose(ctx context.Context) (*domorder.Link, error) {
	return s.ComposeCart(ctx, s.carts.Snapshot(ctx))
}

func (s *Service) ComposeCart(ctx context.Context, c domcart.Cart) (*domorder.Link, error) {
	if c.IsEmpty() {
		return nil, domorder.ErrEmptyCart
	}

	recipient, err := s.Recipient(ctx)
	if err != nil {
		return nil, err
	}

	msg := s.message(c)
	link := &domorder.Link{
		URL:       fmt.Sprintf("%s/%s?text=%s", s.endpoint, recipient, encodeComponent(msg)),
		Recipient: recipient,
		Message:   msg,
		Total:     c.Total(),
		Items:     c.Len(),
	}

	s.logger.Info("order composed", zap.Int("items", link.Items), zap.Int64("total", link.Total))
	s.events.Publish(event.Event{
		Kind:    event.KindOrderComposed,
		Level:   event.LevelSuccess,
		Message: "Opening WhatsApp to confirm your order!",
	})
	return link, nil
}

func (s *Service) message(c domcart.Cart) string {
	lines := make([]string, 0, c.Len())
	for _, item := range c.Items {
		lines = append(lines, fmt.Sprintf("• %s (%d × %s)", item.Name, item.Quantity, s.money.Amount(item.Price)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📱 *NEW ORDER - %s*\n\n", s.shopName)
	fmt.Fprintf(&b, "Order Details:\n%s\n\n", strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "💰 *Total Amount:* %s\n\n", s.money.Amount(c.Total()))
	b.WriteString("Please contact me to confirm this order. Thank you!")
	return b.String()
}

// Recipient returns the configured contact, or the default one, normalized.
func (s *Service) Recipient(ctx context.Context) (string, error) {
	raw, err := s.recipients.Recipient(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domorder.ErrRecipientNotStored):
		raw = s.defaultRecipient
	default:
		s.logger.Warn("reading recipient failed, using default", zap.Error(err))
		raw = s.defaultRecipient
	}
	return domorder.NormalizeRecipient(raw), nil
}

func (s *Service) SetRecipient(ctx context.Context, raw string) (string, error) {
	normalized := domorder.NormalizeRecipient(raw)
	if err := domorder.ValidateRecipient(normalized); err != nil {
		return "", err
	}
	if err := s.recipients.SetRecipient(ctx, normalized); err != nil {
		return "", fmt.Errorf("store recipient: %w", err)
	}
	return normalized, nil
}

const upperhex = "0123456789ABCDEF"

// encodeComponent percent-encodes s the way browsers encode a URI component:
// letters, digits and -_.!~*'() are kept, everything else is escaped as UTF-8.
func encodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
