package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domadmin "example.com/aquapure-store/internal/domain/admin"
	"example.com/aquapure-store/internal/domain/event"
	"example.com/aquapure-store/internal/platform/logging"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Claims struct {
	SessionID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenService interface {
	GenerateToken(sessionID string, issuedAt time.Time) (string, error)
	ParseToken(token string) (*Claims, error)
}

type Config struct {
	SessionTTL time.Duration
	Now        func() time.Time
	// NewSessionID defaults to a random UUID.
	NewSessionID func() string
}

type Service struct {
	repo   domadmin.Repository
	hasher PasswordHasher
	tokens TokenService
	events event.Publisher
	logger *zap.Logger

	ttl   time.Duration
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

func NewService(
	repo domadmin.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	events event.Publisher,
	logger *zap.Logger,
	cfg Config,
) *Service {
	if events == nil {
		events = event.NopPublisher{}
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = domadmin.DefaultSessionTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewSessionID == nil {
		cfg.NewSessionID = uuid.NewString
	}
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		events: events,
		logger: logging.OrNop(logger).Named("auth"),
		ttl:    cfg.SessionTTL,
		now:    cfg.Now,
		newID:  cfg.NewSessionID,
	}
}

type LoginResult struct {
	Token     string
	LoginTime time.Time
	ExpiresAt time.Time
}

type SessionInfo struct {
	LoginTime time.Time
	ExpiresAt time.Time
	Remaining time.Duration
}

type ChangePasswordInput struct {
	Current string
	New     string
	Confirm string
}

func (s *Service) Login(ctx context.Context, password string) (*LoginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if password == "" {
		return nil, domadmin.ErrUnauthorized
	}
	if err := s.verifyLocked(ctx, password); err != nil {
		if errors.Is(err, domadmin.ErrInvalidCredential) {
			s.logger.Info("admin login rejected")
			return nil, domadmin.ErrUnauthorized
		}
		return nil, err
	}

	res, err := s.startSessionLocked(ctx)
	if err != nil {
		return nil, err
	}
	s.publish(event.LevelSuccess, "Login successful!")
	return res, nil
}

// Authenticate checks token against the stored session. Tokens minted for an
// earlier login carry a different session ID and are rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (*SessionInfo, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, domadmin.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.repo.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !session.LoggedIn || session.ID == "" || session.LoginTime.IsZero() {
		return nil, domadmin.ErrUnauthorized
	}

	now := s.now()
	if session.Expired(now, s.ttl) {
		if err := s.repo.ClearSession(ctx); err != nil {
			s.logger.Warn("clearing expired session failed", zap.Error(err))
		}
		s.publish(event.LevelWarning, "Session expired. Please login again.")
		return nil, domadmin.ErrSessionExpired
	}
	if subtle.ConstantTimeCompare([]byte(claims.SessionID), []byte(session.ID)) != 1 {
		return nil, domadmin.ErrUnauthorized
	}

	return s.info(session, now), nil
}

func (s *Service) Session(ctx context.Context) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.repo.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	now := s.now()
	if !session.Valid(now, s.ttl) {
		return nil, domadmin.ErrUnauthorized
	}
	return s.info(session, now), nil
}

// Renew restarts the session clock and issues a fresh token.
func (s *Service) Renew(ctx context.Context) (*LoginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.repo.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !session.Valid(s.now(), s.ttl) {
		return nil, domadmin.ErrUnauthorized
	}

	res, err := s.startSessionLocked(ctx)
	if err != nil {
		return nil, err
	}
	s.publish(event.LevelSuccess, fmt.Sprintf("Session renewed for %s!", humanDuration(s.ttl)))
	return res, nil
}

func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.publish(event.LevelInfo, "Logged out")
	return nil
}

// ChangePassword stores a new password and ends the session.
func (s *Service) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.Current == "" || in.New == "" || in.Confirm == "" {
		return domadmin.ErrPasswordFieldsRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.verifyLocked(ctx, in.Current); err != nil {
		return err
	}
	switch {
	case in.New != in.Confirm:
		return domadmin.ErrPasswordMismatch
	case len([]rune(in.New)) < domadmin.MinPasswordLength:
		return domadmin.ErrWeakPassword
	case in.New == in.Current:
		return domadmin.ErrPasswordUnchanged
	}

	hash, err := s.hasher.Hash(in.New)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.SetPasswordHash(ctx, hash); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Info("admin password changed")
	s.publish(event.LevelSuccess, "Password changed successfully! Please login again with new password.")
	return nil
}

// ResetPassword drops the stored password so the default applies again.
func (s *Service) ResetPassword(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ClearPassword(ctx); err != nil {
		return fmt.Errorf("clear password: %w", err)
	}
	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Warn("admin password reset to default")
	s.publish(event.LevelWarning, "Password reset to default: "+domadmin.DefaultPassword)
	return nil
}

func (s *Service) verifyLocked(ctx context.Context, password string) error {
	hash, err := s.repo.PasswordHash(ctx)
	if errors.Is(err, domadmin.ErrPasswordNotStored) {
		if subtle.ConstantTimeCompare([]byte(password), []byte(domadmin.DefaultPassword)) != 1 {
			return domadmin.ErrInvalidCredential
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load password: %w", err)
	}
	if err := s.hasher.Compare(hash, password); err != nil {
		return domadmin.ErrInvalidCredential
	}
	return nil
}

func (s *Service) startSessionLocked(ctx context.Context) (*LoginResult, error) {
	// Storage keeps millisecond precision.
	loginTime := s.now().Truncate(time.Millisecond)
	session := domadmin.Session{ID: s.newID(), LoggedIn: true, LoginTime: loginTime}

	token, err := s.tokens.GenerateToken(session.ID, loginTime)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &LoginResult{
		Token:     token,
		LoginTime: loginTime,
		ExpiresAt: loginTime.Add(s.ttl),
	}, nil
}

func (s *Service) info(session domadmin.Session, now time.Time) *SessionInfo {
	return &SessionInfo{
		LoginTime: session.LoginTime,
		ExpiresAt: session.LoginTime.Add(s.ttl),
		Remaining: session.Remaining(now, s.ttl),
	}
}

func (s *Service) publish(level event.Level, msg string) {
	s.events.Publish(event.Event{Kind: event.KindSession, Level: level, Message: msg})
}

func humanDuration(d time.Duration) string {
	if d%time.Hour == 0 {
		if h := int(d / time.Hour); h != 1 {
			return fmt.Sprintf("%d hours", h)
		}
		return "1 hour"
	}
	return d.String()
}
