package admin

import "time"

const DefaultSessionTTL = 2 * time.Hour

type Session struct {
	// ID identifies one login; tokens carrying another ID are stale.
	ID        string
	LoggedIn  bool
	LoginTime time.Time
}

func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LoginTime) >= ttl
}

func (s Session) Valid(now time.Time, ttl time.Duration) bool {
	return s.LoggedIn && s.ID != "" && !s.LoginTime.IsZero() && !s.Expired(now, ttl)
}

func (s Session) Remaining(now time.Time, ttl time.Duration) time.Duration {
	remaining := ttl - now.Sub(s.LoginTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}
