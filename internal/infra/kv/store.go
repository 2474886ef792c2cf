package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Store is a flat string key-value store. Writes replace the whole value.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Usage approximates stored bytes as two bytes per character of every value.
	Usage(ctx context.Context) (int64, error)
}

const (
	KeyProducts       = "aquapure_products"
	KeyCart           = "cart"
	KeyLastBackupTime = "lastBackupTime"
	KeyAdminLoggedIn  = "adminLoggedIn"
	KeyAdminLoginTime = "adminLoginTime"
	KeyAdminSessionID = "adminSessionId"
	KeyAdminPassword  = "admin_password"
	KeyRecipient      = "whatsapp_contact"
)

func ValueSize(value string) int64 {
	var n int64
	for _, r := range value {
		if r > 0xFFFF {
			n += 4
		} else {
			n += 2
		}
	}
	return n
}
