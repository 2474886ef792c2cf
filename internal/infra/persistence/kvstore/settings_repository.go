package kvstore

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	domorder "example.com/aquapure-store/internal/domain/order"
	"example.com/aquapure-store/internal/infra/kv"
)

type SettingsRepository struct {
	store kv.Store
}

func NewSettingsRepository(store kv.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) Recipient(ctx context.Context) (string, error) {
	v, err := r.store.Get(ctx, kv.KeyRecipient)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", domorder.ErrRecipientNotStored
		}
		return "", err
	}
	if strings.TrimSpace(v) == "" {
		return "", domorder.ErrRecipientNotStored
	}
	return v, nil
}

func (r *SettingsRepository) SetRecipient(ctx context.Context, recipient string) error {
	return r.store.Set(ctx, kv.KeyRecipient, recipient)
}

// LastBackup returns the zero time when no backup was recorded.
func (r *SettingsRepository) LastBackup(ctx context.Context) (time.Time, error) {
	t, err := getMillis(ctx, r.store, kv.KeyLastBackupTime)
	if errors.Is(err, kv.ErrNotFound) {
		return time.Time{}, nil
	}
	return t, err
}

func (r *SettingsRepository) SetLastBackup(ctx context.Context, at time.Time) error {
	return setMillis(ctx, r.store, kv.KeyLastBackupTime, at)
}

func (r *SettingsRepository) Usage(ctx context.Context) (int64, error) {
	return r.store.Usage(ctx)
}

func getMillis(ctx context.Context, store kv.Store, key string) (time.Time, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}, kv.ErrNotFound
	}
	return time.UnixMilli(ms), nil
}

func setMillis(ctx context.Context, store kv.Store, key string, t time.Time) error {
	return store.Set(ctx, key, strconv.FormatInt(t.UnixMilli(), 10))
}

var _ domorder.RecipientRepository = (*SettingsRepository)(nil)
