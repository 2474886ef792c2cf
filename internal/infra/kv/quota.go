package kv

import (
	"context"
	"errors"
	"fmt"
)

const DefaultQuotaBytes = 5 * 1024 * 1024

type quotaStore struct {
	Store
	maxBytes int64
}

// WithQuota rejects writes that would grow usage past maxBytes.
// A non-positive maxBytes disables the check.
func WithQuota(store Store, maxBytes int64) Store {
	if maxBytes <= 0 {
		return store
	}
	return &quotaStore{Store: store, maxBytes: maxBytes}
}

func (q *quotaStore) Set(ctx context.Context, key, value string) error {
	used, err := q.Store.Usage(ctx)
	if err != nil {
		return err
	}

	var previous int64
	current, err := q.Store.Get(ctx, key)
	switch {
	case err == nil:
		previous = ValueSize(current)
	case !errors.Is(err, ErrNotFound):
		return err
	}

	if used-previous+ValueSize(value) > q.maxBytes {
		return fmt.Errorf("set %q: %w", key, ErrQuotaExceeded)
	}
	return q.Store.Set(ctx, key, value)
}
