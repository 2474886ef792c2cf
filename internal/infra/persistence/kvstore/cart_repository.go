package kvstore

import (
	"context"
	"errors"

	domcart "example.com/aquapure-store/internal/domain/cart"
	"example.com/aquapure-store/internal/infra/kv"
)

type CartRepository struct {
	store kv.Store
}

func NewCartRepository(store kv.Store) *CartRepository {
	return &CartRepository{store: store}
}

func (r *CartRepository) Load(ctx context.Context) (domcart.Cart, error) {
	raw, err := r.store.Get(ctx, kv.KeyCart)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domcart.Cart{}, domcart.ErrCartNotPersisted
		}
		return domcart.Cart{}, err
	}
	return decodeCart(raw)
}

func (r *CartRepository) Save(ctx context.Context, c domcart.Cart) error {
	data, err := encodeCart(c)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, kv.KeyCart, string(data))
}

func (r *CartRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, kv.KeyCart)
}

var _ domcart.Repository = (*CartRepository)(nil)
