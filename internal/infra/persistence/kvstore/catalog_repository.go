package kvstore

import (
	"context"
	"errors"

	domproduct "example.com/aquapure-store/internal/domain/product"
	"example.com/aquapure-store/internal/infra/kv"
)

type CatalogRepository struct {
	store kv.Store
	codec ProductCodec
}

func NewCatalogRepository(store kv.Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

func (r *CatalogRepository) Load(ctx context.Context) ([]*domproduct.Product, error) {
	raw, err := r.store.Get(ctx, kv.KeyProducts)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, domproduct.ErrCatalogNotCached
		}
		return nil, err
	}

	products, err := r.codec.Decode([]byte(raw))
	if err != nil {
		return nil, errors.Join(domproduct.ErrCorruptCatalog, err)
	}
	return products, nil
}

func (r *CatalogRepository) Save(ctx context.Context, products []*domproduct.Product) error {
	data, err := r.codec.Encode(products)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, kv.KeyProducts, string(data))
}

func (r *CatalogRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, kv.KeyProducts)
}

var _ domproduct.Repository = (*CatalogRepository)(nil)
