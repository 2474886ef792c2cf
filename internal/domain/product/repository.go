package product

import "context"

// Repository persists the catalog as one blob. Load returns ErrCatalogNotCached
// when nothing is stored and ErrCorruptCatalog when the blob does not parse.
type Repository interface {
	Load(ctx context.Context) ([]*Product, error)
	Save(ctx context.Context, products []*Product) error
	Clear(ctx context.Context) error
}

type Codec interface {
	Decode(data []byte) ([]*Product, error)
	Encode(products []*Product) ([]byte, error)
	EncodeIndent(products []*Product) ([]byte, error)
}
