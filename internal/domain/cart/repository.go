package cart

import "context"

type Repository interface {
	Load(ctx context.Context) (Cart, error)
	Save(ctx context.Context, c Cart) error
	Clear(ctx context.Context) error
}
