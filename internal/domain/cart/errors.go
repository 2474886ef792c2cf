package cart

import "errors"

var (
	ErrOutOfStock       = errors.New("this product is out of stock")
	ErrStockExceeded    = errors.New("not enough items in stock")
	ErrCartNotPersisted = errors.New("cart not persisted")
	ErrCorruptCart      = errors.New("cart data is corrupt")
)
