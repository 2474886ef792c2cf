package product

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidProduct       = errors.New("please fill all required fields")
	ErrCatalogNotCached     = errors.New("catalog not cached")
	ErrCorruptCatalog       = errors.New("catalog data is corrupt")
	ErrInvalidCatalogFormat = errors.New("invalid products data format")
	ErrNoProducts           = errors.New("no products available")
	ErrSaveFailed           = errors.New("error saving products")
)
