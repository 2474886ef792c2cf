package kvstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	domcart "example.com/aquapure-store/internal/domain/cart"
	domproduct "example.com/aquapure-store/internal/domain/product"
)

type productRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Features    []string `json:"features"`
	Category    string   `json:"category"`
	Stock       int64    `json:"stock"`
}

type cartItemRecord struct {
	productRecord
	Quantity int64 `json:"quantity"`
}

func toRecord(p *domproduct.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Features:    p.Features,
		Category:    p.Category,
		Stock:       p.Stock,
	}
}

func (r productRecord) toDomain() domproduct.Product {
	return domproduct.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
		Features:    r.Features,
		Category:    r.Category,
		Stock:       r.Stock,
	}
}

// ProductCodec reads and writes the JSON array format shared by the cached
// catalog, the static products.json resource and import/export files.
type ProductCodec struct{}

func (ProductCodec) Decode(data []byte) ([]*domproduct.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, domproduct.ErrCorruptCatalog
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domproduct.ErrInvalidCatalogFormat
	}

	var records []productRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s", domproduct.ErrInvalidCatalogFormat, typeErr.Field)
		}
		return nil, fmt.Errorf("%w: %v", domproduct.ErrCorruptCatalog, err)
	}

	products := make([]*domproduct.Product, 0, len(records))
	for _, r := range records {
		p := r.toDomain()
		products = append(products, &p)
	}
	return products, nil
}

func (ProductCodec) Encode(products []*domproduct.Product) ([]byte, error) {
	return json.Marshal(productRecords(products))
}

func (ProductCodec) EncodeIndent(products []*domproduct.Product) ([]byte, error) {
	return json.MarshalIndent(productRecords(products), "", "  ")
}

func productRecords(products []*domproduct.Product) []productRecord {
	records := make([]productRecord, 0, len(products))
	for _, p := range products {
		records = append(records, toRecord(p))
	}
	return records
}

func decodeCart(data string) (domcart.Cart, error) {
	var records []cartItemRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return domcart.Cart{}, fmt.Errorf("%w: %v", domcart.ErrCorruptCart, err)
	}

	c := domcart.Cart{Items: make([]domcart.Item, 0, len(records))}
	for _, r := range records {
		c.Items = append(c.Items, domcart.Item{
			Product:  r.productRecord.toDomain(),
			Quantity: r.Quantity,
		})
	}
	return c, nil
}

func encodeCart(c domcart.Cart) ([]byte, error) {
	records := make([]cartItemRecord, 0, len(c.Items))
	for _, item := range c.Items {
		records = append(records, cartItemRecord{
			productRecord: toRecord(&item.Product),
			Quantity:      item.Quantity,
		})
	}
	return json.Marshal(records)
}

var _ domproduct.Codec = ProductCodec{}
