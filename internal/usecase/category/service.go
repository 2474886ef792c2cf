package category

import (
	"context"
	"sort"

	dom "example.com/aquapure-store/internal/domain/category"
	domproduct "example.com/aquapure-store/internal/domain/product"
)

type ProductLister interface {
	List(ctx context.Context) ([]*domproduct.Product, error)
}

type Summary struct {
	dom.Category
	Products int
}

type Service struct {
	products ProductLister
}

func NewService(products ProductLister) *Service {
	return &Service{products: products}
}

// List returns the known categories plus any other code used in the catalog,
// each with the number of products filed under it.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}

	out := make([]Summary, 0, len(counts))
	for _, c := range dom.List() {
		out = append(out, Summary{Category: c, Products: counts[c.Code]})
		delete(counts, c.Code)
	}

	extra := make([]Summary, 0, len(counts))
	for code, n := range counts {
		extra = append(extra, Summary{Category: dom.Category{Code: code, Name: dom.DisplayName(code)}, Products: n})
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Code < extra[j].Code })

	return append(out, extra...), nil
}

// Filter keeps the products in category code. An empty code keeps everything.
func Filter(products []*domproduct.Product, code string) []*domproduct.Product {
	if code == "" {
		return products
	}
	out := make([]*domproduct.Product, 0, len(products))
	for _, p := range products {
		if p.Category == code {
			out = append(out, p)
		}
	}
	return out
}
