package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "example.com/aquapure-store/internal/domain/product"
)

type mockProductLister struct {
	products []*domproduct.Product
	err      error
}

func (m *mockProductLister) List(ctx context.Context) ([]*domproduct.Product, error) {
	return m.products, m.err
}

func TestList_CountsProductsPerCategory(t *testing.T) {
	products := append(domproduct.DefaultProducts(), &domproduct.Product{ID: "3", Category: "ro+uv"}, &domproduct.Product{ID: "4", Category: "zeolite"})
	svc := NewService(&mockProductLister{products: products})

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 7)

	byCode := make(map[string]Summary)
	for _, s := range got {
		byCode[s.Code] = s
	}
	require.Equal(t, 2, byCode["ro+uv"].Products)
	require.Equal(t, "RO+UV Water Purifier", byCode["ro+uv"].Name)
	require.Equal(t, 1, byCode["gravity"].Products)
	require.Equal(t, 0, byCode["uv"].Products)
	require.Equal(t, "zeolite", got[6].Code)
	require.Equal(t, "zeolite", got[6].Name)
}

func TestList_PropagatesError(t *testing.T) {
	listErr := errors.New("boom")
	svc := NewService(&mockProductLister{err: listErr})

	_, err := svc.List(context.Background())

	require.ErrorIs(t, err, listErr)
}

func TestFilter(t *testing.T) {
	products := domproduct.DefaultProducts()

	require.Len(t, Filter(products, ""), 2)
	got := Filter(products, "gravity")
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)
	require.Empty(t, Filter(products, "uv"))
}
