package cart

import (
	"fmt"

	domproduct "example.com/aquapure-store/internal/domain/product"
)

// Item carries a snapshot of the product taken when it was first added.
// The snapshot is never refreshed, so its Stock may lag the catalog.
type Item struct {
	domproduct.Product
	Quantity int64
}

func (i Item) Subtotal() int64 {
	return i.Price * i.Quantity
}

type Cart struct {
	Items []Item
}

func (c Cart) Len() int {
	return len(c.Items)
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

func (c Cart) Count() int64 {
	var count int64
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Find returns the index of the entry for productID, or -1.
func (c Cart) Find(productID string) int {
	for i, item := range c.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Clone() Cart {
	items := make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, Item{Product: *item.Product.Clone(), Quantity: item.Quantity})
	}
	return Cart{Items: items}
}

// Added returns a copy of c holding one more unit of p. Stock is checked
// against p as looked up, not against any earlier snapshot in the cart.
func (c Cart) Added(p *domproduct.Product) (Cart, error) {
	if !p.InStock() {
		return Cart{}, ErrOutOfStock
	}

	next := c.Clone()
	if i := next.Find(p.ID); i >= 0 {
		if next.Items[i].Quantity+1 > p.Stock {
			return Cart{}, fmt.Errorf("only %d items available in stock: %w", p.Stock, ErrStockExceeded)
		}
		next.Items[i].Quantity++
		return next, nil
	}

	next.Items = append(next.Items, Item{Product: *p.Clone(), Quantity: 1})
	return next, nil
}

// Removed returns a copy of c without productID. A missing entry is not an error.
func (c Cart) Removed(productID string) Cart {
	next := Cart{Items: make([]Item, 0, len(c.Items))}
	for _, item := range c.Items {
		if item.ID != productID {
			next.Items = append(next.Items, Item{Product: *item.Product.Clone(), Quantity: item.Quantity})
		}
	}
	return next
}

// Adjusted returns a copy of c with delta applied to productID's quantity.
// A result below one removes the entry. Stock is not consulted.
func (c Cart) Adjusted(productID string, delta int64) Cart {
	i := c.Find(productID)
	if i < 0 {
		return c.Clone()
	}
	if c.Items[i].Quantity+delta < 1 {
		return c.Removed(productID)
	}
	next := c.Clone()
	next.Items[i].Quantity += delta
	return next
}
