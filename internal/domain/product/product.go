package product

type Product struct {
	ID          string
	Name        string
	Price       int64
	Description string
	Image       string
	Features    []string
	Category    string
	Stock       int64
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

func (p *Product) Clone() *Product {
	cloned := *p
	if p.Features != nil {
		cloned.Features = make([]string, len(p.Features))
		copy(cloned.Features, p.Features)
	}
	return &cloned
}

// Validate checks the fields the admin form requires.
func (p *Product) Validate() error {
	switch {
	case p.Name == "", p.Description == "", p.Image == "", p.Category == "":
		return ErrInvalidProduct
	case p.Price <= 0, p.Stock < 0:
		return ErrInvalidProduct
	default:
		return nil
	}
}

type Stats struct {
	TotalProducts int
	TotalValue    int64
	TotalStock    int64
}

func ComputeStats(products []*Product) Stats {
	stats := Stats{TotalProducts: len(products)}
	for _, p := range products {
		stats.TotalValue += p.Price * p.Stock
		stats.TotalStock += p.Stock
	}
	return stats
}

func FindByID(products []*Product, id string) (*Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func CloneAll(products []*Product) []*Product {
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.Clone())
	}
	return out
}
