package product

func DefaultProducts() []*Product {
	return []*Product{
		{
			ID:          "1",
			Name:        "AquaPure RO+UV+UF",
			Price:       18999,
			Description: "7-stage purification with mineral retention technology",
			Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=80",
			Features:    []string{"RO", "UV", "UF", "TDS Controller", "Mineral Retention"},
			Category:    "ro+uv",
			Stock:       50,
		},
		{
			ID:          "2",
			Name:        "PureFlow Gravity Purifier",
			Price:       8999,
			Description: "Non-electric gravity based water purifier, no electricity needed",
			Image:       "https://images.unsplash.com/photo-1564971668106-93f2f4b2e176?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=80",
			Features:    []string{"Non-Electric", "Gravity Based", "9L Capacity", "No Maintenance"},
			Category:    "gravity",
			Stock:       30,
		},
	}
}
