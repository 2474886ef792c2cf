package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	cataloguc "example.com/aquapure-store/internal/usecase/catalog"
	categoryuc "example.com/aquapure-store/internal/usecase/category"
)

// handleListProducts serves the storefront view: cache first, origin otherwise.
func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	res, err := a.catalogSvc.Load(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	products := categoryuc.Filter(res.Products, r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   mapProducts(products, a.money),
		"source": res.Source,
	})
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.catalogSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p, a.money))
}

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categorySvc.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, map[string]any{
			"code":     c.Code,
			"name":     c.Name,
			"products": c.Products,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleListProductsAdmin(w http.ResponseWriter, r *http.Request) {
	products, err := a.catalogSvc.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	products = categoryuc.Filter(products, r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, map[string]any{"data": mapProducts(products, a.money)})
}

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       int64    `json:"price" validate:"gt=0"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	Features    []string `json:"features"`
	// FeaturesText is the comma separated form field; it wins over Features.
	FeaturesText string `json:"features_text"`
	Category     string `json:"category" validate:"required"`
	Stock        int64  `json:"stock" validate:"gte=0"`
}

func (req productRequest) toInput() cataloguc.ProductInput {
	features := cataloguc.ParseFeatures(req.FeaturesText)
	if strings.TrimSpace(req.FeaturesText) == "" {
		features = features[:0]
		for _, f := range req.Features {
			if f = strings.TrimSpace(f); f != "" {
				features = append(features, f)
			}
		}
	}
	return cataloguc.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		Features:    features,
		Category:    req.Category,
		Stock:       req.Stock,
	}
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	p, err := a.catalogSvc.Create(r.Context(), req.toInput())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"data":    mapProduct(p, a.money),
		"message": "Product added successfully!",
	})
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	p, err := a.catalogSvc.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":    mapProduct(p, a.money),
		"message": "Product updated successfully!",
	})
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.catalogSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleResetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.catalogSvc.Reset(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":    mapProducts(products, a.money),
		"message": "Reset to default products successfully!",
	})
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.catalogSvc.Stats(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_products":      stats.TotalProducts,
		"total_value":         stats.TotalValue,
		"total_value_display": a.money.Amount(stats.TotalValue),
		"total_stock":         stats.TotalStock,
	})
}
