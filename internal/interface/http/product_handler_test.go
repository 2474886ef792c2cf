package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/aquapure-store/internal/infra/kv"
)

func TestListProducts_FromOriginThenCache(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "origin", body["source"])

	data := body["data"].([]any)
	require.Len(t, data, 2)
	first := data[0].(map[string]any)
	require.Equal(t, "10", first["id"])
	require.Equal(t, "₹12,000", first["price_display"])
	require.Equal(t, "RO Water Purifier", first["category_name"])
	require.Equal(t, true, first["in_stock"])
	require.Equal(t, false, data[1].(map[string]any)["in_stock"])

	_, err := env.store.Get(context.Background(), kv.KeyProducts)
	require.NoError(t, err)

	rec = env.do(t, http.MethodGet, "/api/v1/products", nil, "")
	require.Equal(t, "cache", decodeBody(t, rec)["source"])
}

func TestListProducts_CategoryFilter(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?category=uv", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 1)
	require.Equal(t, "11", data[0].(map[string]any)["id"])
}

func TestListProducts_NoSourceNoCache(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.err = errors.New("connection refused")

	rec := env.do(t, http.MethodGet, "/api/v1/products", nil, "")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "Unable to load products from server.", decodeBody(t, rec)["message"])
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products/11", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Server UV", decodeBody(t, rec)["name"])

	rec = env.do(t, http.MethodGet, "/api/v1/products/999", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found!", decodeBody(t, rec)["message"])
}

func TestGetProduct_SourceUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.err = errors.New("connection refused")

	rec := env.do(t, http.MethodGet, "/api/v1/products/10", nil, "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found!", decodeBody(t, rec)["message"])
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin123")
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/admin/products/reset", nil, token).Code)

	rec := env.do(t, http.MethodGet, "/api/v1/categories", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	counts := make(map[string]float64)
	for _, c := range decodeBody(t, rec)["data"].([]any) {
		m := c.(map[string]any)
		counts[m["code"].(string)] = m["products"].(float64)
	}
	require.Equal(t, float64(1), counts["ro+uv"])
	require.Equal(t, float64(1), counts["gravity"])
	require.Equal(t, float64(0), counts["alkaline"])
}

func TestAdminProducts_RequireSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/products", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/products", nil, "not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminProducts_CRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin123")

	// Admin listing seeds the default products when nothing is cached.
	rec := env.do(t, http.MethodGet, "/api/v1/admin/products", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["data"].([]any), 2)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name":          "Alkaline Plus",
		"price":         15999,
		"description":   "Alkaline water",
		"image":         "https://img/alk.png",
		"features_text": "pH Boost, Copper,",
		"category":      "alkaline",
		"stock":         12,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	require.Equal(t, "Product added successfully!", created["message"])
	product := created["data"].(map[string]any)
	id := product["id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, []any{"pH Boost", "Copper"}, product["features"])

	rec = env.do(t, http.MethodPut, "/api/v1/admin/products/"+id, map[string]any{
		"name":        "Alkaline Max",
		"price":       16999,
		"description": "Alkaline water",
		"image":       "https://img/alk.png",
		"features":    []string{" Copper "},
		"category":    "alkaline",
		"stock":       3,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody(t, rec)["data"].(map[string]any)
	require.Equal(t, "Alkaline Max", updated["name"])
	require.Equal(t, []any{"Copper"}, updated["features"])

	rec = env.do(t, http.MethodGet, "/api/v1/admin/stats", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody(t, rec)
	require.Equal(t, float64(3), stats["total_products"])
	require.Equal(t, float64(83), stats["total_stock"])
	require.Equal(t, float64(18999*50+8999*30+16999*3), stats["total_value"])

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/products/"+id, nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/products/"+id, nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminProducts_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin123")

	rec := env.do(t, http.MethodPost, "/api/v1/admin/products", map[string]any{
		"price":       100,
		"description": "x",
		"image":       "x",
		"category":    "ro",
	}, token)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "Please fill all required fields!", body["message"])
	require.Equal(t, "required", body["details"].(map[string]any)["Name"])

	rec = env.do(t, http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name":        "   ",
		"description": "x",
		"image":       "x",
		"category":    "ro",
	}, token)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/products", `{"name":`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name":        "Free Filter",
		"price":       0,
		"description": "x",
		"image":       "x",
		"category":    "ro",
	}, token)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "gt", decodeBody(t, rec)["details"].(map[string]any)["Price"])

	rec = env.do(t, http.MethodPut, "/api/v1/admin/products/404", map[string]any{
		"name":        "Ghost",
		"price":       100,
		"description": "x",
		"image":       "x",
		"category":    "ro",
	}, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminProducts_Reset(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin123")

	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/products", nil, "").Code)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/products/reset", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 2)
	require.Equal(t, "AquaPure RO+UV+UF", data[0].(map[string]any)["name"])
	require.Equal(t, "PureFlow Gravity Purifier", data[1].(map[string]any)["name"])
}
