package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	data, err := NewFileFetcher(path).Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	_, err = NewFileFetcher(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1"}]`))
	}))
	defer srv.Close()

	data, err := NewHTTPFetcher(srv.URL+"/products.json", srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, `[{"id":"1"}]`, string(data))

	_, err = NewHTTPFetcher(srv.URL+"/nope.json", srv.Client()).Fetch(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}

func TestNew_PicksFetcherByLocation(t *testing.T) {
	_, ok := New("https://example.com/products.json", time.Second).(*HTTPFetcher)
	require.True(t, ok)

	_, ok = New("static/products.json", time.Second).(*FileFetcher)
	require.True(t, ok)
}
