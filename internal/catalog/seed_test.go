package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeed_FromFeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Backpack", "price": 109.95, "category": "gear"},
			{"id": 2, "title": "T-Shirt", "price": 22.3, "category": "clothing"}
		]`))
	}))
	t.Cleanup(ts.Close)

	store := NewMemStore()
	require.NoError(t, Seed(context.Background(), store, NewFeedClient(ts.URL), zap.NewNop()))

	products, err := store.ListSortedByID(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, Product{ID: 1, Name: "Backpack", Price: 109.95}, products[0])
	assert.Equal(t, Product{ID: 2, Name: "T-Shirt", Price: 22.3}, products[1])
}

func TestSeed_FallbackWhenFeedUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	store := NewMemStore()
	require.NoError(t, Seed(context.Background(), store, NewFeedClient(ts.URL), zap.NewNop()))

	assertFallbackCatalog(t, store)
}

func TestSeed_FallbackOnBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	store := NewMemStore()
	require.NoError(t, Seed(context.Background(), store, NewFeedClient(ts.URL), zap.NewNop()))

	assertFallbackCatalog(t, store)
}

func TestSeed_FallbackOnEmptyFeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(ts.Close)

	store := NewMemStore()
	require.NoError(t, Seed(context.Background(), store, NewFeedClient(ts.URL), zap.NewNop()))

	assertFallbackCatalog(t, store)
}

func TestSeed_SkipsNonEmptyStore(t *testing.T) {
	store := NewMemStore()
	existing := Product{ID: 42, Name: "Webcam", Price: 59.99}
	require.NoError(t, store.InsertMany(context.Background(), []Product{existing}))

	// Feed must not even be contacted; an unreachable URL proves it.
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	require.NoError(t, Seed(context.Background(), store, NewFeedClient(ts.URL), zap.NewNop()))

	products, err := store.ListSortedByID(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, existing, products[0])
}

func assertFallbackCatalog(t *testing.T, store Store) {
	t.Helper()

	products, err := store.ListSortedByID(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 8)
	for i, p := range products {
		assert.Equal(t, i+1, p.ID)
	}
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, "Monitor", products[7].Name)
}
