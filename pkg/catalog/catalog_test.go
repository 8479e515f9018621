package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCatalog_ResolveProduct(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("handle") {
		case "blue-shirt":
			assert.Equal(t, "shop-x", r.URL.Query().Get("shop"))
			_, _ = w.Write([]byte(`{"id":"gid://shopify/Product/42"}`))
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"upstream"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		}
	}))
	defer srv.Close()

	c := NewHTTPCatalog(srv.URL, time.Second, nil)
	ctx := context.Background()

	t.Run("Should resolve a handle", func(t *testing.T) {
		id, err := c.ResolveProduct(ctx, "shop-x", "blue-shirt")
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/Product/42", id)
	})

	t.Run("Should report unknown handles", func(t *testing.T) {
		_, err := c.ResolveProduct(ctx, "shop-x", "nope")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Should report upstream failures as unavailable", func(t *testing.T) {
		_, err := c.ResolveProduct(ctx, "shop-x", "broken")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("Should pass ids through without calling the service", func(t *testing.T) {
		before := calls.Load()
		id, err := c.ResolveProduct(ctx, "shop-x", "gid://shopify/Product/7")
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/Product/7", id)
		assert.Equal(t, before, calls.Load())
	})
}

type countingCatalog struct {
	calls int
}

func (c *countingCatalog) ResolveProduct(_ context.Context, shop, handle string) (string, error) {
	c.calls++
	if handle == "missing" {
		return "", ErrProductNotFound
	}
	return shop + "/" + handle, nil
}

func TestCached(t *testing.T) {
	next := &countingCatalog{}
	c := NewCached(next, 8, time.Minute)
	ctx := context.Background()

	id, err := c.ResolveProduct(ctx, "shop-x", "shirt")
	require.NoError(t, err)
	assert.Equal(t, "shop-x/shirt", id)
	_, _ = c.ResolveProduct(ctx, "shop-x", "shirt")
	assert.Equal(t, 1, next.calls)

	_, _ = c.ResolveProduct(ctx, "shop-y", "shirt")
	assert.Equal(t, 2, next.calls)

	_, err = c.ResolveProduct(ctx, "shop-x", "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, _ = c.ResolveProduct(ctx, "shop-x", "missing")
	assert.Equal(t, 4, next.calls)
}

func TestIDOnly(t *testing.T) {
	id, err := IDOnly{}.ResolveProduct(context.Background(), "shop-x", "12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", id)

	_, err = IDOnly{}.ResolveProduct(context.Background(), "shop-x", "blue-shirt")
	assert.ErrorIs(t, err, ErrHandlesUnsupported)
	assert.False(t, LooksLikeProductID(""))
}
