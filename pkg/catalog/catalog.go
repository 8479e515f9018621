// Package catalog resolves product handles to product ids through the
// external product catalog service.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

var (
	ErrProductNotFound = errors.New("catalog: product not found")
	ErrUnavailable     = errors.New("catalog: lookup unavailable")
	// ErrHandlesUnsupported is returned by IDOnly for anything but a product id.
	ErrHandlesUnsupported = errors.New("catalog: product handles cannot be resolved without a catalog")
)

type Catalog interface {
	ResolveProduct(ctx context.Context, shop, handle string) (string, error)
}

// LooksLikeProductID reports whether ref is already a product id rather than
// a handle: a gid:// reference or a plain number.
func LooksLikeProductID(ref string) bool {
	if strings.HasPrefix(ref, "gid://") {
		return true
	}
	if ref == "" {
		return false
	}
	for _, r := range ref {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type HTTPCatalog struct {
	client *resty.Client
	log    *slog.Logger
}

type lookupResponse struct {
	ID string `json:"id"`
}

type lookupError struct {
	Error string `json:"error"`
}

func NewHTTPCatalog(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HTTPCatalog{client: c, log: logger.With("component", "catalog")}
}

func (c *HTTPCatalog) ResolveProduct(ctx context.Context, shop, handle string) (string, error) {
	if LooksLikeProductID(handle) {
		return handle, nil
	}
	var out lookupResponse
	var apiErr lookupError
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"shop": shop, "handle": handle}).
		SetResult(&out).
		SetError(&apiErr).
		Get("/products/lookup")
	if err != nil {
		c.log.ErrorContext(ctx, "catalog lookup failed", "shop", shop, "handle", handle, "err", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", ErrProductNotFound
	}
	if resp.IsError() {
		c.log.ErrorContext(ctx, "catalog lookup rejected", "shop", shop, "handle", handle,
			"status", resp.StatusCode(), "error", apiErr.Error)
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	if out.ID == "" {
		return "", ErrProductNotFound
	}
	return out.ID, nil
}

// Cached memoizes successful lookups per (shop, handle).
type Cached struct {
	next  Catalog
	cache *expirable.LRU[string, string]
}

func NewCached(next Catalog, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = 1024
	}
	return &Cached{next: next, cache: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (c *Cached) ResolveProduct(ctx context.Context, shop, handle string) (string, error) {
	key := shop + "\x00" + handle
	if id, ok := c.cache.Get(key); ok {
		return id, nil
	}
	id, err := c.next.ResolveProduct(ctx, shop, handle)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, id)
	return id, nil
}

// IDOnly is used when no catalog service is configured: ids pass through,
// handles cannot be resolved.
type IDOnly struct{}

func (IDOnly) ResolveProduct(_ context.Context, _ string, ref string) (string, error) {
	if LooksLikeProductID(ref) {
		return ref, nil
	}
	return "", ErrHandlesUnsupported
}
