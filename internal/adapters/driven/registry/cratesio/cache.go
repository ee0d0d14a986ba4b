package cratesio

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
)

// Ensure CachedClient implements the interface.
var _ driven.RegistryClient = (*CachedClient)(nil)

// CachedClient wraps a RegistryClient with an LRU cache of crate details.
// Search results are never cached.
type CachedClient struct {
	inner driven.RegistryClient
	cache *lru.Cache[string, *domain.CrateDetail]
	group singleflight.Group
}

// NewCachedClient wraps inner with a detail cache of the given size.
// A size of zero or less returns inner unchanged.
func NewCachedClient(inner driven.RegistryClient, size int) (driven.RegistryClient, error) {
	if size <= 0 {
		return inner, nil
	}
	cache, err := lru.New[string, *domain.CrateDetail](size)
	if err != nil {
		return nil, err
	}
	return &CachedClient{inner: inner, cache: cache}, nil
}

// Search delegates to the wrapped client.
func (c *CachedClient) Search(ctx context.Context, q driven.RegistryQuery) (*driven.RegistryPage, error) {
	return c.inner.Search(ctx, q)
}

// GetCrate returns a cached detail or fetches it once for all concurrent callers.
// The shared fetch is detached from any single caller's cancellation; each
// caller stops waiting when its own ctx is done.
func (c *CachedClient) GetCrate(ctx context.Context, name string) (*domain.CrateDetail, error) {
	key := strings.ToLower(name)
	if d, ok := c.cache.Get(key); ok {
		return d, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		d, err := c.inner.GetCrate(shared, name)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, d)
		return d, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.CrateDetail), nil
	}
}

// Len returns the number of cached details.
func (c *CachedClient) Len() int {
	return c.cache.Len()
}
