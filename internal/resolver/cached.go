package resolver

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 1024

type cachedResult struct {
	t   Type
	err error
}

// Cached memoizes hits and not-found results of another resolver. Other
// errors are not cached.
type Cached struct {
	next  Resolver
	cache *lru.Cache[string, cachedResult]
}

// NewCached wraps next with an LRU of size entries (1024 when size <= 0).
func NewCached(next Resolver, size int) (*Cached, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, cachedResult](size)
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, cache: cache}, nil
}

func (c *Cached) Resolve(ctx context.Context, name string) (Type, error) {
	if r, ok := c.cache.Get(name); ok {
		return r.t, r.err
	}
	t, err := c.next.Resolve(ctx, name)
	if err == nil || errors.Is(err, ErrNotFound) {
		c.cache.Add(name, cachedResult{t: t, err: err})
	}
	return t, err
}
