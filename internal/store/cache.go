package store

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/akshaytechonsy/postdeck/internal/domain"
)

// CachedStore memoizes Download results. Artifacts are immutable once
// written, so a body cached under its name stays valid for the TTL.
// Listings are never cached: they must reflect store state at query time.
type CachedStore struct {
	inner  domain.Store
	bodies *cache.Cache
}

func WithCache(inner domain.Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner:  inner,
		bodies: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedStore) List(ctx context.Context) ([]domain.ArtifactDescriptor, error) {
	return c.inner.List(ctx)
}

func (c *CachedStore) Download(ctx context.Context, name string) (string, error) {
	if x, found := c.bodies.Get(name); found {
		return x.(string), nil
	}
	body, err := c.inner.Download(ctx, name)
	if err != nil {
		return "", err
	}
	c.bodies.Set(name, body, cache.DefaultExpiration)
	return body, nil
}
