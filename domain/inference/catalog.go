package inference

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CatalogCache fetches the model catalog once per session. Concurrent callers
// share one in-flight fetch; a failed fetch is not cached so a later call can
// retry.
type CatalogCache struct {
	svc   Service
	group singleflight.Group

	mu     sync.RWMutex
	models []ModelDescriptor
	loaded bool
}

func NewCatalogCache(svc Service) *CatalogCache { return &CatalogCache{svc: svc} }

// Models returns the cached catalog, fetching it on first use.
func (c *CatalogCache) Models(ctx context.Context) ([]ModelDescriptor, error) {
	c.mu.RLock()
	if c.loaded {
		out := append([]ModelDescriptor(nil), c.models...)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("models", func() (any, error) {
		c.mu.RLock()
		if c.loaded {
			models := c.models
			c.mu.RUnlock()
			return models, nil
		}
		c.mu.RUnlock()
		models, err := c.svc.ListModels(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.models, c.loaded = models, true
		c.mu.Unlock()
		return models, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]ModelDescriptor(nil), v.([]ModelDescriptor)...), nil
}

// Seed installs a catalog without fetching, used for the embedded fallback.
func (c *CatalogCache) Seed(models []ModelDescriptor) {
	c.mu.Lock()
	c.models, c.loaded = append([]ModelDescriptor(nil), models...), true
	c.mu.Unlock()
}

// Lookup finds a descriptor by key in the cached catalog.
func (c *CatalogCache) Lookup(key string) (ModelDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.models {
		if m.Key == key {
			return m, true
		}
	}
	return ModelDescriptor{}, false
}
