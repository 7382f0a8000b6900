package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/biaslens/biaslens/internal/model"
)

// MemoryCache implements in-memory caching with TTL expiry.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a result from the cache. The caller receives its own copy;
// results are owned by the invocation they were produced for.
func (c *MemoryCache) Get(key string) (*model.PipelineResult, bool) {
	if val, found := c.cache.Get(key); found {
		result := *(val.(*model.PipelineResult))
		return &result, true
	}
	return nil, false
}

// Set stores a copy of the result with the default TTL, so later mutations
// by the caller never reach other cache users.
func (c *MemoryCache) Set(key string, result *model.PipelineResult) {
	stored := *result
	c.cache.SetDefault(key, &stored)
}

// Delete removes a result from the cache
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all results from the cache
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
