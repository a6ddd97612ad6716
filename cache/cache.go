// Package cache is the client's query cache: the single shared
// mutable resource across views. Reads go get-or-fetch; mutations
// invalidate named groups and let the next read refetch.
//
// Entries live in a ristretto cache with a TTL; an index of keys per
// group supports invalidation, since ristretto itself has no key
// enumeration.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

// Cache wraps ristretto with TTL defaults and group invalidation.
type Cache struct {
	inner  *ristretto.Cache
	ttl    time.Duration
	logger *zap.Logger

	mu     sync.Mutex
	groups map[string]map[string]struct{}
}

// Option configures the cache.
type Option func(*Cache)

// WithLogger sets the cache logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates a query cache whose entries expire after ttl. A zero
// ttl disables expiry.
func New(ttl time.Duration, opts ...Option) (*Cache, error) {
	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 14,
		MaxCost:     1 << 26,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}

	c := &Cache{
		inner:  inner,
		ttl:    ttl,
		logger: zap.NewNop(),
		groups: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Set stores value under key and records the key in group for later
// invalidation.
func (c *Cache) Set(group, key string, value interface{}) {
	c.mu.Lock()
	keys, ok := c.groups[group]
	if !ok {
		keys = make(map[string]struct{})
		c.groups[group] = keys
	}
	keys[key] = struct{}{}
	c.mu.Unlock()

	c.inner.SetWithTTL(key, value, 1, c.ttl)
}

// Get returns the cached value for key, if present and live.
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.inner.Get(key)
}

// GetOrFetch returns the cached value for key, or calls fetch and
// caches the result under group. Fetch errors are not cached.
func (c *Cache) GetOrFetch(group, key string, fetch func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.inner.Get(key); ok {
		c.logger.Debug("cache hit", zap.String("key", key))
		return v, nil
	}
	v, err := fetch()
	if err != nil {
		return nil, err
	}
	c.Set(group, key, v)
	return v, nil
}

// Invalidate drops every key recorded under the given groups.
func (c *Cache) Invalidate(groups ...string) {
	c.mu.Lock()
	var keys []string
	for _, group := range groups {
		for key := range c.groups[group] {
			keys = append(keys, key)
		}
		delete(c.groups, group)
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.inner.Del(key)
	}
	if len(keys) > 0 {
		c.logger.Debug("cache invalidated",
			zap.Strings("groups", groups), zap.Int("keys", len(keys)))
	}
}

// Wait blocks until buffered writes are applied. Ristretto applies
// sets asynchronously; callers that read their own writes call Wait
// first.
func (c *Cache) Wait() {
	c.inner.Wait()
}

// Close releases the underlying cache.
func (c *Cache) Close() {
	c.inner.Close()
}
