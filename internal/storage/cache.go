package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodtune/brightboard/internal/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore is a write-through LRU read cache in front of another Store.
type CachedStore struct {
	next  Store
	cache *lru.Cache[string, []byte]
}

// Cached wraps next with an LRU cache of size entries.
func Cached(next Store, size int) (*CachedStore, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("create store cache: %w", err)
	}
	return &CachedStore{next: next, cache: cache}, nil
}

// Get serves key from cache, falling back to the wrapped store.
func (c *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := c.cache.Get(key); ok {
		metrics.StorageCacheHits.Inc()
		return append([]byte(nil), value...), nil
	}
	metrics.StorageCacheMisses.Inc()

	value, err := c.next.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.cache.Remove(key)
		}
		return nil, err
	}
	c.cache.Add(key, append([]byte(nil), value...))
	return value, nil
}

// Set writes through and caches the new value.
func (c *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.cache.Remove(key)
		return err
	}
	c.cache.Add(key, append([]byte(nil), value...))
	return nil
}

// Delete removes key from both layers.
func (c *CachedStore) Delete(ctx context.Context, key string) error {
	c.cache.Remove(key)
	return c.next.Delete(ctx, key)
}

// Close closes the wrapped store.
func (c *CachedStore) Close() error {
	c.cache.Purge()
	return c.next.Close()
}
