package cache

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries bounds the in-process cache.
const DefaultMemoryEntries = 1024

// MemoryCache is a bounded in-process LRU cache.
type MemoryCache struct {
	lru *lru.Cache[string, memEntry]
}

type memEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates an LRU cache holding up to size entries.
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	l, err := lru.New[string, memEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: l}, nil
}

// Get retrieves a value; expired entries are evicted and reported as a miss.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a value. A ttl of zero never expires.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := memEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.lru.Add(key, e)
	return nil
}

// Delete removes a value.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Len returns the number of entries, including expired ones not yet evicted.
func (c *MemoryCache) Len() int { return c.lru.Len() }

// Close empties the cache.
func (c *MemoryCache) Close() error {
	c.lru.Purge()
	return nil
}

// TieredCache puts a fast cache in front of a slower, persistent one.
// Reads try the front first and copy back-tier hits forward; writes and
// deletes go to both tiers.
type TieredCache struct {
	front Cache
	back  Cache
}

// NewTieredCache layers front over back.
func NewTieredCache(front, back Cache) *TieredCache {
	return &TieredCache{front: front, back: back}
}

func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, err := c.front.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, ok, err := c.back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.front.Set(ctx, key, data, 0)
	return data, true, nil
}

func (c *TieredCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_ = c.front.Set(ctx, key, data, ttl)
	return c.back.Set(ctx, key, data, ttl)
}

func (c *TieredCache) Delete(ctx context.Context, key string) error {
	_ = c.front.Delete(ctx, key)
	return c.back.Delete(ctx, key)
}

// Back returns the persistent tier.
func (c *TieredCache) Back() Cache { return c.back }

func (c *TieredCache) Close() error {
	return errors.Join(c.front.Close(), c.back.Close())
}
