// Package cache provides pluggable byte caches for portal responses and
// built item graphs.
//
// Backends:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for teams running many exports
//   - [MemoryCache]: in-process LRU, layered over the others with [TieredCache]
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are produced by a [Keyer] so that every backend sees the same key
// space. Wrap a keyer with [NewScopedKeyer] to keep entries from different
// portals apart.
package cache

import (
	"context"
	"slices"
	"time"
)

// Cache stores opaque byte values with an optional TTL.
//
// Get returns (nil, false, nil) on a miss. Implementations must treat an
// expired entry as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GraphKeyOpts holds the builder options that change a graph's contents.
type GraphKeyOpts struct {
	// Scope identifies where and as whom the graph was built, e.g. portal
	// host, graph service and a token fingerprint.
	Scope          string `json:"scope,omitempty"`
	OutsideOrg     bool   `json:"outside_org"`
	IncludeReverse bool   `json:"include_reverse"`
}

// Keyer generates cache keys.
type Keyer interface {
	// HTTPKey generates a key for a cached HTTP response.
	HTTPKey(namespace, key string) string

	// GraphKey generates a key for the item graph built from a seed set.
	GraphKey(itemIDs []string, opts GraphKeyOpts) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:{namespace}:{key}".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// GraphKey hashes the seed IDs and options. Seed order does not matter.
func (DefaultKeyer) GraphKey(itemIDs []string, opts GraphKeyOpts) string {
	ids := slices.Clone(itemIDs)
	slices.Sort(ids)
	return hashKey("graph", ids, opts)
}
