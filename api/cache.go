// Package api defines the public contract of the search-result cache.
package api

import (
	"context"
	"time"

	"github.com/krisalay/search-cache/types"
)

// Cache is the public API of the search-result cache. Everything behind
// it (LRU ordering, expiration, persistence, statistics) is hidden.
//
// Not-found conditions are normal outcomes, reported through ok/bool
// returns, never through errors.
type Cache interface {

	// Get returns the cached payload and the original execution time for
	// query. ok is false when the query was never cached or its entry
	// expired; an expired entry is dropped on the spot.
	Get(query string) (payload any, executionTimeMs float64, ok bool)

	// GetOrExecute returns the cached result for query or, on a miss,
	// runs the configured search executor, caches its result with the
	// measured execution time, and returns it. Concurrent calls for the
	// same query execute the search only once.
	GetOrExecute(ctx context.Context, query string) (payload any, executionTimeMs float64, err error)

	// Put caches a result under query with the default TTL.
	Put(query string, payload any, executionTimeMs float64)

	// PutWithTTL caches a result with an explicit TTL. A zero or
	// negative TTL produces an entry that expires on the next read.
	PutWithTTL(query string, payload any, executionTimeMs float64, ttl time.Duration)

	// Invalidate removes the entry for query, reporting whether anything
	// was removed.
	Invalidate(query string) bool

	// InvalidateAll empties the cache.
	InvalidateAll()

	// Stats reports current size, capacity, hit rate and the cumulative
	// counters.
	Stats() types.Stats

	// Len returns the number of live entries, expired or not.
	Len() int

	// Configure updates capacity and/or default TTL. Zero values leave
	// the respective setting unchanged; negative values are rejected
	// before anything is applied. Shrinking below the current size
	// evicts the least-recently-used entries.
	Configure(maxSize int, defaultTTL time.Duration) error

	// Close flushes pending snapshot writes. The cache must not be used
	// afterwards.
	Close()
}
