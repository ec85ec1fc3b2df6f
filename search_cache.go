// Package cache implements a disk-persisted cache for search results.
//
// Results of expensive query executions are kept in memory keyed by
// query string, bounded by least-recently-used eviction, expired after a
// time-to-live, and mirrored to a JSON file after every mutation so
// counters and warm entries survive restarts. The cache is a pure
// optimization layer: when it is cold, missing or its disk file is
// broken, callers still get correct results, just slower.
package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/krisalay/search-cache/api"
	"github.com/krisalay/search-cache/engine"
	"github.com/krisalay/search-cache/eviction"
	"github.com/krisalay/search-cache/snapshot"
	"github.com/krisalay/search-cache/types"
)

// SearchCache is the orchestrator: it owns one LRU ordering store, checks
// TTLs on read, accumulates statistics and persists its full state
// through the engine's snapshot policy.
//
// All mutable state (the recency order, the counters and the
// read-then-maybe-evict sequence in Put) lives behind one coarse mutex
// per instance. The cache is not a throughput-critical path; one lock
// keeps the interleavings trivial.
type SearchCache struct {
	mu     sync.Mutex
	store  *eviction.LRU
	engine *engine.Engine
	file   *snapshot.File

	defaultTTL time.Duration
	stats      snapshot.Stats

	now func() time.Time

	// sf collapses concurrent GetOrExecute calls for the same query into
	// a single search execution.
	sf singleflight.Group
}

var _ api.Cache = (*SearchCache)(nil)

// executed carries a search result through singleflight.
type executed struct {
	payload any
	ms      float64
}

// New creates a cache persisting to search_cache.json inside storageDir.
//
// If a prior snapshot exists it is loaded: entries already stale at load
// time are dropped and counted as expirations, and the persisted
// counters replace the zeroed in-memory ones so history survives
// restarts. A missing, unreadable or corrupt snapshot yields an empty
// cache, never an error.
func New(storageDir string, opts ...Option) (*SearchCache, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.maxSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeMaxSize, cfg.maxSize)
	}
	if cfg.defaultTTL < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeTTL, cfg.defaultTTL)
	}

	file := snapshot.NewFile(storageDir)

	policy := cfg.policy
	if policy == nil {
		if cfg.asyncBuffer > 0 {
			policy = snapshot.NewAsyncPolicy(file, cfg.asyncBuffer, cfg.logger)
		} else {
			policy = snapshot.NewSyncPolicy(file, cfg.logger)
		}
	}

	c := &SearchCache{
		store:      eviction.NewLRU(cfg.maxSize),
		engine:     engine.New(cfg.expiration, cfg.executor, policy, cfg.metrics),
		file:       file,
		defaultTTL: cfg.defaultTTL,
		now:        cfg.now,
	}

	c.loadSnapshot()

	return c, nil
}

// Get returns the cached payload and original execution time for query.
//
// A found entry past its deadline is removed on the spot and counted as
// an expiration, not a miss; the caller sees it as absent either way.
// Reads never write the snapshot file, so hit counts are advisory and
// may be lost on a crash.
func (c *SearchCache) Get(query string) (any, float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.store.Get(query)
	if !ok {
		c.stats.Misses++
		c.engine.Metrics.Miss()
		return nil, 0, false
	}

	ent := v.(*types.Entry)
	if c.engine.IsExpired(ent, c.now()) {
		c.store.Remove(query)
		c.stats.Expirations++
		c.engine.Metrics.Expire()
		return nil, 0, false
	}

	ent.MarkHit()
	c.stats.Hits++
	c.engine.Metrics.Hit()

	return ent.Payload, ent.ExecutionTimeMs, true
}

// GetOrExecute returns the cached result for query or, on a miss, runs
// the configured executor, caches its result with the measured execution
// time, and returns it. Concurrent calls for the same query share a
// single execution.
func (c *SearchCache) GetOrExecute(ctx context.Context, query string) (any, float64, error) {
	if payload, ms, ok := c.Get(query); ok {
		return payload, ms, nil
	}

	v, err, _ := c.sf.Do(query, func() (any, error) {
		start := c.now()
		payload, err := c.engine.Execute(ctx, query)
		if err != nil {
			return nil, err
		}
		ms := float64(c.now().Sub(start)) / float64(time.Millisecond)

		c.Put(query, payload, ms)

		return executed{payload: payload, ms: ms}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	res := v.(executed)
	return res.payload, res.ms, nil
}

// Put caches a result under query with the default TTL.
func (c *SearchCache) Put(query string, payload any, executionTimeMs float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.putLocked(query, payload, executionTimeMs, c.defaultTTL)
}

// PutWithTTL caches a result with an explicit TTL. A zero or negative
// TTL yields an entry that is already stale on the next read.
func (c *SearchCache) PutWithTTL(query string, payload any, executionTimeMs float64, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.putLocked(query, payload, executionTimeMs, ttl)
}

func (c *SearchCache) putLocked(query string, payload any, executionTimeMs float64, ttl time.Duration) {
	ent := types.NewEntry(payload, executionTimeMs, ttl, c.now())

	evicted, ok := c.store.Put(query, ent)

	c.stats.Inserts++
	c.engine.Metrics.Insert()

	// An eviction is a different key getting dropped to make room for a
	// new one. Updates never evict, and a zero-capacity store dropping
	// the key it just accepted does not count either.
	if ok && evicted != query {
		c.stats.Evictions++
		c.engine.Metrics.Eviction()
	}

	c.persistLocked()
}

// Invalidate removes the entry for query and reports whether anything
// was removed. Removing an absent key is a no-op, not an error.
func (c *SearchCache) Invalidate(query string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.store.Remove(query)
	if removed {
		c.persistLocked()
	}
	return removed
}

// InvalidateAll empties the cache. The snapshot is rewritten; an empty
// cache file is a valid state.
func (c *SearchCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Clear()
	c.persistLocked()
}

// Stats reports the current size, capacity, hit rate and cumulative
// counters. The hit rate is hits / (hits + misses), or zero before the
// first read.
func (c *SearchCache) Stats() types.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var hitRate float64
	if total := c.stats.Hits + c.stats.Misses; total > 0 {
		hitRate = float64(c.stats.Hits) / float64(total)
	}

	return types.Stats{
		Size:        c.store.Len(),
		MaxSize:     c.store.MaxSize(),
		HitRate:     hitRate,
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Inserts:     c.stats.Inserts,
		Evictions:   c.stats.Evictions,
		Expirations: c.stats.Expirations,
	}
}

// Len returns the number of stored entries, including ones whose TTL has
// elapsed but that no read has dropped yet.
func (c *SearchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store.Len()
}

// Configure updates the capacity and/or the default TTL. A zero value
// leaves the respective setting unchanged; negative values are rejected
// before anything is applied.
//
// Shrinking below the current size drops the least-recently-used entries
// until the cache fits, counting each as an eviction; the most recently
// used entries survive. A new default TTL affects only subsequent
// inserts, existing deadlines are never recomputed.
func (c *SearchCache) Configure(maxSize int, defaultTTL time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if maxSize < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeMaxSize, maxSize)
	}
	if defaultTTL < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeTTL, defaultTTL)
	}

	changed := false

	if maxSize > 0 {
		dropped := c.store.SetMaxSize(maxSize)
		c.stats.Evictions += uint64(len(dropped))
		for range dropped {
			c.engine.Metrics.Eviction()
		}
		changed = true
	}

	if defaultTTL > 0 {
		c.defaultTTL = defaultTTL
		changed = true
	}

	if changed {
		c.persistLocked()
	}
	return nil
}

// Close flushes pending snapshot writes. The cache must not be used
// afterwards.
func (c *SearchCache) Close() {
	c.engine.Close()
}

// StoragePath returns the location of the backing snapshot file.
func (c *SearchCache) StoragePath() string {
	return c.file.Path()
}

// loadSnapshot restores state from a prior snapshot, if one exists.
// Any load failure leaves the cache empty; persistence problems must
// never break the caller.
func (c *SearchCache) loadSnapshot() {
	s, err := c.file.Load()
	if err != nil {
		return
	}

	c.stats = s.Stats

	// The entries object carries no order, so re-insert oldest first to
	// approximate the recency order from before the restart.
	recs := make([]types.EntryRecord, 0, len(s.Entries))
	for query, rec := range s.Entries {
		if rec.Query == "" {
			rec.Query = query
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt < recs[j].CreatedAt
	})

	now := c.now()
	for _, rec := range recs {
		ent := types.EntryFromRecord(rec, now)

		if c.engine.IsExpired(ent, now) {
			c.stats.Expirations++
			c.engine.Metrics.Expire()
			continue
		}

		if evicted, ok := c.store.Put(rec.Query, ent); ok && evicted != rec.Query {
			c.stats.Evictions++
			c.engine.Metrics.Eviction()
		}
	}
}

// persistLocked writes the full current state through the snapshot
// policy. A failed write is the policy's problem to report; the
// in-memory state stays authoritative and the next mutation retries.
func (c *SearchCache) persistLocked() {
	s := snapshot.New(c.now())
	s.Stats = c.stats

	for _, query := range c.store.Keys() {
		v, ok := c.store.Peek(query)
		if !ok {
			continue
		}
		s.Entries[query] = v.(*types.Entry).ToRecord(query)
	}

	c.engine.Persist(s)
}
