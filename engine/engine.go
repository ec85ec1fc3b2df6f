// Package engine is the behavior layer of the cache. It bundles the
// pluggable policies (expiration, persistence, metrics, the search
// executor) so the cache itself only deals with storage and ordering.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/krisalay/search-cache/expiration"
	"github.com/krisalay/search-cache/snapshot"
	"github.com/krisalay/search-cache/types"
)

// ErrNoExecutor is returned by Execute when no search executor was
// configured.
var ErrNoExecutor = errors.New("no search executor configured")

// Engine holds the cache's policies.
//
// It decides when entries are stale, how snapshots reach disk, and how
// the real search runs on a miss. It does not store data, track recency
// or do any locking; that is the cache's job.
type Engine struct {

	// Expiration decides when an entry is too old to serve.
	Expiration expiration.Strategy

	// Executor runs the real search on a cache miss. Optional; without
	// it the cache can still be filled through explicit puts.
	Executor types.Executor

	// Snapshot persists the cache state after mutations. Optional; when
	// nil the cache is memory-only.
	Snapshot snapshot.Policy

	// Metrics receives lifecycle events. Never nil.
	Metrics types.Metrics
}

// New creates an engine, defaulting the expiration strategy to
// expire-after-write and the metrics sink to a no-op so callers never
// need nil checks.
func New(exp expiration.Strategy, executor types.Executor, snap snapshot.Policy, metrics types.Metrics) *Engine {
	if exp == nil {
		exp = expiration.ExpireAfterWrite{}
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	return &Engine{
		Expiration: exp,
		Executor:   executor,
		Snapshot:   snap,
		Metrics:    metrics,
	}
}

// IsExpired reports whether the entry is stale at the given instant.
func (e *Engine) IsExpired(ent *types.Entry, now time.Time) bool {
	return e.Expiration.IsExpired(ent, now)
}

// Execute runs the real search for query.
func (e *Engine) Execute(ctx context.Context, query string) (any, error) {
	if e.Executor == nil {
		return nil, ErrNoExecutor
	}
	return e.Executor.Execute(ctx, query)
}

// Persist hands a snapshot to the save policy, if one is configured.
func (e *Engine) Persist(s *snapshot.Snapshot) {
	if e.Snapshot != nil {
		e.Snapshot.Save(s)
	}
}

// Close flushes the save policy.
func (e *Engine) Close() {
	if e.Snapshot != nil {
		e.Snapshot.Close()
	}
}
