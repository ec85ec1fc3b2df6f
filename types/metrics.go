package types

// Metrics is an optional sink for cache lifecycle events. The cache calls
// these methods as things happen; implementations decide what to do with
// them (export, log, aggregate). The cache keeps its own counters for
// Stats() regardless of the sink.
type Metrics interface {

	// Hit is called when a read returns a live (non-expired) entry.
	Hit()

	// Miss is called when a read finds no entry for the key.
	Miss()

	// Insert is called on every put, whether it added or replaced.
	Insert()

	// Eviction is called when inserting a new key displaced a different
	// key to satisfy the capacity bound.
	Eviction()

	// Expire is called when a read finds an entry past its deadline and
	// drops it, and for each stale entry discarded while loading a
	// snapshot.
	Expire()
}

// NoopMetrics ignores every event. It is the default sink, so the cache
// never has to nil-check its metrics.
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Insert()   {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Expire()   {}
