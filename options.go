package cache

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/krisalay/search-cache/expiration"
	"github.com/krisalay/search-cache/snapshot"
	"github.com/krisalay/search-cache/types"
)

// Configuration errors. Both are detected before any state is touched.
var (
	// ErrNegativeMaxSize is returned for a negative capacity.
	ErrNegativeMaxSize = errors.New("max size must not be negative")

	// ErrNegativeTTL is returned for a negative default TTL.
	ErrNegativeTTL = errors.New("default ttl must not be negative")
)

const (
	// DefaultMaxSize is the capacity used when none is configured.
	DefaultMaxSize = 100

	// DefaultTTL is the entry lifetime used when none is configured.
	DefaultTTL = time.Hour
)

type config struct {
	maxSize     int
	defaultTTL  time.Duration
	metrics     types.Metrics
	executor    types.Executor
	expiration  expiration.Strategy
	policy      snapshot.Policy
	asyncBuffer int
	logger      zerolog.Logger
	now         func() time.Time
}

func defaultConfig() config {
	return config{
		maxSize:    DefaultMaxSize,
		defaultTTL: DefaultTTL,
		logger:     zerolog.Nop(),
		now:        time.Now,
	}
}

// Option customizes a SearchCache at construction time.
type Option func(*config)

// WithMaxSize sets the capacity bound. Zero is a valid degenerate
// configuration where every insert is immediately dropped again.
func WithMaxSize(n int) Option {
	return func(c *config) { c.maxSize = n }
}

// WithDefaultTTL sets the lifetime applied to entries inserted without an
// explicit TTL.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *config) { c.defaultTTL = ttl }
}

// WithMetrics plugs in a sink for cache lifecycle events. The internal
// counters behind Stats keep running either way.
func WithMetrics(m types.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithExecutor wires in the search engine invoked by GetOrExecute on a
// miss. Without it GetOrExecute fails and the cache is fill-by-Put only.
func WithExecutor(e types.Executor) Option {
	return func(c *config) { c.executor = e }
}

// WithExpiration replaces the expire-after-write strategy.
func WithExpiration(s expiration.Strategy) Option {
	return func(c *config) { c.expiration = s }
}

// WithSnapshotPolicy replaces the default synchronous save policy.
func WithSnapshotPolicy(p snapshot.Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithAsyncPersistence moves snapshot writes to a background worker with
// the given queue depth. Close flushes whatever is still queued.
func WithAsyncPersistence(buffer int) Option {
	return func(c *config) { c.asyncBuffer = buffer }
}

// WithLogger sets the logger used to report snapshot save failures.
// Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithNowFunc overrides the clock. Tests use this to step time instead
// of sleeping.
func WithNowFunc(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}
