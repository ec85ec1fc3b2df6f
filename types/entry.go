package types

import "time"

// Entry binds one cached search result to its temporal validity window.
// The payload is owned by the entry once inserted; callers must treat it
// as read-only. Timestamps are fixed at construction and never recomputed.
type Entry struct {
	// Payload is the opaque result value produced by the search executor.
	// It must be JSON-serializable; the cache never interprets its shape.
	Payload any

	// ExecutionTimeMs records how long the uncached search took.
	// Informational only.
	ExecutionTimeMs float64

	// CreatedAt is when the entry was constructed.
	CreatedAt time.Time

	// ExpiresAt is CreatedAt plus the TTL the entry was inserted with.
	ExpiresAt time.Time

	// HitCount counts successful cache reads of this entry.
	HitCount int
}

// NewEntry creates an entry whose validity window starts at now and ends
// at now + ttl. A zero or negative ttl yields an entry that is already
// expired on the next read.
func NewEntry(payload any, executionTimeMs float64, ttl time.Duration, now time.Time) *Entry {
	return &Entry{
		Payload:         payload,
		ExecutionTimeMs: executionTimeMs,
		CreatedAt:       now,
		ExpiresAt:       now.Add(ttl),
	}
}

// IsExpired reports whether the entry's deadline has passed at the given
// instant. Expiry is evaluated lazily on read; there is no sweeper.
func (e *Entry) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// MarkHit increments the hit counter. Called exactly once per successful
// cache read.
func (e *Entry) MarkHit() {
	e.HitCount++
}

// EntryRecord is the persisted form of an entry inside the snapshot file.
// All timestamps are unix seconds as floats.
type EntryRecord struct {
	Query           string  `json:"query"`
	Results         any     `json:"results"`
	ExecutionTimeMs float64 `json:"execution_time_ms"`
	CreatedAt       float64 `json:"created_at,omitempty"`
	ExpiresAt       float64 `json:"expires_at,omitempty"`
	HitCount        int     `json:"hit_count,omitempty"`
}

// ToRecord converts the entry to its persisted form under the given key.
func (e *Entry) ToRecord(query string) EntryRecord {
	return EntryRecord{
		Query:           query,
		Results:         e.Payload,
		ExecutionTimeMs: e.ExecutionTimeMs,
		CreatedAt:       unixSeconds(e.CreatedAt),
		ExpiresAt:       unixSeconds(e.ExpiresAt),
		HitCount:        e.HitCount,
	}
}

// EntryFromRecord rebuilds an entry from its persisted form.
//
// Partially written or legacy records degrade gracefully instead of
// failing the load: a missing created_at defaults to now, a missing
// expires_at to now plus one hour, and a missing hit_count to zero.
func EntryFromRecord(rec EntryRecord, now time.Time) *Entry {
	createdAt := now
	if rec.CreatedAt != 0 {
		createdAt = timeFromUnixSeconds(rec.CreatedAt)
	}

	expiresAt := now.Add(time.Hour)
	if rec.ExpiresAt != 0 {
		expiresAt = timeFromUnixSeconds(rec.ExpiresAt)
	}

	return &Entry{
		Payload:         rec.Results,
		ExecutionTimeMs: rec.ExecutionTimeMs,
		CreatedAt:       createdAt,
		ExpiresAt:       expiresAt,
		HitCount:        rec.HitCount,
	}
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func timeFromUnixSeconds(sec float64) time.Time {
	return time.Unix(0, int64(sec*float64(time.Second)))
}
