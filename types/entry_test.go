package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	ent := NewEntry("payload", 12.5, 30*time.Second, now)

	assert.Equal(t, "payload", ent.Payload)
	assert.Equal(t, 12.5, ent.ExecutionTimeMs)
	assert.Equal(t, now, ent.CreatedAt)
	assert.Equal(t, now.Add(30*time.Second), ent.ExpiresAt)
	assert.Equal(t, 0, ent.HitCount)
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ent := NewEntry(nil, 0, time.Minute, now)

	assert.False(t, ent.IsExpired(now))
	// Exactly at the deadline the entry is still valid.
	assert.False(t, ent.IsExpired(now.Add(time.Minute)))
	assert.True(t, ent.IsExpired(now.Add(time.Minute+time.Nanosecond)))
}

func TestZeroTTLExpiresOnNextRead(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ent := NewEntry(nil, 0, 0, now)

	assert.False(t, ent.IsExpired(now))
	assert.True(t, ent.IsExpired(now.Add(time.Nanosecond)))
}

func TestNegativeTTLIsAlreadyExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ent := NewEntry(nil, 0, -time.Second, now)

	assert.True(t, ent.IsExpired(now))
}

func TestMarkHit(t *testing.T) {
	ent := NewEntry(nil, 0, time.Minute, time.Now())

	ent.MarkHit()
	ent.MarkHit()
	ent.MarkHit()

	assert.Equal(t, 3, ent.HitCount)
}

func TestRecordRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ent := NewEntry(map[string]any{"x": 1.0}, 5.0, time.Hour, now)
	ent.MarkHit()

	rec := ent.ToRecord("q1")
	require.Equal(t, "q1", rec.Query)
	require.Equal(t, 5.0, rec.ExecutionTimeMs)
	require.Equal(t, 1, rec.HitCount)

	back := EntryFromRecord(rec, now.Add(time.Minute))

	assert.Equal(t, ent.Payload, back.Payload)
	assert.Equal(t, ent.ExecutionTimeMs, back.ExecutionTimeMs)
	assert.Equal(t, 1, back.HitCount)
	assert.True(t, ent.CreatedAt.Equal(back.CreatedAt))
	assert.True(t, ent.ExpiresAt.Equal(back.ExpiresAt))
}

func TestRecordDefaults(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// A partially written or legacy record carries only the payload.
	ent := EntryFromRecord(EntryRecord{Query: "q", Results: "r"}, now)

	assert.Equal(t, "r", ent.Payload)
	assert.Equal(t, 0, ent.HitCount)
	assert.True(t, ent.CreatedAt.Equal(now))
	assert.True(t, ent.ExpiresAt.Equal(now.Add(time.Hour)))
	assert.False(t, ent.IsExpired(now.Add(59*time.Minute)))
	assert.True(t, ent.IsExpired(now.Add(61*time.Minute)))
}
