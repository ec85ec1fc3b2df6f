package expiration

import (
	"time"

	"github.com/krisalay/search-cache/types"
)

// ExpireAfterWrite expires an entry once the deadline fixed at write time
// has passed. The deadline is set exactly once, when the entry is
// created; reads never slide it forward.
type ExpireAfterWrite struct{}

// IsExpired reports whether now is strictly past the entry's deadline.
// An entry written with a zero TTL has ExpiresAt == CreatedAt and is
// expired on the very next read.
func (ExpireAfterWrite) IsExpired(ent *types.Entry, now time.Time) bool {
	return ent.IsExpired(now)
}
