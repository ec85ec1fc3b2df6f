// Package expiration decides when cache entries stop being valid.
package expiration

import (
	"time"

	"github.com/krisalay/search-cache/types"
)

// Strategy is the interface the cache consults on every read to decide
// whether an entry is still usable. Expiry is evaluated lazily at read
// time; nothing in this package runs in the background.
type Strategy interface {
	IsExpired(ent *types.Entry, now time.Time) bool
}
