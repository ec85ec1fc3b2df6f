package types

// Stats is the operational summary reported by the cache. Counters are
// cumulative for the lifetime of the cache instance, including counts
// restored from a prior snapshot.
type Stats struct {
	Size        int     `json:"size"`
	MaxSize     int     `json:"max_size"`
	HitRate     float64 `json:"hit_rate"`
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	Inserts     uint64  `json:"inserts"`
	Evictions   uint64  `json:"evictions"`
	Expirations uint64  `json:"expirations"`
}
