package cache_test

import (
	"fmt"
	"testing"

	cache "github.com/krisalay/search-cache"
	"github.com/krisalay/search-cache/snapshot"
)

// nopPolicy keeps disk out of the hot loop so the benchmarks measure the
// cache itself.
type nopPolicy struct{}

func (nopPolicy) Save(*snapshot.Snapshot) {}
func (nopPolicy) Close()                  {}

func newBenchCache(b *testing.B, maxSize int) *cache.SearchCache {
	b.Helper()

	c, err := cache.New(b.TempDir(),
		cache.WithMaxSize(maxSize),
		cache.WithSnapshotPolicy(nopPolicy{}),
	)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(c.Close)

	return c
}

func BenchmarkGetHit(b *testing.B) {
	c := newBenchCache(b, 1024)
	for i := 0; i < 1024; i++ {
		c.Put(fmt.Sprintf("query-%d", i), i, 1.0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(fmt.Sprintf("query-%d", i%1024))
	}
}

func BenchmarkGetMiss(b *testing.B) {
	c := newBenchCache(b, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("absent")
	}
}

func BenchmarkPut(b *testing.B) {
	c := newBenchCache(b, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(fmt.Sprintf("query-%d", i%4096), i, 1.0)
	}
}

func BenchmarkPutWithDiskSnapshot(b *testing.B) {
	c, err := cache.New(b.TempDir(), cache.WithMaxSize(1024))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(c.Close)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(fmt.Sprintf("query-%d", i%64), i, 1.0)
	}
}
