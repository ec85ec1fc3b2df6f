package eviction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	l := NewLRU(4)

	evicted, ok := l.Put("a", 1)
	require.False(t, ok)
	require.Empty(t, evicted)

	v, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = l.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestCapacityInvariant(t *testing.T) {
	l := NewLRU(8)

	for i := 0; i < 100; i++ {
		l.Put(fmt.Sprintf("key-%d", i), i)
		require.LessOrEqual(t, l.Len(), 8)
	}
	assert.Equal(t, 8, l.Len())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	l := NewLRU(2)

	l.Put("a", 1)
	l.Put("b", 2)

	// Reading a refreshes its recency, so the next overflow drops b.
	_, ok := l.Get("a")
	require.True(t, ok)

	evicted, ok := l.Put("c", 3)
	require.True(t, ok)
	assert.Equal(t, "b", evicted)

	_, ok = l.Get("b")
	assert.False(t, ok)
	_, ok = l.Get("a")
	assert.True(t, ok)
	_, ok = l.Get("c")
	assert.True(t, ok)
}

func TestUpdateRefreshesValueAndRecency(t *testing.T) {
	l := NewLRU(2)

	l.Put("a", 1)
	l.Put("b", 2)

	// Updating a is not an insert: nothing may be evicted.
	evicted, ok := l.Put("a", 10)
	require.False(t, ok)
	require.Empty(t, evicted)

	v, _ := l.Get("a")
	assert.Equal(t, 10, v)

	// a was refreshed by the update, so b is now the oldest.
	evicted, ok = l.Put("c", 3)
	require.True(t, ok)
	assert.Equal(t, "b", evicted)
}

func TestReinsertMostRecentKeyIsOrderingNoop(t *testing.T) {
	l := NewLRU(3)

	l.Put("a", 1)
	l.Put("b", 2)
	l.Put("b", 20)

	assert.Equal(t, []string{"a", "b"}, l.Keys())
}

func TestKeysLeastRecentFirst(t *testing.T) {
	l := NewLRU(4)

	l.Put("a", 1)
	l.Put("b", 2)
	l.Put("c", 3)
	require.Equal(t, []string{"a", "b", "c"}, l.Keys())

	l.Get("a")
	assert.Equal(t, []string{"b", "c", "a"}, l.Keys())
}

func TestPeekDoesNotTouchOrder(t *testing.T) {
	l := NewLRU(2)

	l.Put("a", 1)
	l.Put("b", 2)

	v, ok := l.Peek("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// a stays least recently used despite the peek.
	evicted, ok := l.Put("c", 3)
	require.True(t, ok)
	assert.Equal(t, "a", evicted)

	_, ok = l.Peek("missing")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	l := NewLRU(4)

	l.Put("a", 1)
	l.Put("b", 2)
	l.Put("c", 3)

	require.True(t, l.Remove("b"))
	require.False(t, l.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, l.Keys())
	assert.Equal(t, 2, l.Len())
}

func TestClear(t *testing.T) {
	l := NewLRU(4)

	l.Put("a", 1)
	l.Put("b", 2)
	l.Clear()

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Keys())

	// The cleared store keeps working.
	l.Put("c", 3)
	assert.Equal(t, 1, l.Len())
}

func TestZeroCapacity(t *testing.T) {
	l := NewLRU(0)

	// The inserted key itself is dropped immediately.
	evicted, ok := l.Put("a", 1)
	require.True(t, ok)
	assert.Equal(t, "a", evicted)
	assert.Equal(t, 0, l.Len())

	_, ok = l.Get("a")
	assert.False(t, ok)
}

func TestCapacityOne(t *testing.T) {
	l := NewLRU(1)

	l.Put("a", 1)
	evicted, ok := l.Put("b", 2)
	require.True(t, ok)
	assert.Equal(t, "a", evicted)

	v, ok := l.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, l.Len())
}

func TestNegativeCapacityClampedToZero(t *testing.T) {
	l := NewLRU(-5)
	assert.Equal(t, 0, l.MaxSize())

	_, ok := l.Put("a", 1)
	assert.True(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestSetMaxSizeShrinkKeepsMostRecent(t *testing.T) {
	l := NewLRU(4)

	l.Put("a", 1)
	l.Put("b", 2)
	l.Put("c", 3)
	l.Put("d", 4)

	dropped := l.SetMaxSize(2)
	assert.Equal(t, []string{"a", "b"}, dropped)
	assert.Equal(t, []string{"c", "d"}, l.Keys())
	assert.Equal(t, 2, l.MaxSize())
}

func TestSetMaxSizeGrowDropsNothing(t *testing.T) {
	l := NewLRU(2)

	l.Put("a", 1)
	l.Put("b", 2)

	dropped := l.SetMaxSize(10)
	assert.Empty(t, dropped)
	assert.Equal(t, 2, l.Len())
}
