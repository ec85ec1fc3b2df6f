// Package eviction implements the capacity-bounded LRU ordering store.
//
// The store keeps an associative map from key to value plus a recency
// order over the keys. Position encodes recency: head is the most
// recently used key, tail the least. It knows nothing about TTLs or
// statistics; that is the cache layer's job.
package eviction

// lruNode represents one key inside the recency list.
type lruNode struct {
	key   string
	value any

	// prev points toward the head (more recently used).
	prev *lruNode

	// next points toward the tail (less recently used).
	next *lruNode
}

// LRU is a capacity-bounded store with least-recently-used eviction.
//
// It is built as a hash map from key to a doubly-linked-list node plus
// the list itself, so Get, Put and Remove are O(1).
//
// The LRU is not safe for concurrent use; the owning cache serializes
// access behind its own mutex.
type LRU struct {
	maxSize int

	// nodes maps cache keys to their list nodes for O(1) repositioning.
	nodes map[string]*lruNode

	// head is the most recently used key, tail the least.
	head *lruNode
	tail *lruNode
}

// NewLRU creates a store holding at most maxSize entries. A maxSize of
// zero is a valid degenerate configuration: every insert is immediately
// dropped again. Negative values are clamped to zero.
func NewLRU(maxSize int) *LRU {
	if maxSize < 0 {
		maxSize = 0
	}
	return &LRU{
		maxSize: maxSize,
		nodes:   make(map[string]*lruNode),
	}
}

// Get returns the value stored under key and marks the key as most
// recently used. The move is part of the read: by the time Get returns,
// the key is at the head of the recency order.
func (l *LRU) Get(key string) (any, bool) {
	n, ok := l.nodes[key]
	if !ok {
		return nil, false
	}
	l.moveToFront(n)
	return n.value, true
}

// Put inserts or replaces the value under key and marks it most recently
// used. If inserting a new key pushes the store over capacity, exactly
// one key is evicted: the least recently used one. The evicted key is
// returned so the caller can account for it; with maxSize zero the
// evicted key is the one just inserted.
//
// Replacing an existing key refreshes its recency but never evicts.
func (l *LRU) Put(key string, value any) (evicted string, ok bool) {
	if n, present := l.nodes[key]; present {
		n.value = value
		l.moveToFront(n)
		return "", false
	}

	n := &lruNode{key: key, value: value}
	l.nodes[key] = n
	l.addFront(n)

	if len(l.nodes) <= l.maxSize {
		return "", false
	}
	return l.removeOldest()
}

// Peek returns the value stored under key without touching the recency
// order. Used for enumeration during persistence.
func (l *LRU) Peek(key string) (any, bool) {
	n, ok := l.nodes[key]
	if !ok {
		return nil, false
	}
	return n.value, true
}

// Remove deletes key from the store. It reports whether anything was
// removed; the recency order of the remaining keys is untouched.
func (l *LRU) Remove(key string) bool {
	n, ok := l.nodes[key]
	if !ok {
		return false
	}
	l.unlink(n)
	delete(l.nodes, key)
	return true
}

// Clear empties the store. Cleared keys are not reported as evictions.
func (l *LRU) Clear() {
	l.nodes = make(map[string]*lruNode)
	l.head = nil
	l.tail = nil
}

// Keys returns all keys ordered least- to most-recently-used. The slice
// reflects the recency order at call time.
func (l *LRU) Keys() []string {
	keys := make([]string, 0, len(l.nodes))
	for n := l.tail; n != nil; n = n.prev {
		keys = append(keys, n.key)
	}
	return keys
}

// Len returns the number of stored entries.
func (l *LRU) Len() int {
	return len(l.nodes)
}

// MaxSize returns the current capacity bound.
func (l *LRU) MaxSize() int {
	return l.maxSize
}

// SetMaxSize changes the capacity bound. When the new bound is smaller
// than the current size, the least-recently-used keys are dropped until
// the store fits; the most-recently-used entries always survive. The
// dropped keys are returned in eviction order.
func (l *LRU) SetMaxSize(maxSize int) []string {
	if maxSize < 0 {
		maxSize = 0
	}
	l.maxSize = maxSize

	var dropped []string
	for len(l.nodes) > l.maxSize {
		key, ok := l.removeOldest()
		if !ok {
			break
		}
		dropped = append(dropped, key)
	}
	return dropped
}

// removeOldest evicts the tail, the least recently used key.
func (l *LRU) removeOldest() (string, bool) {
	if l.tail == nil {
		return "", false
	}
	key := l.tail.key
	l.unlink(l.tail)
	delete(l.nodes, key)
	return key, true
}

// addFront links n in as the most recently used node.
func (l *LRU) addFront(n *lruNode) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

// unlink removes n from the list, patching head and tail as needed.
func (l *LRU) unlink(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}

// moveToFront marks n as most recently used.
func (l *LRU) moveToFront(n *lruNode) {
	if l.head == n {
		return
	}
	l.unlink(n)
	l.addFront(n)
}
