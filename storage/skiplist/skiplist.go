package skiplist

import (
	"bytes"
	"sync/atomic"
)

const maxHeight = 16

// Map is a sorted map from byte-slice keys to values built for one logical
// writer and any number of concurrent readers. Readers walk atomic next
// pointers and never block. The writer fully builds a node before linking
// it in, bottom level first, so a reader sees an entry completely or not at
// all. Values are replaced by swapping a pointer, never mutated in place.
type Map[V any] struct {
	head   node[V]
	height atomic.Int32
	length atomic.Int64

	// xorshift state; touched only by the single writer
	rng uint64
}

type node[V any] struct {
	key  []byte
	val  atomic.Pointer[V]
	next []atomic.Pointer[node[V]]
}

func New[V any]() *Map[V] {
	out := &Map[V]{rng: 1}
	out.head.next = make([]atomic.Pointer[node[V]], maxHeight)
	out.height.Store(1)
	return out
}

func (me *Map[V]) Len() int64 {
	return me.length.Load()
}

func (me *Map[V]) IsEmpty() bool {
	return me.length.Load() == 0
}

// Load returns the value stored under key, if any.
func (me *Map[V]) Load(key []byte) (out V, exists bool) {
	found := me.findGreaterOrEqual(key)
	if found == nil || !bytes.Equal(found.key, key) {
		return out, false
	}
	return *found.val.Load(), true
}

// Store inserts or replaces the value under key. Only the single logical
// writer may call it; concurrent readers are safe throughout.
func (me *Map[V]) Store(key []byte, value V) {
	var update [maxHeight]*node[V]

	prev := &me.head
	for level := maxHeight - 1; level >= 0; level-- {
		for {
			next := prev.next[level].Load()
			if next == nil || bytes.Compare(next.key, key) >= 0 {
				break
			}
			prev = next
		}
		update[level] = prev
	}

	if target := update[0].next[0].Load(); target != nil && bytes.Equal(target.key, key) {
		target.val.Store(&value)
		return
	}

	height := me.randomHeight()
	if int32(height) > me.height.Load() {
		me.height.Store(int32(height))
	}

	fresh := &node[V]{
		key:  key,
		next: make([]atomic.Pointer[node[V]], height),
	}
	fresh.val.Store(&value)
	for level := 0; level < height; level++ {
		fresh.next[level].Store(update[level].next[level].Load())
	}

	// Publishing the bottom level makes the node reachable; higher levels
	// only shorten searches and may trail behind.
	for level := 0; level < height; level++ {
		update[level].next[level].Store(fresh)
	}

	me.length.Add(1)
}

// findGreaterOrEqual returns the first node whose key is >= key, or nil.
func (me *Map[V]) findGreaterOrEqual(key []byte) *node[V] {
	prev := &me.head
	for level := int(me.height.Load()) - 1; level >= 0; level-- {
		for {
			next := prev.next[level].Load()
			if next == nil || bytes.Compare(next.key, key) >= 0 {
				break
			}
			prev = next
		}
	}
	return prev.next[0].Load()
}

func (me *Map[V]) randomHeight() int {
	height := 1
	for height < maxHeight && me.nextRand()&0x3 == 0 {
		height++
	}
	return height
}

func (me *Map[V]) nextRand() uint64 {
	me.rng ^= me.rng << 13
	me.rng ^= me.rng >> 7
	me.rng ^= me.rng << 17
	return me.rng
}
