package skiplist

// Cursor iterates a Map in ascending key order. It is positioned before the
// first entry until Next or Seek is called. A cursor holds a position by
// node reference, so entries inserted behind it stay invisible and entries
// it already yielded are never yielded again.
type Cursor[V any] struct {
	parent  *Map[V]
	current *node[V]
	primed  bool
}

func (me *Map[V]) NewCursor() Cursor[V] {
	return Cursor[V]{
		parent:  me,
		current: &me.head,
	}
}

// Next advances to the next entry, returning false once exhausted.
func (me *Cursor[V]) Next() bool {
	if me.current == nil {
		return false
	}
	me.current = me.current.next[0].Load()
	me.primed = me.current != nil
	return me.primed
}

// Seek positions the cursor at the first entry whose key is >= key,
// returning false if no such entry exists.
func (me *Cursor[V]) Seek(key []byte) bool {
	me.current = me.parent.findGreaterOrEqual(key)
	me.primed = me.current != nil
	return me.primed
}

// Valid reports whether the cursor points at an entry.
func (me *Cursor[V]) Valid() bool {
	return me.primed && me.current != nil
}

func (me *Cursor[V]) Key() []byte {
	if !me.Valid() {
		return nil
	}
	return me.current.key
}

func (me *Cursor[V]) Value() (out V) {
	if !me.Valid() {
		return out
	}
	return *me.current.val.Load()
}
