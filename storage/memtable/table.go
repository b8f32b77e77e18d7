package memtable

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/navijation/writebuffer/storage/row"
	"github.com/navijation/writebuffer/storage/skiplist"
	"github.com/navijation/writebuffer/util"
)

// Table is the sorted key-value store behind every handle in this package.
// Point lookups, range cursors, and the size counter are safe to use from
// any goroutine while the single writer mutates the table through a
// WritableTable. The table itself exposes no mutators, so a frozen table
// cannot be written to by construction.
type Table struct {
	id      uuid.UUID
	entries *skiplist.Map[row.Entry]
	size    atomic.Int64
	durable *util.Latch
}

func newTable() *Table {
	return &Table{
		id:      uuid.New(),
		entries: skiplist.New[row.Entry](),
		durable: util.NewLatch(),
	}
}

// ID identifies the table across handle transitions, for engine bookkeeping
// and tooling.
func (me *Table) ID() uuid.UUID {
	return me.id
}

// Get returns the stored entry for key. A deleted key is present as a
// tombstone entry; only a never-written key is absent.
func (me *Table) Get(key []byte) (row.Entry, bool) {
	return me.entries.Load(key)
}

// Size is the approximate footprint of all current entries: key bytes plus
// payload bytes (zero for tombstones) plus attribute footprint. It is exact
// under the single-writer discipline.
func (me *Table) Size() int64 {
	return me.size.Load()
}

func (me *Table) IsEmpty() bool {
	return me.entries.IsEmpty()
}

// Len counts current entries, tombstones included.
func (me *Table) Len() int64 {
	return me.entries.Len()
}

// NotifyDurable marks the table's writes as durably persisted, waking every
// current and future AwaitDurable caller. Repeated calls are no-ops.
func (me *Table) NotifyDurable() {
	me.durable.Notify()
}

// AwaitDurable blocks until the table's writes are durable, returning
// immediately if they already are.
func (me *Table) AwaitDurable() {
	me.durable.Wait()
}

// DurableDone exposes the durability signal for select-based waits.
func (me *Table) DurableDone() <-chan struct{} {
	return me.durable.Done()
}

func (me *Table) IsDurable() bool {
	return me.durable.IsSet()
}

func (me *Table) put(key, value []byte, attrs row.Attributes) {
	me.subtractExisting(key)
	entry := row.Entry{
		Value: row.NewValue(value),
		Attrs: attrs,
	}
	me.size.Add(entry.Footprint(key))
	me.entries.Store(key, entry)
}

func (me *Table) delete(key []byte, attrs row.Attributes) {
	me.subtractExisting(key)
	entry := row.Entry{
		Value: row.Tombstone(),
		Attrs: attrs,
	}
	me.size.Add(entry.Footprint(key))
	me.entries.Store(key, entry)
}

// subtractExisting removes the replaced entry's exact footprint before the
// new one is added, which keeps repeated deletes of one key size-stable.
func (me *Table) subtractExisting(key []byte) {
	if old, exists := me.entries.Load(key); exists {
		me.size.Add(-old.Footprint(key))
	}
}
