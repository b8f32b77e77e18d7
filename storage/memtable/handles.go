package memtable

import (
	"github.com/navijation/writebuffer/storage/row"
	"github.com/navijation/writebuffer/util"
)

// WritableTable is the active write buffer: the exclusive owner of a fresh
// table and the only path to mutation. Freezing consumes the handle, after
// which the table is shared, read-only data.
type WritableTable struct {
	table *Table
}

func NewWritableTable() *WritableTable {
	return &WritableTable{
		table: newTable(),
	}
}

// Put inserts or replaces the value stored under key.
func (me *WritableTable) Put(key, value []byte, attrs row.Attributes) {
	me.table.put(key, value, attrs)
}

// Delete records a tombstone under key, replacing any prior entry.
func (me *WritableTable) Delete(key []byte, attrs row.Attributes) {
	me.table.delete(key, attrs)
}

func (me *WritableTable) Size() int64 {
	return me.table.Size()
}

func (me *WritableTable) IsEmpty() bool {
	return me.table.IsEmpty()
}

// Table borrows the underlying table for reads. The writable handle remains
// the sole owner until frozen.
func (me *WritableTable) Table() *Table {
	return me.table
}

// FrozenTable is a memtable sealed for flushing: shared read-only access to
// the table, the id of the last WAL segment whose writes it subsumes, and a
// flush completion signal separate from the table's durability signal.
type FrozenTable struct {
	table     *Table
	lastWALID uint64
	flushed   *util.Latch
}

// FreezeTable consumes the writable handle. Any further mutation through it
// is a lifecycle bug and will panic on the nil table.
func FreezeTable(writable *WritableTable, lastWALID uint64) *FrozenTable {
	table := writable.table
	writable.table = nil

	return &FrozenTable{
		table:     table,
		lastWALID: lastWALID,
		flushed:   util.NewLatch(),
	}
}

func (me *FrozenTable) Table() *Table {
	return me.table
}

// LastWALID reports the newest WAL segment this memtable subsumes; once the
// memtable is flushed, segments with ids at or below it are obsolete.
func (me *FrozenTable) LastWALID() uint64 {
	return me.lastWALID
}

// NotifyFlushToL0 marks the memtable as flushed to the base storage level.
// Repeated calls are no-ops.
func (me *FrozenTable) NotifyFlushToL0() {
	me.flushed.Notify()
}

// AwaitFlushToL0 blocks until the memtable has been flushed, returning
// immediately if it already has.
func (me *FrozenTable) AwaitFlushToL0() {
	me.flushed.Wait()
}

// FlushedDone exposes the flush signal for select-based waits.
func (me *FrozenTable) FlushedDone() <-chan struct{} {
	return me.flushed.Done()
}

// FrozenWAL is a write buffer sealed for WAL persistence, tagged with its
// monotonically increasing segment id.
type FrozenWAL struct {
	id    uint64
	table *Table
}

// FreezeWAL consumes the writable handle, as FreezeTable does.
func FreezeWAL(writable *WritableTable, id uint64) *FrozenWAL {
	table := writable.table
	writable.table = nil

	return &FrozenWAL{
		id:    id,
		table: table,
	}
}

func (me *FrozenWAL) ID() uint64 {
	return me.id
}

func (me *FrozenWAL) Table() *Table {
	return me.table
}
