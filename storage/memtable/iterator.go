package memtable

import (
	"bytes"

	"github.com/navijation/writebuffer/storage/row"
	"github.com/navijation/writebuffer/storage/skiplist"
	"github.com/navijation/writebuffer/util"
)

// Iterator is a single-pass cursor over one table's key range, ascending.
// It materializes each stored entry into a row.Record with sequence number
// zero. Keys it has yielded are never yielded again; construct a new
// iterator to rescan.
type Iterator struct {
	cursor  skiplist.Cursor[row.Entry]
	start   util.Optional[Bound]
	end     util.Optional[Bound]
	started bool
	done    bool
}

var _ row.Iterator = (*Iterator)(nil)

// Iter scans the whole table.
func (me *Table) Iter() *Iterator {
	return me.Range(FullRange())
}

// Range scans the given key range. The start bound is resolved by skip list
// navigation, so an absent start key resumes at the next greater key.
func (me *Table) Range(rng KeyRange) *Iterator {
	return &Iterator{
		cursor: me.entries.NewCursor(),
		start:  rng.Start,
		end:    rng.End,
	}
}

// NextEntry yields the next record in key order, tombstones included.
// The error is always nil; it exists to satisfy row.Iterator.
func (me *Iterator) NextEntry() (out row.Record, exists bool, _ error) {
	if me.done {
		return out, false, nil
	}

	if !me.advance() {
		me.done = true
		return out, false, nil
	}

	if end, hasEnd := me.end.Unpack(); hasEnd {
		cmp := bytes.Compare(me.cursor.Key(), end.Key)
		if cmp > 0 || (cmp == 0 && !end.Inclusive) {
			me.done = true
			return out, false, nil
		}
	}

	entry := me.cursor.Value()
	return entry.ToRecord(me.cursor.Key()), true, nil
}

// Next is like NextEntry but skips tombstone records.
func (me *Iterator) Next() (out row.Record, exists bool, _ error) {
	for {
		record, exists, err := me.NextEntry()
		if err != nil || !exists {
			return record, exists, err
		}
		if !record.Value.IsTombstone() {
			return record, true, nil
		}
	}
}

func (me *Iterator) advance() bool {
	if me.started {
		return me.cursor.Next()
	}
	me.started = true

	start, hasStart := me.start.Unpack()
	if !hasStart {
		return me.cursor.Next()
	}
	if !me.cursor.Seek(start.Key) {
		return false
	}
	if !start.Inclusive && bytes.Equal(me.cursor.Key(), start.Key) {
		return me.cursor.Next()
	}
	return true
}
