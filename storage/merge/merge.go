package merge

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/navijation/writebuffer/storage/row"
	"github.com/navijation/writebuffer/util/heap"
)

// Iterator merges several already-sorted row iterators into one globally
// ordered, de-duplicated stream. Sources must be ordered newest first: when
// multiple sources hold the same key, the earliest source's record wins,
// tombstones included, and the later duplicates are consumed and dropped.
type Iterator struct {
	heads heap.Heap[sourceHead]
}

type sourceHead struct {
	current row.Record
	ordinal int
	source  row.Iterator
}

// New primes every source. A source failing to produce its first record
// aborts construction.
func New(sources []row.Iterator) (*Iterator, error) {
	out := &Iterator{
		heads: heap.NewHeap(compareHeads),
	}

	for ordinal, source := range sources {
		record, exists, err := source.NextEntry()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to prime merge source %d", ordinal)
		}
		if !exists {
			continue
		}
		out.heads.Push(sourceHead{
			current: record,
			ordinal: ordinal,
			source:  source,
		})
	}

	return out, nil
}

func compareHeads(a, b sourceHead) int {
	if cmp := bytes.Compare(a.current.Key, b.current.Key); cmp != 0 {
		return cmp
	}
	return a.ordinal - b.ordinal
}

// NextEntry emits the smallest pending key across all sources.
func (me *Iterator) NextEntry() (out row.Record, exists bool, _ error) {
	if me.heads.Size() == 0 {
		return out, false, nil
	}

	out = me.heads.Peek().current
	if err := me.advanceRoot(); err != nil {
		return out, false, err
	}

	// shadowed duplicates from older sources
	for me.heads.Size() > 0 && bytes.Equal(me.heads.Peek().current.Key, out.Key) {
		if err := me.advanceRoot(); err != nil {
			return out, false, err
		}
	}

	return out, true, nil
}

func (me *Iterator) advanceRoot() error {
	head := me.heads.Peek()

	record, exists, err := head.source.NextEntry()
	if err != nil {
		return errors.Wrapf(err, "failed to advance merge source %d", head.ordinal)
	}
	if !exists {
		me.heads.Pop()
		return nil
	}

	head.current = record
	me.heads.Replace(head)
	return nil
}
