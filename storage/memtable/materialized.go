package memtable

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/navijation/writebuffer/storage/merge"
	"github.com/navijation/writebuffer/storage/row"
)

// MaterializedIterator is a consistent merged view across several tables,
// fully buffered at construction time. Draining the merge eagerly trades
// memory for simplicity, which is acceptable for bounded frozen tables and
// deliberately unsuitable for unbounded base-level scans.
type MaterializedIterator struct {
	records []row.Record
}

var _ row.Iterator = (*MaterializedIterator)(nil)

// MaterializeRange merges a range scan over the given tables, ordered
// newest first, into a buffered iterator. The first source failure aborts
// the whole materialization; nothing partial is returned.
func MaterializeRange(tables []*Table, rng KeyRange) (*MaterializedIterator, error) {
	sources := make([]row.Iterator, 0, len(tables))
	for _, table := range tables {
		sources = append(sources, table.Range(rng))
	}

	merged, err := merge.New(sources)
	if err != nil {
		return nil, errors.Wrap(err, "failed to materialize range")
	}

	var records []row.Record
	for {
		record, exists, err := merged.NextEntry()
		if err != nil {
			return nil, errors.Wrap(err, "failed to materialize range")
		}
		if !exists {
			break
		}
		records = append(records, record)
	}

	return &MaterializedIterator{records: records}, nil
}

// NextEntry pops the front of the buffer. The error is always nil after a
// successful materialization; it exists to satisfy row.Iterator.
func (me *MaterializedIterator) NextEntry() (out row.Record, exists bool, _ error) {
	if len(me.records) == 0 {
		return out, false, nil
	}

	out = me.records[0]
	me.records = me.records[1:]
	return out, true, nil
}

// Seek drops buffered records with keys before key. Seeking backwards is a
// no-op; the iterator never revisits a popped record.
func (me *MaterializedIterator) Seek(key []byte) {
	for len(me.records) > 0 && bytes.Compare(me.records[0].Key, key) < 0 {
		me.records = me.records[1:]
	}
}

// Len reports how many records remain buffered.
func (me *MaterializedIterator) Len() int {
	return len(me.records)
}
