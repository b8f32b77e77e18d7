package memtable

import "github.com/navijation/writebuffer/util"

// Bound is one edge of a key range.
type Bound struct {
	Key       []byte
	Inclusive bool
}

// KeyRange bounds a scan. Either edge may be absent.
type KeyRange struct {
	Start util.Optional[Bound]
	End   util.Optional[Bound]
}

func FullRange() KeyRange {
	return KeyRange{}
}

// RangeFrom scans from key (inclusive) to the end of the table.
func RangeFrom(key []byte) KeyRange {
	return KeyRange{
		Start: util.Some(Bound{Key: key, Inclusive: true}),
	}
}

// RangeBetween scans from start (inclusive) up to end (exclusive).
func RangeBetween(start, end []byte) KeyRange {
	return KeyRange{
		Start: util.Some(Bound{Key: start, Inclusive: true}),
		End:   util.Some(Bound{Key: end}),
	}
}
