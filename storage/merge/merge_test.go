package merge

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navijation/writebuffer/storage/row"
	"github.com/navijation/writebuffer/util"
)

// sliceIterator yields pre-built records, optionally failing at a given
// position.
type sliceIterator struct {
	records []row.Record
	failAt  util.Optional[int]
	pos     int
}

var errBroken = errors.New("broken source")

func (me *sliceIterator) NextEntry() (out row.Record, exists bool, _ error) {
	if failAt, ok := me.failAt.Unpack(); ok && me.pos == failAt {
		return out, false, errBroken
	}
	if me.pos >= len(me.records) {
		return out, false, nil
	}
	out = me.records[me.pos]
	me.pos++
	return out, true, nil
}

func record(key, value string) row.Record {
	return row.Record{
		Key:   []byte(key),
		Value: row.NewValue([]byte(value)),
	}
}

func drain(t *testing.T, iter *Iterator) (keys, values []string) {
	t.Helper()

	for {
		rec, exists, err := iter.NextEntry()
		require.NoError(t, err)
		if !exists {
			return keys, values
		}
		payload, _ := rec.Value.Payload()
		keys = append(keys, string(rec.Key))
		values = append(values, string(payload))
	}
}

func TestIterator_GlobalOrder(t *testing.T) {
	a := &sliceIterator{records: []row.Record{
		record("b", "a.b"),
		record("d", "a.d"),
	}}
	b := &sliceIterator{records: []row.Record{
		record("a", "b.a"),
		record("c", "b.c"),
		record("e", "b.e"),
	}}

	iter, err := New([]row.Iterator{a, b})
	require.NoError(t, err)

	keys, values := drain(t, iter)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, keys)
	assert.Equal(t, []string{"b.a", "a.b", "b.c", "a.d", "b.e"}, values)
}

func TestIterator_EarliestSourceWinsTies(t *testing.T) {
	first := &sliceIterator{records: []row.Record{
		record("k", "first"),
		record("m", "first-only"),
	}}
	second := &sliceIterator{records: []row.Record{
		record("k", "second"),
		record("l", "second-only"),
	}}
	third := &sliceIterator{records: []row.Record{
		record("k", "third"),
	}}

	iter, err := New([]row.Iterator{first, second, third})
	require.NoError(t, err)

	keys, values := drain(t, iter)
	assert.Equal(t, []string{"k", "l", "m"}, keys)
	assert.Equal(t, []string{"first", "second-only", "first-only"}, values)
}

func TestIterator_NoSources(t *testing.T) {
	iter, err := New(nil)
	require.NoError(t, err)

	_, exists, err := iter.NextEntry()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIterator_PrimeFailure(t *testing.T) {
	healthy := &sliceIterator{records: []row.Record{record("a", "v")}}
	broken := &sliceIterator{failAt: util.Some(0)}

	_, err := New([]row.Iterator{healthy, broken})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
}

func TestIterator_AdvanceFailure(t *testing.T) {
	broken := &sliceIterator{
		records: []row.Record{record("a", "v"), record("b", "v")},
		failAt:  util.Some(1),
	}

	iter, err := New([]row.Iterator{broken})
	require.NoError(t, err)

	_, _, err = iter.NextEntry()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
}
