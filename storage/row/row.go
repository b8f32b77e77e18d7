package row

import (
	"github.com/navijation/writebuffer/util"
)

// Attributes are per-row metadata attached at write time. They are immutable
// once stored.
type Attributes struct {
	CreateTS util.Optional[int64]
	ExpireTS util.Optional[int64]
}

// Footprint is the byte cost attributes contribute to a table's size budget.
// Only the creation timestamp is charged; the expiration timestamp is free.
// Rotation thresholds in running engines depend on this exact accounting,
// so both halves of the asymmetry must stay as they are.
func (me *Attributes) Footprint() int64 {
	if me.CreateTS.IsSome() {
		return 8
	}
	return 0
}

// Value holds either a payload or a tombstone recording that the key was
// deleted. A tombstone has no payload but still carries attributes.
type Value struct {
	payload   []byte
	tombstone bool
}

func NewValue(payload []byte) Value {
	return Value{payload: payload}
}

func Tombstone() Value {
	return Value{tombstone: true}
}

func (me Value) IsTombstone() bool {
	return me.tombstone
}

// Payload returns the stored bytes and false for a tombstone.
func (me Value) Payload() ([]byte, bool) {
	if me.tombstone {
		return nil, false
	}
	return me.payload, true
}

func (me Value) Len() int64 {
	if me.tombstone {
		return 0
	}
	return int64(len(me.payload))
}

// Entry is what a sorted table stores per key: a value-or-tombstone plus its
// attributes. A later write to the same key replaces the whole entry.
type Entry struct {
	Value Value
	Attrs Attributes
}

// Footprint is the byte cost this entry charges against the table holding
// it under the given key.
func (me *Entry) Footprint(key []byte) int64 {
	return int64(len(key)) + me.Value.Len() + me.Attrs.Footprint()
}

// ToRecord materializes the entry into iterator output form.
func (me *Entry) ToRecord(key []byte) Record {
	return Record{
		Key:      key,
		Value:    me.Value,
		SeqNum:   0,
		CreateTS: me.Attrs.CreateTS,
		ExpireTS: me.Attrs.ExpireTS,
	}
}

// Record is the external representation every iterator in this subsystem
// emits. SeqNum is always zero here; real sequence numbers are assigned by
// the layer above.
type Record struct {
	Key      []byte
	Value    Value
	SeqNum   uint64
	CreateTS util.Optional[int64]
	ExpireTS util.Optional[int64]
}

// Iterator is the shared cursor contract between range iterators, the k-way
// merge, and materialized views.
type Iterator interface {
	NextEntry() (out Record, exists bool, _ error)
}
