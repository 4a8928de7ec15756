// Package component stores one type of component data per Table, keyed by entity.
//
// A Table keeps its data in a dense slice so iteration touches only live components, and a sparse slice indexed
// by entity.Entity.Index that points into the dense slice. Removal swaps the last entry into the vacated slot, so
// insert, remove and lookup are O(1) and iteration order changes after a removal.
package component

import (
	"iter"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/entitystore/codec"
	"pkg.world.dev/world-engine/entitystore/entity"
)

// Entry is one component value together with the entity that owns it.
type Entry[T any] struct {
	Entity entity.Entity `json:"entity"`
	Data   T             `json:"data"`
}

type denseSlot struct {
	index uint32
	ok    bool
}

// Table is a dense store of T values keyed by entity. The zero value is an empty table ready to use.
type Table[T any] struct {
	entries []Entry[T]
	sparse  []denseSlot
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

func (t *Table[T]) slotOf(index uint32) (uint32, bool) {
	if int(index) >= len(t.sparse) {
		return 0, false
	}
	s := t.sparse[index]
	return s.index, s.ok
}

// resolve finds the dense slot owned by e, rejecting a slot that belongs to another entity sharing the index.
func (t *Table[T]) resolve(e entity.Entity) (uint32, bool) {
	slot, ok := t.slotOf(e.Index)
	if !ok || t.entries[slot].Entity.ID != e.ID {
		return 0, false
	}
	return slot, true
}

// Insert associates data with e. If e already has a value it is replaced and returned with replaced set to true.
// If the slot for e's index is held by a different entity, that entity's value is overwritten in place and
// replaced is false: the last writer for an index wins.
func (t *Table[T]) Insert(e entity.Entity, data T) (old T, replaced bool) {
	if slot, ok := t.slotOf(e.Index); ok {
		entry := &t.entries[slot]
		if entry.Entity == e {
			old, entry.Data = entry.Data, data
			return old, true
		}
		entry.Entity = e
		entry.Data = data
		return old, false
	}

	if need := int(e.Index) + 1; need > len(t.sparse) {
		t.sparse = append(t.sparse, make([]denseSlot, need-len(t.sparse))...)
	}
	t.sparse[e.Index] = denseSlot{index: uint32(len(t.entries)), ok: true} //nolint:gosec // dense len fits index space
	t.entries = append(t.entries, Entry[T]{Entity: e, Data: data})
	return old, false
}

// Remove detaches e's value and returns it. The last entry is moved into the vacated slot.
func (t *Table[T]) Remove(e entity.Entity) (T, bool) {
	slot, ok := t.resolve(e)
	if !ok {
		var zero T
		return zero, false
	}

	removed := t.entries[slot].Data
	last := uint32(len(t.entries) - 1) //nolint:gosec // non-empty here
	if slot != last {
		moved := t.entries[last]
		t.entries[slot] = moved
		t.sparse[moved.Entity.Index] = denseSlot{index: slot, ok: true}
	}
	t.entries[last] = Entry[T]{}
	t.entries = t.entries[:last]
	t.sparse[e.Index] = denseSlot{}
	return removed, true
}

// Get returns a copy of e's value.
func (t *Table[T]) Get(e entity.Entity) (T, bool) {
	slot, ok := t.resolve(e)
	if !ok {
		var zero T
		return zero, false
	}
	return t.entries[slot].Data, true
}

// GetPtr returns a pointer to e's value for in-place mutation. The pointer is only valid until the table is next
// modified.
func (t *Table[T]) GetPtr(e entity.Entity) (*T, bool) {
	slot, ok := t.resolve(e)
	if !ok {
		return nil, false
	}
	return &t.entries[slot].Data, true
}

func (t *Table[T]) Contains(e entity.Entity) bool {
	_, ok := t.resolve(e)
	return ok
}

func (t *Table[T]) Len() int {
	return len(t.entries)
}

func (t *Table[T]) IsEmpty() bool {
	return len(t.entries) == 0
}

func (t *Table[T]) Clear() {
	clear(t.entries)
	t.entries = t.entries[:0]
	t.sparse = t.sparse[:0]
}

// All yields every (entity, value) pair in dense storage order.
func (t *Table[T]) All() iter.Seq2[entity.Entity, T] {
	return func(yield func(entity.Entity, T) bool) {
		for i := range t.entries {
			if !yield(t.entries[i].Entity, t.entries[i].Data) {
				return
			}
		}
	}
}

// AllPtr is like All but yields pointers into the table so values can be updated during iteration.
func (t *Table[T]) AllPtr() iter.Seq2[entity.Entity, *T] {
	return func(yield func(entity.Entity, *T) bool) {
		for i := range t.entries {
			if !yield(t.entries[i].Entity, &t.entries[i].Data) {
				return
			}
		}
	}
}

func (t *Table[T]) Entities() iter.Seq[entity.Entity] {
	return func(yield func(entity.Entity) bool) {
		for i := range t.entries {
			if !yield(t.entries[i].Entity) {
				return
			}
		}
	}
}

// MarshalJSON encodes the table as its list of entries in dense order.
func (t Table[T]) MarshalJSON() ([]byte, error) {
	entries := t.entries
	if entries == nil {
		entries = []Entry[T]{}
	}
	return codec.Encode(entries)
}

func (t *Table[T]) UnmarshalJSON(bz []byte) error {
	entries, err := codec.Decode[[]Entry[T]](bz)
	if err != nil {
		return err
	}
	t.Clear()
	for _, entry := range entries {
		if _, taken := t.slotOf(entry.Entity.Index); taken {
			return eris.Wrapf(ErrDuplicateEntityIndex, "%v", entry.Entity)
		}
		t.Insert(entry.Entity, entry.Data)
	}
	return nil
}
