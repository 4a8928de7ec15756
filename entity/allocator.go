package entity

import (
	"cmp"
	"iter"
	"slices"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/entitystore/codec"
)

type liveID struct {
	id   uint64
	live bool
}

// Allocator hands out entities and recycles the indices of freed ones. IDs are never reused.
// The zero value is ready to use.
type Allocator struct {
	nextID      uint64
	nextIndex   uint32
	indexToID   []liveID
	freeIndices []uint32
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

// Alloc returns a new entity. The index of a previously freed entity is reused when one is available.
func (a *Allocator) Alloc() Entity {
	id := a.nextID
	a.nextID++

	var index uint32
	if n := len(a.freeIndices); n > 0 {
		index = a.freeIndices[n-1]
		a.freeIndices = a.freeIndices[:n-1]
	} else {
		index = a.nextIndex
		a.nextIndex++
		if int(index) >= len(a.indexToID) {
			a.indexToID = append(a.indexToID, make([]liveID, int(index)+1-len(a.indexToID))...)
		}
	}
	a.indexToID[index] = liveID{id: id, live: true}
	return Entity{ID: id, Index: index}
}

// Exists reports whether e is live. An entity whose index now belongs to a later allocation does not exist.
func (a *Allocator) Exists(e Entity) bool {
	if int(e.Index) >= len(a.indexToID) {
		return false
	}
	slot := a.indexToID[e.Index]
	return slot.live && slot.id == e.ID
}

// Free releases e so its index can be reused. Freeing an entity that does not exist is a no-op.
func (a *Allocator) Free(e Entity) {
	if !a.Exists(e) {
		return
	}
	a.indexToID[e.Index] = liveID{}
	a.freeIndices = append(a.freeIndices, e.Index)
}

// Len returns the number of live entities.
func (a *Allocator) Len() int {
	return int(a.nextIndex) - len(a.freeIndices)
}

// All yields the live entities in index order.
func (a *Allocator) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for index, slot := range a.indexToID {
			if !slot.live {
				continue
			}
			if !yield(Entity{ID: slot.id, Index: uint32(index)}) { //nolint:gosec // bounded by nextIndex
				return
			}
		}
	}
}

// Clear frees every entity. The id counter keeps running so ids issued before the call never come back.
func (a *Allocator) Clear() {
	a.indexToID = a.indexToID[:0]
	a.freeIndices = a.freeIndices[:0]
	a.nextIndex = 0
}

type indexID struct {
	Index uint32 `json:"index"`
	ID    uint64 `json:"id"`
}

// MarshalJSON encodes only the live (index, id) pairs. Counters and the free list are derived again on decode.
func (a *Allocator) MarshalJSON() ([]byte, error) {
	pairs := make([]indexID, 0, a.Len())
	for e := range a.All() {
		pairs = append(pairs, indexID{Index: e.Index, ID: e.ID})
	}
	return codec.Encode(pairs)
}

// UnmarshalJSON rebuilds the allocator from a list of live (index, id) pairs. Any index below the largest one
// seen that is not in the list becomes free, whether it was freed or never handed out.
func (a *Allocator) UnmarshalJSON(bz []byte) error {
	pairs, err := codec.Decode[[]indexID](bz)
	if err != nil {
		return err
	}
	restored, err := fromPairs(pairs)
	if err != nil {
		return err
	}
	*a = *restored
	return nil
}

func fromPairs(pairs []indexID) (*Allocator, error) {
	a := &Allocator{}
	if len(pairs) == 0 {
		return a, nil
	}
	maxIndex := slices.MaxFunc(pairs, func(x, y indexID) int { return cmp.Compare(x.Index, y.Index) }).Index
	maxID := slices.MaxFunc(pairs, func(x, y indexID) int { return cmp.Compare(x.ID, y.ID) }).ID

	a.nextIndex = maxIndex + 1
	a.nextID = maxID + 1
	a.indexToID = make([]liveID, a.nextIndex)
	for _, p := range pairs {
		if a.indexToID[p.Index].live {
			return nil, eris.Wrapf(ErrDuplicateIndex, "index %d", p.Index)
		}
		a.indexToID[p.Index] = liveID{id: p.ID, live: true}
	}
	for index, slot := range a.indexToID {
		if !slot.live {
			a.freeIndices = append(a.freeIndices, uint32(index)) //nolint:gosec // bounded by nextIndex
		}
	}
	return a, nil
}
