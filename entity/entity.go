// Package entity issues the identifiers that every other storage structure is keyed by.
//
// An Entity pairs a globally unique ID with a recyclable Index. Storage structures use the Index to find a slot
// in O(1) and the ID to tell the current occupant of that slot apart from earlier ones.
package entity

import "fmt"

// Entity identifies one logical object across component tables. It is an immutable value; two entities are the
// same only if both fields match.
type Entity struct {
	ID    uint64 `json:"id"`
	Index uint32 `json:"index"`
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(id=%d, index=%d)", e.ID, e.Index)
}
