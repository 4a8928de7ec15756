package component

import "github.com/rotisserie/eris"

var (
	// ErrDuplicateEntityIndex is returned when saved table state holds two entries for the same entity index.
	ErrDuplicateEntityIndex = eris.New("saved component table has more than one entry for an entity index")

	ErrSchemaMismatch = eris.New("component schema does not match saved schema")
)
