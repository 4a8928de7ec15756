package entity

import "github.com/rotisserie/eris"

// ErrDuplicateIndex is returned when decoding an allocator whose saved state lists the same index twice.
var ErrDuplicateIndex = eris.New("index listed more than once in saved allocator state")
