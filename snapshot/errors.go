package snapshot

import "github.com/rotisserie/eris"

var ErrSnapshotNotFound = eris.New("snapshot not found")
