package ecs

import "github.com/rotisserie/eris"

// ErrComponentMismatchWithSavedState is returned when the component schemas stored with a saved state do not
// match the component set it is being loaded into.
var ErrComponentMismatchWithSavedState = eris.New("registered components do not match with the saved state")
