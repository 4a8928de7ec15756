package grid

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	ErrOutOfBounds = eris.New("coordinate is outside the grid")
	ErrNoSuchID    = eris.New("no entity with this id")

	// ErrCellOccupied matches every OccupiedByError through errors.Is.
	ErrCellOccupied = eris.New("cell is occupied")

	ErrSourceAndDestinationAreEqual = eris.New("source and destination of move are the same cell")

	// ErrStaleMove is returned by a move selection or staged move when the grid was modified after it was made.
	ErrStaleMove = eris.New("grid was modified after the move was selected")

	ErrDuplicateID = eris.New("saved grid lists an entity id more than once")

	ErrGridTooLarge = eris.New("saved grid has too many cells")
)

// OccupiedByError reports that a cell that had to be empty holds the entity ID.
type OccupiedByError[I ID] struct {
	ID I
}

func (e OccupiedByError[I]) Error() string {
	return fmt.Sprintf("cell is occupied by entity %d", uint64(e.ID))
}

func (e OccupiedByError[I]) Is(target error) bool {
	return target == ErrCellOccupied //nolint:errorlint // sentinel identity
}
