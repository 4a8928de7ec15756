package grid

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/entitystore/codec"
)

// MaxCells bounds the size of a grid decoded from saved state.
const MaxCells = 1 << 24

type savedEntity[I ID, E any] struct {
	ID     I     `json:"id"`
	Coord  Coord `json:"coord"`
	Entity E     `json:"entity"`
}

type gridState[I ID, E any] struct {
	Size      Size                `json:"size"`
	NextRawID uint64              `json:"next_raw_id"`
	Entities  []savedEntity[I, E] `json:"entities"`
}

// MarshalJSON encodes the grid size, the id counter and every entity in row-major order. The counter is saved so
// ids are never reused after a reload.
func (g *EntityGrid[I, E]) MarshalJSON() ([]byte, error) {
	st := gridState[I, E]{
		Size:      g.Size(),
		NextRawID: g.nextRawID,
		Entities:  make([]savedEntity[I, E], 0, g.Len()),
	}
	for coord, ref := range g.All() {
		st.Entities = append(st.Entities, savedEntity[I, E]{ID: ref.ID, Coord: coord, Entity: *ref.Entity})
	}
	return codec.Encode(st)
}

// UnmarshalJSON replaces the grid with a saved one. g keeps its logger.
func (g *EntityGrid[I, E]) UnmarshalJSON(bz []byte) error {
	st, err := codec.Decode[gridState[I, E]](bz)
	if err != nil {
		return err
	}
	if cells := uint64(st.Size.Width) * uint64(st.Size.Height); cells > MaxCells {
		return eris.Wrapf(ErrGridTooLarge, "saved grid is %v (%d cells, at most %d)", st.Size, cells, MaxCells)
	}

	restored := NewEntityGrid[I, E](st.Size)
	restored.logger = g.logger
	for _, saved := range st.Entities {
		c, ok := restored.grid.GetPtr(saved.Coord)
		if !ok {
			return eris.Wrapf(ErrOutOfBounds, "saved entity %d at %v", uint64(saved.ID), saved.Coord)
		}
		if c.occupied {
			return eris.Wrapf(ErrCellOccupied, "saved entities %d and %d at %v", c.rawID, uint64(saved.ID), saved.Coord)
		}
		if restored.Contains(saved.ID) {
			return eris.Wrapf(ErrDuplicateID, "id %d", uint64(saved.ID))
		}
		*c = cell[E]{rawID: uint64(saved.ID), entity: saved.Entity, occupied: true}
		restored.coords[saved.ID] = saved.Coord
		restored.nextRawID = max(restored.nextRawID, uint64(saved.ID)+1)
	}
	restored.nextRawID = max(restored.nextRawID, st.NextRawID)
	restored.version = g.version + 1

	*g = *restored
	return nil
}
