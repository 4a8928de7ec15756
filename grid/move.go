package grid

import "github.com/rotisserie/eris"

// MoveSelection is the first step of moving an entity to an empty cell: the entity and its current cell have been
// found. It becomes stale when the grid is modified.
type MoveSelection[I ID, E any] struct {
	grid    *EntityGrid[I, E]
	id      I
	source  Coord
	version uint64
}

// StagedMove is a validated move. Committing it is the only step that modifies the grid.
type StagedMove[I ID, E any] struct {
	grid        *EntityGrid[I, E]
	id          I
	source      Coord
	destination Coord
	version     uint64
	done        bool
}

func (g *EntityGrid[I, E]) SelectEntityToMoveToEmptyCell(id I) (*MoveSelection[I, E], error) {
	coord, ok := g.coords[id]
	if !ok {
		return nil, eris.Wrapf(ErrNoSuchID, "id %d", uint64(id))
	}
	return &MoveSelection[I, E]{grid: g, id: id, source: coord, version: g.version}, nil
}

func (s *MoveSelection[I, E]) Source() Coord {
	return s.source
}

// StageMoveEntityToEmptyCell checks that dest is a different, in-bounds, empty cell. Nothing is modified.
func (s *MoveSelection[I, E]) StageMoveEntityToEmptyCell(dest Coord) (*StagedMove[I, E], error) {
	if s.version != s.grid.version {
		return nil, eris.Wrap(ErrStaleMove, "")
	}
	if dest == s.source {
		return nil, eris.Wrapf(ErrSourceAndDestinationAreEqual, "%v", dest)
	}
	c, ok := s.grid.grid.GetPtr(dest)
	if !ok {
		return nil, eris.Wrapf(ErrOutOfBounds, "move to %v in %v grid", dest, s.grid.Size())
	}
	if c.occupied {
		return nil, OccupiedByError[I]{ID: I(c.rawID)}
	}
	return &StagedMove[I, E]{
		grid:        s.grid,
		id:          s.id,
		source:      s.source,
		destination: dest,
		version:     s.version,
	}, nil
}

func (m *StagedMove[I, E]) Destination() Coord {
	return m.destination
}

// Commit performs the move. It fails with ErrStaleMove, without touching the grid, if the grid was modified since
// the move was selected or if the move was already committed.
func (m *StagedMove[I, E]) Commit() error {
	if m.done || m.version != m.grid.version {
		return eris.Wrap(ErrStaleMove, "")
	}
	src, _ := m.grid.grid.GetPtr(m.source)
	dst, _ := m.grid.grid.GetPtr(m.destination)
	*dst = *src
	*src = cell[E]{}
	m.grid.coords[m.id] = m.destination
	m.grid.version++
	m.done = true
	m.grid.logger.Trace().
		Uint64("grid_entity_id", uint64(m.id)).
		Stringer("from", m.source).
		Stringer("to", m.destination).
		Msg("entity moved")
	return nil
}
