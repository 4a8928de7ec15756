package grid

import (
	"iter"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// ID is the constraint for entity grid ids. Any type whose underlying type is uint64 can be used, so callers can
// give ids of different grids distinct types.
type ID interface {
	~uint64
}

type cell[E any] struct {
	rawID    uint64
	entity   E
	occupied bool
}

// EntityOwnedByID is an entity found by id, together with its coordinate.
type EntityOwnedByID[E any] struct {
	Entity E
	Coord  Coord
}

// EntityRefByID is like EntityOwnedByID but points at the stored entity so it can be modified in place.
type EntityRefByID[E any] struct {
	Entity *E
	Coord  Coord
}

// EntityOwnedByCoord is an entity found by coordinate, together with its id.
type EntityOwnedByCoord[I ID, E any] struct {
	ID     I
	Entity E
}

type EntityRefByCoord[I ID, E any] struct {
	ID     I
	Entity *E
}

// EntityGrid places entities in the cells of a fixed-size grid, at most one per cell. Each entity gets an id when
// it is spawned; ids come from a counter that only increases, so an id never refers to two different entities.
//
// Pointers returned by the Ptr methods point into grid cells and must not be used after the entity is moved or
// removed.
type EntityGrid[I ID, E any] struct {
	nextRawID uint64
	coords    map[I]Coord
	grid      *Grid[cell[E]]
	// version changes on every structural mutation and invalidates outstanding move tokens.
	version uint64
	logger  zerolog.Logger
}

func NewEntityGrid[I ID, E any](size Size, opts ...Option) *EntityGrid[I, E] {
	o := newOptions(opts)
	return &EntityGrid[I, E]{
		coords: make(map[I]Coord),
		grid:   New[cell[E]](size),
		logger: o.logger,
	}
}

func (g *EntityGrid[I, E]) Size() Size {
	return g.grid.Size()
}

// Len returns the number of entities in the grid.
func (g *EntityGrid[I, E]) Len() int {
	return len(g.coords)
}

// CoordOf returns the coordinate of the entity id.
func (g *EntityGrid[I, E]) CoordOf(id I) (Coord, error) {
	c, ok := g.coords[id]
	if !ok {
		return Coord{}, eris.Wrapf(ErrNoSuchID, "id %d", uint64(id))
	}
	return c, nil
}

func (g *EntityGrid[I, E]) Contains(id I) bool {
	_, ok := g.coords[id]
	return ok
}

// SpawnEntity places entity in the empty cell at coord and returns its new id.
func (g *EntityGrid[I, E]) SpawnEntity(coord Coord, entity E) (I, error) {
	c, ok := g.grid.GetPtr(coord)
	if !ok {
		return 0, eris.Wrapf(ErrOutOfBounds, "spawn at %v in %v grid", coord, g.Size())
	}
	if c.occupied {
		return 0, OccupiedByError[I]{ID: I(c.rawID)}
	}

	rawID := g.nextRawID
	g.nextRawID++
	id := I(rawID)
	*c = cell[E]{rawID: rawID, entity: entity, occupied: true}
	g.coords[id] = coord
	g.version++
	g.logger.Trace().Uint64("grid_entity_id", rawID).Stringer("coord", coord).Msg("entity spawned")
	return id, nil
}

func (g *EntityGrid[I, E]) RemoveEntityByID(id I) (EntityOwnedByID[E], error) {
	coord, ok := g.coords[id]
	if !ok {
		return EntityOwnedByID[E]{}, eris.Wrapf(ErrNoSuchID, "id %d", uint64(id))
	}
	c, _ := g.grid.GetPtr(coord)
	removed := c.entity
	g.vacate(id, coord, c)
	return EntityOwnedByID[E]{Entity: removed, Coord: coord}, nil
}

func (g *EntityGrid[I, E]) GetEntityByID(id I) (EntityOwnedByID[E], error) {
	ref, err := g.GetEntityPtrByID(id)
	if err != nil {
		return EntityOwnedByID[E]{}, err
	}
	return EntityOwnedByID[E]{Entity: *ref.Entity, Coord: ref.Coord}, nil
}

func (g *EntityGrid[I, E]) GetEntityPtrByID(id I) (EntityRefByID[E], error) {
	coord, ok := g.coords[id]
	if !ok {
		return EntityRefByID[E]{}, eris.Wrapf(ErrNoSuchID, "id %d", uint64(id))
	}
	c, _ := g.grid.GetPtr(coord)
	return EntityRefByID[E]{Entity: &c.entity, Coord: coord}, nil
}

// RemoveEntityByCoord empties the cell at coord. A vacant cell is not an error: the result is nil.
func (g *EntityGrid[I, E]) RemoveEntityByCoord(coord Coord) (*EntityOwnedByCoord[I, E], error) {
	c, ok := g.grid.GetPtr(coord)
	if !ok {
		return nil, eris.Wrapf(ErrOutOfBounds, "%v in %v grid", coord, g.Size())
	}
	if !c.occupied {
		return nil, nil //nolint:nilnil // a vacant cell is a normal state
	}
	id := I(c.rawID)
	removed := c.entity
	g.vacate(id, coord, c)
	return &EntityOwnedByCoord[I, E]{ID: id, Entity: removed}, nil
}

// GetEntityByCoord returns a copy of the entity at coord, or nil for a vacant cell.
func (g *EntityGrid[I, E]) GetEntityByCoord(coord Coord) (*EntityOwnedByCoord[I, E], error) {
	ref, err := g.GetEntityPtrByCoord(coord)
	if err != nil || ref == nil {
		return nil, err
	}
	return &EntityOwnedByCoord[I, E]{ID: ref.ID, Entity: *ref.Entity}, nil
}

func (g *EntityGrid[I, E]) GetEntityPtrByCoord(coord Coord) (*EntityRefByCoord[I, E], error) {
	c, ok := g.grid.GetPtr(coord)
	if !ok {
		return nil, eris.Wrapf(ErrOutOfBounds, "%v in %v grid", coord, g.Size())
	}
	if !c.occupied {
		return nil, nil //nolint:nilnil // a vacant cell is a normal state
	}
	return &EntityRefByCoord[I, E]{ID: I(c.rawID), Entity: &c.entity}, nil
}

func (g *EntityGrid[I, E]) vacate(id I, coord Coord, c *cell[E]) {
	*c = cell[E]{}
	delete(g.coords, id)
	g.version++
	g.logger.Trace().Uint64("grid_entity_id", uint64(id)).Stringer("coord", coord).Msg("entity removed")
}

// MoveEntityToEmptyCellByID moves the entity id to the empty cell dest. It fails with ErrNoSuchID,
// ErrSourceAndDestinationAreEqual, ErrOutOfBounds or an OccupiedByError, leaving the grid unchanged.
func (g *EntityGrid[I, E]) MoveEntityToEmptyCellByID(id I, dest Coord) error {
	selection, err := g.SelectEntityToMoveToEmptyCell(id)
	if err != nil {
		return err
	}
	staged, err := selection.StageMoveEntityToEmptyCell(dest)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// All yields every entity in row-major order of the cells.
func (g *EntityGrid[I, E]) All() iter.Seq2[Coord, EntityRefByCoord[I, E]] {
	return func(yield func(Coord, EntityRefByCoord[I, E]) bool) {
		for coord, c := range g.grid.AllPtr() {
			if !c.occupied {
				continue
			}
			if !yield(coord, EntityRefByCoord[I, E]{ID: I(c.rawID), Entity: &c.entity}) {
				return
			}
		}
	}
}

// Clear removes every entity. Ids handed out before the call are not reused.
func (g *EntityGrid[I, E]) Clear() {
	for _, c := range g.grid.AllPtr() {
		*c = cell[E]{}
	}
	clear(g.coords)
	g.version++
}
