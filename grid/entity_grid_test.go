package grid_test

import (
	"errors"
	"testing"

	"pkg.world.dev/world-engine/assert"

	"pkg.world.dev/world-engine/entitystore/codec"
	"pkg.world.dev/world-engine/entitystore/grid"
)

type MonsterID uint64

type Monster struct {
	Name string `json:"name"`
	HP   int    `json:"hp"`
}

func newTestGrid() *grid.EntityGrid[MonsterID, Monster] {
	return grid.NewEntityGrid[MonsterID, Monster](grid.NewSize(4, 4))
}

func requireOccupiedBy(t *testing.T, err error, want MonsterID) {
	t.Helper()
	var occupied grid.OccupiedByError[MonsterID]
	assert.Check(t, errors.As(err, &occupied), "expected OccupiedByError, got %v", err)
	assert.Equal(t, occupied.ID, want)
	assert.ErrorIs(t, err, grid.ErrCellOccupied)
}

func TestSpawnEntity(t *testing.T) {
	g := newTestGrid()
	coord := grid.NewCoord(1, 2)
	id, err := g.SpawnEntity(coord, Monster{Name: "rat", HP: 3})
	assert.NilError(t, err)

	got, err := g.GetEntityByID(id)
	assert.NilError(t, err)
	assert.Equal(t, got.Entity, Monster{Name: "rat", HP: 3})
	assert.Equal(t, got.Coord, coord)

	byCoord, err := g.GetEntityByCoord(coord)
	assert.NilError(t, err)
	assert.Check(t, byCoord != nil)
	assert.Equal(t, byCoord.ID, id)
	assert.Equal(t, g.Len(), 1)
}

func TestSpawnOutOfBounds(t *testing.T) {
	g := newTestGrid()
	_, err := g.SpawnEntity(grid.NewCoord(4, 0), Monster{})
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
	assert.Equal(t, g.Len(), 0)
}

func TestSpawnOnOccupiedCellFails(t *testing.T) {
	g := newTestGrid()
	coord := grid.NewCoord(0, 0)
	first, err := g.SpawnEntity(coord, Monster{Name: "first"})
	assert.NilError(t, err)

	_, err = g.SpawnEntity(coord, Monster{Name: "second"})
	requireOccupiedBy(t, err, first)

	got, err := g.GetEntityByCoord(coord)
	assert.NilError(t, err)
	assert.Equal(t, got.Entity.Name, "first")
	assert.Equal(t, g.Len(), 1)
}

func TestIDsAreNeverReused(t *testing.T) {
	g := newTestGrid()
	coord := grid.NewCoord(0, 0)
	seen := map[MonsterID]bool{}
	for i := 0; i < 10; i++ {
		id, err := g.SpawnEntity(coord, Monster{})
		assert.NilError(t, err)
		assert.Check(t, !seen[id])
		seen[id] = true
		_, err = g.RemoveEntityByID(id)
		assert.NilError(t, err)
	}
}

func TestRemoveEntityByID(t *testing.T) {
	g := newTestGrid()
	coord := grid.NewCoord(3, 3)
	id, err := g.SpawnEntity(coord, Monster{Name: "bat"})
	assert.NilError(t, err)

	removed, err := g.RemoveEntityByID(id)
	assert.NilError(t, err)
	assert.Equal(t, removed.Entity.Name, "bat")
	assert.Equal(t, removed.Coord, coord)

	_, err = g.GetEntityByID(id)
	assert.ErrorIs(t, err, grid.ErrNoSuchID)
	_, err = g.RemoveEntityByID(id)
	assert.ErrorIs(t, err, grid.ErrNoSuchID)

	vacant, err := g.GetEntityByCoord(coord)
	assert.NilError(t, err)
	assert.Check(t, vacant == nil)
}

func TestByCoordOperations(t *testing.T) {
	g := newTestGrid()

	t.Run("vacant cell is not an error", func(t *testing.T) {
		got, err := g.GetEntityByCoord(grid.NewCoord(2, 2))
		assert.NilError(t, err)
		assert.Check(t, got == nil)

		ref, err := g.GetEntityPtrByCoord(grid.NewCoord(2, 2))
		assert.NilError(t, err)
		assert.Check(t, ref == nil)

		removed, err := g.RemoveEntityByCoord(grid.NewCoord(2, 2))
		assert.NilError(t, err)
		assert.Check(t, removed == nil)
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := g.GetEntityByCoord(grid.NewCoord(-1, 0))
		assert.ErrorIs(t, err, grid.ErrOutOfBounds)
		_, err = g.GetEntityPtrByCoord(grid.NewCoord(0, 9))
		assert.ErrorIs(t, err, grid.ErrOutOfBounds)
		_, err = g.RemoveEntityByCoord(grid.NewCoord(9, 9))
		assert.ErrorIs(t, err, grid.ErrOutOfBounds)
	})

	t.Run("remove occupied cell", func(t *testing.T) {
		id, err := g.SpawnEntity(grid.NewCoord(1, 1), Monster{Name: "orc"})
		assert.NilError(t, err)
		removed, err := g.RemoveEntityByCoord(grid.NewCoord(1, 1))
		assert.NilError(t, err)
		assert.Equal(t, removed.ID, id)
		assert.Equal(t, removed.Entity.Name, "orc")
		assert.Check(t, !g.Contains(id))
	})
}

func TestPtrAccessMutatesEntity(t *testing.T) {
	g := newTestGrid()
	id, err := g.SpawnEntity(grid.NewCoord(0, 1), Monster{HP: 10})
	assert.NilError(t, err)

	ref, err := g.GetEntityPtrByID(id)
	assert.NilError(t, err)
	ref.Entity.HP -= 4

	byCoord, err := g.GetEntityPtrByCoord(grid.NewCoord(0, 1))
	assert.NilError(t, err)
	assert.Equal(t, byCoord.Entity.HP, 6)
	byCoord.Entity.HP = 1

	got, err := g.GetEntityByID(id)
	assert.NilError(t, err)
	assert.Equal(t, got.Entity.HP, 1)

	_, err = g.GetEntityPtrByID(id + 100)
	assert.ErrorIs(t, err, grid.ErrNoSuchID)
}

func TestMoveEntityToEmptyCellByID(t *testing.T) {
	g := newTestGrid()
	from, to := grid.NewCoord(0, 0), grid.NewCoord(2, 3)
	id, err := g.SpawnEntity(from, Monster{Name: "slime"})
	assert.NilError(t, err)

	assert.NilError(t, g.MoveEntityToEmptyCellByID(id, to))

	coord, err := g.CoordOf(id)
	assert.NilError(t, err)
	assert.Equal(t, coord, to)

	vacant, err := g.GetEntityByCoord(from)
	assert.NilError(t, err)
	assert.Check(t, vacant == nil)

	moved, err := g.GetEntityByCoord(to)
	assert.NilError(t, err)
	assert.Equal(t, moved.ID, id)
	assert.Equal(t, moved.Entity.Name, "slime")
}

func TestMoveFailuresLeaveGridUnchanged(t *testing.T) {
	g := newTestGrid()
	source, occupiedCoord := grid.NewCoord(1, 1), grid.NewCoord(1, 2)
	mover, err := g.SpawnEntity(source, Monster{Name: "mover"})
	assert.NilError(t, err)
	blocker, err := g.SpawnEntity(occupiedCoord, Monster{Name: "blocker"})
	assert.NilError(t, err)

	testCases := []struct {
		name  string
		id    MonsterID
		dest  grid.Coord
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown id",
			id:   MonsterID(99),
			dest: grid.NewCoord(0, 0),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, grid.ErrNoSuchID)
			},
		},
		{
			name: "same cell",
			id:   mover,
			dest: source,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, grid.ErrSourceAndDestinationAreEqual)
			},
		},
		{
			name: "out of bounds",
			id:   mover,
			dest: grid.NewCoord(4, 1),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, grid.ErrOutOfBounds)
			},
		},
		{
			name: "occupied",
			id:   mover,
			dest: occupiedCoord,
			check: func(t *testing.T, err error) {
				requireOccupiedBy(t, err, blocker)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := g.MoveEntityToEmptyCellByID(tc.id, tc.dest)
			tc.check(t, err)

			src, err := g.GetEntityByCoord(source)
			assert.NilError(t, err)
			assert.Equal(t, src.ID, mover)
			dst, err := g.GetEntityByCoord(occupiedCoord)
			assert.NilError(t, err)
			assert.Equal(t, dst.ID, blocker)
			assert.Equal(t, g.Len(), 2)
		})
	}
}

func TestStagedMoveProtocol(t *testing.T) {
	g := newTestGrid()
	id, err := g.SpawnEntity(grid.NewCoord(0, 0), Monster{Name: "ghost"})
	assert.NilError(t, err)

	selection, err := g.SelectEntityToMoveToEmptyCell(id)
	assert.NilError(t, err)
	assert.Equal(t, selection.Source(), grid.NewCoord(0, 0))

	// A failed stage does not consume the selection.
	_, err = selection.StageMoveEntityToEmptyCell(grid.NewCoord(0, 0))
	assert.ErrorIs(t, err, grid.ErrSourceAndDestinationAreEqual)

	staged, err := selection.StageMoveEntityToEmptyCell(grid.NewCoord(1, 0))
	assert.NilError(t, err)
	assert.Equal(t, staged.Destination(), grid.NewCoord(1, 0))

	// Staging alone does not move anything.
	coord, err := g.CoordOf(id)
	assert.NilError(t, err)
	assert.Equal(t, coord, grid.NewCoord(0, 0))

	assert.NilError(t, staged.Commit())
	coord, err = g.CoordOf(id)
	assert.NilError(t, err)
	assert.Equal(t, coord, grid.NewCoord(1, 0))

	// A token commits once.
	assert.ErrorIs(t, staged.Commit(), grid.ErrStaleMove)
}

func TestStagedMoveBecomesStaleAfterMutation(t *testing.T) {
	g := newTestGrid()
	id, err := g.SpawnEntity(grid.NewCoord(0, 0), Monster{})
	assert.NilError(t, err)

	selection, err := g.SelectEntityToMoveToEmptyCell(id)
	assert.NilError(t, err)
	staged, err := selection.StageMoveEntityToEmptyCell(grid.NewCoord(3, 3))
	assert.NilError(t, err)

	// Another entity takes the destination between staging and commit.
	_, err = g.SpawnEntity(grid.NewCoord(3, 3), Monster{Name: "intruder"})
	assert.NilError(t, err)

	assert.ErrorIs(t, staged.Commit(), grid.ErrStaleMove)
	coord, err := g.CoordOf(id)
	assert.NilError(t, err)
	assert.Equal(t, coord, grid.NewCoord(0, 0))
	intruder, err := g.GetEntityByCoord(grid.NewCoord(3, 3))
	assert.NilError(t, err)
	assert.Equal(t, intruder.Entity.Name, "intruder")
}

func TestSelectionBecomesStaleAfterMutation(t *testing.T) {
	g := newTestGrid()
	id, err := g.SpawnEntity(grid.NewCoord(0, 0), Monster{})
	assert.NilError(t, err)

	selection, err := g.SelectEntityToMoveToEmptyCell(id)
	assert.NilError(t, err)
	assert.NilError(t, g.MoveEntityToEmptyCellByID(id, grid.NewCoord(0, 1)))

	_, err = selection.StageMoveEntityToEmptyCell(grid.NewCoord(2, 2))
	assert.ErrorIs(t, err, grid.ErrStaleMove)
}

func TestSelectUnknownID(t *testing.T) {
	g := newTestGrid()
	_, err := g.SelectEntityToMoveToEmptyCell(MonsterID(3))
	assert.ErrorIs(t, err, grid.ErrNoSuchID)
}

func TestAllAndClear(t *testing.T) {
	g := newTestGrid()
	b, err := g.SpawnEntity(grid.NewCoord(1, 1), Monster{Name: "b"})
	assert.NilError(t, err)
	a, err := g.SpawnEntity(grid.NewCoord(0, 0), Monster{Name: "a"})
	assert.NilError(t, err)

	var ids []MonsterID
	var coords []grid.Coord
	for coord, ref := range g.All() {
		ids = append(ids, ref.ID)
		coords = append(coords, coord)
	}
	assert.DeepEqual(t, ids, []MonsterID{a, b})
	assert.DeepEqual(t, coords, []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}})

	g.Clear()
	assert.Equal(t, g.Len(), 0)
	assert.Check(t, !g.Contains(a))
	empty, err := g.GetEntityByCoord(grid.NewCoord(1, 1))
	assert.NilError(t, err)
	assert.Check(t, empty == nil)

	next, err := g.SpawnEntity(grid.NewCoord(0, 0), Monster{})
	assert.NilError(t, err)
	assert.Check(t, next != a && next != b)
}

func TestEntityGridRoundTrip(t *testing.T) {
	g := newTestGrid()
	kept, err := g.SpawnEntity(grid.NewCoord(2, 1), Monster{Name: "kept", HP: 5})
	assert.NilError(t, err)
	dropped, err := g.SpawnEntity(grid.NewCoord(3, 0), Monster{Name: "dropped"})
	assert.NilError(t, err)
	_, err = g.RemoveEntityByID(dropped)
	assert.NilError(t, err)

	bz, err := codec.Encode(g)
	assert.NilError(t, err)

	restored := grid.NewEntityGrid[MonsterID, Monster](grid.NewSize(1, 1))
	assert.NilError(t, codec.DecodeInto(bz, restored))
	assert.Equal(t, restored.Size(), grid.NewSize(4, 4))
	assert.Equal(t, restored.Len(), 1)

	got, err := restored.GetEntityByID(kept)
	assert.NilError(t, err)
	assert.Equal(t, got.Entity, Monster{Name: "kept", HP: 5})
	assert.Equal(t, got.Coord, grid.NewCoord(2, 1))
	_, err = restored.GetEntityByID(dropped)
	assert.ErrorIs(t, err, grid.ErrNoSuchID)

	// The id of the removed entity is still never handed out again.
	next, err := restored.SpawnEntity(grid.NewCoord(0, 0), Monster{})
	assert.NilError(t, err)
	assert.Check(t, next > dropped)
}

func TestEntityGridDecodeRejectsInvalidState(t *testing.T) {
	testCases := []struct {
		name string
		json string
		want error
	}{
		{
			name: "out of bounds",
			json: `{"size":{"width":2,"height":2},"next_raw_id":1,"entities":[{"id":0,"coord":{"x":2,"y":0},"entity":{}}]}`,
			want: grid.ErrOutOfBounds,
		},
		{
			name: "two entities in one cell",
			json: `{"size":{"width":2,"height":2},"next_raw_id":2,"entities":[
				{"id":0,"coord":{"x":0,"y":0},"entity":{}},
				{"id":1,"coord":{"x":0,"y":0},"entity":{}}]}`,
			want: grid.ErrCellOccupied,
		},
		{
			name: "duplicate id",
			json: `{"size":{"width":2,"height":2},"next_raw_id":1,"entities":[
				{"id":0,"coord":{"x":0,"y":0},"entity":{}},
				{"id":0,"coord":{"x":1,"y":0},"entity":{}}]}`,
			want: grid.ErrDuplicateID,
		},
		{
			name: "too many cells",
			json: `{"size":{"width":4294967295,"height":4294967295},"next_raw_id":0,"entities":[]}`,
			want: grid.ErrGridTooLarge,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGrid()
			err := codec.DecodeInto([]byte(tc.json), g)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, grid.NewSize(4, 4), g.Size())
		})
	}
}
