// Package grid stores values in a fixed-size 2D grid, and entities in a grid where each cell holds at most one
// entity that can be found by id or by coordinate.
package grid

import "iter"

// Grid is a fixed-size row-major array of T.
type Grid[T any] struct {
	size  Size
	cells []T
}

// New creates a grid whose cells hold the zero value of T.
func New[T any](size Size) *Grid[T] {
	return &Grid[T]{size: size, cells: make([]T, size.Count())}
}

// NewFunc creates a grid whose cells are initialised by f.
func NewFunc[T any](size Size, f func(Coord) T) *Grid[T] {
	g := New[T](size)
	for i := range g.cells {
		g.cells[i] = f(g.coordOf(i))
	}
	return g
}

func (g *Grid[T]) Size() Size {
	return g.size
}

func (g *Grid[T]) index(c Coord) (int, bool) {
	if !g.size.Contains(c) {
		return 0, false
	}
	return int(c.Y)*int(g.size.Width) + int(c.X), true
}

func (g *Grid[T]) coordOf(i int) Coord {
	w := int(g.size.Width)
	return Coord{X: int32(i % w), Y: int32(i / w)} //nolint:gosec // i is below Width*Height
}

func (g *Grid[T]) Get(c Coord) (T, bool) {
	i, ok := g.index(c)
	if !ok {
		var zero T
		return zero, false
	}
	return g.cells[i], true
}

// GetPtr returns a pointer to the cell at c. Cells never move, so the pointer stays valid for the grid's lifetime.
func (g *Grid[T]) GetPtr(c Coord) (*T, bool) {
	i, ok := g.index(c)
	if !ok {
		return nil, false
	}
	return &g.cells[i], true
}

// Set stores v at c and reports whether c was in bounds.
func (g *Grid[T]) Set(c Coord, v T) bool {
	i, ok := g.index(c)
	if ok {
		g.cells[i] = v
	}
	return ok
}

// All yields every cell in row-major order.
func (g *Grid[T]) All() iter.Seq2[Coord, T] {
	return func(yield func(Coord, T) bool) {
		for i := range g.cells {
			if !yield(g.coordOf(i), g.cells[i]) {
				return
			}
		}
	}
}

// AllPtr is like All but yields pointers to the cells.
func (g *Grid[T]) AllPtr() iter.Seq2[Coord, *T] {
	return func(yield func(Coord, *T) bool) {
		for i := range g.cells {
			if !yield(g.coordOf(i), &g.cells[i]) {
				return
			}
		}
	}
}
