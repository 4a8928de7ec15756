package grid

import "fmt"

type Coord struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

func NewCoord(x, y int32) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Size is the extent of a grid. Valid coordinates satisfy 0 <= X < Width and 0 <= Y < Height.
type Size struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

func NewSize(width, height uint32) Size {
	return Size{Width: width, Height: height}
}

func (s Size) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && uint32(c.X) < s.Width && uint32(c.Y) < s.Height
}

// Count is the number of cells in a grid of this size.
func (s Size) Count() int {
	return int(s.Width) * int(s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
