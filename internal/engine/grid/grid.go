// Package grid provides the fixed-size battlefield coordinate space
package grid

import "fmt"

const (
	// DefaultWidth is the battlefield width in cells (x: 0..26)
	DefaultWidth = 27
	// DefaultHeight is the battlefield height in cells (y: 0..20)
	DefaultHeight = 21
	// MaxSide bounds either dimension so Cells fits a path search buffer
	MaxSide = 1024
)

// Cell is a single battlefield coordinate
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// String returns the cell as "(x,y)"
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Adjacent reports whether other is a king-move neighbor of c
func (c Cell) Adjacent(other Cell) bool {
	dx := abs(c.X - other.X)
	dy := abs(c.Y - other.Y)
	return dx <= 1 && dy <= 1 && dx+dy > 0
}

// directions is the neighbor expansion order. Path tie-breaking depends on it,
// so it must never be reordered.
var directions = [8]Cell{
	{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1},
	{X: -1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1},
}

// Grid is a bounded width x height coordinate space
type Grid struct {
	Width  int
	Height int
}

// New creates a grid of the given size
func New(width, height int) Grid {
	return Grid{Width: width, Height: height}
}

// Default returns the standard 27x21 battlefield
func Default() Grid {
	return New(DefaultWidth, DefaultHeight)
}

// InBounds reports whether c lies within [0,Width) x [0,Height)
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Cells returns the number of cells in the grid
func (g Grid) Cells() int {
	if g.Width <= 0 || g.Height <= 0 {
		return 0
	}
	return g.Width * g.Height
}

// Index maps an in-bounds cell to its flat row-major index.
// Callers must check InBounds first.
func (g Grid) Index(c Cell) int {
	return c.Y*g.Width + c.X
}

// CellAt is the inverse of Index
func (g Grid) CellAt(index int) Cell {
	return Cell{X: index % g.Width, Y: index / g.Width}
}

// Neighbors returns the in-bounds king-move neighbors of c in the fixed
// order left, right, up, down, then the four diagonals.
func (g Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(directions))
	for _, d := range directions {
		n := Cell{X: c.X + d.X, Y: c.Y + d.Y}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
