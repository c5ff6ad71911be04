// Package grid provides the fixed-size passability map searched by the pathfinder.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for coordinates outside [0,W)×[0,H).
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidSize is returned when a grid would have a non-positive dimension.
	ErrInvalidSize = errors.New("invalid grid size")
)

// Coord identifies a grid cell. Equality is by value.
type Coord struct {
	X, Y int
}

// String renders the coordinate as (x,y).
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CellState is the passability of a single cell.
type CellState uint8

const (
	Open CellState = iota
	Blocked
)

func (s CellState) String() string {
	switch s {
	case Open:
		return "open"
	case Blocked:
		return "blocked"
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// Grid stores a W×H passability map.
// Cells are marked as blocked (true) or open (false).
// A Grid must not be modified while a search over it is running; concurrent
// readers are safe.
type Grid struct {
	cells  []bool // true = blocked
	width  int
	height int
}

// MaxCells is the largest grid New will allocate.
const MaxCells = 1 << 24

// New creates a grid with every cell open.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 || width > MaxCells/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Grid{
		cells:  make([]bool, width*height),
		width:  width,
		height: height,
	}, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew(width, height int) *Grid {
	g, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// IsPassable reports whether c is in bounds and open.
func (g *Grid) IsPassable(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return !g.cells[c.Y*g.width+c.X]
}

// IsBlocked returns true if the cell is blocked.
func (g *Grid) IsBlocked(c Coord) bool {
	if !g.InBounds(c) {
		return true // Out of bounds is blocked
	}
	return g.cells[c.Y*g.width+c.X]
}

// Cell returns the state of c, or false if c is out of bounds.
func (g *Grid) Cell(c Coord) (CellState, bool) {
	if !g.InBounds(c) {
		return Blocked, false
	}
	if g.cells[c.Y*g.width+c.X] {
		return Blocked, true
	}
	return Open, true
}

// SetBlocked marks c blocked or open. Only call this while building a grid.
func (g *Grid) SetBlocked(c Coord, blocked bool) error {
	if !g.InBounds(c) {
		return fmt.Errorf("set %v on %dx%d grid: %w", c, g.width, g.height, ErrOutOfBounds)
	}
	g.cells[c.Y*g.width+c.X] = blocked
	return nil
}

// BlockedCount returns the number of blocked cells.
func (g *Grid) BlockedCount() int {
	n := 0
	for _, b := range g.cells {
		if b {
			n++
		}
	}
	return n
}

// OpenCells returns every open coordinate in row-major order.
func (g *Grid) OpenCells() []Coord {
	open := make([]Coord, 0, len(g.cells))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if !g.cells[y*g.width+x] {
				open = append(open, Coord{X: x, Y: y})
			}
		}
	}
	return open
}
