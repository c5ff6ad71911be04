// Package camera maps grid cells to screen pixels for the viewer.
package camera

import "github.com/pthm-cable/gridpath/grid"

// Camera controls the viewport onto a grid.
// The grid's top-left corner is drawn at (OriginX, OriginY).
type Camera struct {
	OriginX, OriginY float32

	// CellSize is pixels per cell at zoom 1
	CellSize float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Grid dimensions in cells
	Cols, Rows int

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera with the grid at the screen origin and 1:1 zoom.
func New(cols, rows int, cellSize float32) *Camera {
	return &Camera{
		CellSize: cellSize,
		Zoom:     1.0,
		Cols:     cols,
		Rows:     rows,
		MinZoom:  0.25,
		MaxZoom:  4.0,
	}
}

// Fit creates a camera whose zoom shows the whole grid inside the viewport,
// centered on it.
func Fit(viewportW, viewportH float32, cols, rows int, cellSize float32) *Camera {
	c := New(cols, rows, cellSize)
	zx := viewportW / (float32(cols) * cellSize)
	zy := viewportH / (float32(rows) * cellSize)
	c.Zoom = zx
	if zy < c.Zoom {
		c.Zoom = zy
	}
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)

	c.OriginX = (viewportW - c.GridWidth()) / 2
	c.OriginY = (viewportH - c.GridHeight()) / 2
	return c
}

// CellPixels returns the on-screen size of one cell.
func (c *Camera) CellPixels() float32 {
	return c.CellSize * c.Zoom
}

// GridWidth returns the on-screen width of the whole grid.
func (c *Camera) GridWidth() float32 {
	return float32(c.Cols) * c.CellPixels()
}

// GridHeight returns the on-screen height of the whole grid.
func (c *Camera) GridHeight() float32 {
	return float32(c.Rows) * c.CellPixels()
}

// CellToScreen returns the top-left screen position of a cell.
func (c *Camera) CellToScreen(cell grid.Coord) (sx, sy float32) {
	px := c.CellPixels()
	return c.OriginX + float32(cell.X)*px, c.OriginY + float32(cell.Y)*px
}

// ScreenToCell returns the cell under a screen position and whether it is on the grid.
func (c *Camera) ScreenToCell(sx, sy float32) (grid.Coord, bool) {
	dx := sx - c.OriginX
	dy := sy - c.OriginY
	if dx < 0 || dy < 0 {
		return grid.Coord{}, false
	}
	px := c.CellPixels()
	cell := grid.Coord{X: int(dx / px), Y: int(dy / px)}
	if cell.X >= c.Cols || cell.Y >= c.Rows {
		return grid.Coord{}, false
	}
	return cell, true
}

// ZoomAt multiplies the zoom by factor while keeping the point (sx, sy) fixed on screen.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	oldZoom := c.Zoom
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	if c.Zoom == oldZoom {
		return
	}
	ratio := c.Zoom / oldZoom
	c.OriginX = sx - (sx-c.OriginX)*ratio
	c.OriginY = sy - (sy-c.OriginY)*ratio
}

// Pan moves the grid by (dx, dy) screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.OriginX += dx
	c.OriginY += dy
}

// ScrollStep is the screen distance of one Scroll step at zoom 1.
const ScrollStep = 8

// Scroll moves the view by (dirX, dirY) steps. Positive X reveals cells to
// the right, positive Y cells below. Steps shrink as zoom grows so a key press
// covers the same amount of grid at any zoom.
func (c *Camera) Scroll(dirX, dirY float32) {
	step := ScrollStep / c.Zoom
	c.Pan(-dirX*step, -dirY*step)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
