// Package render draws grids and paths as text.
package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pthm-cable/gridpath/grid"
)

// Glyphs selects the characters used for each cell kind.
type Glyphs struct {
	Blocked string
	Path    string
	Open    string
}

// DefaultGlyphs are the classic rock/route/ground characters.
var DefaultGlyphs = Glyphs{Blocked: "O", Path: "*", Open: "_"}

// Grid writes one line per row, each cell followed by a space. Cells on path
// are drawn with the path glyph unless blocked. path may be nil.
func Grid(w io.Writer, g *grid.Grid, path []grid.Coord, glyphs Glyphs) error {
	onPath := make(map[grid.Coord]struct{}, len(path))
	for _, c := range path {
		onPath[c] = struct{}{}
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := grid.Coord{X: x, Y: y}
			glyph := glyphs.Open
			if g.IsBlocked(c) {
				glyph = glyphs.Blocked
			} else if _, ok := onPath[c]; ok {
				glyph = glyphs.Path
			}
			bw.WriteString(glyph)
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Path writes the route as (x,y),(x,y), with a trailing comma.
func Path(w io.Writer, path []grid.Coord) error {
	bw := bufio.NewWriter(w)
	for _, c := range path {
		fmt.Fprintf(bw, "%s,", c)
	}
	return bw.Flush()
}
