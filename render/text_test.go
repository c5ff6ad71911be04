package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pthm-cable/gridpath/grid"
)

// TestGridWithPath verifies glyph selection and row layout.
func TestGridWithPath(t *testing.T) {
	g := grid.MustNew(3, 2)
	_ = g.SetBlocked(grid.Coord{X: 1, Y: 1}, true)
	path := []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}}

	var buf bytes.Buffer
	if err := Grid(&buf, g, path, DefaultGlyphs); err != nil {
		t.Fatal(err)
	}

	want := "* * * \n_ O * \n"
	if got := buf.String(); got != want {
		t.Errorf("Grid() =\n%q\nwant\n%q", got, want)
	}
}

// TestGridRoundTrip verifies rendered output parses back into the same grid.
func TestGridRoundTrip(t *testing.T) {
	g := grid.MustNew(4, 3)
	_ = g.SetBlocked(grid.Coord{X: 0, Y: 2}, true)
	_ = g.SetBlocked(grid.Coord{X: 3, Y: 0}, true)

	var buf bytes.Buffer
	if err := Grid(&buf, g, nil, DefaultGlyphs); err != nil {
		t.Fatal(err)
	}

	back, err := grid.Parse(strings.Split(buf.String(), "\n"))
	if err != nil {
		t.Fatalf("Parse rendered grid: %v", err)
	}
	if back.Width() != 4 || back.Height() != 3 || back.BlockedCount() != 2 {
		t.Errorf("parsed %dx%d with %d blocked, want 4x3 with 2", back.Width(), back.Height(), back.BlockedCount())
	}
}

// TestGridCustomGlyphs verifies configured characters are used.
func TestGridCustomGlyphs(t *testing.T) {
	g := grid.MustNew(2, 1)
	_ = g.SetBlocked(grid.Coord{X: 1, Y: 0}, true)

	var buf bytes.Buffer
	_ = Grid(&buf, g, nil, Glyphs{Blocked: "#", Path: "o", Open: "."})
	if got := buf.String(); got != ". # \n" {
		t.Errorf("Grid() = %q, want %q", got, ". # \n")
	}
}

func TestPath(t *testing.T) {
	var buf bytes.Buffer
	_ = Path(&buf, []grid.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}})
	if got := buf.String(); got != "(0,0),(0,1)," {
		t.Errorf("Path() = %q, want %q", got, "(0,0),(0,1),")
	}
}
