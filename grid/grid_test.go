package grid

import (
	"errors"
	"math/rand"
	"testing"
)

// TestBounds verifies InBounds, IsPassable and IsBlocked at and beyond the edges.
func TestBounds(t *testing.T) {
	g := MustNew(4, 3)
	if err := g.SetBlocked(Coord{X: 1, Y: 1}, true); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}

	tests := []struct {
		c        Coord
		inBounds bool
		passable bool
	}{
		{Coord{0, 0}, true, true},
		{Coord{3, 2}, true, true},
		{Coord{1, 1}, true, false},
		{Coord{-1, 0}, false, false},
		{Coord{0, -1}, false, false},
		{Coord{4, 0}, false, false},
		{Coord{0, 3}, false, false},
	}

	for _, tc := range tests {
		if got := g.InBounds(tc.c); got != tc.inBounds {
			t.Errorf("InBounds(%v) = %v, want %v", tc.c, got, tc.inBounds)
		}
		if got := g.IsPassable(tc.c); got != tc.passable {
			t.Errorf("IsPassable(%v) = %v, want %v", tc.c, got, tc.passable)
		}
		if got := g.IsBlocked(tc.c); got != !tc.passable {
			t.Errorf("IsBlocked(%v) = %v, want %v", tc.c, got, !tc.passable)
		}
	}
}

// TestSetBlockedOutOfBounds verifies construction rejects coordinates outside the grid.
func TestSetBlockedOutOfBounds(t *testing.T) {
	g := MustNew(2, 2)
	err := g.SetBlocked(Coord{X: 2, Y: 0}, true)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("SetBlocked out of bounds: got %v, want ErrOutOfBounds", err)
	}
	if g.BlockedCount() != 0 {
		t.Errorf("BlockedCount = %d after rejected write, want 0", g.BlockedCount())
	}
}

// TestNewInvalidSize verifies zero, negative and oversized dimensions are rejected.
func TestNewInvalidSize(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {1 << 31, 1 << 31}, {1 << 32, 1 << 32}, {MaxCells, 2}} {
		if _, err := New(dims[0], dims[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", dims[0], dims[1], err)
		}
	}
}

// TestCell verifies the state lookup and its out-of-bounds signal.
func TestCell(t *testing.T) {
	g := MustNew(2, 1)
	_ = g.SetBlocked(Coord{X: 1, Y: 0}, true)

	if s, ok := g.Cell(Coord{X: 0, Y: 0}); !ok || s != Open {
		t.Errorf("Cell(0,0) = %v, %v; want open, true", s, ok)
	}
	if s, ok := g.Cell(Coord{X: 1, Y: 0}); !ok || s != Blocked {
		t.Errorf("Cell(1,0) = %v, %v; want blocked, true", s, ok)
	}
	if _, ok := g.Cell(Coord{X: 5, Y: 0}); ok {
		t.Error("Cell(5,0) reported in bounds")
	}
}

// TestGenerateDeterministic verifies a seed reproduces the same world.
func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(15, 15, DefaultObstacleChance, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(15, 15, DefaultObstacleChance, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 15; y++ {
		for x := 0; x < 15; x++ {
			c := Coord{X: x, Y: y}
			if a.IsBlocked(c) != b.IsBlocked(c) {
				t.Fatalf("cell %v differs between runs with the same seed", c)
			}
		}
	}
}

// TestGenerateChance verifies the extremes and a rough density.
func TestGenerateChance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	empty, _ := Generate(10, 10, 0, rng)
	if n := empty.BlockedCount(); n != 0 {
		t.Errorf("chance 0: %d blocked cells, want 0", n)
	}

	full, _ := Generate(10, 10, 1, rng)
	if n := full.BlockedCount(); n != 100 {
		t.Errorf("chance 1: %d blocked cells, want 100", n)
	}

	big, _ := Generate(100, 100, 0.1, rng)
	if n := big.BlockedCount(); n < 800 || n > 1200 {
		t.Errorf("chance 0.1 on 10000 cells: %d blocked, want roughly 1000", n)
	}

	if _, err := Generate(3, 3, 1.5, rng); err == nil {
		t.Error("Generate accepted chance 1.5")
	}
}

// TestParse verifies text maps, including rendered output with spaces.
func TestParse(t *testing.T) {
	g, err := Parse([]string{
		"_ O _",
		"_ _ *",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", g.Width(), g.Height())
	}
	if !g.IsBlocked(Coord{X: 1, Y: 0}) {
		t.Error("(1,0) should be blocked")
	}
	if g.BlockedCount() != 1 {
		t.Errorf("BlockedCount = %d, want 1", g.BlockedCount())
	}
}

// TestParseErrors verifies ragged and unknown input is rejected.
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"___", "__"}},
		{"unknown glyph", []string{"_x_"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.rows); !errors.Is(err, ErrBadMap) {
				t.Errorf("Parse(%q) error = %v, want ErrBadMap", tt.rows, err)
			}
		})
	}
}

// TestNewMaxCells verifies the largest allowed grid is usable.
func TestNewMaxCells(t *testing.T) {
	g, err := New(MaxCells/4, 4)
	if err != nil {
		t.Fatalf("New(%d, 4): %v", MaxCells/4, err)
	}
	last := Coord{X: MaxCells/4 - 1, Y: 3}
	if !g.IsPassable(last) {
		t.Errorf("IsPassable(%v) = false, want true", last)
	}
}

// TestOpenCells verifies row-major enumeration order.
func TestOpenCells(t *testing.T) {
	g := MustNew(2, 2)
	_ = g.SetBlocked(Coord{X: 0, Y: 0}, true)

	open := g.OpenCells()
	want := []Coord{{1, 0}, {0, 1}, {1, 1}}
	if len(open) != len(want) {
		t.Fatalf("OpenCells = %v, want %v", open, want)
	}
	for i := range want {
		if open[i] != want[i] {
			t.Errorf("OpenCells[%d] = %v, want %v", i, open[i], want[i])
		}
	}
}

func TestCoordString(t *testing.T) {
	if got := (Coord{X: 3, Y: 12}).String(); got != "(3,12)" {
		t.Errorf("String() = %q, want %q", got, "(3,12)")
	}
}
