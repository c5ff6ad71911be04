package pathfind

import (
	"testing"

	"github.com/pthm-cable/gridpath/grid"
)

func constH(values map[grid.Coord]int) func(grid.Coord) int {
	return func(c grid.Coord) int { return values[c] }
}

// TestFrontierTieBreak verifies equal f pops in first-insertion order.
func TestFrontierTieBreak(t *testing.T) {
	a, b, c, d := grid.Coord{X: 0}, grid.Coord{X: 1}, grid.Coord{X: 2}, grid.Coord{X: 3}
	h := constH(map[grid.Coord]int{a: 5, b: 5, c: 3, d: 5})

	f := NewFrontier()
	for _, co := range []grid.Coord{a, b, c, d} {
		f.RelaxOrInsert(co, 0, noParent, h)
	}

	want := []grid.Coord{c, a, b, d}
	for i, w := range want {
		idx, ok := f.PopBest()
		if !ok {
			t.Fatalf("pop %d: frontier empty", i)
		}
		if got := f.Node(idx).Coord; got != w {
			t.Errorf("pop %d = %v, want %v", i, got, w)
		}
		f.MarkClosed(idx)
	}
	if _, ok := f.PopBest(); ok {
		t.Error("PopBest on drained frontier returned a node")
	}
}

// TestFrontierRejectOnTie verifies equal-cost routes never replace the parent.
func TestFrontierRejectOnTie(t *testing.T) {
	c := grid.Coord{X: 4, Y: 4}
	calls := 0
	h := func(grid.Coord) int {
		calls++
		return 2
	}

	f := NewFrontier()
	if !f.RelaxOrInsert(c, 3, 10, h) {
		t.Fatal("first insert reported no change")
	}
	if f.RelaxOrInsert(c, 3, 11, h) {
		t.Error("equal cost route was accepted")
	}
	if f.RelaxOrInsert(c, 4, 12, h) {
		t.Error("worse route was accepted")
	}

	idx, _ := f.Lookup(c)
	if n := f.Node(idx); n.Parent != 10 || n.G != 3 {
		t.Errorf("after rejected routes: parent=%d g=%d, want parent=10 g=3", n.Parent, n.G)
	}

	if !f.RelaxOrInsert(c, 2, 13, h) {
		t.Error("cheaper route was rejected")
	}
	n := f.Node(idx)
	if n.Parent != 13 || n.G != 2 || n.F() != 4 {
		t.Errorf("after relaxation: parent=%d g=%d f=%d, want 13, 2, 4", n.Parent, n.G, n.F())
	}
	if calls != 1 {
		t.Errorf("heuristic called %d times, want 1", calls)
	}
	if f.Discovered() != 1 {
		t.Errorf("Discovered = %d, want 1", f.Discovered())
	}
}

// TestFrontierRelaxReorders verifies a relaxed node moves ahead in the heap.
func TestFrontierRelaxReorders(t *testing.T) {
	a, b := grid.Coord{X: 0}, grid.Coord{X: 1}
	h := constH(nil)

	f := NewFrontier()
	f.RelaxOrInsert(a, 5, noParent, h)
	f.RelaxOrInsert(b, 4, noParent, h)
	f.RelaxOrInsert(a, 3, noParent, h)

	idx, _ := f.PopBest()
	if got := f.Node(idx).Coord; got != a {
		t.Errorf("PopBest = %v, want relaxed node %v", got, a)
	}
}

// TestFrontierClosed verifies closed nodes are excluded from relaxation and membership.
func TestFrontierClosed(t *testing.T) {
	c := grid.Coord{X: 1, Y: 2}
	other := grid.Coord{X: 2, Y: 2}
	h := constH(nil)

	f := NewFrontier()
	f.RelaxOrInsert(c, 5, noParent, h)
	f.RelaxOrInsert(other, 6, noParent, h)
	if !f.Contains(c, SetOpen) || f.Contains(c, SetClosed) {
		t.Fatal("new node should be open and not closed")
	}

	idx, _ := f.Lookup(c)
	f.MarkClosed(idx)
	if f.Contains(c, SetOpen) || !f.Contains(c, SetClosed) {
		t.Error("closed node should be closed and not open")
	}
	if f.RelaxOrInsert(c, 0, noParent, h) {
		t.Error("closed node accepted a cheaper route")
	}
	if f.OpenLen() != 1 {
		t.Errorf("OpenLen = %d, want 1", f.OpenLen())
	}
	if got := f.ClosedCoords(); len(got) != 1 || got[0] != c {
		t.Errorf("ClosedCoords = %v, want [%v]", got, c)
	}
	if got := f.OpenCoords(); len(got) != 1 || got[0] != other {
		t.Errorf("OpenCoords = %v, want [%v]", got, other)
	}
	if f.Contains(grid.Coord{X: 9, Y: 9}, SetOpen) {
		t.Error("unknown coordinate reported open")
	}
}
