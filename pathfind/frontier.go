package pathfind

import (
	"container/heap"

	"github.com/pthm-cable/gridpath/grid"
)

// noParent marks the root of the back-link tree.
const noParent = -1

// Set selects the open or closed partition for Frontier.Contains.
type Set uint8

const (
	SetOpen Set = iota
	SetClosed
)

// Node is a read-only view of a search node.
type Node struct {
	Coord  grid.Coord
	G      int // cost from start
	H      int // estimate to goal, fixed at discovery
	Parent int // arena index of the predecessor, -1 for the start
}

// F returns G + H.
func (n Node) F() int { return n.G + n.H }

// searchNode is one cell's state in the arena.
type searchNode struct {
	coord     grid.Coord
	g, h      int
	parent    int
	seq       int // first-insertion order, breaks f ties
	heapIndex int // -1 when not in the open heap
	closed    bool
}

// openHeap implements heap.Interface over arena indices, ordered by (f, seq).
type openHeap struct {
	nodes *[]searchNode
	ids   []int
}

func (h openHeap) Len() int { return len(h.ids) }
func (h openHeap) Less(i, j int) bool {
	a := &(*h.nodes)[h.ids[i]]
	b := &(*h.nodes)[h.ids[j]]
	if fa, fb := a.g+a.h, b.g+b.h; fa != fb {
		return fa < fb
	}
	return a.seq < b.seq
}
func (h openHeap) Swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
	(*h.nodes)[h.ids[i]].heapIndex = i
	(*h.nodes)[h.ids[j]].heapIndex = j
}

func (h *openHeap) Push(x any) {
	id := x.(int)
	(*h.nodes)[id].heapIndex = len(h.ids)
	h.ids = append(h.ids, id)
}

func (h *openHeap) Pop() any {
	n := len(h.ids)
	id := h.ids[n-1]
	(*h.nodes)[id].heapIndex = -1
	h.ids = h.ids[:n-1]
	return id
}

// Frontier tracks the open and closed sets of a single search run.
// Nodes live in an arena and refer to their parent by index.
type Frontier struct {
	nodes []searchNode
	index map[grid.Coord]int
	open  openHeap
}

// NewFrontier creates an empty frontier.
func NewFrontier() *Frontier {
	f := &Frontier{
		nodes: make([]searchNode, 0, 64),
		index: make(map[grid.Coord]int, 64),
	}
	f.open.nodes = &f.nodes
	return f
}

// PopBest removes and returns the arena index of the open node with the lowest
// f. Among equal f the node discovered first wins. Returns false when the open
// set is empty.
func (f *Frontier) PopBest() (int, bool) {
	if f.open.Len() == 0 {
		return 0, false
	}
	return heap.Pop(&f.open).(int), true
}

// RelaxOrInsert offers a route to c with cost g via parent. An open node with
// an equal or cheaper cost is left alone, as is any closed node. h is called
// only when c is seen for the first time. Reports whether the frontier changed.
func (f *Frontier) RelaxOrInsert(c grid.Coord, g, parent int, h func(grid.Coord) int) bool {
	if i, ok := f.index[c]; ok {
		n := &f.nodes[i]
		if n.closed || n.heapIndex < 0 || n.g <= g {
			return false
		}
		n.g = g
		n.parent = parent
		heap.Fix(&f.open, n.heapIndex)
		return true
	}

	i := len(f.nodes)
	f.nodes = append(f.nodes, searchNode{
		coord:     c,
		g:         g,
		h:         h(c),
		parent:    parent,
		seq:       i,
		heapIndex: -1,
	})
	f.index[c] = i
	heap.Push(&f.open, i)
	return true
}

// MarkClosed finalizes node i. It is removed from the open set if still there
// and excluded from any further relaxation.
func (f *Frontier) MarkClosed(i int) {
	n := &f.nodes[i]
	if n.heapIndex >= 0 {
		heap.Remove(&f.open, n.heapIndex)
	}
	n.closed = true
}

// Contains reports whether c is in the given set.
func (f *Frontier) Contains(c grid.Coord, set Set) bool {
	i, ok := f.index[c]
	if !ok {
		return false
	}
	n := &f.nodes[i]
	if set == SetClosed {
		return n.closed
	}
	return n.heapIndex >= 0
}

// Node returns a copy of arena node i.
func (f *Frontier) Node(i int) Node {
	n := &f.nodes[i]
	return Node{Coord: n.coord, G: n.g, H: n.h, Parent: n.parent}
}

// Lookup returns the arena index of c.
func (f *Frontier) Lookup(c grid.Coord) (int, bool) {
	i, ok := f.index[c]
	return i, ok
}

// OpenLen returns the number of open nodes.
func (f *Frontier) OpenLen() int { return f.open.Len() }

// Discovered returns the number of nodes ever inserted.
func (f *Frontier) Discovered() int { return len(f.nodes) }

// OpenCoords lists open cells in discovery order.
func (f *Frontier) OpenCoords() []grid.Coord {
	out := make([]grid.Coord, 0, f.open.Len())
	for i := range f.nodes {
		if f.nodes[i].heapIndex >= 0 {
			out = append(out, f.nodes[i].coord)
		}
	}
	return out
}

// ClosedCoords lists closed cells in discovery order.
func (f *Frontier) ClosedCoords() []grid.Coord {
	var out []grid.Coord
	for i := range f.nodes {
		if f.nodes[i].closed {
			out = append(out, f.nodes[i].coord)
		}
	}
	return out
}
