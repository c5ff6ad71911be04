package pathfind

import (
	"strings"

	"github.com/pthm-cable/gridpath/grid"
)

// Path is an ordered route from start to goal inclusive.
type Path []grid.Coord

// reconstruct builds the path by following parent links from the goal node.
func reconstruct(f *Frontier, goal int) Path {
	var path Path
	for i := goal; i != noParent; i = f.nodes[i].parent {
		path = append(path, f.nodes[i].coord)
	}

	// Reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Cost returns the number of unit steps along the path.
func (p Path) Cost() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Contiguous reports whether consecutive cells differ by exactly one unit on
// exactly one axis.
func (p Path) Contiguous() bool {
	for i := 1; i < len(p); i++ {
		if Manhattan(p[i-1], p[i]) != 1 {
			return false
		}
	}
	return true
}

// Valid reports whether the path is contiguous, in bounds and avoids blocked
// cells. The first cell is exempt from the passability check because blocked
// starts are not rejected.
func (p Path) Valid(g *grid.Grid) bool {
	if !p.Contiguous() {
		return false
	}
	for i, c := range p {
		if !g.InBounds(c) {
			return false
		}
		if i > 0 && g.IsBlocked(c) {
			return false
		}
	}
	return true
}

// Contains reports whether c is on the path.
func (p Path) Contains(c grid.Coord) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// String renders the path as (x,y),(x,y),...
func (p Path) String() string {
	var sb strings.Builder
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
