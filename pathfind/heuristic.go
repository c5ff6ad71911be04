package pathfind

import "github.com/pthm-cable/gridpath/grid"

// Heuristic estimates the remaining cost from a cell to the goal.
type Heuristic func(from, goal grid.Coord) int

// Manhattan returns |a.x-b.x| + |a.y-b.y|. It is admissible and consistent for
// unit-cost 4-directional movement.
func Manhattan(a, b grid.Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
