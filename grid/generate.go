package grid

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// DefaultObstacleChance is the probability of a generated cell being blocked.
const DefaultObstacleChance = 0.10

// ErrBadMap is returned by Parse for malformed text maps.
var ErrBadMap = errors.New("malformed map")

// Generate creates a grid where each cell is independently blocked with the
// given probability.
func Generate(width, height int, chance float64, rng *rand.Rand) (*Grid, error) {
	if chance < 0 || chance > 1 {
		return nil, fmt.Errorf("obstacle chance %v outside [0,1]", chance)
	}
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}
	for i := range g.cells {
		// Draw for every cell so a seed maps to the same layout regardless of chance
		g.cells[i] = rng.Float64() < chance
	}
	return g, nil
}

// Parse builds a grid from text rows, one row per y. 'O' and '#' are blocked,
// '_' and '.' are open. Spaces are ignored so rendered output parses back.
func Parse(rows []string) (*Grid, error) {
	var cleaned []string
	for _, r := range rows {
		r = strings.ReplaceAll(strings.TrimRight(r, "\r\n"), " ", "")
		if r == "" {
			continue
		}
		cleaned = append(cleaned, r)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadMap)
	}

	width := len(cleaned[0])
	g, err := New(width, len(cleaned))
	if err != nil {
		return nil, err
	}
	for y, row := range cleaned {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadMap, y, len(row), width)
		}
		for x, ch := range row {
			switch ch {
			case 'O', '#':
				g.cells[y*width+x] = true
			case '_', '.', '*':
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %v", ErrBadMap, ch, Coord{X: x, Y: y})
			}
		}
	}
	return g, nil
}
