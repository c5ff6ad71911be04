package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/gridpath/grid"
	"github.com/pthm-cable/gridpath/pathfind"
)

// RunRecord is one search run as written to runs.csv.
type RunRecord struct {
	RunID          string  `csv:"run_id"`
	Seed           int64   `csv:"seed"`
	Width          int     `csv:"width"`
	Height         int     `csv:"height"`
	ObstacleChance float64 `csv:"obstacle_chance"`
	Blocked        int     `csv:"blocked"`

	StartX int `csv:"start_x"`
	StartY int `csv:"start_y"`
	GoalX  int `csv:"goal_x"`
	GoalY  int `csv:"goal_y"`

	Found      bool `csv:"found"`
	PathLength int  `csv:"path_length"` // cells, start and goal inclusive
	Cost       int  `csv:"cost"`
	Manhattan  int  `csv:"manhattan"`
	Expanded   int  `csv:"expanded"`
	Discovered int  `csv:"discovered"`

	DurationUS int64 `csv:"duration_us"`
}

// NewRunRecord flattens a search outcome into a CSV row.
func NewRunRecord(runID string, seed int64, g *grid.Grid, chance float64, start, goal grid.Coord, res pathfind.Result, elapsed time.Duration) RunRecord {
	return RunRecord{
		RunID:          runID,
		Seed:           seed,
		Width:          g.Width(),
		Height:         g.Height(),
		ObstacleChance: chance,
		Blocked:        g.BlockedCount(),
		StartX:         start.X,
		StartY:         start.Y,
		GoalX:          goal.X,
		GoalY:          goal.Y,
		Found:          res.Found,
		PathLength:     len(res.Path),
		Cost:           res.Cost,
		Manhattan:      pathfind.Manhattan(start, goal),
		Expanded:       res.Expanded,
		Discovered:     res.Discovered,
		DurationUS:     elapsed.Microseconds(),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (r RunRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", r.RunID),
		slog.Int64("seed", r.Seed),
		slog.String("start", grid.Coord{X: r.StartX, Y: r.StartY}.String()),
		slog.String("goal", grid.Coord{X: r.GoalX, Y: r.GoalY}.String()),
		slog.Bool("found", r.Found),
		slog.Int("cost", r.Cost),
		slog.Int("expanded", r.Expanded),
		slog.Int("discovered", r.Discovered),
		slog.Int64("duration_us", r.DurationUS),
	)
}

// PathRecord is one cell of a path as written to path.csv.
type PathRecord struct {
	RunID string `csv:"run_id"`
	Step  int    `csv:"step"`
	X     int    `csv:"x"`
	Y     int    `csv:"y"`
}

// PathRecords converts a path into CSV rows.
func PathRecords(runID string, path pathfind.Path) []PathRecord {
	records := make([]PathRecord, len(path))
	for i, c := range path {
		records[i] = PathRecord{RunID: runID, Step: i, X: c.X, Y: c.Y}
	}
	return records
}
