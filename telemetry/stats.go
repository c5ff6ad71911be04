package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the runs of one obstacle chance.
type Summary struct {
	ObstacleChance float64 `csv:"obstacle_chance"`
	Trials         int     `csv:"trials"`
	Found          int     `csv:"found"`
	FoundRate      float64 `csv:"found_rate"`

	// Path cost over found runs
	CostMean float64 `csv:"cost_mean"`
	CostStd  float64 `csv:"cost_std"`
	CostP50  float64 `csv:"cost_p50"`
	CostP90  float64 `csv:"cost_p90"`

	// Detour is cost / manhattan over found runs with distinct endpoints
	DetourMean float64 `csv:"detour_mean"`

	// Expansions over all runs
	ExpandedMean float64 `csv:"expanded_mean"`
	ExpandedStd  float64 `csv:"expanded_std"`
	ExpandedP50  float64 `csv:"expanded_p50"`
	ExpandedP90  float64 `csv:"expanded_p90"`

	DurationMeanUS float64 `csv:"duration_mean_us"`
}

// Summarize computes distribution statistics for a batch of runs.
func Summarize(chance float64, runs []RunRecord) Summary {
	s := Summary{ObstacleChance: chance, Trials: len(runs)}
	if len(runs) == 0 {
		return s
	}

	var costs, detours []float64
	expanded := make([]float64, 0, len(runs))
	durations := make([]float64, 0, len(runs))
	for _, r := range runs {
		expanded = append(expanded, float64(r.Expanded))
		durations = append(durations, float64(r.DurationUS))
		if !r.Found {
			continue
		}
		s.Found++
		costs = append(costs, float64(r.Cost))
		if r.Manhattan > 0 {
			detours = append(detours, float64(r.Cost)/float64(r.Manhattan))
		}
	}

	s.FoundRate = float64(s.Found) / float64(s.Trials)
	s.CostMean, s.CostStd, s.CostP50, s.CostP90 = Distribution(costs)
	s.ExpandedMean, s.ExpandedStd, s.ExpandedP50, s.ExpandedP90 = Distribution(expanded)
	if len(detours) > 0 {
		s.DetourMean = stat.Mean(detours, nil)
	}
	s.DurationMeanUS = stat.Mean(durations, nil)

	return s
}

// Distribution returns mean, sample standard deviation, median and 90th
// percentile. Empty input yields zeros; a single value has zero spread.
func Distribution(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("obstacle_chance", s.ObstacleChance),
		slog.Int("trials", s.Trials),
		slog.Float64("found_rate", s.FoundRate),
		slog.Float64("cost_mean", s.CostMean),
		slog.Float64("cost_p90", s.CostP90),
		slog.Float64("detour_mean", s.DetourMean),
		slog.Float64("expanded_mean", s.ExpandedMean),
		slog.Float64("expanded_p90", s.ExpandedP90),
	)
}
