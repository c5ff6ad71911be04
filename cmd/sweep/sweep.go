package main

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/gridpath/grid"
	"github.com/pthm-cable/gridpath/pathfind"
	"github.com/pthm-cable/gridpath/telemetry"
)

// trial is one generated world with its endpoints. Trials are built
// sequentially from the seeded RNG so a sweep is reproducible regardless of
// how many workers search them.
type trial struct {
	runID       string
	world       *grid.Grid
	start, goal grid.Coord
}

// outcome is the searched result for a trial.
type outcome struct {
	res     pathfind.Result
	err     error
	elapsed time.Duration
}

// sweepOptions configures one density sweep.
type sweepOptions struct {
	Width, Height int
	Trials        int
	Chances       []float64
	MaxExpansions int
	Seed          int64
	Workers       int // 0 = GOMAXPROCS
}

// sweepResult holds every run and the per-chance summaries.
type sweepResult struct {
	Runs      []telemetry.RunRecord
	Paths     [][]telemetry.PathRecord
	Summaries []telemetry.Summary
}

// runSweep searches opts.Trials random worlds for each obstacle chance.
// onChance, if non-nil, is called after each chance completes.
func runSweep(opts sweepOptions, onChance func(telemetry.Summary)) (*sweepResult, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	out := &sweepResult{}

	for _, chance := range opts.Chances {
		trials, err := buildTrials(opts, chance, rng)
		if err != nil {
			return nil, err
		}
		outcomes := searchAll(trials, opts.MaxExpansions, opts.Workers)

		runs := make([]telemetry.RunRecord, 0, len(trials))
		for i, t := range trials {
			o := outcomes[i]
			if o.err != nil {
				return nil, fmt.Errorf("chance %v run %s: %w", chance, t.runID, o.err)
			}
			runs = append(runs, telemetry.NewRunRecord(t.runID, opts.Seed, t.world, chance, t.start, t.goal, o.res, o.elapsed))
			out.Paths = append(out.Paths, telemetry.PathRecords(t.runID, o.res.Path))
		}

		s := telemetry.Summarize(chance, runs)
		out.Runs = append(out.Runs, runs...)
		out.Summaries = append(out.Summaries, s)
		if onChance != nil {
			onChance(s)
		}
	}
	return out, nil
}

// maxRegenerate bounds consecutive fully blocked worlds before giving up.
const maxRegenerate = 100

// errNoOpenCells is returned when a chance keeps producing fully blocked worlds.
var errNoOpenCells = errors.New("no open cells")

// buildTrials generates the worlds for one chance. Endpoints are drawn from
// open cells; a world with no open cell is regenerated.
func buildTrials(opts sweepOptions, chance float64, rng *rand.Rand) ([]trial, error) {
	trials := make([]trial, 0, opts.Trials)
	for misses := 0; len(trials) < opts.Trials; {
		w, err := grid.Generate(opts.Width, opts.Height, chance, rng)
		if err != nil {
			return nil, err
		}
		open := w.OpenCells()
		if len(open) == 0 {
			if misses++; misses >= maxRegenerate {
				return nil, fmt.Errorf("chance %v: %w in %d worlds", chance, errNoOpenCells, misses)
			}
			continue
		}
		misses = 0
		trials = append(trials, trial{
			runID: uuid.NewString(),
			world: w,
			start: open[rng.Intn(len(open))],
			goal:  open[rng.Intn(len(open))],
		})
	}
	return trials, nil
}

// searchAll runs every trial on a pool of workers. Each search owns its
// frontier, so workers share nothing but the read-only trials.
func searchAll(trials []trial, maxExpansions, workers int) []outcome {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	outcomes := make([]outcome, len(trials))
	work := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				t := trials[i]
				began := time.Now()
				res, err := pathfind.Find(t.world, t.start, t.goal, pathfind.WithMaxExpansions(maxExpansions))
				outcomes[i] = outcome{res: res, err: err, elapsed: time.Since(began)}
			}
		}()
	}
	for i := range trials {
		work <- i
	}
	close(work)
	wg.Wait()

	return outcomes
}
