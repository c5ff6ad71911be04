// Package main sweeps obstacle density and reports how often A* finds a path,
// how long the paths are and how many nodes each search expands.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/gridpath/config"
	"github.com/pthm-cable/gridpath/pathfind"
	"github.com/pthm-cable/gridpath/telemetry"
)

// formatDuration formats a duration as MMmSSs, or HHhMMmSSs for longer runs.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	outputDir := flag.String("output", "", "Output directory for runs, summary and config (empty = print only)")
	trials := flag.Int("trials", 0, "Worlds per obstacle chance (0 = use config)")
	seed := flag.Int64("seed", 42, "RNG seed for world generation")
	workers := flag.Int("workers", 0, "Parallel searches (0 = GOMAXPROCS)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *trials > 0 {
		cfg.Sweep.Trials = *trials
	}
	if len(cfg.Sweep.Chances) == 0 {
		slog.Error("sweep.chances is empty")
		os.Exit(1)
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	opts := sweepOptions{
		Width:         cfg.Sweep.Width,
		Height:        cfg.Sweep.Height,
		Trials:        cfg.Sweep.Trials,
		Chances:       cfg.Sweep.Chances,
		MaxExpansions: cfg.Search.MaxExpansions,
		Seed:          *seed,
		Workers:       *workers,
	}

	fmt.Printf("Sweeping %d obstacle chances on %dx%d worlds, %d trials each, seed %d\n\n",
		len(opts.Chances), opts.Width, opts.Height, opts.Trials, opts.Seed)
	fmt.Printf("%7s %7s %9s %9s %9s %9s %9s\n", "chance", "found", "cost", "cost_p90", "detour", "expanded", "exp_p90")

	startTime := time.Now()
	res, err := runSweep(opts, func(s telemetry.Summary) {
		fmt.Printf("%7.2f %6.1f%% %9.2f %9.1f %9.3f %9.1f %9.1f\n",
			s.ObstacleChance, 100*s.FoundRate, s.CostMean, s.CostP90, s.DetourMean, s.ExpandedMean, s.ExpandedP90)
		slog.Info("chance complete", "summary", s)
	})
	if err != nil {
		if errors.Is(err, pathfind.ErrExpansionLimit) {
			slog.Error("sweep hit the expansion limit; raise search.max_expansions", "error", err)
		} else {
			slog.Error("sweep failed", "error", err)
		}
		os.Exit(1)
	}
	fmt.Printf("\nSweep complete: %d runs in %s\n", len(res.Runs), formatDuration(time.Since(startTime)))

	if err := writeResults(out, res); err != nil {
		slog.Error("failed to write results", "error", err)
		os.Exit(1)
	}
	if out != nil {
		fmt.Printf("Results saved to: %s\n", out.Dir())
	}
}

// writeResults writes runs, paths and summaries, then closes the output.
func writeResults(out *telemetry.OutputManager, res *sweepResult) error {
	for _, r := range res.Runs {
		if err := out.WriteRun(r); err != nil {
			return err
		}
	}
	for _, p := range res.Paths {
		if err := out.WritePath(p); err != nil {
			return err
		}
	}
	if err := out.WriteSummaries(res.Summaries); err != nil {
		return err
	}
	return out.Close()
}
