package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/gridpath/config"
	"github.com/pthm-cable/gridpath/grid"
	"github.com/pthm-cable/gridpath/pathfind"
	"github.com/pthm-cable/gridpath/render"
	"github.com/pthm-cable/gridpath/telemetry"
	"github.com/pthm-cable/gridpath/viewer"
)

const intro = `Welcome to the A* pathfinder.
The world above is made of open ground and rocks. Pick a starting node and a
goal node and the shortest route between them will be drawn.`

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, then time-based)")
	mapPath := flag.String("map", "", "Text map to load instead of generating a world")
	startFlag := flag.String("start", "", "Start node as x,y (empty = prompt)")
	goalFlag := flag.String("goal", "", "Goal node as x,y (empty = prompt)")
	gui := flag.Bool("gui", false, "Open the interactive viewer")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxExpansions := flag.Int("max-expansions", -1, "Expansion limit (-1 = use config, 0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stderr; stdout carries the rendered world)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *maxExpansions >= 0 {
		cfg.Search.MaxExpansions = *maxExpansions
	}
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.World.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	world, err := loadWorld(cfg, *mapPath, rng)
	if err != nil {
		slog.Error("failed to build world", "error", err)
		os.Exit(1)
	}
	cfg.SetWorldSize(world.Width(), world.Height())

	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := out.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	slog.Info("world ready",
		"seed", rngSeed,
		"width", world.Width(),
		"height", world.Height(),
		"blocked", world.BlockedCount(),
		"map", *mapPath,
	)

	glyphs := render.Glyphs{Blocked: cfg.Render.Blocked, Path: cfg.Render.Path, Open: cfg.Render.Open}
	rec := &recorder{out: out, seed: rngSeed, chance: cfg.World.ObstacleChance}
	if *mapPath != "" {
		rec.chance = 0
	}

	if *gui {
		start, goal, err := viewerEndpoints(world, *startFlag, *goalFlag)
		if err != nil {
			slog.Error("bad viewer endpoints", "error", err)
			os.Exit(1)
		}
		v := viewer.New(cfg, world, start, goal, rng)
		v.OnFinish = func(w *grid.Grid, res pathfind.Result, start, goal grid.Coord) {
			rec.record(w, start, goal, res, 0)
		}
		slog.Info("starting viewer", "start", start.String(), "goal", goal.String())
		v.Run()
		return
	}

	if err := render.Grid(os.Stdout, world, nil, glyphs); err != nil {
		slog.Error("failed to render world", "error", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println(intro)
	fmt.Println()

	prompt := newPrompter(os.Stdin, os.Stdout)
	start, err := endpoint(*startFlag, "starting", world, prompt)
	if err != nil {
		slog.Error("failed to read start", "error", err)
		os.Exit(1)
	}
	goal, err := endpoint(*goalFlag, "goal", world, prompt)
	if err != nil {
		slog.Error("failed to read goal", "error", err)
		os.Exit(1)
	}

	began := time.Now()
	res, err := pathfind.Find(world, start, goal, pathfind.WithMaxExpansions(cfg.Search.MaxExpansions))
	elapsed := time.Since(began)
	if err != nil && !errors.Is(err, pathfind.ErrExpansionLimit) {
		slog.Error("search failed", "start", start.String(), "goal", goal.String(), "error", err)
		os.Exit(1)
	}
	if err != nil {
		slog.Warn("search stopped early", "expanded", res.Expanded, "error", err)
	}
	rec.record(world, start, goal, res, elapsed)

	if err := report(os.Stdout, world, res, glyphs); err != nil {
		slog.Error("failed to render result", "error", err)
		os.Exit(1)
	}
}

// loadWorld parses the map file when one is given, otherwise generates a
// random world from the config.
func loadWorld(cfg *config.Config, mapPath string, rng *rand.Rand) (*grid.Grid, error) {
	if mapPath == "" {
		return grid.Generate(cfg.World.Width, cfg.World.Height, cfg.World.ObstacleChance, rng)
	}

	f, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("opening map: %w", err)
	}
	defer f.Close()

	var rows []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		rows = append(rows, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	g, err := grid.Parse(rows)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}
	return g, nil
}

// endpoint takes the coordinate from its flag if set, otherwise prompts.
func endpoint(flagValue, name string, g *grid.Grid, p *prompter) (grid.Coord, error) {
	if flagValue == "" {
		return p.readCoord(name, g)
	}
	return flagCoord(flagValue, name, g)
}

// flagCoord parses an x,y flag value and checks it lies inside g.
func flagCoord(value, name string, g *grid.Grid) (grid.Coord, error) {
	c, err := parseCoord(value)
	if err != nil {
		return grid.Coord{}, err
	}
	if !g.InBounds(c) {
		return grid.Coord{}, fmt.Errorf("%s node %v: %w", name, c, grid.ErrOutOfBounds)
	}
	return c, nil
}

// viewerEndpoints defaults to opposite corners. Flag values replace them and
// must lie inside the world.
func viewerEndpoints(g *grid.Grid, startFlag, goalFlag string) (start, goal grid.Coord, err error) {
	start, goal = grid.Coord{}, grid.Coord{X: g.Width() - 1, Y: g.Height() - 1}
	if startFlag != "" {
		if start, err = flagCoord(startFlag, "starting", g); err != nil {
			return start, goal, err
		}
	}
	if goalFlag != "" {
		if goal, err = flagCoord(goalFlag, "goal", g); err != nil {
			return start, goal, err
		}
	}
	return start, goal, nil
}

// report prints the outcome and the world with the path drawn.
func report(w io.Writer, g *grid.Grid, res pathfind.Result, glyphs render.Glyphs) error {
	bw := bufio.NewWriter(w)
	if !res.Found {
		fmt.Fprintln(bw, "No path found. Rocks in the way!")
		return bw.Flush()
	}
	fmt.Fprintln(bw, "The shortest path:")
	if err := render.Path(bw, res.Path); err != nil {
		return err
	}
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "The path has been found! Cost %d.\n\n", res.Cost)
	if err := render.Grid(bw, g, res.Path, glyphs); err != nil {
		return err
	}
	return bw.Flush()
}

// recorder writes completed searches to the telemetry output.
type recorder struct {
	out    *telemetry.OutputManager
	seed   int64
	chance float64
}

func (r *recorder) record(g *grid.Grid, start, goal grid.Coord, res pathfind.Result, elapsed time.Duration) {
	runID := uuid.NewString()
	run := telemetry.NewRunRecord(runID, r.seed, g, r.chance, start, goal, res, elapsed)
	slog.Info("search finished", "run", run)

	if err := r.out.WriteRun(run); err != nil {
		slog.Error("failed to write run", "run_id", runID, "error", err)
	}
	if err := r.out.WritePath(telemetry.PathRecords(runID, res.Path)); err != nil {
		slog.Error("failed to write path", "run_id", runID, "error", err)
	}
}
