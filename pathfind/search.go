// Package pathfind implements A* search over a grid.Grid with unit step cost,
// 4-directional movement and the Manhattan heuristic.
//
// A search can be run to completion with Find or driven one expansion at a
// time through Search.Step. Each Search owns its frontier, so independent
// searches over the same grid may run in parallel.
package pathfind

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/gridpath/grid"
)

var (
	// ErrNoPath is returned by Result.Err when the open set was exhausted.
	ErrNoPath = errors.New("no path found")
	// ErrExpansionLimit is returned when a search hits its expansion bound.
	ErrExpansionLimit = errors.New("expansion limit reached")
)

// State is the lifecycle of a search.
type State uint8

const (
	Ready State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Done reports whether the state is terminal.
func (s State) Done() bool { return s == Succeeded || s == Failed }

// neighborOffsets is the expansion order: left, right, up, down.
// Changing it changes tie-breaking.
var neighborOffsets = [4]grid.Coord{
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
}

// Options defines parameters for a search.
type Options struct {
	Heuristic     Heuristic
	MaxExpansions int // 0 = unlimited
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic replaces the Manhattan heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// WithMaxExpansions bounds the number of nodes a search may close.
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

// Result contains the outcome of a search.
type Result struct {
	Path       Path
	Cost       int
	Expanded   int // nodes closed
	Discovered int // nodes ever inserted into the open set
	Found      bool
}

// Err returns ErrNoPath when no path was found, nil otherwise.
func (r Result) Err() error {
	if !r.Found {
		return ErrNoPath
	}
	return nil
}

// StepSnapshot exposes the per-iteration state of the search.
type StepSnapshot struct {
	Step     int
	Current  grid.Coord
	State    State
	Expanded int
	OpenLen  int
	Path     Path // set once the goal is reached
}

// Done reports whether the search has terminated.
func (s StepSnapshot) Done() bool { return s.State.Done() }

// Search is a single A* run from start to goal.
type Search struct {
	grid  *grid.Grid
	start grid.Coord
	goal  grid.Coord
	opts  Options

	frontier *Frontier
	state    State
	steps    int
	expanded int
	current  grid.Coord
	path     Path
}

// New prepares a search. Start and goal must be inside the grid; whether they
// are passable is not checked.
func New(g *grid.Grid, start, goal grid.Coord, options ...Option) (*Search, error) {
	if g == nil {
		return nil, errors.New("pathfind: nil grid")
	}
	if !g.InBounds(start) {
		return nil, fmt.Errorf("start %v: %w", start, grid.ErrOutOfBounds)
	}
	if !g.InBounds(goal) {
		return nil, fmt.Errorf("goal %v: %w", goal, grid.ErrOutOfBounds)
	}

	opts := Options{Heuristic: Manhattan}
	for _, o := range options {
		o(&opts)
	}
	if opts.Heuristic == nil {
		opts.Heuristic = Manhattan
	}

	return &Search{
		grid:     g,
		start:    start,
		goal:     goal,
		opts:     opts,
		frontier: NewFrontier(),
		state:    Ready,
		current:  start,
	}, nil
}

// Find runs a search to completion.
func Find(g *grid.Grid, start, goal grid.Coord, options ...Option) (Result, error) {
	s, err := New(g, start, goal, options...)
	if err != nil {
		return Result{}, err
	}
	return s.Run()
}

// Run steps the search until it succeeds or fails.
func (s *Search) Run() (Result, error) {
	for !s.state.Done() {
		if _, err := s.Step(); err != nil {
			return s.Result(), err
		}
	}
	return s.Result(), nil
}

// Step advances the search by one node expansion and returns a snapshot.
// Calling Step on a finished search is a no-op.
func (s *Search) Step() (StepSnapshot, error) {
	switch s.state {
	case Succeeded, Failed:
		return s.Snapshot(), nil
	case Ready:
		s.frontier.RelaxOrInsert(s.start, 0, noParent, s.estimate)
		s.state = Running
	}

	s.steps++
	best, ok := s.frontier.PopBest()
	if !ok {
		s.state = Failed
		return s.Snapshot(), nil
	}
	current := s.frontier.Node(best)
	s.current = current.Coord

	if current.Coord == s.goal {
		s.path = reconstruct(s.frontier, best)
		s.state = Succeeded
		return s.Snapshot(), nil
	}

	if s.opts.MaxExpansions > 0 && s.expanded >= s.opts.MaxExpansions {
		s.state = Failed
		return s.Snapshot(), fmt.Errorf("after %d expansions: %w", s.expanded, ErrExpansionLimit)
	}

	s.frontier.MarkClosed(best)
	s.expanded++

	for _, off := range neighborOffsets {
		next := grid.Coord{X: current.Coord.X + off.X, Y: current.Coord.Y + off.Y}
		if !s.grid.IsPassable(next) || s.frontier.Contains(next, SetClosed) {
			continue
		}
		s.frontier.RelaxOrInsert(next, current.G+1, best, s.estimate)
	}

	return s.Snapshot(), nil
}

func (s *Search) estimate(c grid.Coord) int {
	return s.opts.Heuristic(c, s.goal)
}

// Snapshot returns the current per-iteration state without advancing.
func (s *Search) Snapshot() StepSnapshot {
	return StepSnapshot{
		Step:     s.steps,
		Current:  s.current,
		State:    s.state,
		Expanded: s.expanded,
		OpenLen:  s.frontier.OpenLen(),
		Path:     s.path,
	}
}

// State returns the current lifecycle state.
func (s *Search) State() State { return s.state }

// Start returns the start coordinate.
func (s *Search) Start() grid.Coord { return s.start }

// Goal returns the goal coordinate.
func (s *Search) Goal() grid.Coord { return s.goal }

// Frontier exposes the open and closed sets for inspection.
func (s *Search) Frontier() *Frontier { return s.frontier }

// Result returns the outcome so far. Found is only true once Succeeded.
func (s *Search) Result() Result {
	return Result{
		Path:       s.path,
		Cost:       s.path.Cost(),
		Expanded:   s.expanded,
		Discovered: s.frontier.Discovered(),
		Found:      s.state == Succeeded,
	}
}
