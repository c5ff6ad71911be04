package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/gridpath/config"
	"github.com/pthm-cable/gridpath/grid"
	"github.com/pthm-cable/gridpath/pathfind"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// TestOutputManagerDisabled verifies an empty dir disables output without errors.
func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	if err := om.WriteRun(RunRecord{}); err != nil {
		t.Errorf("WriteRun on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir() = %q, want empty", om.Dir())
	}
}

// TestOutputManagerHeaderOnce verifies repeated writes append rows under a single header.
func TestOutputManagerHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	path := pathfind.Path{{X: 0, Y: 0}, {X: 1, Y: 0}}
	if err := om.WritePath(PathRecords("a", path)); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePath(PathRecords("b", path[:1])); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePath(nil); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	lines := readLines(t, filepath.Join(dir, PathFile))
	want := []string{"run_id,step,x,y", "a,0,0,0", "a,1,1,0", "b,0,0,0"}
	if len(lines) != len(want) {
		t.Fatalf("path.csv = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

// TestOutputManagerRunsAndConfig verifies runs.csv columns and the saved config.
func TestOutputManagerRunsAndConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	g := grid.MustNew(3, 3)
	_ = g.SetBlocked(grid.Coord{X: 1, Y: 1}, true)
	start, goal := grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 2}
	res, err := pathfind.Find(g, start, goal)
	if err != nil {
		t.Fatal(err)
	}

	rec := NewRunRecord("run-1", 42, g, 0.1, start, goal, res, 1500*time.Microsecond)
	if rec.Blocked != 1 || rec.PathLength != 5 || rec.Cost != 4 || rec.Manhattan != 4 || rec.DurationUS != 1500 {
		t.Errorf("record = %+v", rec)
	}
	if err := om.WriteRun(rec); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	lines := readLines(t, filepath.Join(dir, RunsFile))
	if len(lines) != 2 {
		t.Fatalf("runs.csv has %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "run_id,seed,width,height,obstacle_chance,blocked,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "run-1,42,3,3,0.1,1,0,0,2,2,true,5,4,4,") {
		t.Errorf("unexpected row %q", lines[1])
	}

	if _, err := config.Load(filepath.Join(dir, ConfigFile)); err != nil {
		t.Errorf("saved config does not load: %v", err)
	}
}
