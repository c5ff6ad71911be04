// Package viewer provides an interactive raylib window for watching searches.
//
// Left click places the start, right click places the goal. Arrow keys pan,
// the mouse wheel zooms at the cursor and Home fits the world again. The panel has
// buttons to generate a new world, solve instantly, advance one expansion or
// animate the search.
package viewer

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridpath/camera"
	"github.com/pthm-cable/gridpath/config"
	"github.com/pthm-cable/gridpath/grid"
	"github.com/pthm-cable/gridpath/pathfind"
)

var (
	colorOpen    = rl.RayWhite
	colorBlocked = rl.DarkGray
	colorClosed  = color.RGBA{R: 190, G: 210, B: 240, A: 255}
	colorFront   = color.RGBA{R: 160, G: 230, B: 170, A: 255}
	colorPath    = rl.Gold
	colorStart   = rl.Blue
	colorGoal    = rl.Red
	colorLines   = rl.LightGray
)

// Viewer holds the interactive state.
type Viewer struct {
	cfg *config.Config
	rng *rand.Rand
	cam *camera.Camera

	world       *grid.Grid
	start, goal grid.Coord

	search    *pathfind.Search
	last      pathfind.StepSnapshot
	animating bool
	stepAccum float32
	status    string

	// OnFinish is called once per completed search.
	OnFinish func(world *grid.Grid, res pathfind.Result, start, goal grid.Coord)
}

// New creates a viewer over an existing world.
func New(cfg *config.Config, world *grid.Grid, start, goal grid.Coord, rng *rand.Rand) *Viewer {
	v := &Viewer{
		cfg:   cfg,
		rng:   rng,
		world: world,
		start: start,
		goal:  goal,
	}
	v.fitCamera()
	v.reset()
	return v
}

// gridAreaWidth is the window width left of the control panel.
func (v *Viewer) gridAreaWidth() float32 {
	return float32(v.cfg.Derived.WindowWidth) - float32(v.cfg.Viewer.PanelWidth)
}

// fitCamera centers the whole world in the grid area.
func (v *Viewer) fitCamera() {
	v.cam = camera.Fit(v.gridAreaWidth(), float32(v.cfg.Derived.WindowHeight),
		v.world.Width(), v.world.Height(), float32(v.cfg.Viewer.CellSize))
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() {
	rl.InitWindow(v.cfg.Derived.WindowWidth, v.cfg.Derived.WindowHeight, "A* Grid Pathfinding")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(v.cfg.Viewer.TargetFPS))

	for !rl.WindowShouldClose() {
		v.update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		v.drawGrid()
		v.drawPanel()
		rl.EndDrawing()
	}
}

// reset discards the current search and prepares a fresh one.
func (v *Viewer) reset() {
	s, err := pathfind.New(v.world, v.start, v.goal, pathfind.WithMaxExpansions(v.cfg.Search.MaxExpansions))
	if err != nil {
		v.search = nil
		v.status = err.Error()
		return
	}
	v.search = s
	v.last = pathfind.StepSnapshot{State: pathfind.Ready, Current: v.start}
	v.animating = false
	v.stepAccum = 0
	v.status = "ready"
}

// step advances one expansion and reports completion.
func (v *Viewer) step() {
	if v.search == nil || v.last.Done() {
		return
	}
	snap, err := v.search.Step()
	v.last = snap
	if snap.Done() {
		v.animating = false
		v.finish(err)
	}
}

// solve runs the current search to completion.
func (v *Viewer) solve() {
	if v.search == nil || v.last.Done() {
		return
	}
	_, err := v.search.Run()
	v.last = v.search.Snapshot()
	v.animating = false
	v.finish(err)
}

func (v *Viewer) finish(err error) {
	res := v.search.Result()
	switch {
	case err != nil:
		v.status = err.Error()
	case res.Found:
		v.status = fmt.Sprintf("path found, cost %d", res.Cost)
	default:
		v.status = "no path found"
	}
	if v.OnFinish != nil {
		v.OnFinish(v.world, res, v.start, v.goal)
	}
}

// newWorld regenerates the grid, keeping the endpoints open.
func (v *Viewer) newWorld() {
	w, err := grid.Generate(v.world.Width(), v.world.Height(), v.cfg.World.ObstacleChance, v.rng)
	if err != nil {
		slog.Warn("world generation failed", "error", err)
		v.status = err.Error()
		return
	}
	_ = w.SetBlocked(v.start, false)
	_ = w.SetBlocked(v.goal, false)
	v.world = w
	v.reset()
}

// handleCameraInput processes camera pan/zoom controls.
func (v *Viewer) handleCameraInput(mouse rl.Vector2, overGrid bool) {
	if rl.IsKeyDown(rl.KeyRight) {
		v.cam.Scroll(1, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.cam.Scroll(-1, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.cam.Scroll(0, 1)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.cam.Scroll(0, -1)
	}

	// Zoom toward/away from cursor position
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && overGrid {
		v.cam.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		v.fitCamera()
	}
}

func (v *Viewer) update(dt float32) {
	mouse := rl.GetMousePosition()
	overGrid := mouse.X < v.gridAreaWidth()
	v.handleCameraInput(mouse, overGrid)

	if cell, ok := v.cam.ScreenToCell(mouse.X, mouse.Y); ok && overGrid {
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			v.start = cell
			v.reset()
		} else if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
			v.goal = cell
			v.reset()
		}
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		v.animating = !v.animating
	}
	if rl.IsKeyPressed(rl.KeyN) {
		v.newWorld()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		v.step()
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		v.solve()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.reset()
	}

	if v.animating && v.cfg.Viewer.StepsPerSecond > 0 {
		v.stepAccum += dt * float32(v.cfg.Viewer.StepsPerSecond)
		for v.stepAccum >= 1 && v.animating {
			v.stepAccum--
			v.step()
		}
	}
}

func (v *Viewer) drawGrid() {
	px := v.cam.CellPixels()
	size := int32(px)

	fill := func(c grid.Coord, col color.RGBA) {
		sx, sy := v.cam.CellToScreen(c)
		rl.DrawRectangle(int32(sx), int32(sy), size, size, col)
	}

	for y := 0; y < v.world.Height(); y++ {
		for x := 0; x < v.world.Width(); x++ {
			c := grid.Coord{X: x, Y: y}
			if v.world.IsBlocked(c) {
				fill(c, colorBlocked)
			} else {
				fill(c, colorOpen)
			}
		}
	}

	if v.search != nil {
		fr := v.search.Frontier()
		for _, c := range fr.ClosedCoords() {
			fill(c, colorClosed)
		}
		for _, c := range fr.OpenCoords() {
			fill(c, colorFront)
		}
	}
	for _, c := range v.last.Path {
		fill(c, colorPath)
	}
	fill(v.start, colorStart)
	fill(v.goal, colorGoal)

	if px >= 6 {
		for y := 0; y < v.world.Height(); y++ {
			for x := 0; x < v.world.Width(); x++ {
				sx, sy := v.cam.CellToScreen(grid.Coord{X: x, Y: y})
				rl.DrawRectangleLines(int32(sx), int32(sy), size, size, colorLines)
			}
		}
	}
}

func (v *Viewer) drawPanel() {
	panelX := float32(v.cfg.Derived.WindowWidth) - float32(v.cfg.Viewer.PanelWidth) + 10
	panelY := float32(10)
	width := float32(v.cfg.Viewer.PanelWidth) - 20

	// Panel background covers grid cells panned or zoomed underneath it
	rl.DrawRectangle(int32(v.gridAreaWidth()), 0, int32(v.cfg.Viewer.PanelWidth), v.cfg.Derived.WindowHeight, rl.RayWhite)
	rl.DrawText("A* Pathfinding", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: width, Height: 30}, "New World") {
		v.newWorld()
	}
	panelY += 40
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: width, Height: 30}, "Solve") {
		v.solve()
	}
	panelY += 40
	half := (width - 10) / 2
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: half, Height: 30}, "Step") {
		v.step()
	}
	if gui.Button(rl.Rectangle{X: panelX + half + 10, Y: panelY, Width: half, Height: 30}, toggleText(v.animating, "Pause", "Animate")) {
		v.animating = !v.animating
	}
	panelY += 40
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: width, Height: 30}, "Reset") {
		v.reset()
	}
	panelY += 50

	lines := []string{
		fmt.Sprintf("Start: %v", v.start),
		fmt.Sprintf("Goal:  %v", v.goal),
		fmt.Sprintf("State: %v", v.last.State),
		fmt.Sprintf("Steps: %d", v.last.Step),
		fmt.Sprintf("Expanded: %d", v.last.Expanded),
		fmt.Sprintf("Open: %d", v.last.OpenLen),
	}
	if len(v.last.Path) > 0 {
		lines = append(lines, fmt.Sprintf("Cost: %d", v.last.Path.Cost()))
	}
	for _, line := range lines {
		rl.DrawText(line, int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 20
	}
	panelY += 10
	rl.DrawText(v.status, int32(panelX), int32(panelY), 14, rl.Maroon)

	controls := "L/R click: start/goal  N:new  S:step  Space:animate  Enter:solve  Arrows/wheel:pan/zoom  Home:fit"
	rl.DrawText(controls, 10, v.cfg.Derived.WindowHeight-18, 12, rl.Gray)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
