// Package config provides configuration loading and access for the pathfinder.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridpath/grid"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Search    SearchConfig    `yaml:"search"`
	Render    RenderConfig    `yaml:"render"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Sweep     SweepConfig     `yaml:"sweep"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds random world generation settings.
type WorldConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	ObstacleChance float64 `yaml:"obstacle_chance"` // Probability each cell is blocked
	Seed           int64   `yaml:"seed"`            // 0 = time-based
}

// SearchConfig holds search limits.
type SearchConfig struct {
	MaxExpansions int `yaml:"max_expansions"` // 0 = unlimited
}

// RenderConfig holds the text glyphs.
type RenderConfig struct {
	Blocked string `yaml:"blocked"`
	Path    string `yaml:"path"`
	Open    string `yaml:"open"`
}

// ViewerConfig holds graphical viewer settings.
type ViewerConfig struct {
	CellSize       int     `yaml:"cell_size"`   // Pixels per grid cell
	PanelWidth     int     `yaml:"panel_width"` // Control panel width in pixels
	TargetFPS      int     `yaml:"target_fps"`
	StepsPerSecond float64 `yaml:"steps_per_second"` // Animation speed
}

// SweepConfig holds obstacle density sweep settings.
type SweepConfig struct {
	Width   int       `yaml:"width"`
	Height  int       `yaml:"height"`
	Trials  int       `yaml:"trials"`  // Worlds per chance
	Chances []float64 `yaml:"chances"` // Obstacle chances to evaluate
}

// TelemetryConfig holds CSV output settings.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // Empty = no output
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellCount    int   // World.Width * World.Height
	WindowWidth  int32 // Viewer width in pixels
	WindowHeight int32 // Viewer height in pixels
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values the generator or viewer cannot work with.
func (c *Config) Validate() error {
	if !validSize(c.World.Width, c.World.Height) {
		return fmt.Errorf("%w: world size %dx%d", ErrInvalid, c.World.Width, c.World.Height)
	}
	if c.World.ObstacleChance < 0 || c.World.ObstacleChance > 1 {
		return fmt.Errorf("%w: world.obstacle_chance %v outside [0,1]", ErrInvalid, c.World.ObstacleChance)
	}
	if c.Search.MaxExpansions < 0 {
		return fmt.Errorf("%w: search.max_expansions %d", ErrInvalid, c.Search.MaxExpansions)
	}
	if c.Render.Blocked == "" || c.Render.Path == "" || c.Render.Open == "" {
		return fmt.Errorf("%w: render glyphs must be non-empty", ErrInvalid)
	}
	if c.Viewer.CellSize < 1 {
		return fmt.Errorf("%w: viewer.cell_size %d", ErrInvalid, c.Viewer.CellSize)
	}
	if !validSize(c.Sweep.Width, c.Sweep.Height) || c.Sweep.Trials < 1 {
		return fmt.Errorf("%w: sweep %dx%d with %d trials", ErrInvalid, c.Sweep.Width, c.Sweep.Height, c.Sweep.Trials)
	}
	for _, ch := range c.Sweep.Chances {
		if ch < 0 || ch > 1 {
			return fmt.Errorf("%w: sweep chance %v outside [0,1]", ErrInvalid, ch)
		}
	}
	return nil
}

// validSize reports whether a grid of width x height can be allocated.
func validSize(width, height int) bool {
	return width >= 1 && height >= 1 && width <= grid.MaxCells/height
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CellCount = c.World.Width * c.World.Height
	c.Derived.WindowWidth = int32(c.World.Width*c.Viewer.CellSize + c.Viewer.PanelWidth)
	// Leave room for the control panel on small worlds
	c.Derived.WindowHeight = int32(max(c.World.Height*c.Viewer.CellSize, minWindowHeight))
}

const minWindowHeight = 360

// SetWorldSize overrides the world dimensions, e.g. for a loaded map, and
// recomputes derived values.
func (c *Config) SetWorldSize(width, height int) {
	c.World.Width = width
	c.World.Height = height
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
