// Package config loads taskflow settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"taskflow/editor"
	"taskflow/graph"
	"taskflow/layout"
	"taskflow/logging"
	"taskflow/viewport"
)

var (
	ErrInvalidSize  = errors.New("sizes must be positive")
	ErrInvalidScale = errors.New("scale range must satisfy 0 < min <= 1 <= max")
	ErrInvalidAlpha = errors.New("alpha settings must lie in (0, 1)")
	ErrInvalidIDs   = errors.New("unknown id strategy")
)

// Config holds every tunable of the engine and its hosts.
type Config struct {
	Canvas   SizeConfig     `yaml:"canvas"`
	Node     SizeConfig     `yaml:"node"`
	Layout   LayoutConfig   `yaml:"layout"`
	Viewport ViewportConfig `yaml:"viewport"`
	Terminal TerminalConfig `yaml:"terminal"`
	Graph    GraphConfig    `yaml:"graph"`
	Debug    bool           `yaml:"debug"`    // Validate graph invariants after every edit
	LogFile  string         `yaml:"log_file"` // Empty logs to stderr (or nowhere in the terminal host)
}

// SizeConfig is a width/height pair in simulation units.
type SizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LayoutConfig tunes the force simulation.
type LayoutConfig struct {
	LinkDistance    float64 `yaml:"link_distance"`
	ChargeStrength  float64 `yaml:"charge_strength"`
	AlphaMin        float64 `yaml:"alpha_min"`
	AlphaDecay      float64 `yaml:"alpha_decay"`
	VelocityDecay   float64 `yaml:"velocity_decay"`
	DragAlphaTarget float64 `yaml:"drag_alpha_target"`
	Seed            uint64  `yaml:"seed"`
	CarryOver       bool    `yaml:"carry_over"`
}

// ViewportConfig bounds pan/zoom.
type ViewportConfig struct {
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
	ZoomStep float64 `yaml:"zoom_step"`
}

// TerminalConfig controls the interactive host.
type TerminalConfig struct {
	FPS        int     `yaml:"fps"`
	CellWidth  float64 `yaml:"cell_width"`  // Screen units per terminal column
	CellHeight float64 `yaml:"cell_height"` // Screen units per terminal row
	PanStep    float64 `yaml:"pan_step"`    // Screen units moved per arrow key
}

// GraphConfig seeds the graph and picks the ID strategy.
type GraphConfig struct {
	IDs    string       `yaml:"ids"` // "sequential" or "uuid"
	Prefix string       `yaml:"prefix"`
	Tasks  []TaskConfig `yaml:"tasks"`
}

// TaskConfig is one seeded task.
type TaskConfig struct {
	ID      string   `yaml:"id"`
	Label   string   `yaml:"label"`
	Color   string   `yaml:"color"`
	Outputs []string `yaml:"outputs"`
}

// Default returns the stock task board: an 800x600
// canvas, 100x50 task boxes and four chained tasks.
func Default() Config {
	lo := layout.DefaultOptions()
	vo := viewport.DefaultOptions()
	return Config{
		Canvas: SizeConfig{Width: lo.Width, Height: lo.Height},
		Node:   SizeConfig{Width: 100, Height: 50},
		Layout: LayoutConfig{
			LinkDistance:    lo.LinkDistance,
			ChargeStrength:  lo.ChargeStrength,
			AlphaMin:        lo.AlphaMin,
			AlphaDecay:      lo.AlphaDecay,
			VelocityDecay:   lo.VelocityDecay,
			DragAlphaTarget: lo.DragAlphaTarget,
			Seed:            lo.Seed,
		},
		Viewport: ViewportConfig{
			MinScale: vo.MinScale,
			MaxScale: vo.MaxScale,
			ZoomStep: vo.ZoomStep,
		},
		Terminal: TerminalConfig{
			FPS:        30,
			CellWidth:  8,
			CellHeight: 16,
			PanStep:    40,
		},
		Graph: GraphConfig{
			IDs:    "sequential",
			Prefix: "Task",
			Tasks: []TaskConfig{
				{ID: "Task 1", Label: "Task One", Color: "#ff6666", Outputs: []string{"Task 2"}},
				{ID: "Task 2", Label: "Task Two", Color: "#66ff66", Outputs: []string{"Task 3"}},
				{ID: "Task 3", Label: "Task Three", Color: "#6666ff", Outputs: []string{"Task 4"}},
				{ID: "Task 4", Label: "Task Four", Color: "#ffcc66"},
			},
		},
	}
}

// Load reads a YAML file over the defaults using strict parsing. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that would make the engine misbehave.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas %vx%v", ErrInvalidSize, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Node.Width <= 0 || c.Node.Height <= 0 {
		return fmt.Errorf("%w: node %vx%v", ErrInvalidSize, c.Node.Width, c.Node.Height)
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 || c.Terminal.FPS <= 0 {
		return fmt.Errorf("%w: terminal cell %vx%v at %d fps", ErrInvalidSize,
			c.Terminal.CellWidth, c.Terminal.CellHeight, c.Terminal.FPS)
	}
	v := c.Viewport
	if v.MinScale <= 0 || v.MinScale > 1 || v.MaxScale < 1 || v.ZoomStep <= 1 {
		return fmt.Errorf("%w: [%v, %v] step %v", ErrInvalidScale, v.MinScale, v.MaxScale, v.ZoomStep)
	}
	l := c.Layout
	for name, a := range map[string]float64{
		"alpha_min":         l.AlphaMin,
		"alpha_decay":       l.AlphaDecay,
		"velocity_decay":    l.VelocityDecay,
		"drag_alpha_target": l.DragAlphaTarget,
	} {
		if a <= 0 || a >= 1 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidAlpha, name, a)
		}
	}
	switch c.Graph.IDs {
	case "", "sequential", "uuid":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidIDs, c.Graph.IDs)
	}
	return nil
}

// LayoutOptions converts the config into simulation options.
func (c Config) LayoutOptions() layout.Options {
	o := layout.DefaultOptions()
	o.Width = c.Canvas.Width
	o.Height = c.Canvas.Height
	o.LinkDistance = c.Layout.LinkDistance
	o.ChargeStrength = c.Layout.ChargeStrength
	o.AlphaMin = c.Layout.AlphaMin
	o.AlphaDecay = c.Layout.AlphaDecay
	o.VelocityDecay = c.Layout.VelocityDecay
	o.DragAlphaTarget = c.Layout.DragAlphaTarget
	o.Seed = c.Layout.Seed
	o.CarryOver = c.Layout.CarryOver
	return o
}

// ViewportOptions converts the config into viewport options.
func (c Config) ViewportOptions() viewport.Options {
	return viewport.Options{
		MinScale: c.Viewport.MinScale,
		MaxScale: c.Viewport.MaxScale,
		ZoomStep: c.Viewport.ZoomStep,
		Width:    c.Canvas.Width,
		Height:   c.Canvas.Height,
	}
}

// IDGenerator returns the configured node naming strategy.
func (c Config) IDGenerator() graph.IDGenerator {
	if c.Graph.IDs == "uuid" {
		return graph.UUIDs{}
	}
	return graph.Sequential{Prefix: c.Graph.Prefix}
}

// SeedGraph builds the graph described by Graph.Tasks. Outputs naming
// unknown tasks are dropped like any other invalid edge.
func (c Config) SeedGraph() *graph.Graph {
	g := graph.NewWithIDs(c.IDGenerator())
	for _, t := range c.Graph.Tasks {
		g.AddNodeWithID(t.ID, t.Label, t.Color)
	}
	for _, t := range c.Graph.Tasks {
		for _, out := range t.Outputs {
			g.AddEdge(t.ID, out)
		}
	}
	return g
}

// EditorOptions assembles everything the editor needs.
func (c Config) EditorOptions(log logging.Logger) editor.Options {
	return editor.Options{
		Layout:     c.LayoutOptions(),
		Viewport:   c.ViewportOptions(),
		NodeWidth:  c.Node.Width,
		NodeHeight: c.Node.Height,
		Debug:      c.Debug,
		Logger:     log,
	}
}
