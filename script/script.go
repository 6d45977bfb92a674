// Package script replays recorded edit and pointer steps against an editor.
// Scripts are YAML documents; they drive the headless layout command and
// make interaction sequences reproducible in tests.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownStep  = errors.New("unknown step")
	ErrMissingField = errors.New("missing required field")
)

// Op names a step.
type Op string

const (
	OpAdd            Op = "add"
	OpRemove         Op = "remove"
	OpRemoveSelected Op = "remove_selected"
	OpConnect        Op = "connect"
	OpSelect         Op = "select"
	OpDragStart      Op = "drag_start"
	OpDragMove       Op = "drag_move"
	OpDragEnd        Op = "drag_end"
	OpDrop           Op = "drop"
	OpZoomIn         Op = "zoom_in"
	OpZoomOut        Op = "zoom_out"
	OpZoomAt         Op = "zoom_at"
	OpPan            Op = "pan"
	OpFrames         Op = "frames"
)

// Step is one scripted action. Which fields matter depends on Op.
type Step struct {
	Op     Op      `yaml:"op"`
	ID     string  `yaml:"id,omitempty"`     // Node the step acts on
	Target string  `yaml:"target,omitempty"` // Second node of a connect
	Label  string  `yaml:"label,omitempty"`
	Color  string  `yaml:"color,omitempty"`
	As     string  `yaml:"as,omitempty"` // Alias bound to the ID an add produces
	X      float64 `yaml:"x,omitempty"`  // Screen coordinates or pan delta
	Y      float64 `yaml:"y,omitempty"`
	Factor float64 `yaml:"factor,omitempty"` // zoom_at scale factor
	Frames int     `yaml:"frames,omitempty"`
}

// Script is a named list of steps.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Parse decodes and checks a script.
func Parse(r io.Reader) (*Script, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var s Script
	if err := decoder.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a script file.
func Load(path string) (*Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	defer file.Close()

	s, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks that every step names a known op and carries the fields
// that op needs.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Op {
	case OpAdd, OpRemoveSelected, OpZoomIn, OpZoomOut, OpPan:
		return nil
	case OpRemove, OpSelect, OpDragStart, OpDragMove, OpDragEnd, OpDrop:
		if st.ID == "" {
			return fmt.Errorf("%w: %s needs id", ErrMissingField, st.Op)
		}
	case OpConnect:
		if st.ID == "" || st.Target == "" {
			return fmt.Errorf("%w: connect needs id and target", ErrMissingField)
		}
	case OpZoomAt:
		if st.Factor <= 0 {
			return fmt.Errorf("%w: zoom_at needs a positive factor", ErrMissingField)
		}
	case OpFrames:
		if st.Frames <= 0 {
			return fmt.Errorf("%w: frames needs a positive count", ErrMissingField)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStep, st.Op)
	}
	return nil
}

// Example returns a small script that grows the default board.
func Example() *Script {
	return &Script{
		Name:        "grow",
		Description: "Adds a review task and wires it in by click and by drag",
		Steps: []Step{
			{Op: OpAdd, Label: "Review", Color: "#cc66ff", As: "review"},
			{Op: OpFrames, Frames: 30},
			{Op: OpSelect, ID: "Task 4"},
			{Op: OpSelect, ID: "review"},
			{Op: OpDragStart, ID: "Task 1"},
			{Op: OpDragMove, ID: "Task 1", X: 120, Y: 80},
			{Op: OpDrop, ID: "review"},
			{Op: OpDragEnd, ID: "Task 1"},
		},
	}
}

// Encode writes s as YAML.
func (s *Script) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode script: %w", err)
	}
	return enc.Close()
}
