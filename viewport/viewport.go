// Package viewport maps simulation space to screen space with a clamped
// scale and a translation. It never changes simulation coordinates.
package viewport

import (
	"gonum.org/v1/gonum/spatial/r2"

	"taskflow/geometry"
)

// Options bounds and sizes a Transform.
type Options struct {
	MinScale, MaxScale float64
	ZoomStep           float64 // Factor applied by ZoomIn; ZoomOut uses its inverse
	Width, Height      float64 // Size of the view; zoom buttons scale about its center
}

// DefaultOptions matches the 800x600 task board with a [0.5, 2] zoom range.
func DefaultOptions() Options {
	return Options{
		MinScale: 0.5,
		MaxScale: 2,
		ZoomStep: 1.2,
		Width:    800,
		Height:   600,
	}
}

// Transform is screen = sim*Scale + (TX, TY).
type Transform struct {
	opts   Options
	scale  float64
	tx, ty float64
}

// State is a read-only copy of a transform.
type State struct {
	Scale  float64
	TX, TY float64
}

// New creates an identity transform.
func New(opts Options) *Transform {
	return &Transform{opts: opts, scale: geometry.Clamp(1, opts.MinScale, opts.MaxScale)}
}

// State returns the current scale and translation.
func (t *Transform) State() State {
	return State{Scale: t.scale, TX: t.tx, TY: t.ty}
}

// Scale returns the current scale factor.
func (t *Transform) Scale() float64 {
	return t.scale
}

// ZoomIn scales up by one step about the view center.
func (t *Transform) ZoomIn() {
	t.ScaleBy(t.opts.ZoomStep)
}

// ZoomOut scales down by one step about the view center.
func (t *Transform) ZoomOut() {
	t.ScaleBy(1 / t.opts.ZoomStep)
}

// ScaleBy multiplies the scale by k about the view center.
func (t *Transform) ScaleBy(k float64) {
	t.ZoomAt(k, t.opts.Width/2, t.opts.Height/2)
}

// ZoomAt multiplies the scale by k keeping the screen point (px, py) fixed,
// as a wheel gesture does. The result is clamped to [MinScale, MaxScale].
func (t *Transform) ZoomAt(k, px, py float64) {
	if k <= 0 {
		return
	}
	anchor := t.Invert(r2.Vec{X: px, Y: py})
	t.scale = geometry.Clamp(t.scale*k, t.opts.MinScale, t.opts.MaxScale)
	t.tx = px - anchor.X*t.scale
	t.ty = py - anchor.Y*t.scale
}

// Pan translates the view by (dx, dy) screen units.
func (t *Transform) Pan(dx, dy float64) {
	t.tx += dx
	t.ty += dy
}

// Reset returns to the identity transform.
func (t *Transform) Reset() {
	t.scale = geometry.Clamp(1, t.opts.MinScale, t.opts.MaxScale)
	t.tx, t.ty = 0, 0
}

// Apply projects a simulation-space point to screen space.
func (t *Transform) Apply(p r2.Vec) r2.Vec {
	return r2.Vec{X: p.X*t.scale + t.tx, Y: p.Y*t.scale + t.ty}
}

// Invert projects a screen-space point back to simulation space.
func (t *Transform) Invert(p r2.Vec) r2.Vec {
	return r2.Vec{X: (p.X - t.tx) / t.scale, Y: (p.Y - t.ty) / t.scale}
}
