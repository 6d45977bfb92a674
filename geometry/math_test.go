package geometry

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{1, 0.5, 2, 1},
		{0.1, 0.5, 2, 0.5},
		{3, 0.5, 2, 2},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Center: r2.Vec{X: 100, Y: 100}, Width: 100, Height: 50}

	inside := []r2.Vec{{X: 100, Y: 100}, {X: 50, Y: 75}, {X: 150, Y: 125}}
	for _, p := range inside {
		if !r.Contains(p) {
			t.Errorf("Expected %v inside %v", p, r)
		}
	}
	outside := []r2.Vec{{X: 49, Y: 100}, {X: 100, Y: 126}, {X: 151, Y: 74}}
	for _, p := range outside {
		if r.Contains(p) {
			t.Errorf("Expected %v outside %v", p, r)
		}
	}
	if r.Min() != (r2.Vec{X: 50, Y: 75}) || r.Max() != (r2.Vec{X: 150, Y: 125}) {
		t.Errorf("Unexpected corners %v %v", r.Min(), r.Max())
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid([]r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}})
	if got != (r2.Vec{X: 1, Y: 1}) {
		t.Errorf("Expected (1,1), got %v", got)
	}
	if Centroid(nil) != (r2.Vec{}) {
		t.Error("Expected zero centroid for no points")
	}
}
