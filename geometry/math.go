// Package geometry provides small float helpers shared by layout, viewport and editor.
package geometry

import "gonum.org/v1/gonum/spatial/r2"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect is an axis-aligned rectangle described by its center and size.
type Rect struct {
	Center        r2.Vec
	Width, Height float64
}

// Contains checks if p is inside the rectangle. Edges count as inside.
func (r Rect) Contains(p r2.Vec) bool {
	d := r2.Sub(p, r.Center)
	return d.X >= -r.Width/2 && d.X <= r.Width/2 &&
		d.Y >= -r.Height/2 && d.Y <= r.Height/2
}

// Min returns the top-left corner.
func (r Rect) Min() r2.Vec {
	return r2.Vec{X: r.Center.X - r.Width/2, Y: r.Center.Y - r.Height/2}
}

// Max returns the bottom-right corner.
func (r Rect) Max() r2.Vec {
	return r2.Vec{X: r.Center.X + r.Width/2, Y: r.Center.Y + r.Height/2}
}

// Centroid returns the mean of pts, or the zero vector for none.
func Centroid(pts []r2.Vec) r2.Vec {
	if len(pts) == 0 {
		return r2.Vec{}
	}
	var sum r2.Vec
	for _, p := range pts {
		sum = r2.Add(sum, p)
	}
	return r2.Scale(1/float64(len(pts)), sum)
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float64) bool {
	d := a - b
	return d <= eps && d >= -eps
}
