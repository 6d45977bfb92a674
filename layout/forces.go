package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"taskflow/geometry"
)

type link struct {
	source, target int
	strength       float64
	bias           float64 // Share of the correction applied to the target
}

// initLinks derives per-link strength and bias from node degrees so that
// hubs are not yanked around by their many springs.
func initLinks(links []link, n int) {
	count := make([]int, n)
	for _, l := range links {
		count[l.source]++
		count[l.target]++
	}
	for i := range links {
		s, t := count[links[i].source], count[links[i].target]
		links[i].bias = float64(s) / float64(s+t)
		links[i].strength = 1 / float64(min(s, t))
	}
}

// applyLinks pulls or pushes each edge's endpoints toward LinkDistance,
// measured on where they will be after this tick's velocity.
func (s *Simulation) applyLinks() {
	for _, l := range s.links {
		src, dst := s.bodies[l.source], s.bodies[l.target]

		d := r2.Sub(r2.Add(dst.pos, dst.vel), r2.Add(src.pos, src.vel))
		if d.X == 0 {
			d.X = s.jiggle()
		}
		if d.Y == 0 {
			d.Y = s.jiggle()
		}

		dist := r2.Norm(d)
		k := (dist - s.opts.LinkDistance) / dist * s.alpha * l.strength
		d = r2.Scale(k, d)

		dst.vel = r2.Sub(dst.vel, r2.Scale(l.bias, d))
		src.vel = r2.Add(src.vel, r2.Scale(1-l.bias, d))
	}
}

// applyCharge applies the pairwise many-body force. Magnitude falls off with
// distance; graphs edited by hand are small enough for the exact O(n^2) sum.
func (s *Simulation) applyCharge() {
	min2 := s.opts.DistanceMin * s.opts.DistanceMin
	for _, b := range s.bodies {
		for _, other := range s.bodies {
			if other == b {
				continue
			}
			d := r2.Sub(other.pos, b.pos)
			l := r2.Norm2(d)
			if d.X == 0 {
				d.X = s.jiggle()
				l += d.X * d.X
			}
			if d.Y == 0 {
				d.Y = s.jiggle()
				l += d.Y * d.Y
			}
			if l < min2 {
				l = math.Sqrt(min2 * l)
			}
			w := s.opts.ChargeStrength * s.alpha / l
			b.vel = r2.Add(b.vel, r2.Scale(w, d))
		}
	}
}

// applyCenter translates every node so the centroid lands on the canvas center.
func (s *Simulation) applyCenter() {
	if len(s.bodies) == 0 {
		return
	}
	pts := make([]r2.Vec, len(s.bodies))
	for i, b := range s.bodies {
		pts[i] = b.pos
	}
	center := r2.Vec{X: s.opts.Width / 2, Y: s.opts.Height / 2}
	shift := r2.Scale(s.opts.CenterStrength, r2.Sub(geometry.Centroid(pts), center))
	for _, b := range s.bodies {
		b.pos = r2.Sub(b.pos, shift)
	}
}
