package layout

import "math"

// Options configures a Simulation. The defaults reproduce the d3-force
// configuration the task board was designed around.
type Options struct {
	Width, Height float64 // Canvas size; the center force targets its middle

	LinkDistance   float64 // Rest length of each edge spring
	ChargeStrength float64 // Many-body strength, negative repels
	DistanceMin    float64 // Separations below this are clamped in the charge force
	CenterStrength float64 // 1 moves the centroid onto the center in one tick

	AlphaMin        float64 // Below this the simulation stops ticking
	AlphaDecay      float64 // Fraction of the gap to AlphaTarget closed per tick
	VelocityDecay   float64 // Fraction of velocity lost per tick
	DragAlphaTarget float64 // Alpha target held while a node is dragged

	InitialRadius float64 // Spacing of the phyllotaxis seed arrangement
	Seed          uint64  // Seed for jiggling coincident nodes apart
	CarryOver     bool    // Keep positions of surviving nodes across rebuilds
}

// DefaultOptions returns the standard 800x600 configuration.
func DefaultOptions() Options {
	return Options{
		Width:           800,
		Height:          600,
		LinkDistance:    100,
		ChargeStrength:  -400,
		DistanceMin:     1,
		CenterStrength:  1,
		AlphaMin:        0.001,
		AlphaDecay:      1 - math.Pow(0.001, 1.0/300),
		VelocityDecay:   0.4,
		DragAlphaTarget: 0.3,
		InitialRadius:   10,
		Seed:            1,
	}
}
