// Package components defines the ECS components stored per particle.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Particle holds the immutable per-particle attributes computed once at
// construction. Only RenderState changes after spawn.
type Particle struct {
	// WavePos is the resting point on the planar grid (XZ plane, Y up).
	WavePos r3.Vec

	// SpherePos is the same grid index mapped onto the sphere surface.
	SpherePos r3.Vec

	// SphereNormal is the unit outward direction at SpherePos.
	SphereNormal r3.Vec

	// Seed is a per-particle random value in [0,1) for visual variation.
	Seed float64

	// Delay staggers the morph: particles near the grid center transition
	// first. In [0, delayWindow], non-decreasing with center distance.
	Delay float64
}

// RenderState holds the per-frame output of the shading pipeline.
type RenderState struct {
	Pos     r3.Vec
	Size    float64 // world units, before perspective
	R, G, B float64 // 0..1
	Alpha   float64 // 0..1, fog already applied
}
