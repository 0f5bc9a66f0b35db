// Package field implements the procedural core of the morphing particle
// effect: grid/sphere geometry, the staggered transition model, the wave and
// noise displacement fields, and the shading pipeline. Everything here is
// pure math over per-particle attributes and per-frame scalars, independent
// of any rendering context.
package field

import "math"

// MorphState holds the per-frame scalars driving the whole effect.
//
// Raw fields are written only by input capture, smoothed fields only by the
// frame tick. Both run on the same goroutine, so no field ever has two
// writers and no locking is needed.
type MorphState struct {
	RawTarget float64 // latest normalized scroll progress in [0,1]
	Smoothed  float64 // low-passed morph value in [0,1]

	RawPointerX float64 // pointer NDC in [-1,1]
	RawPointerY float64
	PointerX    float64 // smoothed pointer NDC
	PointerY    float64

	Elapsed float64 // scaled seconds since engine start
}

// Tick advances the smoothed values and the scaled clock by one frame.
func (s *MorphState) Tick(dt, timeScale, morphFactor, pointerFactor float64) {
	s.Smoothed = Smooth(s.Smoothed, s.RawTarget, morphFactor)
	s.PointerX = Smooth(s.PointerX, s.RawPointerX, pointerFactor)
	s.PointerY = Smooth(s.PointerY, s.RawPointerY, pointerFactor)
	s.Elapsed += dt * timeScale
}

// Smooth moves v toward target by factor, a first-order exponential low-pass.
// For a constant target the result converges monotonically and never
// overshoots.
func Smooth(v, target, factor float64) float64 {
	if factor <= 0 {
		return v
	}
	if factor > 1 {
		factor = 1
	}
	return v + (target-v)*factor
}

// Smoothstep is the cubic ease t*t*(3-2t) with t clamped to [0,1].
// Zero derivative at both ends.
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// SmoothstepRange remaps x from [edge0,edge1] through the cubic ease.
// edge0 > edge1 reverses the ramp, matching the GLSL smoothstep idiom used
// for falloffs like smoothstep(radius, 0, dist).
func SmoothstepRange(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	return Smoothstep((x - edge0) / (edge1 - edge0))
}

// LocalProgress derives a particle's staggered morph progress from the global
// smoothed value. scaleFactor > 1 guarantees that even the most-delayed
// particle reaches 1 by the time the global value does.
func LocalProgress(smoothed, delay, scaleFactor float64) float64 {
	return Smoothstep(smoothed*scaleFactor - delay)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// wrapAngle keeps accumulated phase arguments well-conditioned for the trig
// sums when the effect runs for hours.
func wrapAngle(a float64) float64 {
	return math.Mod(a, 2*math.Pi)
}
