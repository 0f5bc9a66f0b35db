package field

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/calebwren/morphfield/components"
)

// GridParams describes the fixed particle grid shared by both topologies.
type GridParams struct {
	SegmentsX   int
	SegmentsY   int
	PlaneWidth  float64
	PlaneHeight float64
	Radius      float64
	DelayWindow float64 // max transition delay at the grid corners
}

// BuildGrid computes the immutable per-particle attribute set for both
// topologies. It yields exactly (SegmentsX+1)*(SegmentsY+1) particles; index
// i maps to column ix = i mod (SegmentsX+1) and row iy = i div (SegmentsX+1).
//
// The wave topology is a flat grid in the XZ plane centered on the origin.
// The sphere topology maps the same index to spherical coordinates with
// phi = (iy/SegmentsY)*pi and theta = (ix/SegmentsX)*2pi, so row 0 is the
// north pole at (0, Radius, 0).
func BuildGrid(p GridParams, rng *rand.Rand) ([]components.Particle, error) {
	if p.SegmentsX <= 0 || p.SegmentsY <= 0 {
		return nil, fmt.Errorf("field: grid segments must be positive, got %dx%d",
			p.SegmentsX, p.SegmentsY)
	}
	if p.PlaneWidth <= 0 || p.PlaneHeight <= 0 {
		return nil, fmt.Errorf("field: plane dimensions must be positive, got %.2fx%.2f",
			p.PlaneWidth, p.PlaneHeight)
	}
	if p.Radius <= 0 {
		return nil, fmt.Errorf("field: sphere radius must be positive, got %.2f", p.Radius)
	}
	if p.DelayWindow < 0 {
		return nil, fmt.Errorf("field: delay window must be non-negative, got %.2f", p.DelayWindow)
	}

	cols := p.SegmentsX + 1
	rows := p.SegmentsY + 1
	particles := make([]components.Particle, 0, cols*rows)

	// Center index and the largest grid distance from it, for delay scaling.
	cx := float64(p.SegmentsX) / 2
	cy := float64(p.SegmentsY) / 2
	maxDist := math.Hypot(cx, cy)
	if maxDist == 0 {
		maxDist = 1
	}

	for iy := 0; iy < rows; iy++ {
		for ix := 0; ix < cols; ix++ {
			u := float64(ix) / float64(p.SegmentsX)
			v := float64(iy) / float64(p.SegmentsY)

			wave := r3.Vec{
				X: (u - 0.5) * p.PlaneWidth,
				Y: 0,
				Z: (v - 0.5) * p.PlaneHeight,
			}

			phi := v * math.Pi
			theta := u * 2 * math.Pi
			normal := r3.Vec{
				X: math.Sin(phi) * math.Cos(theta),
				Y: math.Cos(phi),
				Z: math.Sin(phi) * math.Sin(theta),
			}
			sphere := r3.Scale(p.Radius, normal)

			dist := math.Hypot(float64(ix)-cx, float64(iy)-cy)

			particles = append(particles, components.Particle{
				WavePos:      wave,
				SpherePos:    sphere,
				SphereNormal: normal,
				Seed:         rng.Float64(),
				Delay:        dist / maxDist * p.DelayWindow,
			})
		}
	}

	return particles, nil
}
