package field

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/calebwren/morphfield/components"
)

func testGrid(t *testing.T, p GridParams) []components.Particle {
	t.Helper()
	particles, err := BuildGrid(p, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	return particles
}

func TestBuildGridCount(t *testing.T) {
	tests := []struct {
		name string
		sx   int
		sy   int
		want int
	}{
		{"4x4", 4, 4, 25},
		{"1x1", 1, 1, 4},
		{"96x96", 96, 96, 9409},
		{"3x7", 3, 7, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			particles := testGrid(t, GridParams{
				SegmentsX: tt.sx, SegmentsY: tt.sy,
				PlaneWidth: 10, PlaneHeight: 10,
				Radius: 5, DelayWindow: 0.4,
			})
			if len(particles) != tt.want {
				t.Errorf("got %d particles, want %d", len(particles), tt.want)
			}
		})
	}
}

func TestBuildGridRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		p    GridParams
	}{
		{"zero segments x", GridParams{SegmentsX: 0, SegmentsY: 4, PlaneWidth: 10, PlaneHeight: 10, Radius: 5}},
		{"negative segments y", GridParams{SegmentsX: 4, SegmentsY: -1, PlaneWidth: 10, PlaneHeight: 10, Radius: 5}},
		{"zero radius", GridParams{SegmentsX: 4, SegmentsY: 4, PlaneWidth: 10, PlaneHeight: 10, Radius: 0}},
		{"zero plane width", GridParams{SegmentsX: 4, SegmentsY: 4, PlaneWidth: 0, PlaneHeight: 10, Radius: 5}},
		{"negative delay window", GridParams{SegmentsX: 4, SegmentsY: 4, PlaneWidth: 10, PlaneHeight: 10, Radius: 5, DelayWindow: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildGrid(tt.p, rand.New(rand.NewSource(1))); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBuildGridSphereMapping(t *testing.T) {
	// Concrete scenario: 4x4 grid, radius 10.
	particles := testGrid(t, GridParams{
		SegmentsX: 4, SegmentsY: 4,
		PlaneWidth: 10, PlaneHeight: 10,
		Radius: 10, DelayWindow: 0.4,
	})

	const tol = 1e-9

	// Vertex (ix=0, iy=0): phi=0, theta=0 -> north pole (0, 10, 0).
	p0 := particles[0]
	if math.Abs(p0.SpherePos.X) > tol || math.Abs(p0.SpherePos.Y-10) > tol || math.Abs(p0.SpherePos.Z) > tol {
		t.Errorf("north pole = %+v, want (0, 10, 0)", p0.SpherePos)
	}

	// Vertex (ix=2, iy=2): phi=pi/2, theta=pi -> (-10, 0, 0).
	p12 := particles[2*5+2]
	if math.Abs(p12.SpherePos.X+10) > tol || math.Abs(p12.SpherePos.Y) > tol || math.Abs(p12.SpherePos.Z) > tol {
		t.Errorf("equator vertex = %+v, want (-10, 0, 0)", p12.SpherePos)
	}
}

func TestBuildGridNormalsUnit(t *testing.T) {
	particles := testGrid(t, GridParams{
		SegmentsX: 12, SegmentsY: 9,
		PlaneWidth: 20, PlaneHeight: 15,
		Radius: 7, DelayWindow: 0.45,
	})

	for i, p := range particles {
		n := r3.Norm(p.SphereNormal)
		if math.Abs(n-1) > 1e-5 {
			t.Fatalf("particle %d: |normal| = %v, want 1", i, n)
		}

		// Normal must point along the sphere position.
		fromPos := r3.Scale(1/r3.Norm(p.SpherePos), p.SpherePos)
		if math.Abs(fromPos.X-p.SphereNormal.X) > 1e-9 ||
			math.Abs(fromPos.Y-p.SphereNormal.Y) > 1e-9 ||
			math.Abs(fromPos.Z-p.SphereNormal.Z) > 1e-9 {
			t.Fatalf("particle %d: normal %+v disagrees with position direction %+v", i, p.SphereNormal, fromPos)
		}
	}
}

func TestBuildGridDelays(t *testing.T) {
	const delayWindow = 0.45
	sx, sy := 10, 10
	particles := testGrid(t, GridParams{
		SegmentsX: sx, SegmentsY: sy,
		PlaneWidth: 20, PlaneHeight: 20,
		Radius: 7, DelayWindow: delayWindow,
	})

	cx := float64(sx) / 2
	cy := float64(sy) / 2

	type entry struct {
		dist  float64
		delay float64
	}
	entries := make([]entry, len(particles))
	for i, p := range particles {
		ix := i % (sx + 1)
		iy := i / (sx + 1)
		entries[i] = entry{
			dist:  math.Hypot(float64(ix)-cx, float64(iy)-cy),
			delay: p.Delay,
		}

		if p.Delay < 0 || p.Delay > delayWindow {
			t.Fatalf("particle %d: delay %v outside [0, %v]", i, p.Delay, delayWindow)
		}
	}

	// Delay must be non-decreasing with grid distance from center.
	for i := range entries {
		for j := range entries {
			if entries[i].dist < entries[j].dist && entries[i].delay > entries[j].delay+1e-12 {
				t.Fatalf("delay not monotone: dist %v delay %v vs dist %v delay %v",
					entries[i].dist, entries[i].delay, entries[j].dist, entries[j].delay)
			}
		}
	}

	// Center particle transitions first.
	center := particles[(sy/2)*(sx+1)+sx/2]
	if center.Delay > 1e-12 {
		t.Errorf("center delay = %v, want 0", center.Delay)
	}
}

func TestBuildGridSeeds(t *testing.T) {
	particles := testGrid(t, GridParams{
		SegmentsX: 8, SegmentsY: 8,
		PlaneWidth: 10, PlaneHeight: 10,
		Radius: 5, DelayWindow: 0.4,
	})

	distinct := make(map[float64]bool)
	for i, p := range particles {
		if p.Seed < 0 || p.Seed >= 1 {
			t.Fatalf("particle %d: seed %v outside [0,1)", i, p.Seed)
		}
		distinct[p.Seed] = true
	}
	if len(distinct) < len(particles)/2 {
		t.Errorf("seeds look degenerate: %d distinct of %d", len(distinct), len(particles))
	}
}

func TestBuildGridWaveBounds(t *testing.T) {
	const w, h = 36.0, 24.0
	particles := testGrid(t, GridParams{
		SegmentsX: 6, SegmentsY: 6,
		PlaneWidth: w, PlaneHeight: h,
		Radius: 5, DelayWindow: 0.4,
	})

	for i, p := range particles {
		if p.WavePos.Y != 0 {
			t.Fatalf("particle %d: resting wave Y = %v, want 0", i, p.WavePos.Y)
		}
		if math.Abs(p.WavePos.X) > w/2+1e-9 || math.Abs(p.WavePos.Z) > h/2+1e-9 {
			t.Fatalf("particle %d: wave position %+v outside plane", i, p.WavePos)
		}
	}

	// Corners span the full plane.
	first := particles[0].WavePos
	last := particles[len(particles)-1].WavePos
	if math.Abs(first.X+w/2) > 1e-9 || math.Abs(last.X-w/2) > 1e-9 {
		t.Errorf("plane X span [%v, %v], want [-%v, %v]", first.X, last.X, w/2, w/2)
	}
}
