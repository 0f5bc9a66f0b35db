package field

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/calebwren/morphfield/config"
)

// Axis selects which wave-space coordinate feeds a harmonic term.
type Axis uint8

const (
	AxisX Axis = iota
	AxisZ
	AxisXZ // x+z, diagonal travel
)

// Harmonic is one term of the wave elevation sum:
// amplitude * trig(frequency*axis + timeSpeed*t + phase).
type Harmonic struct {
	Amplitude float64
	Frequency float64
	Phase     float64
	TimeSpeed float64
	Axis      Axis
	Cos       bool
}

// HarmonicsFromConfig converts the configured coefficient table. The config
// is validated at load time, so unknown axis names cannot reach here.
func HarmonicsFromConfig(terms []config.HarmonicConfig) []Harmonic {
	out := make([]Harmonic, len(terms))
	for i, t := range terms {
		h := Harmonic{
			Amplitude: t.Amplitude,
			Frequency: t.Frequency,
			Phase:     t.Phase,
			TimeSpeed: t.TimeSpeed,
			Cos:       t.Fn == "cos",
		}
		switch t.Axis {
		case "z":
			h.Axis = AxisZ
		case "xz":
			h.Axis = AxisXZ
		default:
			h.Axis = AxisX
		}
		out[i] = h
	}
	return out
}

// WaveElevation evaluates the layered harmonic sum at wave-space (x, z) and
// time t. Coarse rolling terms come first in the table, fine ripple detail
// last; the result is added to the grid's out-of-plane (Y) axis.
func WaveElevation(x, z, t float64, terms []Harmonic) float64 {
	elev := 0.0
	for i := range terms {
		h := &terms[i]
		var axis float64
		switch h.Axis {
		case AxisZ:
			axis = z
		case AxisXZ:
			axis = x + z
		default:
			axis = x
		}
		arg := h.Frequency*axis + wrapAngle(h.TimeSpeed*t) + h.Phase
		if h.Cos {
			elev += h.Amplitude * math.Cos(arg)
		} else {
			elev += h.Amplitude * math.Sin(arg)
		}
	}
	return elev
}

// SphereNoise displaces the sphere surface along its normals with animated
// simplex noise, giving the silhouette a boiling look while keeping it a
// sphere.
type SphereNoise struct {
	noise     opensimplex.Noise
	Scale     float64
	TimeSpeed float64
	Magnitude float64
}

// NewSphereNoise creates the noise field. The generator is deterministic for
// a given seed.
func NewSphereNoise(seed int64, cfg config.SphereConfig) *SphereNoise {
	return &SphereNoise{
		noise:     opensimplex.New(seed),
		Scale:     cfg.NoiseScale,
		TimeSpeed: cfg.NoiseTimeSpeed,
		Magnitude: cfg.NoiseMagnitude,
	}
}

// Sample returns the raw noise value at sphere-surface point p and time t,
// roughly in [-1,1]. The time term translates the sample position so the
// surface churns without the silhouette drifting.
func (sn *SphereNoise) Sample(p r3.Vec, t float64) float64 {
	d := t * sn.TimeSpeed
	return sn.noise.Eval3(
		p.X*sn.Scale+d,
		p.Y*sn.Scale+d*0.7,
		p.Z*sn.Scale-d*0.4,
	)
}

// Offset converts a raw noise value into the world-space displacement along
// the particle's outward normal.
func (sn *SphereNoise) Offset(normal r3.Vec, value float64) r3.Vec {
	return r3.Scale(value*sn.Magnitude, normal)
}
