package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/calebwren/morphfield/components"
	"github.com/calebwren/morphfield/config"
)

// RGB is a linear 0..1 color.
type RGB struct {
	R, G, B float64
}

// LerpRGB interpolates between two colors, t clamped to [0,1].
func LerpRGB(a, b RGB, t float64) RGB {
	t = Clamp(t, 0, 1)
	return RGB{
		R: Lerp(a.R, b.R, t),
		G: Lerp(a.G, b.G, t),
		B: Lerp(a.B, b.B, t),
	}
}

// Palette holds the three effect colors shared by both topologies.
type Palette struct {
	Deep      RGB
	Mid       RGB
	Highlight RGB
}

// PaletteFromConfig converts the configured color triples.
func PaletteFromConfig(p config.PaletteConfig) Palette {
	return Palette{
		Deep:      RGB{p.Deep[0], p.Deep[1], p.Deep[2]},
		Mid:       RGB{p.Mid[0], p.Mid[1], p.Mid[2]},
		Highlight: RGB{p.Highlight[0], p.Highlight[1], p.Highlight[2]},
	}
}

// FrameScalars is the shared per-frame input every particle is shaded with.
type FrameScalars struct {
	Smoothed float64
	Elapsed  float64
	PointerX float64
	PointerY float64
}

// ProjectFunc maps a world position to NDC x/y and view depth. ok is false
// when the point is behind the near plane. The camera rig provides the real
// implementation; tests wire a fixture.
type ProjectFunc func(p r3.Vec) (ndcX, ndcY, depth float64, ok bool)

// Shader maps per-particle elevation, noise and progress to a final world
// position, point size and color. It is a pure function of its inputs plus
// the configured constants; swapping the projection strategy swaps the
// screen-space behaviors (repulsion, fog) with it.
type Shader struct {
	Palette Palette

	// Wave color/size constants
	ElevationNorm    float64
	ColorOffset      float64
	ColorRange       float64
	HighlightCutoff  float64
	Converge         bool
	ConvergeStrength float64

	// Sphere constants
	NoiseMagnitude float64
	SphereSizeMult float64

	BaseSize float64
	FogNear  float64
	FogFar   float64

	Repulsion        bool
	RepulseRadius    float64
	RepulseMagnitude float64

	Project ProjectFunc // nil disables repulsion and distance fog
}

// NewShader builds a shader from config. The projection strategy is wired
// separately by the engine.
func NewShader(cfg *config.Config) *Shader {
	return &Shader{
		Palette:          PaletteFromConfig(cfg.Palette),
		ElevationNorm:    cfg.Wave.ElevationNorm,
		ColorOffset:      cfg.Wave.ColorOffset,
		ColorRange:       cfg.Wave.ColorRange,
		HighlightCutoff:  cfg.Wave.HighlightCutoff,
		Converge:         cfg.Wave.Converge,
		ConvergeStrength: cfg.Wave.ConvergeStrength,
		NoiseMagnitude:   cfg.Sphere.NoiseMagnitude,
		SphereSizeMult:   cfg.Sphere.SizeMultiplier,
		BaseSize:         cfg.Points.BaseSize,
		FogNear:          cfg.Points.FogNear,
		FogFar:           cfg.Points.FogFar,
		Repulsion:        cfg.Pointer.Repulsion,
		RepulseRadius:    cfg.Pointer.Radius,
		RepulseMagnitude: cfg.Pointer.Magnitude,
	}
}

// Shade computes one particle's render state for the frame. progress is the
// particle's staggered morph progress, elevation the wave field value at its
// grid point, noise the raw sphere noise sample.
func (s *Shader) Shade(p *components.Particle, progress, elevation, noise float64, sc *FrameScalars, out *components.RenderState) {
	// Wave-topology position: elevation on the out-of-plane axis, with an
	// optional pull toward the grid center that peaks mid-transition.
	wave := p.WavePos
	wave.Y += elevation
	if s.Converge {
		pull := 1 - s.ConvergeStrength*math.Sin(progress*math.Pi)
		wave.X *= pull
		wave.Z *= pull
	}

	// Sphere-topology position: noise displacement along the outward normal.
	sphere := r3.Add(p.SpherePos, r3.Scale(noise*s.NoiseMagnitude, p.SphereNormal))

	pos := lerpVec(wave, sphere, progress)

	if s.Repulsion && s.Project != nil {
		if ndcX, ndcY, _, ok := s.Project(pos); ok {
			d := math.Hypot(ndcX-sc.PointerX, ndcY-sc.PointerY)
			rep := SmoothstepRange(s.RepulseRadius, 0, d)
			if rep > 0 {
				// Push along the particle's own outward direction: the
				// sphere normal once formed, straight up in wave mode.
				dir := lerpVec(r3.Vec{Y: 1}, p.SphereNormal, progress)
				if n := r3.Norm(dir); n > 1e-9 {
					pos = r3.Add(pos, r3.Scale(rep*s.RepulseMagnitude/n, dir))
				}
			}
		}
	}

	// Size: elevated wave crests get bigger dots, the sphere a uniform
	// boost. Seed jitter keeps the field from looking stamped.
	waveSize := s.BaseSize * (1 + elevation/s.ElevationNorm)
	if waveSize < 0 {
		waveSize = 0
	}
	sphereSize := s.BaseSize * s.SphereSizeMult
	size := Lerp(waveSize, sphereSize, progress) * (0.8 + 0.4*p.Seed)

	col := LerpRGB(s.waveColor(elevation), s.sphereColor(noise), progress)

	alpha := 1.0
	if s.Project != nil {
		if _, _, depth, ok := s.Project(pos); ok {
			alpha = SmoothstepRange(s.FogFar, s.FogNear, depth)
		}
	}
	alpha *= 0.7 + 0.3*p.Seed

	out.Pos = pos
	out.Size = size
	out.R, out.G, out.B = col.R, col.G, col.B
	out.Alpha = alpha
}

// waveColor maps elevation through the two-stop gradient with a highlight
// blend above the cutoff. The mix factor is clamped, so extreme elevations
// stay inside the palette.
func (s *Shader) waveColor(elevation float64) RGB {
	mix := Clamp((elevation+s.ColorOffset)/s.ColorRange, 0, 1)
	col := LerpRGB(s.Palette.Deep, s.Palette.Mid, mix)
	if mix > s.HighlightCutoff {
		hl := (mix - s.HighlightCutoff) / (1 - s.HighlightCutoff)
		col = LerpRGB(col, s.Palette.Highlight, hl)
	}
	return col
}

// sphereColor maps the raw noise value through the threshold gradient:
// below 0.6 deep to mid, above mid to highlight.
func (s *Shader) sphereColor(noise float64) RGB {
	n := SmoothstepRange(-0.4, 0.4, noise)
	if n < 0.6 {
		return LerpRGB(s.Palette.Deep, s.Palette.Mid, n/0.6)
	}
	return LerpRGB(s.Palette.Mid, s.Palette.Highlight, (n-0.6)/0.4)
}

func lerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Vec{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}
