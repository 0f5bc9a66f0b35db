package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/calebwren/morphfield/renderer"
	"github.com/calebwren/morphfield/telemetry"
	"github.com/calebwren/morphfield/ui"
)

// Draw renders one frame: background, projected particles, HUD.
func (e *Engine) Draw() {
	e.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()

	e.background.Draw(int32(e.width), int32(e.height))

	e.sprites = e.sprites[:0]
	margin := float32(32)
	w32 := float32(e.width)
	h32 := float32(e.height)

	query := e.filter.Query()
	for query.Next() {
		_, rs := query.Get()

		sx, sy, depth, ok := e.rig.WorldToScreen(rs.Pos)
		if !ok {
			continue
		}
		radius := float32(e.rig.PixelSize(rs.Size, depth))
		if radius < 0.3 {
			continue
		}
		x := float32(sx)
		y := float32(sy)
		if x < -margin || x > w32+margin || y < -margin || y > h32+margin {
			continue
		}

		e.sprites = append(e.sprites, renderer.PointSprite{
			X:      x,
			Y:      y,
			Radius: radius,
			Color: rl.Color{
				R: uint8(rs.R * 255),
				G: uint8(rs.G * 255),
				B: uint8(rs.B * 255),
				A: uint8(rs.Alpha * 255),
			},
		})
	}

	e.points.Draw(e.sprites)

	e.hud.Draw(ui.Info{
		Frame:     e.frame,
		Morph:     e.state.Smoothed,
		RawTarget: e.state.RawTarget,
		Particles: e.cfg.Derived.ParticleCount,
		Preset:    e.cfg.Derived.Preset,
		Paused:    e.paused,
	})

	rl.EndDrawing()

	e.perf.EndFrame()
	e.recordStats()
}
