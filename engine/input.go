package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/calebwren/morphfield/field"
)

// Pixels of virtual scroll travel per mouse-wheel notch.
const wheelStep = 100.0

// frameDT returns the last frame duration, floored so a stalled frame cannot
// inject a huge time jump.
func frameDT() float64 {
	dt := float64(rl.GetFrameTime())
	if dt <= 0 || dt > 0.25 {
		dt = 1.0 / 60.0
	}
	return dt
}

// captureInput reads the raw environment signals and normalizes them into
// the raw MorphState fields. Nothing here touches the smoothed fields.
func (e *Engine) captureInput() {
	e.handleResize()

	// Scroll: accumulate wheel travel and normalize by the transition
	// window (a multiple of the viewport height).
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		e.scrollOffset -= float64(wheel) * wheelStep
		denom := e.scrollDenominator()
		e.scrollOffset = field.Clamp(e.scrollOffset, 0, denom)
		e.state.RawTarget = e.scrollOffset / denom
	}

	// Pointer: normalize to NDC with Y up.
	mouse := rl.GetMousePosition()
	e.state.RawPointerX = field.Clamp(float64(mouse.X)/e.width*2-1, -1, 1)
	e.state.RawPointerY = field.Clamp(1-float64(mouse.Y)/e.height*2, -1, 1)

	if rl.IsKeyPressed(rl.KeySpace) {
		e.paused = !e.paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		e.hud.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		e.CyclePreset()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		e.scrollOffset = 0
		e.state.RawTarget = 0
	}
}

// scrollDenominator is the full scroll travel of the morph. Floored at 1 so
// a degenerate viewport can never divide by zero.
func (e *Engine) scrollDenominator() float64 {
	denom := e.height * e.cfg.Morph.TransitionWindow
	if denom < 1 {
		denom = 1
	}
	return denom
}

// handleResize propagates new viewport dimensions to the projection.
func (e *Engine) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if w == e.width && h == e.height {
		return
	}
	e.setViewport(w, h)
}

// setViewport updates the cached dimensions and the camera aspect. Zero
// dimensions are clamped rather than propagated.
func (e *Engine) setViewport(w, h float64) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	e.width = w
	e.height = h
	e.rig.Resize(w, h)
}
