// Package renderer is the raylib draw layer for the effect. It owns the GPU
// resources (point sprite texture) and renders what the core computed; no
// effect math lives here.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointSprite is one projected particle ready to draw.
type PointSprite struct {
	X, Y   float32 // screen center in pixels
	Radius float32 // pixels
	Color  rl.Color
}

// PointRenderer draws particles as soft circular dots. The dot is a radial
// gradient texture fading to transparent, which gives each particle the
// round soft footprint instead of a square sprite.
type PointRenderer struct {
	sprite      rl.Texture2D
	initialized bool
}

// NewPointRenderer creates the renderer. Init must run after the window
// exists.
func NewPointRenderer() *PointRenderer {
	return &PointRenderer{}
}

// Init uploads the point sprite texture. Fails when no rendering context is
// available so the engine can refuse to start instead of limping along.
func (r *PointRenderer) Init() error {
	if r.initialized {
		return nil
	}
	if !rl.IsWindowReady() {
		return fmt.Errorf("renderer: no window context available")
	}

	img := rl.GenImageGradientRadial(64, 64, 0, rl.White, rl.Blank)
	r.sprite = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if r.sprite.ID == 0 {
		return fmt.Errorf("renderer: failed to upload point sprite texture")
	}
	rl.SetTextureFilter(r.sprite, rl.FilterBilinear)

	r.initialized = true
	return nil
}

// Draw renders all sprites for the frame. Callers pass them in any order;
// the soft dots are blended additively so ordering does not matter.
func (r *PointRenderer) Draw(sprites []PointSprite) {
	if !r.initialized {
		return
	}

	src := rl.Rectangle{Width: float32(r.sprite.Width), Height: float32(r.sprite.Height)}

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range sprites {
		s := &sprites[i]
		dst := rl.Rectangle{
			X:      s.X - s.Radius,
			Y:      s.Y - s.Radius,
			Width:  s.Radius * 2,
			Height: s.Radius * 2,
		}
		rl.DrawTexturePro(r.sprite, src, dst, rl.Vector2{}, 0, s.Color)
	}
	rl.EndBlendMode()
}

// Unload frees the sprite texture. Idempotent.
func (r *PointRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.sprite)
		r.initialized = false
	}
}
