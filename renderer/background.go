package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Background fills the frame with a vertical gradient so the particle field
// reads as a page backdrop rather than floating on black.
type Background struct {
	Top    rl.Color
	Bottom rl.Color
}

// NewBackground derives a dark two-stop gradient from the palette's deep
// color.
func NewBackground(deepR, deepG, deepB float64) *Background {
	return &Background{
		Top: rl.Color{
			R: uint8(deepR * 0.35 * 255),
			G: uint8(deepG * 0.35 * 255),
			B: uint8(deepB * 0.35 * 255),
			A: 255,
		},
		Bottom: rl.Color{R: 2, G: 3, B: 8, A: 255},
	}
}

// Draw fills the viewport.
func (b *Background) Draw(width, height int32) {
	rl.DrawRectangleGradientV(0, 0, width, height, b.Top, b.Bottom)
}
