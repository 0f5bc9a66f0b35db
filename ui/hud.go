// Package ui draws the debug overlay for the effect.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Info is the per-frame state the HUD displays.
type Info struct {
	Frame     int
	Morph     float64
	RawTarget float64
	Particles int
	Preset    string
	Paused    bool
}

// HUD renders a small stats panel in the top-left corner. Hidden by default;
// toggled at runtime.
type HUD struct {
	visible bool
}

// NewHUD creates a hidden HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Toggle flips visibility and returns the new state.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Visible reports whether the panel is shown.
func (h *HUD) Visible() bool {
	return h.visible
}

// Draw renders the panel.
func (h *HUD) Draw(info Info) {
	if !h.visible {
		return
	}

	const (
		x, y       = 10, 10
		w          = 240
		lineHeight = 18
		pad        = 8
	)

	lines := []string{
		fmt.Sprintf("fps       %d", rl.GetFPS()),
		fmt.Sprintf("frame     %d", info.Frame),
		fmt.Sprintf("morph     %.3f -> %.3f", info.Morph, info.RawTarget),
		fmt.Sprintf("particles %d", info.Particles),
	}
	if info.Preset != "" {
		lines = append(lines, fmt.Sprintf("preset    %s", info.Preset))
	}
	if info.Paused {
		lines = append(lines, "PAUSED")
	}
	lines = append(lines, "", "wheel scroll  [p] preset  [space] pause")

	height := int32(len(lines)*lineHeight + pad*2)
	rl.DrawRectangle(x, y, w, height, rl.Color{R: 10, G: 14, B: 24, A: 200})
	rl.DrawRectangleLines(x, y, w, height, rl.Color{R: 70, G: 90, B: 130, A: 255})

	ty := int32(y + pad)
	for _, line := range lines {
		rl.DrawText(line, x+pad, ty, 14, rl.Color{R: 190, G: 205, B: 230, A: 255})
		ty += lineHeight
	}
}
