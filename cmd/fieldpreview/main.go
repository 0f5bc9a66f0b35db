// Displacement field preview tool - interactive visualization with sliders.
//
// Renders the wave elevation field or the sphere noise field as a heatmap
// while the tuning constants are adjusted live.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/calebwren/morphfield/config"
	"github.com/calebwren/morphfield/field"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
)

// previewParams holds the live-tunable constants.
type previewParams struct {
	WaveGain       float32
	FrequencyGain  float32
	NoiseScale     float32
	NoiseTimeSpeed float32
	ShowNoise      bool
	Seed           int64
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Displacement Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	config.MustInit("")
	cfg := config.Cfg()
	harmonics := field.HarmonicsFromConfig(cfg.Wave.Harmonics)

	params := previewParams{
		WaveGain:       1.0,
		FrequencyGain:  1.0,
		NoiseScale:     float32(cfg.Sphere.NoiseScale),
		NoiseTimeSpeed: float32(cfg.Sphere.NoiseTimeSpeed),
		Seed:           12345,
	}
	noise := makeNoise(cfg, params)

	values := make([]float64, gridSize*gridSize)
	pixels := make([]color.RGBA, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var t float32
	animating := true
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			t += rl.GetFrameTime()
			needsRegen = true
		}

		if needsRegen {
			if params.ShowNoise {
				generateNoiseField(values, cfg, noise, float64(t))
			} else {
				generateWaveField(values, cfg, harmonics, params, float64(t))
			}
			updateTexture(texture, values, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{}, 0, rl.White,
		)

		panelX := float32(previewSize + 20)
		panelY := float32(20)

		label := "Wave elevation"
		if params.ShowNoise {
			label = "Sphere noise"
		}
		rl.DrawText(label, int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 40

		newGain := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "3.0",
			params.WaveGain, 0.1, 3.0,
		)
		rl.DrawText(fmt.Sprintf("gain %.2f", params.WaveGain), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 14, rl.DarkGray)
		if newGain != params.WaveGain {
			params.WaveGain = newGain
			needsRegen = true
		}
		panelY += 36

		newFreq := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.2", "4.0",
			params.FrequencyGain, 0.2, 4.0,
		)
		rl.DrawText(fmt.Sprintf("freq %.2f", params.FrequencyGain), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 14, rl.DarkGray)
		if newFreq != params.FrequencyGain {
			params.FrequencyGain = newFreq
			needsRegen = true
		}
		panelY += 36

		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.05", "1.5",
			params.NoiseScale, 0.05, 1.5,
		)
		rl.DrawText(fmt.Sprintf("scale %.2f", params.NoiseScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 14, rl.DarkGray)
		if newScale != params.NoiseScale {
			params.NoiseScale = newScale
			noise = makeNoise(cfg, params)
			needsRegen = true
		}
		panelY += 36

		newSpeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.0", "2.0",
			params.NoiseTimeSpeed, 0.0, 2.0,
		)
		rl.DrawText(fmt.Sprintf("speed %.2f", params.NoiseTimeSpeed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 14, rl.DarkGray)
		if newSpeed != params.NoiseTimeSpeed {
			params.NoiseTimeSpeed = newSpeed
			noise = makeNoise(cfg, params)
			needsRegen = true
		}
		panelY += 48

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.ShowNoise, "Show Wave", "Show Noise")) {
			params.ShowNoise = !params.ShowNoise
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "New Seed") {
			params.Seed = params.Seed*6364136223846793005 + 1442695040888963407
			noise = makeNoise(cfg, params)
			needsRegen = true
		}

		rl.EndDrawing()
	}
}

func toggleText(state bool, on, off string) string {
	if state {
		return on
	}
	return off
}

func makeNoise(cfg *config.Config, p previewParams) *field.SphereNoise {
	sphereCfg := cfg.Sphere
	sphereCfg.NoiseScale = float64(p.NoiseScale)
	sphereCfg.NoiseTimeSpeed = float64(p.NoiseTimeSpeed)
	return field.NewSphereNoise(p.Seed, sphereCfg)
}

// generateWaveField samples the harmonic sum over the configured plane.
func generateWaveField(values []float64, cfg *config.Config, harmonics []field.Harmonic, p previewParams, t float64) {
	scaled := make([]field.Harmonic, len(harmonics))
	for i, h := range harmonics {
		h.Amplitude *= float64(p.WaveGain)
		h.Frequency *= float64(p.FrequencyGain)
		scaled[i] = h
	}
	for iy := 0; iy < gridSize; iy++ {
		z := (float64(iy)/gridSize - 0.5) * cfg.Grid.PlaneHeight
		for ix := 0; ix < gridSize; ix++ {
			x := (float64(ix)/gridSize - 0.5) * cfg.Grid.PlaneWidth
			values[iy*gridSize+ix] = field.WaveElevation(x, z, t, scaled)
		}
	}
}

// generateNoiseField samples the sphere noise on a planar slice through the
// sphere's equator.
func generateNoiseField(values []float64, cfg *config.Config, noise *field.SphereNoise, t float64) {
	r := cfg.Sphere.Radius
	for iy := 0; iy < gridSize; iy++ {
		z := (float64(iy)/gridSize - 0.5) * 2 * r
		for ix := 0; ix < gridSize; ix++ {
			x := (float64(ix)/gridSize - 0.5) * 2 * r
			values[iy*gridSize+ix] = noise.Sample(r3.Vec{X: x, Z: z}, t)
		}
	}
}

// updateTexture maps values to a blue-white heat ramp and uploads it.
func updateTexture(texture rl.Texture2D, values []float64, pixels []color.RGBA) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span < 1e-9 {
		span = 1
	}
	for i, v := range values {
		n := (v - lo) / span
		pixels[i] = color.RGBA{
			R: uint8(20 + 215*n*n),
			G: uint8(40 + 200*n),
			B: uint8(120 + 135*n),
			A: 255,
		}
	}
	rl.UpdateTexture(texture, pixels)
}
