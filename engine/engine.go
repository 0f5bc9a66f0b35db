// Package engine orchestrates the morphing particle effect: it owns the ECS
// world holding the particle field, advances the morph state once per tick,
// runs the displacement and shading systems, and drives the camera rig and
// draw layer. Raw input events only ever write the raw MorphState fields;
// the frame tick is the sole writer of the smoothed ones.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/calebwren/morphfield/camera"
	"github.com/calebwren/morphfield/components"
	"github.com/calebwren/morphfield/config"
	"github.com/calebwren/morphfield/field"
	"github.com/calebwren/morphfield/renderer"
	"github.com/calebwren/morphfield/telemetry"
	"github.com/calebwren/morphfield/ui"
)

// Options holds construction settings beyond the config file.
type Options struct {
	Seed       int64
	Headless   bool
	OutputDir  string
	LogStats   bool
	DemoScroll bool // drive the morph with a slow sinusoid (kiosk mode)
}

// Engine is the running effect instance.
type Engine struct {
	cfg *config.Config

	world  *ecs.World
	mapper *ecs.Map2[components.Particle, components.RenderState]
	filter *ecs.Filter2[components.Particle, components.RenderState]

	state     field.MorphState
	harmonics []field.Harmonic
	noise     *field.SphereNoise
	shader    *field.Shader
	rig       *camera.Rig

	points     *renderer.PointRenderer
	background *renderer.Background
	hud        *ui.HUD

	perf       *telemetry.PerfCollector
	output     *telemetry.OutputManager
	logStats   bool
	statsEvery int

	// reused draw buffer
	sprites []renderer.PointSprite

	rng          *rand.Rand
	frame        int
	rawElapsed   float64 // unscaled seconds since start
	scrollOffset float64 // accumulated wheel travel in pixels
	width        float64
	height       float64

	presets     []string
	presetIndex int

	demoScroll bool
	headless   bool
	paused     bool
	unloaded   bool
}

// New builds an engine from the given config. On any failure nothing is
// retained: the error is reported once and the engine must not start.
func New(cfg *config.Config, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	particles, err := field.BuildGrid(field.GridParams{
		SegmentsX:   cfg.Grid.SegmentsX,
		SegmentsY:   cfg.Grid.SegmentsY,
		PlaneWidth:  cfg.Grid.PlaneWidth,
		PlaneHeight: cfg.Grid.PlaneHeight,
		Radius:      cfg.Sphere.Radius,
		DelayWindow: cfg.Morph.DelayWindow,
	}, rng)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	e := &Engine{
		cfg:        cfg,
		world:      world,
		mapper:     ecs.NewMap2[components.Particle, components.RenderState](world),
		filter:     ecs.NewFilter2[components.Particle, components.RenderState](world),
		rng:        rng,
		width:      float64(cfg.Screen.Width),
		height:     float64(cfg.Screen.Height),
		hud:        ui.NewHUD(),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:   opts.LogStats,
		demoScroll: opts.DemoScroll,
		headless:   opts.Headless,
		sprites:    make([]renderer.PointSprite, 0, len(particles)),
		presets:    config.Presets(),
	}

	for i := range particles {
		rs := components.RenderState{}
		e.mapper.NewEntity(&particles[i], &rs)
	}

	e.rig = camera.NewRig(cfg, e.width, e.height)
	e.noise = field.NewSphereNoise(opts.Seed, cfg.Sphere)
	e.harmonics = field.HarmonicsFromConfig(cfg.Wave.Harmonics)
	e.shader = field.NewShader(cfg)
	e.shader.Project = e.projectNDC

	targetFPS := cfg.Screen.TargetFPS
	if targetFPS <= 0 {
		targetFPS = 60
	}
	e.statsEvery = int(cfg.Telemetry.StatsWindow * float64(targetFPS))
	if e.statsEvery < 1 {
		e.statsEvery = 1
	}

	if !opts.Headless {
		e.points = renderer.NewPointRenderer()
		if err := e.points.Init(); err != nil {
			return nil, fmt.Errorf("engine: acquiring render resources: %w", err)
		}
		e.background = renderer.NewBackground(
			cfg.Palette.Deep[0], cfg.Palette.Deep[1], cfg.Palette.Deep[2])
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			if e.points != nil {
				e.points.Unload()
			}
			return nil, err
		}
		e.output = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Warn("failed to snapshot config", "error", err)
		}
	}

	return e, nil
}

// projectNDC is the projection strategy handed to the shading pipeline.
func (e *Engine) projectNDC(p r3.Vec) (float64, float64, float64, bool) {
	return e.rig.WorldToNDC(p)
}

// Update runs one graphical tick: input capture, then the simulation step.
func (e *Engine) Update() {
	e.perf.StartFrame()
	e.perf.StartPhase(telemetry.PhaseInput)
	e.captureInput()
	e.step(frameDT())
}

// UpdateHeadless advances one tick without any raylib calls, for soak runs
// and CI.
func (e *Engine) UpdateHeadless(dt float64) {
	e.perf.StartFrame()
	e.perf.StartPhase(telemetry.PhaseInput)
	e.step(dt)
	e.perf.EndFrame()
	e.recordStats()
}

// step advances smoothing, the camera and the per-particle systems.
func (e *Engine) step(dt float64) {
	if e.paused {
		return
	}

	e.rawElapsed += dt

	if e.demoScroll {
		// Slow full morph cycle for unattended display.
		e.state.RawTarget = 0.5 - 0.5*math.Cos(e.rawElapsed*2*math.Pi/30)
	}

	e.state.Tick(dt, e.cfg.Morph.TimeScale,
		e.cfg.Morph.SmoothingFactor, e.cfg.Morph.PointerSmoothing)
	e.rig.Update(e.state.Smoothed, e.state.Elapsed)

	e.perf.StartPhase(telemetry.PhaseShade)
	sc := field.FrameScalars{
		Smoothed: e.state.Smoothed,
		Elapsed:  e.state.Elapsed,
		PointerX: e.state.PointerX,
		PointerY: e.state.PointerY,
	}

	query := e.filter.Query()
	for query.Next() {
		p, rs := query.Get()
		progress := field.LocalProgress(e.state.Smoothed, p.Delay, e.cfg.Morph.ScaleFactor)
		elevation := field.WaveElevation(p.WavePos.X, p.WavePos.Z, e.state.Elapsed, e.harmonics)
		noise := e.noise.Sample(p.SpherePos, e.state.Elapsed)
		e.shader.Shade(p, progress, elevation, noise, &sc, rs)
	}

	e.frame++
}

// recordStats periodically logs and/or writes windowed frame stats.
func (e *Engine) recordStats() {
	if e.frame == 0 || e.frame%e.statsEvery != 0 {
		return
	}
	if !e.logStats && e.output == nil {
		return
	}

	stats := telemetry.ComputeFrameTimeStats(e.perf.FrameMillis())
	record := telemetry.FrameStats{
		Frame:       e.frame,
		TimeSec:     e.state.Elapsed,
		Morph:       e.state.Smoothed,
		Particles:   e.cfg.Derived.ParticleCount,
		FrameMsMean: stats.Mean,
		FrameMsP10:  stats.P10,
		FrameMsP50:  stats.P50,
		FrameMsP90:  stats.P90,
	}

	if e.logStats {
		slog.Info("frame stats",
			"frame", record.Frame,
			"morph", record.Morph,
			"frame_ms_mean", record.FrameMsMean,
			"frame_ms_p90", record.FrameMsP90,
		)
	}
	if err := e.output.WriteFrame(record); err != nil {
		slog.Warn("failed to write frame stats", "error", err)
	}
}

// applyPreset switches tuning in place. Geometry is fixed at construction,
// so presets only touch the displacement, shading, morph and camera
// constants.
func (e *Engine) applyPreset(name string) {
	if err := e.cfg.ApplyPreset(name); err != nil {
		slog.Warn("preset rejected", "preset", name, "error", err)
		return
	}
	e.harmonics = field.HarmonicsFromConfig(e.cfg.Wave.Harmonics)
	e.noise = field.NewSphereNoise(int64(e.rng.Uint64()), e.cfg.Sphere)
	e.shader = field.NewShader(e.cfg)
	e.shader.Project = e.projectNDC
	e.rig.WavePose = camera.PoseFromConfig(e.cfg.Camera.WavePose)
	e.rig.SpherePose = camera.PoseFromConfig(e.cfg.Camera.SpherePose)
	e.rig.SwayAmplitude = e.cfg.Camera.SwayAmplitude
	e.rig.SwaySpeed = e.cfg.Camera.SwaySpeed
	slog.Info("preset applied", "preset", name)
}

// CyclePreset advances to the next embedded preset.
func (e *Engine) CyclePreset() {
	if len(e.presets) == 0 {
		return
	}
	e.applyPreset(e.presets[e.presetIndex])
	e.presetIndex = (e.presetIndex + 1) % len(e.presets)
}

// Frame returns the number of completed ticks.
func (e *Engine) Frame() int {
	return e.frame
}

// Morph returns the current smoothed morph value.
func (e *Engine) Morph() float64 {
	return e.state.Smoothed
}

// SetScroll overrides the raw scroll progress, clamped to [0,1]. Used by the
// demo driver and tests; normal operation feeds it from the wheel.
func (e *Engine) SetScroll(progress float64) {
	e.state.RawTarget = field.Clamp(progress, 0, 1)
	denom := e.scrollDenominator()
	e.scrollOffset = e.state.RawTarget * denom
}

// Unload releases all render resources and closes logs. Idempotent: the
// teardown runs exactly once no matter how many exit paths reach it.
func (e *Engine) Unload() {
	if e.unloaded {
		return
	}
	e.unloaded = true

	if e.points != nil {
		e.points.Unload()
	}
	if err := e.output.Close(); err != nil {
		slog.Warn("failed to close output", "error", err)
	}
}
