package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/calebwren/morphfield/config"
	"github.com/calebwren/morphfield/engine"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Tuning preset to apply (calm, converge, magnet, tempest)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output frame stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	demo := flag.Bool("demo", false, "Drive the morph automatically (kiosk mode)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *preset != "" {
		if err := cfg.ApplyPreset(*preset); err != nil {
			slog.Error("failed to apply preset", "error", err)
			os.Exit(1)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := engine.Options{
		Seed:       rngSeed,
		Headless:   *headless,
		OutputDir:  *outputDir,
		LogStats:   *logStats,
		DemoScroll: *demo,
	}

	if *headless {
		// Headless mode - pure CPU effect, no raylib needed
		e, err := engine.New(cfg, opts)
		if err != nil {
			slog.Error("failed to start engine", "error", err)
			os.Exit(1)
		}
		defer e.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"particles", cfg.Derived.ParticleCount,
			"max_frames", *maxFrames,
		)

		fps := cfg.Screen.TargetFPS
		if fps <= 0 {
			fps = 60
		}
		dt := 1.0 / float64(fps)
		for {
			e.UpdateHeadless(dt)

			if *maxFrames > 0 && e.Frame() >= *maxFrames {
				slog.Info("max frames reached", "frame", e.Frame())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Morphfield")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	e, err := engine.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start engine", "error", err)
		return
	}
	defer e.Unload()

	for !rl.WindowShouldClose() {
		e.Update()
		e.Draw()

		if *maxFrames > 0 && e.Frame() >= *maxFrames {
			break
		}
	}
}
