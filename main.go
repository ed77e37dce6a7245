package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/andrepology/pond-sub000/config"
	"github.com/andrepology/pond-sub000/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	feedInterval := flag.Float64("feed-interval", 0, "Seconds between automatic random stimuli (0 = off)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := viewer.Options{
		Seed:            rngSeed,
		LogStats:        *logStats,
		OutputDir:       *outputDir,
		Headless:        *headless,
		StepsPerUpdate:  *stepsPerUpdate,
		FeedIntervalSec: *feedInterval,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		s := viewer.NewSession(opts)
		defer s.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
			"feed_interval", *feedInterval,
		)

		for {
			s.UpdateHeadless()

			if *maxTicks > 0 && int(s.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", s.Tick())
				return
			}
		}
	} else {
		// Windowed mode
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Pond")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		s := viewer.NewSession(opts)
		defer s.Unload()

		for !rl.WindowShouldClose() {
			s.Update()
			s.Draw()

			if *maxTicks > 0 && int(s.Tick()) >= *maxTicks {
				break
			}
		}
	}
}
