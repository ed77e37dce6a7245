// Package viewer owns a running simulation session: engine stepping,
// telemetry collection, and the raylib window with its input handling.
package viewer

import (
	"log/slog"
	"math/rand"
	"path/filepath"

	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/camera"
	"github.com/andrepology/pond-sub000/config"
	"github.com/andrepology/pond-sub000/engine"
	"github.com/andrepology/pond-sub000/telemetry"
)

// Options configures a session.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// FeedIntervalSec submits a random in-bounds stimulus to a random
	// creature every so many simulated seconds. 0 disables autofeeding.
	FeedIntervalSec float64
}

// Session wires the engine to telemetry and, in windowed mode, to
// rendering and input.
type Session struct {
	eng *engine.Engine
	rng *rand.Rand

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector

	opts Options
	dt   float32
	cam  *camera.Camera

	paused         bool
	stepsPerUpdate int
	timeScale      float32
	feedClock      float64
	selected       int
	talking        bool

	snaps   []engine.Snapshot
	samples []telemetry.CreatureSample
}

// NewSession creates a session from the loaded config.
func NewSession(opts Options) *Session {
	cfg := config.Cfg()

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	eng := engine.NewWithOptions(cfg.Bounds(), cfg.Params(), engine.Options{
		Seed: opts.Seed,
		Perf: perf,
	})

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	s := &Session{
		eng:            eng,
		rng:            rand.New(rand.NewSource(opts.Seed + 1)),
		collector:      telemetry.NewCollector(cfg.Telemetry.WindowTicks),
		perf:           perf,
		opts:           opts,
		dt:             float32(cfg.Physics.DT),
		stepsPerUpdate: steps,
		timeScale:      1,
	}

	eng.SetEatFunc(func(entity ecs.Entity, total int) {
		s.collector.RecordEat()
		slog.Debug("eat", "entity", entity.ID(), "total_eats", total)
	})

	if opts.OutputDir != "" {
		out, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output dir", "dir", opts.OutputDir, "error", err)
		} else {
			s.output = out
			// Snapshot the effective config alongside the CSVs
			if err := cfg.WriteYAML(filepath.Join(opts.OutputDir, "config.yaml")); err != nil {
				slog.Warn("failed to write config snapshot", "error", err)
			}
		}
	}

	n := cfg.World.Creatures
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		eng.Spawn(eng.Bounds().RandomInside(s.rng))
	}

	return s
}

// step advances one simulation tick and folds it into telemetry.
func (s *Session) step(dt float32) {
	s.perf.StartTick()
	s.eng.Step(dt)
	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.recordTelemetry(float64(dt))
	s.perf.EndTick()
}

// recordTelemetry snapshots every creature and feeds the collector.
func (s *Session) recordTelemetry(dt float64) {
	s.refreshSnapshots()

	s.samples = s.samples[:0]
	for i := range s.snaps {
		sn := &s.snaps[i]
		s.samples = append(s.samples, telemetry.CreatureSample{
			State:    sn.State,
			Speed:    float64(sn.Velocity.Len()),
			Position: sn.Position,
		})
	}
	s.collector.RecordTick(dt, s.samples)

	if s.collector.WindowReady() {
		w := s.collector.Flush()
		if s.opts.LogStats {
			w.Log()
			s.perf.Stats().LogStats()
		}
		if s.output != nil {
			if err := s.output.WriteTelemetry(w); err != nil {
				slog.Warn("telemetry write failed", "error", err)
			}
			if err := s.output.WritePerf(s.perf.Stats(), w.WindowEndTick); err != nil {
				slog.Warn("perf write failed", "error", err)
			}
		}
		if n := s.eng.ArenaFallbacks(); n > 0 {
			slog.Warn("scratch arena overflowed", "fallbacks", n)
		}
	}
}

// refreshSnapshots fills s.snaps from the live creature list, reusing
// segment slices across ticks.
func (s *Session) refreshSnapshots() {
	ents := s.eng.Creatures()
	for len(s.snaps) < len(ents) {
		s.snaps = append(s.snaps, engine.Snapshot{})
	}
	s.snaps = s.snaps[:len(ents)]
	for i, ent := range ents {
		s.eng.SnapshotInto(ent, &s.snaps[i])
	}
}

// autofeed submits a random stimulus on the configured interval.
func (s *Session) autofeed(dt float64) {
	if s.opts.FeedIntervalSec <= 0 {
		return
	}
	s.feedClock += dt
	for s.feedClock >= s.opts.FeedIntervalSec {
		s.feedClock -= s.opts.FeedIntervalSec
		ents := s.eng.Creatures()
		if len(ents) == 0 {
			return
		}
		ent := ents[s.rng.Intn(len(ents))]
		p := s.eng.Bounds().RandomInside(s.rng)
		s.eng.Submit(ent, p)
		slog.Debug("autofeed", "entity", ent.ID(), "x", p.X, "y", p.Y, "z", p.Z)
	}
}

// UpdateHeadless advances the simulation without rendering.
func (s *Session) UpdateHeadless() {
	for i := 0; i < s.stepsPerUpdate; i++ {
		s.autofeed(float64(s.dt))
		s.step(s.dt)
	}
}

// Update advances the simulation one frame in windowed mode.
func (s *Session) Update() {
	s.handleInput()

	if !s.paused {
		for i := 0; i < s.stepsPerUpdate; i++ {
			s.autofeed(float64(s.dt) * float64(s.timeScale))
			s.step(s.dt * s.timeScale)
		}
	}

	s.perf.RecordFrame()
}

// Tick returns the engine tick count.
func (s *Session) Tick() int32 {
	return s.eng.Tick()
}

// Unload releases session resources.
func (s *Session) Unload() {
	if s.output != nil {
		s.output.Close()
	}
}
