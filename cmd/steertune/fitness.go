package main

import (
	"math/rand"

	"github.com/andrepology/pond-sub000/config"
	"github.com/andrepology/pond-sub000/engine"
)

// FitnessEvaluator scores a parameter vector by running a scripted feeding
// course: one creature chases a fixed sequence of stimuli, and the score is
// mean sim-seconds per completed target. Unfinished targets are charged the
// full run duration, so slow or unstable tunings score strictly worse.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int32
	seeds    []int64
	targets  int
	base     *config.Config

	lastCompleted int
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, targets int, base *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		maxTicks: maxTicks,
		seeds:    seeds,
		targets:  targets,
		base:     base,
	}
}

// Evaluate runs the course over all seeds and returns the mean seconds per
// target. Lower is better.
func (ev *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *ev.base
	ev.params.ApplyToConfig(&cfg, raw)
	// Rest breaks between targets would dominate the signal
	cfg.Behavior.RestChance = 0
	cfg.Behavior.RestDuration = 0

	dt := float32(cfg.Physics.DT)
	var totalSec float64
	completed := 0

	for _, seed := range ev.seeds {
		eng := engine.NewWithOptions(cfg.Bounds(), cfg.Params(), engine.Options{Seed: seed})
		ent := eng.Spawn(eng.Bounds().Center())

		courseRng := rand.New(rand.NewSource(seed))
		for i := 0; i < ev.targets; i++ {
			eng.Submit(ent, eng.Bounds().RandomInside(courseRng))
		}

		var ticks int32
		for ticks = 0; ticks < ev.maxTicks; ticks++ {
			eng.Step(dt)
			if eng.Snapshot(ent).Eats >= ev.targets {
				break
			}
		}
		completed += eng.Snapshot(ent).Eats
		totalSec += float64(ticks) * float64(dt)
	}

	ev.lastCompleted = completed
	n := len(ev.seeds) * ev.targets
	if n == 0 {
		return 0
	}
	return totalSec / float64(n)
}

// LastCompleted returns how many targets the most recent evaluation finished.
func (ev *FitnessEvaluator) LastCompleted() int {
	return ev.lastCompleted
}
