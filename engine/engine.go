// Package engine owns the simulation world and drives the per-tick system
// pipeline: behavior, then steering, then spine, in that fixed order.
package engine

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/components"
	"github.com/andrepology/pond-sub000/systems"
	"github.com/andrepology/pond-sub000/telemetry"
	"github.com/andrepology/pond-sub000/vec"
)

// Options configures engine construction.
type Options struct {
	Seed          int64                    // RNG seed; 0 keeps the default source
	Perf          *telemetry.PerfCollector // optional phase timing
	ArenaCapacity int                      // frame arena size in vectors; 0 = derived from params
}

// Engine simulates creatures inside a bounded volume. It is single-threaded
// and driven by an external tick: callers must not invoke Step concurrently,
// and stimulus submission must happen on the tick thread.
type Engine struct {
	world  *ecs.World
	rng    *rand.Rand
	params systems.Params
	bounds systems.Bounds

	mapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Pose,
		components.Motion,
		components.Spine,
		components.Behavior,
	]
	filter *ecs.Filter6[
		components.Position,
		components.Velocity,
		components.Pose,
		components.Motion,
		components.Spine,
		components.Behavior,
	]

	posMap      *ecs.Map1[components.Position]
	velMap      *ecs.Map1[components.Velocity]
	poseMap     *ecs.Map1[components.Pose]
	motionMap   *ecs.Map1[components.Motion]
	spineMap    *ecs.Map1[components.Spine]
	behaviorMap *ecs.Map1[components.Behavior]

	behavior *systems.BehaviorSystem
	steering *systems.SteeringSystem
	spine    *systems.SpineSystem

	arena *vec.Arena
	perf  *telemetry.PerfCollector

	creatures []ecs.Entity
	tick      int32
}

// New creates an engine with default options.
func New(bounds systems.Bounds, params systems.Params) *Engine {
	return NewWithOptions(bounds, params, Options{})
}

// NewWithOptions creates an engine.
func NewWithOptions(bounds systems.Bounds, params systems.Params, opts Options) *Engine {
	world := ecs.NewWorld()

	seed := opts.Seed
	if seed == 0 {
		seed = 42
	}
	rng := rand.New(rand.NewSource(seed))

	arenaCap := opts.ArenaCapacity
	if arenaCap <= 0 {
		// Room for a handful of creatures' spine scratch plus growth.
		arenaCap = 16 * (params.SegmentCount + 8)
	}
	arena := vec.NewArena(arenaCap)

	e := &Engine{
		world:  world,
		rng:    rng,
		params: params,
		bounds: bounds,
		mapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Pose,
			components.Motion,
			components.Spine,
			components.Behavior,
		](world),
		filter: ecs.NewFilter6[
			components.Position,
			components.Velocity,
			components.Pose,
			components.Motion,
			components.Spine,
			components.Behavior,
		](world),
		posMap:      ecs.NewMap1[components.Position](world),
		velMap:      ecs.NewMap1[components.Velocity](world),
		poseMap:     ecs.NewMap1[components.Pose](world),
		motionMap:   ecs.NewMap1[components.Motion](world),
		spineMap:    ecs.NewMap1[components.Spine](world),
		behaviorMap: ecs.NewMap1[components.Behavior](world),
		arena:       arena,
		perf:        opts.Perf,
	}

	e.behavior = systems.NewBehaviorSystem(world, params, rng)
	e.steering = systems.NewSteeringSystem(world, params, bounds, rng)
	e.spine = systems.NewSpineSystem(world, params, arena)

	return e
}

// SetEatFunc registers the growth hook invoked once per completed Eat.
func (e *Engine) SetEatFunc(fn systems.EatFunc) {
	e.behavior.SetEatFunc(fn)
}

// Spawn creates a creature with its head at the given seed position and the
// spine laid out directly behind it.
func (e *Engine) Spawn(at vec.Vec3) ecs.Entity {
	head := e.bounds.Clamp(at)
	angle := e.rng.Float64() * 2 * math.Pi
	heading := vec.Vec3{
		X: float32(math.Cos(angle)),
		Z: float32(math.Sin(angle)),
	}

	pos := components.Position{Vec3: head}
	vel := components.Velocity{Vec3: heading.Scale(e.params.MinSpeed)}
	pose := components.Pose{Heading: heading}
	motion := components.Motion{}
	spine := components.NewSpine(e.params.SegmentCount, head, heading, e.params.SegmentSpacing, e.params.SpacingFalloff)
	behavior := components.Behavior{State: components.StateWander}

	entity := e.mapper.NewEntity(&pos, &vel, &pose, &motion, &spine, &behavior)
	e.creatures = append(e.creatures, entity)
	return entity
}

// Step advances the whole simulation by dt seconds. Behavior runs first
// (may set or clear targets), then steering (new head pose), then the spine
// solver (trailing segment poses).
//
// When a PerfCollector is attached, Step marks its phases but does not open
// or close the tick; the caller brackets Step with StartTick and EndTick so
// its own per-tick work (telemetry, rendering prep) lands in the same sample.
func (e *Engine) Step(dt float32) {
	if dt < 0 {
		dt = 0
	}
	e.arena.Reset()

	if e.perf != nil {
		e.perf.StartPhase(telemetry.PhaseBehavior)
	}
	e.behavior.Update(dt)

	if e.perf != nil {
		e.perf.StartPhase(telemetry.PhaseSteering)
	}
	e.steering.Update(dt)

	if e.perf != nil {
		e.perf.StartPhase(telemetry.PhaseSpine)
	}
	e.spine.Update(dt)

	e.tick++
}

// Submit feeds a world point to one creature. Out-of-bounds points are
// projected into the volume, never rejected.
func (e *Engine) Submit(entity ecs.Entity, p vec.Vec3) {
	b := e.behaviorMap.Get(entity)
	if b == nil {
		return
	}
	systems.Submit(b, p, e.bounds)
}

// StartTalking forces the Talk state, preserving the pending queue.
func (e *Engine) StartTalking(entity ecs.Entity, message string) {
	if b := e.behaviorMap.Get(entity); b != nil {
		systems.StartTalking(b, message)
	}
}

// StopTalking resumes the queued approach, or wandering.
func (e *Engine) StopTalking(entity ecs.Entity) {
	if b := e.behaviorMap.Get(entity); b != nil {
		systems.StopTalking(b)
	}
}

// Reset drops the creature's stimuli and returns it to Wander. Position and
// spine stay where they are.
func (e *Engine) Reset(entity ecs.Entity) {
	b := e.behaviorMap.Get(entity)
	if b == nil {
		return
	}
	systems.ClearStimuli(b)
	b.State = components.StateWander
	b.Timer = 0
	b.RestCheck = 0
	b.TalkMessage = ""
	if m := e.motionMap.Get(entity); m != nil {
		m.RestTarget = 0
	}
}

// Creatures returns the spawned creature entities in creation order.
func (e *Engine) Creatures() []ecs.Entity {
	return e.creatures
}

// Tick returns the number of completed steps.
func (e *Engine) Tick() int32 {
	return e.tick
}

// Params returns the engine's tuning parameters.
func (e *Engine) Params() systems.Params {
	return e.params
}

// Bounds returns the simulation volume.
func (e *Engine) Bounds() systems.Bounds {
	return e.bounds
}

// ArenaFallbacks reports frame-arena overflow allocations; nonzero under
// sustained load means ArenaCapacity is undersized.
func (e *Engine) ArenaFallbacks() int {
	return e.arena.Fallbacks()
}
