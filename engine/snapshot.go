package engine

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/components"
	"github.com/andrepology/pond-sub000/vec"
)

// Snapshot is the read-only observable state of one creature after a tick.
// It is the engine's entire outbound surface: renderers and telemetry
// consume this, never the components directly.
type Snapshot struct {
	Position   vec.Vec3
	Velocity   vec.Vec3
	Heading    vec.Vec3
	Bank       float32
	RestFactor float32

	// Segments are trailing body points, head-most first. The slice is
	// owned by the snapshot.
	Segments []vec.Vec3

	State     components.State
	Target    vec.Vec3 // active stimulus, valid when HasTarget
	HasTarget bool

	// WanderTarget is the current wander goal, for marker rendering.
	WanderTarget vec.Vec3

	QueueLen int
	Eats     int
}

// Snapshot returns a fresh snapshot of one creature.
func (e *Engine) Snapshot(entity ecs.Entity) Snapshot {
	var s Snapshot
	e.SnapshotInto(entity, &s)
	return s
}

// SnapshotInto fills s, reusing its Segments slice when capacity allows so
// a per-frame caller allocates nothing in steady state.
func (e *Engine) SnapshotInto(entity ecs.Entity, s *Snapshot) {
	pos := e.posMap.Get(entity)
	if pos == nil {
		*s = Snapshot{}
		return
	}
	vel := e.velMap.Get(entity)
	pose := e.poseMap.Get(entity)
	motion := e.motionMap.Get(entity)
	spine := e.spineMap.Get(entity)
	b := e.behaviorMap.Get(entity)

	s.Position = pos.Vec3
	s.Velocity = vel.Vec3
	s.Heading = pose.Heading
	s.Bank = pose.Bank
	s.RestFactor = motion.RestFactor
	s.WanderTarget = motion.WanderTo

	s.Segments = append(s.Segments[:0], spine.Segments...)

	s.State = b.State
	s.Target = b.Target
	s.HasTarget = b.HasTarget
	s.QueueLen = len(b.Queue)
	s.Eats = b.Eats
}
