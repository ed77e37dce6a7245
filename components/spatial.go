// Package components defines ECS components for the creature simulation.
package components

import "github.com/andrepology/pond-sub000/vec"

// Position is a creature's head location in world space.
// Owned and mutated only by the steering system.
type Position struct {
	vec.Vec3
}

// Velocity is a creature's current velocity. Its magnitude stays inside
// [minSpeed(restFactor), maxSpeed] after every steering step.
type Velocity struct {
	vec.Vec3
}

// Pose holds the smoothed orientation state exposed to renderers.
// Heading is a unit vector decoupled from instantaneous velocity; Bank is
// the signed roll derived from turn rate, bounded by the configured maximum.
type Pose struct {
	Heading vec.Vec3
	Bank    float32 // radians
}
