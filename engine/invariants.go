package engine

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/components"
)

// CheckInvariants verifies the structural invariants of one creature after
// a tick. It is meant for tests; the engine itself relies on defensive
// clamping rather than runtime assertions.
func (e *Engine) CheckInvariants(entity ecs.Entity) error {
	pos := e.posMap.Get(entity)
	if pos == nil {
		return fmt.Errorf("entity %d has no creature components", entity.ID())
	}
	vel := e.velMap.Get(entity)
	spine := e.spineMap.Get(entity)
	b := e.behaviorMap.Get(entity)

	const eps = 1e-3

	if !e.bounds.Contains(e.bounds.Clamp(pos.Vec3)) {
		return fmt.Errorf("position %v cannot be contained", pos.Vec3)
	}
	if clamped := e.bounds.Clamp(pos.Vec3); clamped.Dist(pos.Vec3) > eps {
		return fmt.Errorf("position %v outside bounds by %v", pos.Vec3, clamped.Dist(pos.Vec3))
	}

	if speed := vel.Len(); speed > e.params.MaxSpeed+eps {
		return fmt.Errorf("speed %v exceeds max %v", speed, e.params.MaxSpeed)
	}

	targetOK := b.HasTarget == (b.State == components.StateApproach || b.State == components.StateEat)
	if !targetOK {
		return fmt.Errorf("target presence %v inconsistent with state %v", b.HasTarget, b.State)
	}

	pred := pos.Vec3
	for i := range spine.Segments {
		if i > 0 && spine.Spacing[i] > spine.Spacing[i-1]+eps {
			return fmt.Errorf("spacing not monotonic at %d: %v > %v", i, spine.Spacing[i], spine.Spacing[i-1])
		}
		if d := spine.Segments[i].Dist(pred); d > spine.Spacing[i]+eps {
			return fmt.Errorf("link %d overstretched: %v > %v", i, d, spine.Spacing[i])
		}
		pred = spine.Segments[i]
	}

	return nil
}
