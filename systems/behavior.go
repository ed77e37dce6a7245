package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/components"
	"github.com/andrepology/pond-sub000/vec"
)

// EatFunc is invoked once each time a creature finishes eating.
type EatFunc func(entity ecs.Entity, totalEats int)

// BehaviorSystem advances each creature's state machine. All transitions
// live in the advance method so the machine is testable in isolation from
// steering and rendering.
type BehaviorSystem struct {
	filter   ecs.Filter3[components.Position, components.Behavior, components.Motion]
	spineMap *ecs.Map1[components.Spine]
	params   Params
	rng      *rand.Rand
	onEat    EatFunc
}

// NewBehaviorSystem creates a new behavior system.
func NewBehaviorSystem(w *ecs.World, params Params, rng *rand.Rand) *BehaviorSystem {
	return &BehaviorSystem{
		filter:   *ecs.NewFilter3[components.Position, components.Behavior, components.Motion](w),
		spineMap: ecs.NewMap1[components.Spine](w),
		params:   params,
		rng:      rng,
	}
}

// SetEatFunc registers the growth hook callback. A nil callback is a no-op.
func (s *BehaviorSystem) SetEatFunc(fn EatFunc) {
	s.onEat = fn
}

// Update runs one behavior tick for every creature.
func (s *BehaviorSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, b, motion := query.Get()
		s.advance(entity, pos, b, motion, dt)
	}
}

// advance is the single authoritative transition function.
func (s *BehaviorSystem) advance(entity ecs.Entity, pos *components.Position, b *components.Behavior, motion *components.Motion, dt float32) {
	b.Timer += dt
	motion.RestTarget = 0

	switch b.State {
	case components.StateWander:
		if p, ok := b.PopFront(); ok {
			s.transition(b, components.StateApproach)
			b.Target = p
			b.HasTarget = true
			return
		}
		b.RestCheck += dt
		if b.RestCheck >= s.params.RestCheckInterval {
			b.RestCheck = 0
			// No spontaneous rest while a stimulus is queued.
			if len(b.Queue) == 0 && s.rng.Float32() < s.params.RestChance {
				span := s.params.MaxWanderRest - s.params.MinWanderRest
				b.RestDuration = s.params.MinWanderRest + s.rng.Float32()*span
				s.transition(b, components.StateRest)
			}
		}

	case components.StateApproach:
		if !b.HasTarget {
			// Defensive: an approach without a target falls back to wander.
			s.transition(b, components.StateWander)
			return
		}
		if pos.Dist(b.Target) < s.params.ApproachThreshold {
			s.transition(b, components.StateEat)
		}

	case components.StateEat:
		if b.Timer >= s.params.EatDuration {
			b.HasTarget = false
			b.Target = vec.Vec3{}
			b.Eats++
			if s.params.GrowOnEat {
				if spine := s.spineMap.Get(entity); spine != nil {
					spine.Grow(s.params.SpacingFalloff)
				}
			}
			if s.onEat != nil {
				s.onEat(entity, b.Eats)
			}
			b.RestDuration = s.params.RestDuration
			s.transition(b, components.StateRest)
		}

	case components.StateRest:
		motion.RestTarget = 1
		if b.Timer >= b.RestDuration {
			if p, ok := b.PopFront(); ok {
				s.transition(b, components.StateApproach)
				b.Target = p
				b.HasTarget = true
			} else {
				s.transition(b, components.StateWander)
			}
		}

	case components.StateTalk:
		// Held until StopTalking; the queue accumulates deferred stimuli.
	}
}

// transition switches state and resets the state timer.
func (s *BehaviorSystem) transition(b *components.Behavior, next components.State) {
	b.State = next
	b.Timer = 0
}

// Submit accepts a world point as a stimulus for one creature. Points are
// clamped into bounds and always join the back of the FIFO; with no active
// target the front of the queue is activated immediately, so earlier
// stimuli are never overtaken. During Talk everything stays deferred.
func Submit(b *components.Behavior, p vec.Vec3, bounds Bounds) {
	p = bounds.Clamp(p)
	b.PushBack(p)
	if b.State == components.StateTalk {
		return
	}
	if !b.HasTarget {
		if next, ok := b.PopFront(); ok {
			b.Target = next
			b.HasTarget = true
			b.State = components.StateApproach
			b.Timer = 0
		}
	}
}

// StartTalking forces the Talk state regardless of the current one. An
// active target is pushed back to the front of the queue so the pre-Talk
// intent survives the interruption.
func StartTalking(b *components.Behavior, message string) {
	if b.HasTarget {
		b.PushFront(b.Target)
		b.HasTarget = false
		b.Target = vec.Vec3{}
	}
	b.TalkMessage = message
	b.State = components.StateTalk
	b.Timer = 0
}

// StopTalking leaves Talk, resuming the queued approach if any.
func StopTalking(b *components.Behavior) {
	if b.State != components.StateTalk {
		return
	}
	b.TalkMessage = ""
	if p, ok := b.PopFront(); ok {
		b.Target = p
		b.HasTarget = true
		b.State = components.StateApproach
	} else {
		b.State = components.StateWander
	}
	b.Timer = 0
}

// ClearStimuli drops the active target and empties the queue.
func ClearStimuli(b *components.Behavior) {
	b.HasTarget = false
	b.Target = vec.Vec3{}
	b.Queue = b.Queue[:0]
}
