package components

import "github.com/andrepology/pond-sub000/vec"

// State identifies the creature's current behavior.
type State uint8

const (
	StateWander State = iota
	StateApproach
	StateEat
	StateRest
	StateTalk
)

// String returns the state tag exposed to renderers and telemetry.
func (s State) String() string {
	switch s {
	case StateWander:
		return "wander"
	case StateApproach:
		return "approach"
	case StateEat:
		return "eat"
	case StateRest:
		return "rest"
	case StateTalk:
		return "talk"
	}
	return "unknown"
}

// Behavior holds the state machine data for one creature. Exactly one state
// is active at a time; Target is set if and only if State is Approach or
// Eat. Pending stimuli wait in Queue in arrival order.
type Behavior struct {
	State State
	Timer float32 // seconds in current state; reset on every transition

	Target    vec.Vec3
	HasTarget bool

	Queue []vec.Vec3 // FIFO of pending stimulus points, already bounds-clamped

	// RestCheck accumulates wander time since the last probabilistic rest
	// roll; RestDuration is how long the current rest lasts.
	RestCheck    float32
	RestDuration float32

	TalkMessage string

	// Eats counts completed Eat states, for the growth hook.
	Eats int
}

// PushBack appends a stimulus to the pending queue.
func (b *Behavior) PushBack(p vec.Vec3) {
	b.Queue = append(b.Queue, p)
}

// PushFront re-queues a stimulus ahead of all pending ones. Used when Talk
// interrupts an active approach so the pre-Talk target is served first.
func (b *Behavior) PushFront(p vec.Vec3) {
	b.Queue = append([]vec.Vec3{p}, b.Queue...)
}

// PopFront removes and returns the oldest pending stimulus.
func (b *Behavior) PopFront() (vec.Vec3, bool) {
	if len(b.Queue) == 0 {
		return vec.Vec3{}, false
	}
	p := b.Queue[0]
	b.Queue = b.Queue[1:]
	return p, true
}
