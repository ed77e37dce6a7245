package components

import "github.com/andrepology/pond-sub000/vec"

// Motion holds the steering controller's per-creature scratch state: the
// rest blend, the current wander target pair, and the body wave phases.
type Motion struct {
	// RestFactor blends between active swimming (0) and resting drift (1).
	// It eases toward RestTarget exponentially each tick.
	RestFactor float32
	RestTarget float32

	// Wander target blending. The effective wander target is a smoothstep
	// interpolation from WanderFrom to WanderTo over the update interval,
	// so a retarget never causes a velocity discontinuity.
	WanderFrom  vec.Vec3
	WanderTo    vec.Vec3
	WanderAge   float32 // seconds since last retarget
	Wandering   bool    // false until the first retarget seeds both points
	Redirecting bool    // current WanderTo came from a boundary-probe exit

	// Wave phase sources for the spine. TravelPhase advances with distance
	// traveled, IdlePhase with wall-clock time.
	TravelPhase float32
	IdlePhase   float32

	// Speed from the last step, used for the wave blend weight.
	Speed float32
}

// Spine is the trailing body chain. Segments[0] is head-most. Spacing
// decreases monotonically toward the tail, so segments bunch behind the
// creature.
type Spine struct {
	Segments []vec.Vec3
	Spacing  []float32
}

// NewSpine lays out a chain of n segments directly behind the head,
// opposite the heading, with exponentially decaying link spacing.
func NewSpine(n int, head, heading vec.Vec3, baseSpacing, falloff float32) Spine {
	s := Spine{
		Segments: make([]vec.Vec3, n),
		Spacing:  make([]float32, n),
	}
	back := heading.Scale(-1)
	at := head
	spacing := baseSpacing
	for i := 0; i < n; i++ {
		s.Spacing[i] = spacing
		at = at.Add(back.Scale(spacing))
		s.Segments[i] = at
		spacing *= falloff
	}
	return s
}

// Grow appends one tail segment, continuing the spacing falloff.
func (s *Spine) Grow(falloff float32) {
	n := len(s.Segments)
	if n == 0 {
		return
	}
	last := s.Segments[n-1]
	spacing := s.Spacing[n-1] * falloff
	var dir vec.Vec3
	if n >= 2 {
		dir = last.Sub(s.Segments[n-2]).NormalizeOr(vec.Vec3{X: -1})
	} else {
		dir = vec.Vec3{X: -1}
	}
	s.Segments = append(s.Segments, last.Add(dir.Scale(spacing)))
	s.Spacing = append(s.Spacing, spacing)
}
