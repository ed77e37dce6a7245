package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/components"
	"github.com/andrepology/pond-sub000/vec"
)

// SpineSystem maintains each creature's trailing body chain. Segments are
// eased toward base positions behind the head, displaced laterally by the
// swimming wave, then relaxed against per-link inextensibility constraints.
type SpineSystem struct {
	filter ecs.Filter4[components.Position, components.Pose, components.Motion, components.Spine]
	params Params
	arena  *vec.Arena
}

// NewSpineSystem creates a new spine solver sharing the engine's frame arena.
func NewSpineSystem(w *ecs.World, params Params, arena *vec.Arena) *SpineSystem {
	return &SpineSystem{
		filter: *ecs.NewFilter4[components.Position, components.Pose, components.Motion, components.Spine](w),
		params: params,
		arena:  arena,
	}
}

// Update solves every creature's spine for one tick.
func (s *SpineSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		pos, pose, motion, spine := query.Get()
		s.solve(pos.Vec3, pose.Heading, motion, spine, dt)
	}
}

func (s *SpineSystem) solve(head, heading vec.Vec3, motion *components.Motion, spine *components.Spine, dt float32) {
	n := len(spine.Segments)
	if n == 0 {
		return
	}
	p := s.params

	lateral := vec.Up.Cross(heading).NormalizeOr(vec.Vec3{X: 1})
	phase := s.wavePhase(motion)
	waveScale := s.waveWeight(motion)

	// Pass 1: base positions behind each predecessor, offset by the wave.
	bases := s.arena.Alloc(n)
	prev := head
	for i := 0; i < n; i++ {
		wave := s.waveOffset(i, n, phase, waveScale)
		bases[i] = prev.Sub(heading.Scale(spine.Spacing[i])).Add(lateral.Scale(wave))
		prev = spine.Segments[i]
	}

	// Pass 2: ease segments toward their bases rather than snapping.
	f := vec.SmoothFactor(p.Responsiveness, dt)
	for i := 0; i < n; i++ {
		spine.Segments[i] = spine.Segments[i].Lerp(bases[i], f)
	}

	// Pass 3: inextensibility. An overstretched link is pulled back along
	// the predecessor axis to exactly its spacing; never teleported.
	for iter := 0; iter < p.ConstraintIterations(); iter++ {
		pred := head
		for i := 0; i < n; i++ {
			d := spine.Segments[i].Sub(pred)
			dist := d.Len()
			if dist > spine.Spacing[i] && dist > 1e-6 {
				spine.Segments[i] = pred.Add(d.Scale(spine.Spacing[i] / dist))
			}
			pred = spine.Segments[i]
		}
	}
}

// wavePhase blends the distance-traveled propulsive phase with the
// time-based idle phase on the unit circle, so the dominant source can
// switch without a wraparound jump.
func (s *SpineSystem) wavePhase(motion *components.Motion) float32 {
	w := s.waveBlend(motion)
	isin, icos := math.Sincos(float64(motion.IdlePhase))
	tsin, tcos := math.Sincos(float64(motion.TravelPhase))
	y := vec.Lerp(float32(isin), float32(tsin), w)
	x := vec.Lerp(float32(icos), float32(tcos), w)
	return float32(math.Atan2(float64(y), float64(x)))
}

// waveBlend is the propulsive weight: a smoothstep of speed against a small
// fraction of max speed, attenuated by rest.
func (s *SpineSystem) waveBlend(motion *components.Motion) float32 {
	p := s.params
	ref := p.WaveSpeedFrac * p.MaxSpeed
	if ref <= 0 {
		return 0
	}
	return vec.Smoothstep(motion.Speed/ref) * (1 - motion.RestFactor)
}

// waveWeight scales the wave amplitude: a resting, stationary creature
// keeps a gentle idle undulation rather than going rigid.
func (s *SpineSystem) waveWeight(motion *components.Motion) float32 {
	const idleScale = 0.35
	w := s.waveBlend(motion)
	return idleScale + (1-idleScale)*w
}

// waveOffset computes the lateral displacement for segment i. Amplitude
// grows toward the tail the way a swimming body flexes.
func (s *SpineSystem) waveOffset(i, n int, phase, scale float32) float32 {
	p := s.params
	along := float32(0)
	if n > 1 {
		along = float32(i) / float32(n-1)
	}
	amp := p.WaveAmplitude * (0.3 + 0.7*along) * scale
	return amp * float32(math.Sin(float64(phase-float32(i)*p.WaveNumber)))
}
