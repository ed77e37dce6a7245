package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/components"
	"github.com/andrepology/pond-sub000/vec"
)

// SteeringSystem owns position, velocity, and orientation. Each tick it
// resolves the steering target (active stimulus first, wander target
// otherwise), applies seek-and-arrive with a clamped steering force,
// integrates, contains the head inside bounds, and derives the smoothed
// heading, bank, and wave phases consumed by the spine solver.
type SteeringSystem struct {
	filter ecs.Filter5[components.Position, components.Velocity, components.Pose, components.Motion, components.Behavior]
	params Params
	bounds Bounds
	rng    *rand.Rand
}

// NewSteeringSystem creates a new steering system.
func NewSteeringSystem(w *ecs.World, params Params, bounds Bounds, rng *rand.Rand) *SteeringSystem {
	return &SteeringSystem{
		filter: *ecs.NewFilter5[components.Position, components.Velocity, components.Pose, components.Motion, components.Behavior](w),
		params: params,
		bounds: bounds,
		rng:    rng,
	}
}

// Update advances every creature's locomotion by dt seconds.
func (s *SteeringSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		pos, velc, pose, motion, b := query.Get()
		s.step(pos, velc, pose, motion, b, dt)
	}
}

func (s *SteeringSystem) step(pos *components.Position, velc *components.Velocity, pose *components.Pose, motion *components.Motion, b *components.Behavior, dt float32) {
	p := s.params
	vel := velc.Vec3

	// 1. Target resolution: an active stimulus always wins.
	var target vec.Vec3
	if b.HasTarget {
		target = b.Target
	} else {
		target = s.wanderTarget(pos.Vec3, pose.Heading, motion, dt)
	}

	// Rest scales both the speed ceiling and steering aggressiveness.
	rest := motion.RestFactor
	speedCeil := p.MaxSpeed * (1 - (1-p.RestSpeedScale)*rest)
	steerCeil := p.MaxSteerForce * (1 - (1-p.RestSteerScale)*rest)

	// 2. Seek-and-arrive: desired speed decays linearly inside the
	// slowing radius. A target at the head yields zero desired force.
	var desired vec.Vec3
	to := target.Sub(pos.Vec3)
	dist := to.Len()
	if dist > 1e-4 {
		desiredSpeed := speedCeil
		if dist < p.SlowingRadius {
			desiredSpeed = speedCeil * dist / p.SlowingRadius
		}
		desired = to.Scale(desiredSpeed / dist)
	}

	// 3. Clamped steering force, then drag.
	steer := desired.Sub(vel).Limit(steerCeil)
	vel = vel.Add(steer.Scale(dt))
	vel = vel.Scale(float32(math.Exp(float64(-p.Drag * dt))))

	// 4. Turning costs energy: bleed speed proportional to turn sharpness.
	if sm := steer.Len(); sm > 1e-3 && p.MaxSteerForce > 0 {
		sharp := vec.Clamp01(sm / p.MaxSteerForce)
		vel = vel.Scale(float32(math.Exp(float64(-p.TurnDrag * sharp * dt))))
	}

	// 5. Speed clamp. The floor decays with rest so a resting creature may
	// drift to a stop; an active one never fully stops.
	minSpeed := p.MinSpeed * (1 - rest)
	speed := vel.Len()
	switch {
	case speed > speedCeil:
		vel = vel.Scale(speedCeil / speed)
	case speed < minSpeed:
		if speed < 1e-4 {
			// Reseed along the heading to keep normalization safe.
			vel = pose.Heading.Scale(minSpeed)
		} else {
			vel = vel.Scale(minSpeed / speed)
		}
	}

	// 6. Integrate and contain. Outside the boundary the outward velocity
	// component is removed so the head slides rather than bounces.
	pos.Vec3 = pos.Add(vel.Scale(dt))
	clamped := s.bounds.Clamp(pos.Vec3)
	if clamped != pos.Vec3 {
		pos.Vec3 = clamped
	}
	vel = s.bounds.Slide(pos.Vec3, vel)
	speed = vel.Len()
	if speed < minSpeed {
		// Sliding may have bled speed below the floor; restore it along
		// the remaining (tangential) direction.
		if speed > 1e-4 {
			vel = vel.Scale(minSpeed / speed)
		} else {
			vel = s.bounds.Slide(pos.Vec3, pose.Heading.Scale(minSpeed))
		}
		speed = vel.Len()
	}

	// 7. Heading and bank. Heading follows normalized velocity only above
	// a noise threshold; bank derives from the turn rate, both with
	// exponential time-constant smoothing.
	if speed > p.HeadingSpeedThreshold && dt > 0 {
		headingRate := p.HeadingRate * (1 - (1-p.RestSteerScale)*rest)
		f := vec.SmoothFactor(headingRate, dt)
		prev := pose.Heading
		next := prev.Lerp(vel.Scale(1/speed), f).NormalizeOr(prev)
		turnRate := prev.Cross(next).Dot(vec.Up) / dt
		bankTarget := vec.Clamp(-turnRate*p.BankScale, -p.MaxBank, p.MaxBank)
		pose.Bank = vec.Lerp(pose.Bank, bankTarget, vec.SmoothFactor(p.BankRate, dt))
		pose.Heading = next
	} else if dt > 0 {
		pose.Bank = vec.Lerp(pose.Bank, 0, vec.SmoothFactor(p.BankRate, dt))
	}

	// 8. Rest blend eases toward the behavior machine's target.
	motion.RestFactor += (motion.RestTarget - motion.RestFactor) * vec.SmoothFactor(p.RestEaseRate, dt)

	// 9. Wave phases: propulsive phase rides on path length, idle phase on
	// wall-clock time. Both wrap to keep precision over long runs.
	motion.TravelPhase = wrapPhase(motion.TravelPhase + speed*dt*p.TravelPhaseRate)
	motion.IdlePhase = wrapPhase(motion.IdlePhase + p.IdlePhaseRate*dt)
	motion.Speed = speed

	velc.Vec3 = vel
}

// wanderTarget returns the current blended wander target, retargeting when
// due. Retargets are never applied instantaneously: the previous and next
// targets are blended with a smoothstep ease over the update interval.
func (s *SteeringSystem) wanderTarget(pos, heading vec.Vec3, motion *components.Motion, dt float32) vec.Vec3 {
	p := s.params
	motion.WanderAge += dt

	probe := pos.Add(heading.Scale(p.VisionDistance))
	probeExit := !s.bounds.Contains(probe)

	// A probe exit retargets once; while that redirect blend is still in
	// progress the probe keeps exiting, and restarting the blend every tick
	// would pin it at t=0.
	due := !motion.Wandering ||
		motion.WanderAge >= p.UpdateInterval ||
		pos.Dist(motion.WanderTo) < p.ArrivalThreshold ||
		(probeExit && !motion.Redirecting)

	if due {
		prev := s.blendedWander(motion)
		next := s.pickWanderTarget(pos, heading, probeExit)
		if !motion.Wandering {
			prev = next
			motion.Wandering = true
		}
		motion.WanderFrom = prev
		motion.WanderTo = next
		motion.WanderAge = 0
		motion.Redirecting = probeExit
	}

	return s.blendedWander(motion)
}

func (s *SteeringSystem) blendedWander(motion *components.Motion) vec.Vec3 {
	t := vec.Smoothstep(motion.WanderAge / s.params.UpdateInterval)
	return motion.WanderFrom.Lerp(motion.WanderTo, t)
}

// pickWanderTarget places a new wander point at ForwardDistance ahead of
// the head, or toward the bounds center when the forward probe predicts an
// exit. A small probability of a fully random direction keeps paths from
// settling into circles.
func (s *SteeringSystem) pickWanderTarget(pos, heading vec.Vec3, probeExit bool) vec.Vec3 {
	p := s.params
	var dir vec.Vec3
	switch {
	case probeExit:
		dir = s.bounds.Center().Sub(pos).NormalizeOr(heading.Scale(-1))
	case s.rng.Float32() < p.RandomDirChance:
		dir = s.randomUnit()
	default:
		dir = heading
	}
	base := pos.Add(dir.Scale(p.ForwardDistance))
	offset := s.randomInSphere().Scale(p.WanderRadius)
	return s.bounds.Clamp(base.Add(offset))
}

// randomUnit returns a uniformly distributed unit direction.
func (s *SteeringSystem) randomUnit() vec.Vec3 {
	for {
		v := vec.Vec3{
			X: s.rng.Float32()*2 - 1,
			Y: s.rng.Float32()*2 - 1,
			Z: s.rng.Float32()*2 - 1,
		}
		if l := v.LenSq(); l > 1e-4 && l <= 1 {
			return v.Normalize()
		}
	}
}

// randomInSphere returns a uniform point inside the unit sphere.
func (s *SteeringSystem) randomInSphere() vec.Vec3 {
	for {
		v := vec.Vec3{
			X: s.rng.Float32()*2 - 1,
			Y: s.rng.Float32()*2 - 1,
			Z: s.rng.Float32()*2 - 1,
		}
		if v.LenSq() <= 1 {
			return v
		}
	}
}

// wrapPhase wraps an accumulating phase into [0, 2*Pi).
func wrapPhase(phase float32) float32 {
	const twoPi = 2 * math.Pi
	if phase >= twoPi {
		phase -= twoPi * float32(math.Floor(float64(phase/twoPi)))
	}
	return phase
}
