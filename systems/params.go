// Package systems contains the per-tick simulation systems: behavior,
// steering, and spine solving.
package systems

// Params holds all tunable simulation parameters. Field docs state units;
// defaults come from DefaultParams and the embedded config defaults.
type Params struct {
	// Locomotion.
	MaxSpeed      float32 // speed ceiling, world units/s
	MinSpeed      float32 // active-swimming speed floor, units/s; scaled down by rest factor
	MaxSteerForce float32 // steering force clamp, units/s^2
	Drag          float32 // exponential velocity decay rate, 1/s
	TurnDrag      float32 // extra speed bleed rate at full-sharpness turns, 1/s

	// Seek/arrive and wander.
	SlowingRadius    float32 // arrival deceleration radius, units
	VisionDistance   float32 // forward probe length for boundary awareness, units
	ForwardDistance  float32 // wander target placement distance ahead of the head, units
	WanderRadius     float32 // random offset sphere radius around the wander base, units
	RandomDirChance  float32 // probability a retarget picks a fully random direction
	UpdateInterval   float32 // seconds between periodic wander retargets; also the blend window
	ArrivalThreshold float32 // distance at which a wander target counts as reached, units

	// Orientation smoothing.
	HeadingRate           float32 // exponential smoothing rate for heading, 1/s
	HeadingSpeedThreshold float32 // min speed before velocity influences heading, units/s
	BankScale             float32 // turn rate to bank angle gain
	BankRate              float32 // exponential smoothing rate for bank, 1/s
	MaxBank               float32 // bank clamp, radians

	// Resting.
	RestEaseRate   float32 // exponential ease rate of restFactor toward its target, 1/s
	RestSpeedScale float32 // speed ceiling multiplier at full rest
	RestSteerScale float32 // steering force multiplier at full rest

	// Behavior machine.
	ApproachThreshold float32 // distance to the active target that triggers Eat, units
	EatDuration       float32 // seconds spent eating
	RestDuration      float32 // post-eat rest, seconds
	RestCheckInterval float32 // seconds of wandering between spontaneous rest rolls
	RestChance        float32 // probability a rest roll succeeds
	MinWanderRest     float32 // spontaneous rest duration lower bound, seconds
	MaxWanderRest     float32 // spontaneous rest duration upper bound, seconds
	GrowOnEat         bool    // append a tail segment when an Eat completes

	// Spine chain.
	SegmentCount    int     // segments at creation
	SegmentSpacing  float32 // head-most link length, units
	SpacingFalloff  float32 // per-link spacing multiplier, <1 so the tail bunches
	Responsiveness  float32 // exponential ease rate of segments toward base positions, 1/s
	Stiffness       float32 // constraint relaxation passes per tick = 1 + int(Stiffness)
	WaveAmplitude   float32 // lateral wave displacement at the head link, units
	WaveNumber      float32 // phase offset per segment, radians
	TravelPhaseRate float32 // propulsive phase advance per unit of path length, rad/unit
	IdlePhaseRate   float32 // idle phase advance, rad/s
	WaveSpeedFrac   float32 // fraction of MaxSpeed where the propulsive blend saturates
}

// DefaultParams returns the tuning used by the stock pond creature.
func DefaultParams() Params {
	return Params{
		MaxSpeed:      60,
		MinSpeed:      6,
		MaxSteerForce: 80,
		Drag:          0.6,
		TurnDrag:      1.2,

		SlowingRadius:    50,
		VisionDistance:   60,
		ForwardDistance:  80,
		WanderRadius:     40,
		RandomDirChance:  0.1,
		UpdateInterval:   2.5,
		ArrivalThreshold: 12,

		HeadingRate:           6,
		HeadingSpeedThreshold: 1,
		BankScale:             0.5,
		BankRate:              4,
		MaxBank:               0.35,

		RestEaseRate:   1.5,
		RestSpeedScale: 0.35,
		RestSteerScale: 0.4,

		ApproachThreshold: 10,
		EatDuration:       1.5,
		RestDuration:      3,
		RestCheckInterval: 6,
		RestChance:        0.3,
		MinWanderRest:     2,
		MaxWanderRest:     6,
		GrowOnEat:         true,

		SegmentCount:    10,
		SegmentSpacing:  6,
		SpacingFalloff:  0.92,
		Responsiveness:  18,
		Stiffness:       1.5,
		WaveAmplitude:   2.5,
		WaveNumber:      0.7,
		TravelPhaseRate: 0.25,
		IdlePhaseRate:   2,
		WaveSpeedFrac:   0.2,
	}
}

// ConstraintIterations derives the relaxation pass count from Stiffness.
func (p Params) ConstraintIterations() int {
	n := 1 + int(p.Stiffness)
	if n < 1 {
		n = 1
	}
	return n
}
