package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/components"
	"github.com/andrepology/pond-sub000/vec"
)

// spineFixture drives the spine solver with a manually positioned head.
type spineFixture struct {
	world *ecs.World
	sys   *SpineSystem
	ent   ecs.Entity

	pos   *ecs.Map1[components.Position]
	pse   *ecs.Map1[components.Pose]
	mot   *ecs.Map1[components.Motion]
	spine *ecs.Map1[components.Spine]
}

func newSpineFixture(params Params) *spineFixture {
	w := ecs.NewWorld()
	f := &spineFixture{
		world: w,
		sys:   NewSpineSystem(w, params, vec.NewArena(256)),
		pos:   ecs.NewMap1[components.Position](w),
		pse:   ecs.NewMap1[components.Pose](w),
		mot:   ecs.NewMap1[components.Motion](w),
		spine: ecs.NewMap1[components.Spine](w),
	}

	mapper := ecs.NewMap4[components.Position, components.Pose, components.Motion, components.Spine](w)
	heading := vec.Vec3{X: 1}
	pos := components.Position{}
	pose := components.Pose{Heading: heading}
	motion := components.Motion{}
	sp := components.NewSpine(params.SegmentCount, pos.Vec3, heading, params.SegmentSpacing, params.SpacingFalloff)
	f.ent = mapper.NewEntity(&pos, &pose, &motion, &sp)
	return f
}

// checkLinks fails the test if any link is stretched past its spacing.
func checkLinks(t *testing.T, head vec.Vec3, sp *components.Spine, context string) {
	t.Helper()
	const eps = 1e-3
	pred := head
	for i, seg := range sp.Segments {
		gap := pred.Dist(seg)
		if gap > sp.Spacing[i]+eps {
			t.Fatalf("%s: link %d stretched to %v, spacing %v", context, i, gap, sp.Spacing[i])
		}
		pred = seg
	}
}

func TestSpineFollowsMovingHead(t *testing.T) {
	p := DefaultParams()
	f := newSpineFixture(p)

	// Drag the head forward at cruising speed and verify the chain
	// follows without any link overstretching
	speed := p.MaxSpeed * 0.8
	for i := 0; i < 600; i++ {
		pos := f.pos.Get(f.ent)
		pos.Vec3 = pos.Add(vec.Vec3{X: speed * tickDT})
		m := f.mot.Get(f.ent)
		m.Speed = speed
		m.TravelPhase = wrapPhase(m.TravelPhase + speed*tickDT*p.TravelPhaseRate)

		f.sys.Update(tickDT)
		checkLinks(t, pos.Vec3, f.spine.Get(f.ent), "moving head")
	}

	// The chain trails behind the head, not ahead of it
	head := f.pos.Get(f.ent).Vec3
	for i, seg := range f.spine.Get(f.ent).Segments {
		if seg.X >= head.X {
			t.Errorf("segment %d at X=%v ahead of head X=%v", i, seg.X, head.X)
		}
	}
}

func TestSpineSurvivesTeleportedHead(t *testing.T) {
	p := DefaultParams()
	f := newSpineFixture(p)

	// A discontinuous head jump must not tear the chain
	f.pos.Get(f.ent).Vec3 = vec.Vec3{X: 500, Z: 300}
	for i := 0; i < 120; i++ {
		f.sys.Update(tickDT)
	}
	checkLinks(t, f.pos.Get(f.ent).Vec3, f.spine.Get(f.ent), "after teleport")
}

func TestSpineSpacingMonotonic(t *testing.T) {
	p := DefaultParams()
	f := newSpineFixture(p)
	sp := f.spine.Get(f.ent)

	for i := 1; i < len(sp.Spacing); i++ {
		if sp.Spacing[i] > sp.Spacing[i-1] {
			t.Fatalf("spacing[%d]=%v > spacing[%d]=%v", i, sp.Spacing[i], i-1, sp.Spacing[i-1])
		}
	}
}

func TestSpineIdleUndulation(t *testing.T) {
	p := DefaultParams()
	f := newSpineFixture(p)
	m := f.mot.Get(f.ent)

	// Stationary head, idle phase advancing: the tail should oscillate
	// laterally (Z axis for an X heading) rather than freeze
	var minZ, maxZ float32
	for i := 0; i < 600; i++ {
		m.IdlePhase = wrapPhase(m.IdlePhase + p.IdlePhaseRate*tickDT)
		f.sys.Update(tickDT)

		sp := f.spine.Get(f.ent)
		tail := sp.Segments[len(sp.Segments)-1]
		if tail.Z < minZ {
			minZ = tail.Z
		}
		if tail.Z > maxZ {
			maxZ = tail.Z
		}
		checkLinks(t, f.pos.Get(f.ent).Vec3, sp, "idle")
	}

	if maxZ-minZ < 0.1 {
		t.Errorf("idle tail sweep = %v, want visible undulation", maxZ-minZ)
	}
}

func TestWavePhaseContinuity(t *testing.T) {
	p := DefaultParams()
	f := newSpineFixture(p)
	m := f.mot.Get(f.ent)
	sys := f.sys

	// Sweep speed through the blend band; the blended phase must never
	// jump, even where idle and travel phases are far apart on the circle.
	m.IdlePhase = 0.5
	m.TravelPhase = 5.8
	prev := sys.wavePhase(m)
	ref := p.WaveSpeedFrac * p.MaxSpeed
	for i := 1; i <= 200; i++ {
		m.Speed = ref * float32(i) / 100 // 0 -> 2x blend reference
		cur := sys.wavePhase(m)
		delta := math.Abs(float64(cur - prev))
		if delta > math.Pi {
			delta = 2*math.Pi - delta
		}
		if delta > 0.2 {
			t.Fatalf("phase jumped %.3f rad at speed %v", delta, m.Speed)
		}
		prev = cur
	}
}

func TestWaveAmplitudeGrowsTailward(t *testing.T) {
	p := DefaultParams()
	f := newSpineFixture(p)
	sys := f.sys

	n := p.SegmentCount
	// Compare peak amplitude head vs tail at full scale
	var headAmp, tailAmp float32
	for phase := float32(0); phase < 2*math.Pi; phase += 0.05 {
		if a := float32(math.Abs(float64(sys.waveOffset(0, n, phase, 1)))); a > headAmp {
			headAmp = a
		}
		if a := float32(math.Abs(float64(sys.waveOffset(n-1, n, phase, 1)))); a > tailAmp {
			tailAmp = a
		}
	}
	if tailAmp <= headAmp {
		t.Errorf("tail amplitude %v not above head amplitude %v", tailAmp, headAmp)
	}
}
