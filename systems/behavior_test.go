package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/components"
	"github.com/andrepology/pond-sub000/vec"
)

// behaviorFixture is one creature in a minimal world, stepped through the
// state machine without steering.
type behaviorFixture struct {
	world *ecs.World
	sys   *BehaviorSystem
	ent   ecs.Entity

	pos   *ecs.Map1[components.Position]
	beh   *ecs.Map1[components.Behavior]
	mot   *ecs.Map1[components.Motion]
	spine *ecs.Map1[components.Spine]
}

func newBehaviorFixture(params Params, seed int64) *behaviorFixture {
	w := ecs.NewWorld()
	f := &behaviorFixture{
		world: w,
		sys:   NewBehaviorSystem(w, params, rand.New(rand.NewSource(seed))),
		pos:   ecs.NewMap1[components.Position](w),
		beh:   ecs.NewMap1[components.Behavior](w),
		mot:   ecs.NewMap1[components.Motion](w),
		spine: ecs.NewMap1[components.Spine](w),
	}

	mapper := ecs.NewMap4[components.Position, components.Behavior, components.Motion, components.Spine](w)
	pos := components.Position{}
	b := components.Behavior{State: components.StateWander}
	motion := components.Motion{}
	sp := components.NewSpine(4, pos.Vec3, vec.Vec3{X: 1}, params.SegmentSpacing, params.SpacingFalloff)
	f.ent = mapper.NewEntity(&pos, &b, &motion, &sp)
	return f
}

func (f *behaviorFixture) behavior() *components.Behavior {
	return f.beh.Get(f.ent)
}

func (f *behaviorFixture) step(dt float32) {
	f.sys.Update(dt)
}

func TestSubmitActivatesApproach(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()

	target := vec.Vec3{X: 50}
	Submit(b, target, NewSphereBounds(200))

	if b.State != components.StateApproach {
		t.Fatalf("state = %v, want approach", b.State)
	}
	if !b.HasTarget || b.Target != target {
		t.Errorf("target = %+v hasTarget=%v, want %+v", b.Target, b.HasTarget, target)
	}
	if len(b.Queue) != 0 {
		t.Errorf("queue length = %d, want 0", len(b.Queue))
	}
}

func TestSubmitClampsOutOfBounds(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()
	bounds := NewSphereBounds(100)

	Submit(b, vec.Vec3{X: 500}, bounds)

	if !bounds.Contains(b.Target) {
		t.Errorf("target %+v outside bounds", b.Target)
	}
	if b.Target.Len() < 99 {
		t.Errorf("target %+v not projected to the surface", b.Target)
	}
}

func TestSubmitQueuesBehindActiveTarget(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()
	bounds := NewSphereBounds(200)

	first := vec.Vec3{X: 10}
	second := vec.Vec3{X: 20}
	third := vec.Vec3{X: 30}
	Submit(b, first, bounds)
	Submit(b, second, bounds)
	Submit(b, third, bounds)

	if b.Target != first {
		t.Errorf("active target = %+v, want first submission", b.Target)
	}
	if len(b.Queue) != 2 || b.Queue[0] != second || b.Queue[1] != third {
		t.Errorf("queue = %+v, want [second third]", b.Queue)
	}
}

func TestSubmitDuringRestServesQueueFirst(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()
	bounds := NewSphereBounds(200)
	dt := float32(1.0 / 60.0)

	// Eat at the origin, queueing a stimulus meanwhile, so the creature
	// lands in Rest with the queue non-empty and no active target.
	Submit(b, vec.Vec3{X: p.ApproachThreshold / 2}, bounds)
	f.step(dt)
	if b.State != components.StateEat {
		t.Fatalf("state = %v, want eat", b.State)
	}
	earlier := vec.Vec3{X: 40}
	Submit(b, earlier, bounds)
	for b.State == components.StateEat {
		f.step(dt)
	}
	if b.State != components.StateRest {
		t.Fatalf("state = %v, want rest", b.State)
	}
	if b.HasTarget || len(b.Queue) != 1 {
		t.Fatalf("rest entered with target=%v queue=%v", b.HasTarget, b.Queue)
	}

	// A late submission must not overtake the stimulus already waiting.
	late := vec.Vec3{X: 80}
	Submit(b, late, bounds)

	if b.Target != earlier {
		t.Errorf("active target = %+v, want earlier submission %+v", b.Target, earlier)
	}
	if len(b.Queue) != 1 || b.Queue[0] != late {
		t.Errorf("queue = %+v, want [%+v]", b.Queue, late)
	}
	if b.State != components.StateApproach {
		t.Errorf("state = %v, want approach", b.State)
	}
}

func TestApproachReachesEat(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()

	// Target within the approach threshold of the (origin) position
	Submit(b, vec.Vec3{X: p.ApproachThreshold / 2}, NewSphereBounds(200))
	f.step(1.0 / 60.0)

	if b.State != components.StateEat {
		t.Fatalf("state = %v, want eat", b.State)
	}
}

func TestApproachHoldsUntilClose(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()

	Submit(b, vec.Vec3{X: 100}, NewSphereBounds(200))
	for i := 0; i < 60; i++ {
		f.step(1.0 / 60.0)
	}

	// Position never moves in this fixture, so approach must persist
	if b.State != components.StateApproach {
		t.Fatalf("state = %v, want approach to persist at distance", b.State)
	}
}

func TestEatCompletesIntoRest(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()

	var gotEntity ecs.Entity
	calls := 0
	f.sys.SetEatFunc(func(entity ecs.Entity, total int) {
		gotEntity = entity
		calls++
	})

	segsBefore := len(f.spine.Get(f.ent).Segments)

	Submit(b, vec.Vec3{X: 1}, NewSphereBounds(200))
	f.step(1.0 / 60.0) // approach -> eat
	if b.State != components.StateEat {
		t.Fatalf("state = %v, want eat", b.State)
	}

	// Sit through the eat duration
	dt := float32(1.0 / 60.0)
	for i := 0; i < int(p.EatDuration/dt)+2; i++ {
		f.step(dt)
	}

	if b.State != components.StateRest {
		t.Fatalf("state = %v, want rest after eating", b.State)
	}
	if calls != 1 {
		t.Errorf("eat callback fired %d times, want exactly 1", calls)
	}
	if gotEntity != f.ent {
		t.Errorf("eat callback entity mismatch")
	}
	if b.Eats != 1 {
		t.Errorf("eats = %d, want 1", b.Eats)
	}
	if b.HasTarget {
		t.Error("target not cleared after eat")
	}
	if got := len(f.spine.Get(f.ent).Segments); got != segsBefore+1 {
		t.Errorf("spine segments = %d, want %d (grow on eat)", got, segsBefore+1)
	}
}

func TestRestExpiresIntoWander(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()
	m := f.mot.Get(f.ent)

	b.State = components.StateRest
	b.RestDuration = 0.5

	f.step(0.1)
	if m.RestTarget != 1 {
		t.Errorf("rest target = %v during rest, want 1", m.RestTarget)
	}

	f.step(0.5)
	if b.State != components.StateWander {
		t.Fatalf("state = %v, want wander after rest expiry", b.State)
	}
	f.step(0.01)
	if m.RestTarget != 0 {
		t.Errorf("rest target = %v after rest, want 0", m.RestTarget)
	}
}

func TestRestResumesQueuedApproach(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()

	queued := vec.Vec3{X: 40}
	b.State = components.StateRest
	b.RestDuration = 0.2
	b.PushBack(queued)

	f.step(0.3)

	if b.State != components.StateApproach {
		t.Fatalf("state = %v, want approach resuming queue", b.State)
	}
	if b.Target != queued {
		t.Errorf("target = %+v, want queued point", b.Target)
	}
}

func TestNoSpontaneousRestWhileQueued(t *testing.T) {
	p := DefaultParams()
	p.RestChance = 1 // would otherwise rest at every check
	p.RestCheckInterval = 0.1
	f := newBehaviorFixture(p, 1)
	b := f.behavior()

	// A queued stimulus is picked up on the next wander tick, so rest
	// never gets a chance while work is pending.
	b.PushBack(vec.Vec3{X: 150})
	f.step(0.2)

	if b.State != components.StateApproach {
		t.Fatalf("state = %v, want approach (queued work preempts rest)", b.State)
	}
}

func TestSpontaneousRestFromWander(t *testing.T) {
	p := DefaultParams()
	p.RestChance = 1
	p.RestCheckInterval = 0.5
	f := newBehaviorFixture(p, 1)
	b := f.behavior()

	for i := 0; i < 20 && b.State == components.StateWander; i++ {
		f.step(0.1)
	}

	if b.State != components.StateRest {
		t.Fatalf("state = %v, want rest with RestChance=1", b.State)
	}
	if b.RestDuration < p.MinWanderRest || b.RestDuration > p.MaxWanderRest {
		t.Errorf("rest duration %v outside [%v, %v]", b.RestDuration, p.MinWanderRest, p.MaxWanderRest)
	}
}

func TestTalkDefersStimuli(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()
	bounds := NewSphereBounds(200)

	StartTalking(b, "hello")
	if b.State != components.StateTalk {
		t.Fatalf("state = %v, want talk", b.State)
	}

	Submit(b, vec.Vec3{X: 5}, bounds)
	if b.HasTarget {
		t.Error("submit during talk activated a target")
	}
	if len(b.Queue) != 1 {
		t.Fatalf("queue = %d, want deferred stimulus", len(b.Queue))
	}

	// Talk holds across updates
	for i := 0; i < 100; i++ {
		f.step(1.0 / 60.0)
	}
	if b.State != components.StateTalk {
		t.Fatalf("talk did not hold, state = %v", b.State)
	}

	StopTalking(b)
	if b.State != components.StateApproach {
		t.Fatalf("state = %v, want approach resuming deferred stimulus", b.State)
	}
}

func TestTalkPreservesActiveTarget(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()
	bounds := NewSphereBounds(200)

	active := vec.Vec3{X: 60}
	queued := vec.Vec3{X: 70}
	Submit(b, active, bounds)
	Submit(b, queued, bounds)

	StartTalking(b, "hi")
	if b.HasTarget {
		t.Error("active target survived into talk")
	}

	StopTalking(b)
	// The pre-talk target resumes first, ahead of the queued one
	if b.Target != active {
		t.Errorf("resumed target = %+v, want pre-talk active target", b.Target)
	}
	if len(b.Queue) != 1 || b.Queue[0] != queued {
		t.Errorf("queue = %+v, want [queued]", b.Queue)
	}
}

func TestStopTalkingOutsideTalkIsNoOp(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()

	StopTalking(b)
	if b.State != components.StateWander {
		t.Errorf("state = %v, want wander untouched", b.State)
	}
}

func TestClearStimuli(t *testing.T) {
	p := DefaultParams()
	f := newBehaviorFixture(p, 1)
	b := f.behavior()
	bounds := NewSphereBounds(200)

	Submit(b, vec.Vec3{X: 10}, bounds)
	Submit(b, vec.Vec3{X: 20}, bounds)
	ClearStimuli(b)

	if b.HasTarget || len(b.Queue) != 0 {
		t.Errorf("stimuli not cleared: hasTarget=%v queue=%d", b.HasTarget, len(b.Queue))
	}
}
