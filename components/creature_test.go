package components

import (
	"math"
	"testing"

	"github.com/andrepology/pond-sub000/vec"
)

func TestNewSpineLayout(t *testing.T) {
	head := vec.Vec3{X: 10}
	heading := vec.Vec3{X: 1}
	s := NewSpine(5, head, heading, 6, 0.9)

	if len(s.Segments) != 5 || len(s.Spacing) != 5 {
		t.Fatalf("lengths = %d, %d, want 5", len(s.Segments), len(s.Spacing))
	}

	// Spacing decays geometrically
	for i := 0; i < 5; i++ {
		want := 6 * float32(math.Pow(0.9, float64(i)))
		if math.Abs(float64(s.Spacing[i]-want)) > 1e-4 {
			t.Errorf("spacing[%d] = %v, want %v", i, s.Spacing[i], want)
		}
	}

	// Segments lie behind the head along -heading, each exactly one
	// spacing behind its predecessor
	prev := head
	for i, seg := range s.Segments {
		if seg.X >= prev.X {
			t.Errorf("segment %d at X=%v not behind predecessor X=%v", i, seg.X, prev.X)
		}
		gap := prev.Dist(seg)
		if math.Abs(float64(gap-s.Spacing[i])) > 1e-4 {
			t.Errorf("link %d length = %v, want %v", i, gap, s.Spacing[i])
		}
		prev = seg
	}
}

func TestSpineGrow(t *testing.T) {
	s := NewSpine(3, vec.Vec3{}, vec.Vec3{X: 1}, 4, 0.8)
	lastSpacing := s.Spacing[2]
	tail := s.Segments[2]

	s.Grow(0.8)

	if len(s.Segments) != 4 || len(s.Spacing) != 4 {
		t.Fatalf("lengths after grow = %d, %d, want 4", len(s.Segments), len(s.Spacing))
	}
	wantSpacing := lastSpacing * 0.8
	if math.Abs(float64(s.Spacing[3]-wantSpacing)) > 1e-4 {
		t.Errorf("new spacing = %v, want %v", s.Spacing[3], wantSpacing)
	}
	gap := tail.Dist(s.Segments[3])
	if math.Abs(float64(gap-wantSpacing)) > 1e-4 {
		t.Errorf("new link length = %v, want %v", gap, wantSpacing)
	}
}

func TestSpineGrowEmpty(t *testing.T) {
	var s Spine
	s.Grow(0.9)
	if len(s.Segments) != 0 {
		t.Error("growing an empty spine should be a no-op")
	}
}

func TestBehaviorQueueFIFO(t *testing.T) {
	var b Behavior
	p1 := vec.Vec3{X: 1}
	p2 := vec.Vec3{X: 2}
	p3 := vec.Vec3{X: 3}

	b.PushBack(p1)
	b.PushBack(p2)
	b.PushBack(p3)

	for i, want := range []vec.Vec3{p1, p2, p3} {
		got, ok := b.PopFront()
		if !ok || got != want {
			t.Errorf("pop %d = %+v ok=%v, want %+v", i, got, ok, want)
		}
	}
	if _, ok := b.PopFront(); ok {
		t.Error("pop from empty queue reported ok")
	}
}

func TestBehaviorPushFront(t *testing.T) {
	var b Behavior
	b.PushBack(vec.Vec3{X: 1})
	b.PushFront(vec.Vec3{X: 2})

	got, _ := b.PopFront()
	if got.X != 2 {
		t.Errorf("front = %v, want the PushFront point", got)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateWander, "wander"},
		{StateApproach, "approach"},
		{StateEat, "eat"},
		{StateRest, "rest"},
		{StateTalk, "talk"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
