package systems

import (
	"math/rand"

	"github.com/andrepology/pond-sub000/vec"
)

// Bounds is the immutable volume the creature lives in. Both the wander
// target and the head position are continuously contained against it.
type Bounds interface {
	// Contains reports whether p lies inside the volume.
	Contains(p vec.Vec3) bool
	// Clamp projects p back inside the volume. Points already inside are
	// returned unchanged.
	Clamp(p vec.Vec3) vec.Vec3
	// Center returns the volume center, used to redirect wander targets
	// when the forward probe predicts an exit.
	Center() vec.Vec3
	// Slide removes the outward component of v when p sits on the
	// boundary, so the creature slides along it instead of bouncing.
	Slide(p vec.Vec3, v vec.Vec3) vec.Vec3
	// RandomInside returns a uniform random point inside the volume.
	RandomInside(rng *rand.Rand) vec.Vec3
}

// SphereBounds is a spherical volume around C with radius R.
type SphereBounds struct {
	C vec.Vec3
	R float32
}

// NewSphereBounds creates a sphere centered at the origin.
func NewSphereBounds(radius float32) SphereBounds {
	return SphereBounds{R: radius}
}

func (b SphereBounds) Contains(p vec.Vec3) bool {
	return p.DistSq(b.C) <= b.R*b.R
}

func (b SphereBounds) Clamp(p vec.Vec3) vec.Vec3 {
	d := p.Sub(b.C)
	if d.LenSq() <= b.R*b.R {
		return p
	}
	return b.C.Add(d.Normalize().Scale(b.R))
}

func (b SphereBounds) Center() vec.Vec3 {
	return b.C
}

func (b SphereBounds) Slide(p vec.Vec3, v vec.Vec3) vec.Vec3 {
	d := p.Sub(b.C)
	if d.LenSq() < (b.R-1e-3)*(b.R-1e-3) {
		return v
	}
	n := d.NormalizeOr(vec.Vec3{X: 1})
	out := v.Dot(n)
	if out <= 0 {
		return v
	}
	return v.Sub(n.Scale(out))
}

func (b SphereBounds) RandomInside(rng *rand.Rand) vec.Vec3 {
	// Rejection sampling; accepts with probability ~0.52 per draw.
	for {
		p := vec.Vec3{
			X: (rng.Float32()*2 - 1) * b.R,
			Y: (rng.Float32()*2 - 1) * b.R,
			Z: (rng.Float32()*2 - 1) * b.R,
		}
		if p.LenSq() <= b.R*b.R {
			return b.C.Add(p)
		}
	}
}

// BoxBounds is an axis-aligned box volume.
type BoxBounds struct {
	Min, Max vec.Vec3
}

func (b BoxBounds) Contains(p vec.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b BoxBounds) Clamp(p vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: vec.Clamp(p.X, b.Min.X, b.Max.X),
		Y: vec.Clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: vec.Clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

func (b BoxBounds) Center() vec.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b BoxBounds) Slide(p vec.Vec3, v vec.Vec3) vec.Vec3 {
	const eps = 1e-3
	if p.X <= b.Min.X+eps && v.X < 0 {
		v.X = 0
	}
	if p.X >= b.Max.X-eps && v.X > 0 {
		v.X = 0
	}
	if p.Y <= b.Min.Y+eps && v.Y < 0 {
		v.Y = 0
	}
	if p.Y >= b.Max.Y-eps && v.Y > 0 {
		v.Y = 0
	}
	if p.Z <= b.Min.Z+eps && v.Z < 0 {
		v.Z = 0
	}
	if p.Z >= b.Max.Z-eps && v.Z > 0 {
		v.Z = 0
	}
	return v
}

func (b BoxBounds) RandomInside(rng *rand.Rand) vec.Vec3 {
	size := b.Max.Sub(b.Min)
	return vec.Vec3{
		X: b.Min.X + rng.Float32()*size.X,
		Y: b.Min.Y + rng.Float32()*size.Y,
		Z: b.Min.Z + rng.Float32()*size.Z,
	}
}
