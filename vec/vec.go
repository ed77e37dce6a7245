// Package vec provides the 3D vector type and scalar helpers used by the
// creature simulation hot paths. All operations are value-based and
// allocation-free.
package vec

import "math"

// Vec3 represents a point or direction in world space.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns the vector sum of v and other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns the vector difference of v and other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v scaled by the scalar factor.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of v and other.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of v and other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LenSq returns the squared magnitude of the vector.
func (v Vec3) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len returns the magnitude of the vector.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// Dist returns the Euclidean distance between v and other (treated as points).
func (v Vec3) Dist(other Vec3) float32 {
	return v.Sub(other).Len()
}

// DistSq returns the squared distance between v and other.
func (v Vec3) DistSq(other Vec3) float32 {
	return v.Sub(other).LenSq()
}

// Normalize returns a unit vector in the same direction as v.
// A near-zero vector normalizes to the zero vector; callers that need a
// guaranteed direction should use NormalizeOr.
func (v Vec3) Normalize() Vec3 {
	mag := v.Len()
	if mag < 1e-6 {
		return Vec3{}
	}
	return v.Scale(1 / mag)
}

// NormalizeOr returns a unit vector in the direction of v, or fallback when
// v is too short to normalize safely.
func (v Vec3) NormalizeOr(fallback Vec3) Vec3 {
	mag := v.Len()
	if mag < 1e-6 {
		return fallback
	}
	return v.Scale(1 / mag)
}

// Limit truncates the magnitude of the vector if it exceeds max.
func (v Vec3) Limit(max float32) Vec3 {
	magSq := v.LenSq()
	if magSq > max*max && magSq > 0 {
		mag := float32(math.Sqrt(float64(magSq)))
		return v.Scale(max / mag)
	}
	return v
}

// Lerp returns the linear interpolation between v and other at parameter t.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return Vec3{
		X: v.X + (other.X-v.X)*t,
		Y: v.Y + (other.Y-v.Y)*t,
		Z: v.Z + (other.Z-v.Z)*t,
	}
}

// Up is the world up axis. Banking and lateral wave offsets are derived
// relative to it.
var Up = Vec3{Y: 1}

// Clamp clamps a scalar between lo and hi.
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 clamps a scalar to the [0, 1] range.
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp returns the linear interpolation between a and b at parameter t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Smoothstep returns the classic cubic ease of t clamped to [0, 1].
func Smoothstep(t float32) float32 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// SmoothFactor converts an exponential smoothing rate into a per-step lerp
// factor: 1 - exp(-rate*dt). Frame-rate independent, unlike fixed lerp
// constants.
func SmoothFactor(rate, dt float32) float32 {
	return 1 - float32(math.Exp(float64(-rate*dt)))
}
