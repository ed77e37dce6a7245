package vec

// Arena is a fixed-capacity per-frame scratch allocator for Vec3 slices.
// It hands out sub-slices of one pre-sized buffer and is reset once per tick,
// so the simulation hot path allocates nothing in steady state. When the
// buffer is exhausted it falls back to the regular allocator rather than
// failing; sustained fallback means the configured capacity is too small.
type Arena struct {
	buf       []Vec3
	off       int
	fallbacks int
}

// NewArena creates an arena with room for capacity vectors.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{buf: make([]Vec3, capacity)}
}

// Alloc returns a zeroed slice of n vectors valid until the next Reset.
func (a *Arena) Alloc(n int) []Vec3 {
	if a.off+n > len(a.buf) {
		a.fallbacks++
		return make([]Vec3, n)
	}
	s := a.buf[a.off : a.off+n]
	a.off += n
	for i := range s {
		s[i] = Vec3{}
	}
	return s
}

// Reset reclaims all outstanding allocations. Slices handed out before the
// reset must not be used afterwards.
func (a *Arena) Reset() {
	a.off = 0
}

// Fallbacks reports how many Alloc calls overflowed the fixed buffer since
// the arena was created.
func (a *Arena) Fallbacks() int {
	return a.fallbacks
}

// Cap returns the fixed capacity in vectors.
func (a *Arena) Cap() int {
	return len(a.buf)
}
