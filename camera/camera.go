// Package camera provides a 2D pan/zoom camera for the top-down viewer.
package camera

// Camera maps the pond's horizontal plane onto the screen. At Zoom 1 the
// whole pond fits the viewport with a small margin; panning is clamped so
// the view center never leaves the pond.
type Camera struct {
	// View center in world coordinates on the pond plane.
	X, Y float32

	// Zoom level (1.0 = whole pond visible, 4.0 = 4x magnification).
	Zoom float32

	// Viewport dimensions in pixels.
	ViewportW, ViewportH float32

	// Pond half extents in world units.
	HalfW, HalfH float32

	// Pixels per world unit at Zoom 1.
	baseScale float32

	MinZoom, MaxZoom float32
}

// fitMargin leaves a sliver of screen around the pond at Zoom 1.
const fitMargin = 1.12

// New creates a camera centered on the pond at fit zoom.
func New(viewportW, viewportH, halfW, halfH float32) *Camera {
	c := &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		HalfW:     halfW,
		HalfH:     halfH,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
	c.fit()
	return c
}

// fit recomputes the base scale so the pond fills the short viewport axis.
func (c *Camera) fit() {
	scaleX := c.ViewportW / (2 * c.HalfW * fitMargin)
	scaleY := c.ViewportH / (2 * c.HalfH * fitMargin)
	c.baseScale = scaleX
	if scaleY < c.baseScale {
		c.baseScale = scaleY
	}
}

// Scale returns the current pixels-per-world-unit factor.
func (c *Camera) Scale() float32 {
	return c.baseScale * c.Zoom
}

// WorldToScreen converts a point on the pond plane to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 + (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts screen coordinates to a point on the pond plane.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y + (sy-c.ViewportH/2)/s
	return wx, wy
}

// IsVisible reports whether a circle at (wx, wy) with the given world-unit
// radius could intersect the viewport. Conservative, for draw culling.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	s := c.Scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Pan moves the view by a screen-pixel delta, clamped to the pond extents.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X = clamp(c.X+dx/s, -c.HalfW, c.HalfW)
	c.Y = clamp(c.Y+dy/s, -c.HalfH, c.HalfH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the world point under the given
// screen position fixed, so wheel zoom tracks the cursor.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X = clamp(c.X+(wx-nx), -c.HalfW, c.HalfW)
	c.Y = clamp(c.Y+(wy-ny), -c.HalfH, c.HalfH)
}

// Reset recenters the camera on the pond at fit zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = 1.0
}

// Resize updates viewport dimensions and refits the base scale.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
