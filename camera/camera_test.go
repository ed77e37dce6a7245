package camera

import (
	"math"
	"testing"
)

func TestNewCentersOnPond(t *testing.T) {
	c := New(800, 600, 200, 200)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("camera center = (%v, %v), want origin", c.X, c.Y)
	}
	if c.Zoom != 1.0 {
		t.Errorf("zoom = %v, want 1.0", c.Zoom)
	}
	// Pond diameter must fit the short axis at fit zoom.
	sx0, _ := c.WorldToScreen(-200, 0)
	sx1, _ := c.WorldToScreen(200, 0)
	if sx1-sx0 > 800 {
		t.Errorf("pond width %v px exceeds viewport", sx1-sx0)
	}
	_, sy0 := c.WorldToScreen(0, -200)
	_, sy1 := c.WorldToScreen(0, 200)
	if sy1-sy0 > 600 {
		t.Errorf("pond height %v px exceeds viewport", sy1-sy0)
	}
}

func TestWorldScreenRoundTrip(t *testing.T) {
	c := New(800, 600, 240, 240)
	c.Pan(37, -12)
	c.SetZoom(2.5)

	cases := []struct{ wx, wy float32 }{
		{0, 0},
		{100, -50},
		{-240, 240},
	}
	for _, tc := range cases {
		sx, sy := c.WorldToScreen(tc.wx, tc.wy)
		wx, wy := c.ScreenToWorld(sx, sy)
		if math.Abs(float64(wx-tc.wx)) > 1e-3 || math.Abs(float64(wy-tc.wy)) > 1e-3 {
			t.Errorf("round trip (%v, %v) -> (%v, %v)", tc.wx, tc.wy, wx, wy)
		}
	}
}

func TestOriginMapsToViewportCenter(t *testing.T) {
	c := New(1280, 800, 240, 240)
	sx, sy := c.WorldToScreen(0, 0)
	if sx != 640 || sy != 400 {
		t.Errorf("origin maps to (%v, %v), want (640, 400)", sx, sy)
	}
}

func TestPanClampsToPond(t *testing.T) {
	c := New(800, 600, 100, 100)
	c.Pan(1e9, 1e9)
	if c.X != 100 || c.Y != 100 {
		t.Errorf("pan escaped pond: (%v, %v)", c.X, c.Y)
	}
	c.Pan(-1e9, -1e9)
	if c.X != -100 || c.Y != -100 {
		t.Errorf("pan escaped pond: (%v, %v)", c.X, c.Y)
	}
}

func TestZoomClamped(t *testing.T) {
	c := New(800, 600, 100, 100)
	c.SetZoom(100)
	if c.Zoom != c.MaxZoom {
		t.Errorf("zoom = %v, want max %v", c.Zoom, c.MaxZoom)
	}
	c.SetZoom(0.01)
	if c.Zoom != c.MinZoom {
		t.Errorf("zoom = %v, want min %v", c.Zoom, c.MinZoom)
	}
	c.SetZoom(1)
	c.ZoomBy(2)
	if c.Zoom != 2 {
		t.Errorf("ZoomBy(2) = %v, want 2", c.Zoom)
	}
}

func TestZoomAtKeepsCursorPointFixed(t *testing.T) {
	c := New(800, 600, 240, 240)
	const sx, sy = 600, 150
	wx0, wy0 := c.ScreenToWorld(sx, sy)
	c.ZoomAt(2, sx, sy)
	wx1, wy1 := c.ScreenToWorld(sx, sy)
	if math.Abs(float64(wx1-wx0)) > 1e-2 || math.Abs(float64(wy1-wy0)) > 1e-2 {
		t.Errorf("point under cursor drifted: (%v, %v) -> (%v, %v)", wx0, wy0, wx1, wy1)
	}
}

func TestIsVisibleCulling(t *testing.T) {
	c := New(800, 600, 240, 240)
	c.SetZoom(4)
	if !c.IsVisible(0, 0, 5) {
		t.Error("center should be visible")
	}
	if c.IsVisible(240, 240, 1) {
		t.Error("far corner should be culled at 4x zoom")
	}
	c.Reset()
	if !c.IsVisible(240, 240, 1) {
		t.Error("corner should be visible at fit zoom")
	}
}

func TestResetAfterPanAndZoom(t *testing.T) {
	c := New(800, 600, 240, 240)
	c.Pan(100, 100)
	c.SetZoom(3)
	c.Reset()
	if c.X != 0 || c.Y != 0 || c.Zoom != 1 {
		t.Errorf("reset left camera at (%v, %v) zoom %v", c.X, c.Y, c.Zoom)
	}
}

func TestResizeRefits(t *testing.T) {
	c := New(800, 600, 240, 240)
	before := c.Scale()
	c.Resize(1600, 1200)
	if c.Scale() != 2*before {
		t.Errorf("scale = %v, want %v after doubling viewport", c.Scale(), 2*before)
	}
}
