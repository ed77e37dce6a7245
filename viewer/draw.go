package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/andrepology/pond-sub000/camera"
	"github.com/andrepology/pond-sub000/engine"
	"github.com/andrepology/pond-sub000/systems"
	"github.com/andrepology/pond-sub000/vec"
)

// Controls panel geometry (bottom-left strip).
const (
	panelWidth  = 340
	panelHeight = 96
	panelMargin = 10
)

var (
	waterColor    = rl.Color{R: 10, G: 24, B: 38, A: 255}
	boundsColor   = rl.Color{R: 40, G: 70, B: 95, A: 255}
	bodyColor     = rl.Color{R: 120, G: 200, B: 235, A: 255}
	restBodyColor = rl.Color{R: 80, G: 120, B: 150, A: 255}
	targetColor   = rl.Color{R: 255, G: 170, B: 60, A: 255}
	wanderColor   = rl.Color{R: 90, G: 100, B: 110, A: 200}
	hudColor      = rl.Color{R: 200, G: 210, B: 220, A: 255}
	dimColor      = rl.Color{R: 130, G: 140, B: 150, A: 255}
)

// ensureCamera builds the pan/zoom camera on first use and tracks window
// resizes. The view looks straight down at the pond's XZ plane.
func (s *Session) ensureCamera() *camera.Camera {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if s.cam == nil {
		b := s.eng.Bounds()
		c := b.Center()
		// Horizontal extents probed through Clamp so any Bounds shape works
		halfX := b.Clamp(c.Add(vec.Vec3{X: 1e6})).Sub(c).X
		halfZ := b.Clamp(c.Add(vec.Vec3{Z: 1e6})).Sub(c).Z
		if halfX < 1 {
			halfX = 1
		}
		if halfZ < 1 {
			halfZ = 1
		}
		s.cam = camera.New(w, h, halfX, halfZ)
	}
	s.cam.Resize(w, h)
	return s.cam
}

// toScreen maps a world point onto the screen, top down.
func (s *Session) toScreen(p vec.Vec3) rl.Vector2 {
	b := s.eng.Bounds().Center()
	sx, sy := s.cam.WorldToScreen(p.X-b.X, p.Z-b.Z)
	return rl.Vector2{X: sx, Y: sy}
}

// screenToWorld maps a screen point onto the world's horizontal midplane.
func (s *Session) screenToWorld(x, y float32) vec.Vec3 {
	c := s.ensureCamera()
	b := s.eng.Bounds().Center()
	wx, wy := c.ScreenToWorld(x, y)
	return vec.Vec3{X: b.X + wx, Y: b.Y, Z: b.Z + wy}
}

// mouseOverControls reports whether the cursor is inside the controls panel.
func (s *Session) mouseOverControls() bool {
	m := rl.GetMousePosition()
	h := float32(rl.GetScreenHeight())
	return m.X >= panelMargin && m.X <= panelMargin+panelWidth &&
		m.Y >= h-panelMargin-panelHeight && m.Y <= h-panelMargin
}

// Draw renders one frame.
func (s *Session) Draw() {
	s.refreshSnapshots()
	s.ensureCamera()

	rl.BeginDrawing()
	rl.ClearBackground(waterColor)

	s.drawBounds()
	for i := range s.snaps {
		s.drawCreature(&s.snaps[i], i == s.selected)
	}
	s.drawHUD()
	s.drawControls()

	rl.EndDrawing()
}

func (s *Session) drawBounds() {
	switch b := s.eng.Bounds().(type) {
	case systems.SphereBounds:
		c := s.toScreen(b.C)
		rl.DrawCircleLines(int32(c.X), int32(c.Y), b.R*s.cam.Scale(), boundsColor)
	case systems.BoxBounds:
		min := s.toScreen(b.Min)
		max := s.toScreen(b.Max)
		rl.DrawRectangleLines(int32(min.X), int32(min.Y), int32(max.X-min.X), int32(max.Y-min.Y), boundsColor)
	}
}

func (s *Session) drawCreature(sn *engine.Snapshot, selected bool) {
	// Cull by the body's reach (head to tail tip) when zoomed in.
	center := s.eng.Bounds().Center()
	reach := float32(8)
	if n := len(sn.Segments); n > 0 {
		reach += sn.Position.Dist(sn.Segments[n-1])
	}
	if !s.cam.IsVisible(sn.Position.X-center.X, sn.Position.Z-center.Z, reach) {
		return
	}

	body := rl.Color{
		R: uint8(lerp8(bodyColor.R, restBodyColor.R, sn.RestFactor)),
		G: uint8(lerp8(bodyColor.G, restBodyColor.G, sn.RestFactor)),
		B: uint8(lerp8(bodyColor.B, restBodyColor.B, sn.RestFactor)),
		A: 255,
	}

	// Segments tail first so the head draws on top
	headRadius := float32(2.4) * s.cam.Scale()
	if headRadius < 3 {
		headRadius = 3
	}
	n := len(sn.Segments)
	for i := n - 1; i >= 0; i-- {
		p := s.toScreen(sn.Segments[i])
		r := headRadius * (1 - 0.7*float32(i+1)/float32(n+1))
		if r < 1 {
			r = 1
		}
		rl.DrawCircleV(p, r, body)
	}

	head := s.toScreen(sn.Position)
	rl.DrawCircleV(head, headRadius, body)
	nose := s.toScreen(sn.Position.Add(sn.Heading.Scale(4)))
	rl.DrawLineV(head, nose, rl.White)

	if selected {
		rl.DrawCircleLines(int32(head.X), int32(head.Y), headRadius+4, rl.White)
	}

	// Wander goal as a faint dot, active stimulus as a cross
	w := s.toScreen(sn.WanderTarget)
	rl.DrawCircleV(w, 2, wanderColor)
	if sn.HasTarget {
		t := s.toScreen(sn.Target)
		rl.DrawLineV(rl.Vector2{X: t.X - 5, Y: t.Y}, rl.Vector2{X: t.X + 5, Y: t.Y}, targetColor)
		rl.DrawLineV(rl.Vector2{X: t.X, Y: t.Y - 5}, rl.Vector2{X: t.X, Y: t.Y + 5}, targetColor)
	}

	label := sn.State.String()
	if sn.QueueLen > 0 {
		label = fmt.Sprintf("%s +%d", label, sn.QueueLen)
	}
	rl.DrawText(label, int32(head.X)+10, int32(head.Y)-10, 10, dimColor)
}

func (s *Session) drawHUD() {
	y := int32(panelMargin)
	line := func(text string, c rl.Color) {
		rl.DrawText(text, panelMargin, y, 14, c)
		y += 18
	}

	stats := s.perf.Stats()
	line(fmt.Sprintf("tick %d  creatures %d  x%d", s.eng.Tick(), len(s.snaps), s.stepsPerUpdate), hudColor)
	line(fmt.Sprintf("tick avg %.2fms", float64(stats.AvgTickDuration.Microseconds())/1000), dimColor)

	if s.selected < len(s.snaps) {
		sn := &s.snaps[s.selected]
		line(fmt.Sprintf("[%d] %s  speed %.1f  eats %d  queue %d",
			s.selected, sn.State, sn.Velocity.Len(), sn.Eats, sn.QueueLen), hudColor)
	}
	if s.paused {
		line("PAUSED", targetColor)
	}
	line("click feed | tab select | T talk | R reset | space pause | <> speed | wheel zoom", dimColor)
}

func (s *Session) drawControls() {
	h := float32(rl.GetScreenHeight())
	x := float32(panelMargin)
	y := h - panelMargin - panelHeight

	rl.DrawRectangle(int32(x), int32(y), panelWidth, panelHeight, rl.Color{R: 16, G: 28, B: 40, A: 230})

	rl.DrawText("Time scale", int32(x)+8, int32(y)+8, 12, dimColor)
	s.timeScale = gui.SliderBar(
		rl.Rectangle{X: x + 8, Y: y + 24, Width: panelWidth - 80, Height: 18},
		"0.25", "4.0",
		s.timeScale, 0.25, 4.0,
	)
	rl.DrawText(fmt.Sprintf("%.2fx", s.timeScale), int32(x)+panelWidth-60, int32(y)+26, 14, hudColor)

	ents := s.eng.Creatures()
	by := y + 54
	if gui.Button(rl.Rectangle{X: x + 8, Y: by, Width: 100, Height: 30}, "Feed Random") && s.selected < len(ents) {
		s.eng.Submit(ents[s.selected], s.eng.Bounds().RandomInside(s.rng))
	}
	talkLabel := "Talk"
	if s.talking {
		talkLabel = "Stop Talk"
	}
	if gui.Button(rl.Rectangle{X: x + 116, Y: by, Width: 100, Height: 30}, talkLabel) && s.selected < len(ents) {
		if s.talking {
			s.eng.StopTalking(ents[s.selected])
		} else {
			s.eng.StartTalking(ents[s.selected], "...")
		}
		s.talking = !s.talking
	}
	if gui.Button(rl.Rectangle{X: x + 224, Y: by, Width: 100, Height: 30}, "Reset") && s.selected < len(ents) {
		s.eng.Reset(ents[s.selected])
		s.talking = false
	}
}

func lerp8(a, b uint8, t float32) float32 {
	return float32(a) + (float32(b)-float32(a))*t
}
