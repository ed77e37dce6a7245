package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input.
func (s *Session) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		s.paused = !s.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && s.stepsPerUpdate > 1 {
		s.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && s.stepsPerUpdate < 10 {
		s.stepsPerUpdate++
	}

	// Tab cycles creature selection
	ents := s.eng.Creatures()
	if rl.IsKeyPressed(rl.KeyTab) && len(ents) > 0 {
		s.selected = (s.selected + 1) % len(ents)
		s.talking = false
	}
	if s.selected >= len(ents) {
		s.selected = 0
	}
	if len(ents) == 0 {
		return
	}
	sel := ents[s.selected]

	// T toggles talking for the selected creature
	if rl.IsKeyPressed(rl.KeyT) {
		if s.talking {
			s.eng.StopTalking(sel)
		} else {
			s.eng.StartTalking(sel, "...")
		}
		s.talking = !s.talking
	}

	// R resets the selected creature's behavior
	if rl.IsKeyPressed(rl.KeyR) {
		s.eng.Reset(sel)
		s.talking = false
	}

	// Left click feeds the selected creature at the clicked point
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !s.mouseOverControls() {
		mouse := rl.GetMousePosition()
		s.eng.Submit(sel, s.screenToWorld(mouse.X, mouse.Y))
	}

	s.handleCameraInput()
}

// handleCameraInput applies wheel zoom, right-drag pan, and Home reset.
func (s *Session) handleCameraInput() {
	cam := s.ensureCamera()

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !s.mouseOverControls() {
		mouse := rl.GetMousePosition()
		factor := float32(1.0) + wheel*0.1
		if factor < 0.5 {
			factor = 0.5
		}
		cam.ZoomAt(factor, mouse.X, mouse.Y)
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		cam.Pan(-delta.X, -delta.Y)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
