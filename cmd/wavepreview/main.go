// Spine wave preview tool - interactive visualization with sliders.
//
// Drives the real spine solver with a scripted head so wave parameters can
// be tuned in isolation, without steering or behavior in the way.
//
// Usage: go run ./cmd/wavepreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/andrepology/pond-sub000/components"
	"github.com/andrepology/pond-sub000/config"
	"github.com/andrepology/pond-sub000/systems"
	"github.com/andrepology/pond-sub000/vec"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	// Radius of the scripted swim circle in world units.
	orbitRadius = 55
)

// rig is the minimal ECS setup the solver needs: one creature, no steering.
type rig struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Pose, components.Motion, components.Spine]
	entity ecs.Entity
	system *systems.SpineSystem
	arena  *vec.Arena

	// Swim circle angle, radians.
	theta float32
}

func newRig(p systems.Params) *rig {
	world := ecs.NewWorld()
	arena := vec.NewArena(256)
	mapper := ecs.NewMap4[components.Position, components.Pose, components.Motion, components.Spine](world)

	head := vec.Vec3{X: orbitRadius}
	heading := vec.Vec3{Z: 1}
	pos := components.Position{Vec3: head}
	pose := components.Pose{Heading: heading}
	motion := components.Motion{}
	spine := components.NewSpine(p.SegmentCount, head, heading, p.SegmentSpacing, p.SpacingFalloff)
	entity := mapper.NewEntity(&pos, &pose, &motion, &spine)

	return &rig{
		world:  world,
		mapper: mapper,
		entity: entity,
		system: systems.NewSpineSystem(world, p, arena),
		arena:  arena,
	}
}

// retune swaps in a new solver without disturbing the chain or phases.
func (r *rig) retune(p systems.Params) {
	r.system = systems.NewSpineSystem(r.world, p, r.arena)
}

// step scripts the head along a circle at the given speed and runs the
// solver for one tick, mirroring how steering advances the wave phases.
func (r *rig) step(p systems.Params, speed, dt float32) {
	pos, pose, motion, _ := r.mapper.Get(r.entity)

	if speed > 0 {
		r.theta += speed / orbitRadius * dt
	}
	sin, cos := math.Sincos(float64(r.theta))
	pos.Vec3 = vec.Vec3{X: orbitRadius * float32(cos), Z: orbitRadius * float32(sin)}
	pose.Heading = vec.Vec3{X: -float32(sin), Z: float32(cos)}

	motion.Speed = speed
	motion.TravelPhase = wrapPhase(motion.TravelPhase + speed*dt*p.TravelPhaseRate)
	motion.IdlePhase = wrapPhase(motion.IdlePhase + p.IdlePhaseRate*dt)

	r.arena.Reset()
	r.system.Update(dt)
}

func wrapPhase(phase float32) float32 {
	const tau = 2 * math.Pi
	phase = float32(math.Mod(float64(phase), tau))
	if phase < 0 {
		phase += tau
	}
	return phase
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Spine Wave Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	config.MustInit("")
	defaults := config.Cfg().Params()
	params := defaults
	speed := params.MaxSpeed * 0.6
	animating := true

	r := newRig(params)

	for !rl.WindowShouldClose() {
		if animating {
			r.step(params, speed, rl.GetFrameTime())
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 10, G: 24, B: 38, A: 255})

		drawChain(r)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		_, _, motion, spine := r.mapper.Get(r.entity)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("segments %d  speed %.1f", len(spine.Segments), speed), 15, statsY, 16, rl.LightGray)
		rl.DrawText(fmt.Sprintf("idle %.2f  travel %.2f", motion.IdlePhase, motion.TravelPhase), 15, statsY+20, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Spine Wave Parameters", int32(panelX), int32(panelY), 20, rl.LightGray)
		panelY += 35

		prev := params

		params.WaveAmplitude = slider(&panelY, panelX, "Wave amplitude", "%.2f", params.WaveAmplitude, 0, 8)
		params.WaveNumber = slider(&panelY, panelX, "Wave number (phase lag per segment)", "%.2f", params.WaveNumber, 0.1, 2)
		params.IdlePhaseRate = slider(&panelY, panelX, "Idle phase rate (rad/s)", "%.2f", params.IdlePhaseRate, 0.2, 6)
		params.TravelPhaseRate = slider(&panelY, panelX, "Travel phase rate (rad per unit)", "%.3f", params.TravelPhaseRate, 0.02, 1)
		params.WaveSpeedFrac = slider(&panelY, panelX, "Wave speed fraction (blend threshold)", "%.2f", params.WaveSpeedFrac, 0.05, 0.6)
		params.Responsiveness = slider(&panelY, panelX, "Responsiveness (follow rate)", "%.1f", params.Responsiveness, 4, 40)
		params.SegmentCount = int(slider(&panelY, panelX, "Segment count", "%.0f", float32(params.SegmentCount), 3, 24))
		params.SegmentSpacing = slider(&panelY, panelX, "Segment spacing", "%.1f", params.SegmentSpacing, 2, 12)
		params.SpacingFalloff = slider(&panelY, panelX, "Spacing falloff", "%.2f", params.SpacingFalloff, 0.7, 1)

		speed = slider(&panelY, panelX, "Swim speed", "%.1f", speed, 0, params.MaxSpeed)

		if params.SegmentCount != prev.SegmentCount ||
			params.SegmentSpacing != prev.SegmentSpacing ||
			params.SpacingFalloff != prev.SpacingFalloff {
			r = newRig(params)
		} else if params != prev {
			r.retune(params)
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			speed = params.MaxSpeed * 0.6
			r = newRig(params)
		}
		panelY += 50

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// slider draws a labeled SliderBar row and advances the panel cursor.
func slider(panelY *float32, panelX float32, label, format string, value, min, max float32) float32 {
	rl.DrawText(label, int32(panelX), int32(*panelY), 14, rl.Gray)
	*panelY += 18
	v := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *panelY, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.2g", min), fmt.Sprintf("%.2g", max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(panelX+float32(panelWidth-70)), int32(*panelY+2), 16, rl.LightGray)
	*panelY += 30
	return v
}

func yamlLines(p systems.Params) []string {
	return []string{
		"spine:",
		fmt.Sprintf("  segment_count: %d", p.SegmentCount),
		fmt.Sprintf("  segment_spacing: %.1f", p.SegmentSpacing),
		fmt.Sprintf("  spacing_falloff: %.2f", p.SpacingFalloff),
		fmt.Sprintf("  responsiveness: %.1f", p.Responsiveness),
		fmt.Sprintf("  wave_amplitude: %.2f", p.WaveAmplitude),
		fmt.Sprintf("  wave_number: %.2f", p.WaveNumber),
		fmt.Sprintf("  travel_phase_rate: %.3f", p.TravelPhaseRate),
		fmt.Sprintf("  idle_phase_rate: %.2f", p.IdlePhaseRate),
		fmt.Sprintf("  wave_speed_frac: %.2f", p.WaveSpeedFrac),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// drawChain renders the creature top down inside the preview square.
func drawChain(r *rig) {
	pos, pose, _, spine := r.mapper.Get(r.entity)

	const worldExtent = orbitRadius + 40
	scale := float32(previewSize) / (2 * worldExtent)
	toScreen := func(p vec.Vec3) rl.Vector2 {
		return rl.Vector2{
			X: 10 + previewSize/2 + p.X*scale,
			Y: 10 + previewSize/2 + p.Z*scale,
		}
	}

	rl.DrawCircleLines(10+previewSize/2, 10+previewSize/2, orbitRadius*scale, rl.Color{R: 40, G: 70, B: 95, A: 255})

	body := rl.Color{R: 120, G: 200, B: 235, A: 255}
	headRadius := 2.4 * scale
	n := len(spine.Segments)
	for i := n - 1; i >= 0; i-- {
		p := toScreen(spine.Segments[i])
		radius := headRadius * (1 - 0.7*float32(i+1)/float32(n+1))
		if radius < 1 {
			radius = 1
		}
		rl.DrawCircleV(p, radius, body)
	}

	head := toScreen(pos.Vec3)
	rl.DrawCircleV(head, headRadius, body)
	nose := toScreen(pos.Vec3.Add(pose.Heading.Scale(4)))
	rl.DrawLineV(head, nose, rl.White)
}
