package telemetry

import (
	"log/slog"

	"github.com/andrepology/pond-sub000/components"
	"github.com/andrepology/pond-sub000/vec"
)

// CreatureSample is one creature's observable state at a tick, as sampled
// from the engine's read-only snapshot.
type CreatureSample struct {
	State    components.State
	Speed    float64
	Position vec.Vec3
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowEndTick int32   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	Creatures int `csv:"creatures"`

	// Behavior state occupancy, as fractions of creature-ticks.
	WanderPct   float64 `csv:"wander_pct"`
	ApproachPct float64 `csv:"approach_pct"`
	EatPct      float64 `csv:"eat_pct"`
	RestPct     float64 `csv:"rest_pct"`
	TalkPct     float64 `csv:"talk_pct"`

	// Speed distribution over all creature-ticks in the window.
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Total head path length over the window, summed across creatures.
	Distance float64 `csv:"distance"`

	// Eat completions during the window.
	Eats int `csv:"eats"`
}

// Log emits the window summary via slog.
func (w WindowStats) Log() {
	slog.Info("window",
		"tick", w.WindowEndTick,
		"sim_time", w.SimTimeSec,
		"creatures", w.Creatures,
		"wander_pct", w.WanderPct,
		"approach_pct", w.ApproachPct,
		"eat_pct", w.EatPct,
		"rest_pct", w.RestPct,
		"talk_pct", w.TalkPct,
		"speed_mean", w.SpeedMean,
		"speed_p90", w.SpeedP90,
		"distance", w.Distance,
		"eats", w.Eats,
	)
}

// Collector aggregates per-tick creature samples into window statistics.
type Collector struct {
	windowTicks int
	tick        int32
	simTime     float64

	stateTicks [5]int64
	speeds     []float64
	distance   float64
	eats       int
	creatures  int

	lastPos map[int]vec.Vec3
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 600
	}
	return &Collector{
		windowTicks: windowTicks,
		speeds:      make([]float64, 0, windowTicks),
		lastPos:     make(map[int]vec.Vec3),
	}
}

// RecordTick folds one tick's samples into the current window. Samples must
// be indexed consistently across ticks for distance accumulation.
func (c *Collector) RecordTick(dt float64, samples []CreatureSample) {
	c.tick++
	c.simTime += dt
	c.creatures = len(samples)

	for i, s := range samples {
		if int(s.State) < len(c.stateTicks) {
			c.stateTicks[s.State]++
		}
		c.speeds = append(c.speeds, s.Speed)
		if last, ok := c.lastPos[i]; ok {
			c.distance += float64(s.Position.Dist(last))
		}
		c.lastPos[i] = s.Position
	}
}

// RecordEat counts one completed eat.
func (c *Collector) RecordEat() {
	c.eats++
}

// WindowReady reports whether a full window has accumulated.
func (c *Collector) WindowReady() bool {
	return c.tick > 0 && int(c.tick)%c.windowTicks == 0
}

// Flush computes the window stats and resets the window accumulators.
func (c *Collector) Flush() WindowStats {
	var total int64
	for _, n := range c.stateTicks {
		total += n
	}

	w := WindowStats{
		WindowEndTick: c.tick,
		SimTimeSec:    c.simTime,
		Creatures:     c.creatures,
		Distance:      c.distance,
		Eats:          c.eats,
	}
	if total > 0 {
		w.WanderPct = float64(c.stateTicks[components.StateWander]) / float64(total)
		w.ApproachPct = float64(c.stateTicks[components.StateApproach]) / float64(total)
		w.EatPct = float64(c.stateTicks[components.StateEat]) / float64(total)
		w.RestPct = float64(c.stateTicks[components.StateRest]) / float64(total)
		w.TalkPct = float64(c.stateTicks[components.StateTalk]) / float64(total)
	}
	w.SpeedMean, w.SpeedP10, w.SpeedP50, w.SpeedP90 = SpeedStats(c.speeds)

	c.stateTicks = [5]int64{}
	c.speeds = c.speeds[:0]
	c.distance = 0
	c.eats = 0
	return w
}
