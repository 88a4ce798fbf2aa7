package game

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/abyss/config"
)

// AutoSpawner stands in for a user dragging a pointer across the world in
// headless runs. The cursor follows a Lissajous path and is pressed for the
// first Duty fraction of every Period ticks.
type AutoSpawner struct {
	cfg  config.AutoSpawnConfig
	rng  *rand.Rand
	step int
}

// NewAutoSpawner creates a spawner with its own RNG stream.
func NewAutoSpawner(cfg config.AutoSpawnConfig, seed int64) *AutoSpawner {
	if cfg.Period < 1 {
		cfg.Period = 1
	}
	return &AutoSpawner{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Pressed reports whether the cursor is down on the current step.
func (a *AutoSpawner) Pressed() bool {
	phase := a.step % a.cfg.Period
	return float64(phase) < a.cfg.Duty*float64(a.cfg.Period)
}

// Cursor returns the current cursor position in world space.
func (a *AutoSpawner) Cursor() r2.Vec {
	t := 2 * math.Pi * float64(a.step) / float64(a.cfg.Period)
	return r2.Vec{
		X: a.cfg.Radius * math.Sin(3*t),
		Y: a.cfg.Radius * math.Sin(2*t),
	}
}

// Step drives g for one tick: a press wakes a dormant world, and while
// pressed the cursor drops Rate creatures near its position.
// Returns the number of spawns accepted.
func (a *AutoSpawner) Step(g *Game) int {
	defer func() { a.step++ }()

	if !a.Pressed() {
		return 0
	}
	g.TriggerFirstInteraction()

	at := a.Cursor()
	accepted := 0
	for i := 0; i < a.cfg.Rate; i++ {
		x := at.X + (a.rng.Float64()-0.5)*0.5
		y := at.Y + (a.rng.Float64()-0.5)*0.5
		if g.Spawn(x, y, "").Accepted() {
			accepted++
		}
	}
	return accepted
}
