// Package game owns the creature population, the phase machine and the tick pipeline.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/abyss/components"
	"github.com/pthm-cable/abyss/config"
	"github.com/pthm-cable/abyss/systems"
	"github.com/pthm-cable/abyss/telemetry"
)

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	creatureMapper *ecs.Map4[
		components.Body,
		components.Motion,
		components.Metabolism,
		components.Creature,
	]
	creatureFilter *ecs.Filter4[
		components.Body,
		components.Motion,
		components.Metabolism,
		components.Creature,
	]

	// Individual component mappers for lookups
	bodyMap     *ecs.Map1[components.Body]
	motionMap   *ecs.Map1[components.Motion]
	metaMap     *ecs.Map1[components.Metabolism]
	creatureMap *ecs.Map1[components.Creature]

	// Live creatures in spawn order, oldest first
	order []ecs.Entity

	flow   *systems.FlowField
	index  *systems.QuadTree
	bounds systems.BoundingBox

	phase      Phase
	escalation Escalation

	tick   int32
	nextID uint32

	parallel *parallelState

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	store         *telemetry.Store
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// CreatureView is the read-only state of one creature handed to a renderer.
type CreatureView struct {
	ID       uint32
	Segments []r2.Vec // Head first
	Color    components.Color
	Energy   float64 // Normalized to [0,1]
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a new game in the dormant phase.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:     cfg,
		world:   world,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		rngSeed: opts.Seed,
		creatureMapper: ecs.NewMap4[
			components.Body,
			components.Motion,
			components.Metabolism,
			components.Creature,
		](world),
		creatureFilter: ecs.NewFilter4[
			components.Body,
			components.Motion,
			components.Metabolism,
			components.Creature,
		](world),
		bodyMap:     ecs.NewMap1[components.Body](world),
		motionMap:   ecs.NewMap1[components.Motion](world),
		metaMap:     ecs.NewMap1[components.Metabolism](world),
		creatureMap: ecs.NewMap1[components.Creature](world),

		flow: systems.NewFlowField(cfg.Physics.FlowRate),
		bounds: systems.BoundingBox{
			HalfW: cfg.World.HalfWidth,
			HalfH: cfg.World.HalfHeight,
		},

		phase:      PhaseDormant,
		escalation: baselineEscalation(cfg),

		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	g.index = systems.NewQuadTree(g.bounds, cfg.World.IndexCapacity)

	workers := cfg.Parallel.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	g.parallel = newParallelState(workers)

	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	store, err := telemetry.OpenStore(opts.DBPath, opts.Seed)
	if err != nil {
		slog.Error("failed to open run store", "error", err)
	}
	g.store = store

	return g
}

// Creatures returns a copy of every live creature, oldest first.
func (g *Game) Creatures() []CreatureView {
	views := make([]CreatureView, 0, len(g.order))
	for _, e := range g.order {
		body := g.bodyMap.Get(e)
		meta := g.metaMap.Get(e)
		c := g.creatureMap.Get(e)

		segs := make([]r2.Vec, len(body.Segments))
		copy(segs, body.Segments)

		views = append(views, CreatureView{
			ID:       c.ID,
			Segments: segs,
			Color:    c.Color,
			Energy:   meta.Normalized(),
		})
	}
	return views
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Escalation returns the visual intensity signal for the current phase.
func (g *Game) Escalation() Escalation {
	return g.escalation
}

// Population returns the number of live creatures.
func (g *Game) Population() int {
	return len(g.order)
}

// TickCount returns the number of ticks run so far.
func (g *Game) TickCount() int32 {
	return g.tick
}

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// Unload stops workers and closes telemetry output.
func (g *Game) Unload() {
	g.stopParallelWorkers()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if err := g.store.Close(); err != nil {
		slog.Error("failed to close run store", "error", err)
	}
}
