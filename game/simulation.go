package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/abyss/systems"
	"github.com/pthm-cable/abyss/telemetry"
)

// Tick advances the world by one step. dt only drives the flow field clock;
// creature kinematics are per tick. Non-finite or negative dt counts as zero.
func (g *Game) Tick(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartStage(telemetry.StageFlowField)
	g.flow.Advance(dt)

	if g.phase != PhaseDormant {
		g.step()
	}

	g.perfCollector.EndTick()
	g.tick++

	g.flushTelemetry()
}

// step runs the creature pipeline for one tick.
func (g *Game) step() {
	// Phase A: freeze creature state and build the index from it
	g.perfCollector.StartStage(telemetry.StageSnapshot)
	g.takeSnapshot()

	g.perfCollector.StartStage(telemetry.StageIndex)
	g.rebuildIndex()

	// Phase B: compute intents against the frozen snapshot
	g.perfCollector.StartStage(telemetry.StageSteering)
	g.computeIntents()

	// Phase C: apply intents (single-threaded, spawn order)
	g.perfCollector.StartStage(telemetry.StageIntegrate)
	g.applyIntents()

	g.perfCollector.StartStage(telemetry.StageLifecycle)
	g.removeDepleted()

	g.perfCollector.StartStage(telemetry.StagePhase)
	g.advancePhase()
}

// takeSnapshot captures every live creature, in spawn order.
func (g *Game) takeSnapshot() {
	snaps := g.parallel.snapshots[:0]
	for _, e := range g.order {
		body := g.bodyMap.Get(e)
		motion := g.motionMap.Get(e)
		c := g.creatureMap.Get(e)

		snaps = append(snaps, systems.AgentState{
			Head:        body.Head(),
			Velocity:    motion.Velocity,
			Color:       c.Color,
			NumSegments: body.NumSegments(),
			MaxSpeed:    motion.MaxSpeed,
			MaxForce:    motion.MaxForce,
		})
	}
	g.parallel.snapshots = snaps
}

// rebuildIndex replaces the quadtree with one built from the snapshot heads.
// Heads outside the world bounds are not indexed.
func (g *Game) rebuildIndex() {
	g.index = systems.NewQuadTree(g.bounds, g.cfg.World.IndexCapacity)
	for i := range g.parallel.snapshots {
		head := g.parallel.snapshots[i].Head
		g.index.Insert(systems.Point{X: head.X, Y: head.Y, Data: i})
	}
}

// computeIntent fills one intent slot. It reads only the snapshot and the index.
func (g *Game) computeIntent(i int, scratch *workerScratch) {
	cfg := g.cfg
	self := g.parallel.snapshots[i]

	var force r2.Vec
	drain := false
	if g.phase == PhaseClimax {
		force = r2.Scale(cfg.Phase.ClimaxSeekWeight, systems.Seek(self, r2.Vec{}))
		drain = systems.InClimaxZone(self.Head, &cfg.Energy)
	}

	scratch.Neighbors = g.index.QueryInto(
		scratch.Neighbors[:0],
		systems.NeighborRange(self.Head, cfg.World.QueryHalfExtent),
	)
	steering := systems.Steer(self, g.parallel.snapshots, scratch.Neighbors, &cfg.Behavior)

	g.parallel.intents[i] = intent{
		Force: r2.Add(force, steering.Total(&cfg.Behavior)),
		Drain: drain,
	}
}

// applyIntents writes computed forces back to the live components and runs
// integration, relaxation and metabolism.
func (g *Game) applyIntents() {
	cfg := g.cfg
	for i, e := range g.order {
		in := &g.parallel.intents[i]

		body := g.bodyMap.Get(e)
		motion := g.motionMap.Get(e)
		meta := g.metaMap.Get(e)

		motion.ApplyForce(in.Force)

		head := body.Head()
		flow := g.flow.ValueAt(head.X, head.Y)
		motion.ApplyForce(r2.Scale(cfg.Physics.FlowWeight, flow))

		systems.Integrate(motion, body)
		systems.Relax(body, r2.Scale(-1, motion.Velocity))
		systems.Metabolize(meta, in.Drain, &cfg.Energy)
	}
}
