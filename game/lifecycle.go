package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/abyss/components"
)

// SpawnResult reports what happened to a spawn request.
type SpawnResult uint8

const (
	SpawnAccepted        SpawnResult = iota
	SpawnEvicted                     // Accepted after evicting the oldest creature
	SpawnRejectedPhase               // World is not active
	SpawnRejectedInvalid             // Non-finite coordinates
)

func (r SpawnResult) String() string {
	switch r {
	case SpawnAccepted:
		return "accepted"
	case SpawnEvicted:
		return "evicted"
	case SpawnRejectedPhase:
		return "rejected_phase"
	case SpawnRejectedInvalid:
		return "rejected_invalid"
	default:
		return "unknown"
	}
}

// Accepted reports whether a creature was created.
func (r SpawnResult) Accepted() bool {
	return r == SpawnAccepted || r == SpawnEvicted
}

// Spawn requests a new creature with its head at (x, y).
// tag selects a palette color by name or hex; empty or unknown tags pick a
// random palette color. Requests outside the active phase are ignored.
func (g *Game) Spawn(x, y float64, tag string) SpawnResult {
	if g.phase != PhaseActive {
		g.collector.RecordRejected()
		return SpawnRejectedPhase
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		g.collector.RecordRejected()
		return SpawnRejectedInvalid
	}

	g.spawnCreature(r2.Vec{X: x, Y: y}, g.resolveColor(tag))
	g.collector.RecordSpawn()

	if len(g.order) > g.cfg.Phase.PopulationCap {
		g.evictOldest()
		return SpawnEvicted
	}
	return SpawnAccepted
}

// spawnCreature creates a creature entity and appends it to the spawn order.
func (g *Game) spawnCreature(at r2.Vec, color components.Color) ecs.Entity {
	cc := &g.cfg.Creature

	id := g.nextID
	g.nextID++

	numSegments := cc.MinSegments + g.rng.Intn(cc.MaxSegments-cc.MinSegments)

	body := components.NewBody(at, numSegments, cc.SegmentLength)
	motion := components.Motion{
		Velocity: r2.Vec{
			X: (g.rng.Float64() - 0.5) * cc.VelocityJitter,
			Y: (g.rng.Float64() - 0.5) * cc.VelocityJitter,
		},
		MaxSpeed: cc.MinSpeed + g.rng.Float64()*cc.SpeedRange,
		MaxForce: cc.MaxForce,
	}
	meta := components.Metabolism{Energy: cc.InitialEnergy, Initial: cc.InitialEnergy}
	creature := components.Creature{ID: id, Color: color, SpawnTick: g.tick}

	entity := g.creatureMapper.NewEntity(&body, &motion, &meta, &creature)
	g.order = append(g.order, entity)

	return entity
}

// resolveColor maps a spawn tag to a color.
func (g *Game) resolveColor(tag string) components.Color {
	if tag != "" {
		c, err := components.ParseColor(tag)
		if err == nil {
			return c
		}
		slog.Debug("ignoring spawn tag", "tag", tag, "error", err)
	}
	palette := g.cfg.Derived.PaletteHex
	return components.Color(palette[g.rng.Intn(len(palette))])
}

// evictOldest removes the creature that was spawned first.
func (g *Game) evictOldest() {
	if len(g.order) == 0 {
		return
	}
	oldest := g.order[0]
	g.order = g.order[1:]

	id := g.creatureMap.Get(oldest).ID
	g.world.RemoveEntity(oldest)
	g.collector.RecordEviction()

	slog.Debug("evicted", "id", id, "tick", g.tick, "population", len(g.order))
}

// removeDepleted removes every creature with no energy left, keeping spawn order.
func (g *Game) removeDepleted() {
	// First pass: collect depleted entities (must complete before modifying)
	var toRemove []ecs.Entity
	kept := g.order[:0]
	for _, e := range g.order {
		if g.metaMap.Get(e).Depleted() {
			toRemove = append(toRemove, e)
			continue
		}
		kept = append(kept, e)
	}
	g.order = kept

	// Second pass: remove entities
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
		g.collector.RecordDepletion()
	}
}
