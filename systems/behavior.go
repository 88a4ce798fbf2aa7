package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/abyss/components"
	"github.com/pthm-cable/abyss/config"
)

// AgentState is the read-only view of a creature taken at tick start.
// Behaviors only ever read AgentStates, never live components, so a creature
// cannot observe a neighbor that has already moved this tick.
type AgentState struct {
	Head        r2.Vec
	Velocity    r2.Vec
	Color       components.Color
	NumSegments int
	MaxSpeed    float64
	MaxForce    float64
}

// SteeringForces holds the individual steering terms, each already clamped.
type SteeringForces struct {
	Separate r2.Vec
	Align    r2.Vec
	Cohesion r2.Vec
	Flee     r2.Vec
}

// Total returns the weighted sum of the terms. The sum itself is not clamped.
func (f SteeringForces) Total(cfg *config.BehaviorConfig) r2.Vec {
	total := r2.Scale(cfg.SeparateWeight, f.Separate)
	total = r2.Add(total, r2.Scale(cfg.AlignWeight, f.Align))
	total = r2.Add(total, r2.Scale(cfg.CohesionWeight, f.Cohesion))
	total = r2.Add(total, r2.Scale(cfg.FleeWeight, f.Flee))
	return total
}

// Seek returns the steering force toward target.
func Seek(self AgentState, target r2.Vec) r2.Vec {
	desired := withLength(r2.Sub(target, self.Head), self.MaxSpeed)
	return limit(r2.Sub(desired, self.Velocity), self.MaxForce)
}

// steerAway turns an accumulated repulsion into a clamped steering force.
func steerAway(self AgentState, sum r2.Vec, count int, speed, maxForce float64) r2.Vec {
	if count == 0 {
		return r2.Vec{}
	}
	avg := r2.Scale(1/float64(count), sum)
	if r2.Norm(avg) == 0 {
		return r2.Vec{}
	}
	desired := withLength(avg, speed)
	return limit(r2.Sub(desired, self.Velocity), maxForce)
}

// repulsion is the unit vector from other to self divided by their distance.
func repulsion(self, other r2.Vec, d float64) r2.Vec {
	return r2.Scale(1/d, unit(r2.Sub(self, other)))
}

// threatRepulsion steers away from threats: neighbors whose segment count
// exceeds ThreatRatio times our own, within FleeDist. Segment count is fixed
// at spawn, so threat status never changes over a creature's life.
func threatRepulsion(self AgentState, snapshot []AgentState, neighbors []int, cfg *config.BehaviorConfig) r2.Vec {
	threshold := float64(self.NumSegments) * cfg.ThreatRatio

	var sum r2.Vec
	count := 0
	for _, i := range neighbors {
		other := &snapshot[i]
		if float64(other.NumSegments) <= threshold {
			continue
		}
		d := distance(self.Head, other.Head)
		if d > 0 && d < cfg.FleeDist {
			sum = r2.Add(sum, repulsion(self.Head, other.Head, d))
			count++
		}
	}
	return steerAway(self, sum, count, self.MaxSpeed*cfg.FleeSpeedFactor, self.MaxForce*2)
}

// Separate pushes away from nearby threats. Same-size or smaller neighbors
// never push.
func Separate(self AgentState, snapshot []AgentState, neighbors []int, cfg *config.BehaviorConfig) r2.Vec {
	return threatRepulsion(self, snapshot, neighbors, cfg)
}

// Flee is the threat repulsion again, weighted separately in Total.
func Flee(self AgentState, snapshot []AgentState, neighbors []int, cfg *config.BehaviorConfig) r2.Vec {
	return threatRepulsion(self, snapshot, neighbors, cfg)
}

// Align matches the weighted average heading of nearby creatures.
// Same-colored neighbors weigh SameColorWeight, others OtherColorWeight.
func Align(self AgentState, snapshot []AgentState, neighbors []int, cfg *config.BehaviorConfig) r2.Vec {
	var sum r2.Vec
	var weight float64
	for _, i := range neighbors {
		other := &snapshot[i]
		d := distance(self.Head, other.Head)
		if d <= 0 || d >= cfg.NeighborDist {
			continue
		}
		w := cfg.OtherColorWeight
		if other.Color == self.Color {
			w = cfg.SameColorWeight
		}
		sum = r2.Add(sum, r2.Scale(w, other.Velocity))
		weight += w
	}

	if weight <= 0 {
		return r2.Vec{}
	}
	desired := withLength(r2.Scale(1/weight, sum), self.MaxSpeed)
	return limit(r2.Sub(desired, self.Velocity), self.MaxForce)
}

// Cohesion seeks the centroid of nearby heads.
func Cohesion(self AgentState, snapshot []AgentState, neighbors []int, cfg *config.BehaviorConfig) r2.Vec {
	var sum r2.Vec
	count := 0
	for _, i := range neighbors {
		other := &snapshot[i]
		d := distance(self.Head, other.Head)
		if d > 0 && d < cfg.NeighborDist {
			sum = r2.Add(sum, other.Head)
			count++
		}
	}

	if count == 0 {
		return r2.Vec{}
	}
	return Seek(self, r2.Scale(1/float64(count), sum))
}

// Steer computes every steering term for self against its neighbor set.
func Steer(self AgentState, snapshot []AgentState, neighbors []int, cfg *config.BehaviorConfig) SteeringForces {
	return SteeringForces{
		Separate: Separate(self, snapshot, neighbors, cfg),
		Align:    Align(self, snapshot, neighbors, cfg),
		Cohesion: Cohesion(self, snapshot, neighbors, cfg),
		Flee:     Flee(self, snapshot, neighbors, cfg),
	}
}

// NeighborRange returns the query box around a head.
func NeighborRange(head r2.Vec, halfExtent float64) BoundingBox {
	return BoundingBox{X: head.X, Y: head.Y, HalfW: halfExtent, HalfH: halfExtent}
}
