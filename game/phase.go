package game

import (
	"log/slog"

	"github.com/pthm-cable/abyss/config"
	"github.com/pthm-cable/abyss/telemetry"
)

// Phase is the world-level state that gates spawning and global forces.
type Phase uint8

const (
	PhaseDormant Phase = iota // Waiting for the first interaction
	PhaseActive               // Spawning allowed, creatures update
	PhaseClimax               // Spawning closed, creatures converge on the origin
)

func (p Phase) String() string {
	switch p {
	case PhaseDormant:
		return "dormant"
	case PhaseActive:
		return "active"
	case PhaseClimax:
		return "climax"
	default:
		return "unknown"
	}
}

// Transition reasons recorded in phase events.
const (
	reasonFirstInteraction = "first_interaction"
	reasonOvershoot        = "population_overshoot"
	reasonExtinct          = "population_extinct"
)

// Escalation is the outward bloom signal. The renderer owns what it looks like.
type Escalation struct {
	Climax        bool
	BloomStrength float64
	BloomRadius   float64
}

func baselineEscalation(cfg *config.Config) Escalation {
	return Escalation{
		BloomStrength: cfg.Escalation.Baseline.Strength,
		BloomRadius:   cfg.Escalation.Baseline.Radius,
	}
}

func climaxEscalation(cfg *config.Config) Escalation {
	return Escalation{
		Climax:        true,
		BloomStrength: cfg.Escalation.Climax.Strength,
		BloomRadius:   cfg.Escalation.Climax.Radius,
	}
}

// TriggerFirstInteraction moves a dormant world to active.
// It reports whether a transition happened; in any other phase it does nothing.
func (g *Game) TriggerFirstInteraction() bool {
	if g.phase != PhaseDormant {
		return false
	}
	g.transition(PhaseActive, reasonFirstInteraction)
	return true
}

// advancePhase applies the population-driven transitions at the end of a tick.
func (g *Game) advancePhase() {
	pop := len(g.order)
	switch g.phase {
	case PhaseActive:
		if pop > g.cfg.Phase.ClimaxThreshold {
			g.transition(PhaseClimax, reasonOvershoot)
		}
	case PhaseClimax:
		if pop == 0 {
			g.transition(PhaseDormant, reasonExtinct)
		}
	}
}

// transition is the only place the phase changes.
func (g *Game) transition(to Phase, reason string) {
	from := g.phase
	g.phase = to

	switch to {
	case PhaseClimax:
		g.escalation = climaxEscalation(g.cfg)
	case PhaseDormant:
		g.escalation = baselineEscalation(g.cfg)
	}

	g.collector.RecordTransition()

	event := telemetry.NewPhaseEvent(g.tick, from.String(), to.String(), reason, len(g.order))
	slog.Info("phase_transition", "event", event)
	if err := g.outputManager.WritePhaseEvent(event); err != nil {
		slog.Error("failed to write phase event", "error", err)
	}
	if err := g.store.InsertPhaseEvent(event); err != nil {
		slog.Error("failed to store phase event", "error", err)
	}
}
