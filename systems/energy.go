package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/abyss/components"
	"github.com/pthm-cable/abyss/config"
)

// InClimaxZone reports whether a head is close enough to the origin to be
// drained during climax.
func InClimaxZone(head r2.Vec, cfg *config.EnergyConfig) bool {
	return r2.Norm(head) < cfg.ClimaxRadius
}

// Metabolize applies one tick of energy decay, plus the climax drain when
// drain is set. Returns true when the creature is depleted.
func Metabolize(m *components.Metabolism, drain bool, cfg *config.EnergyConfig) bool {
	m.Energy -= cfg.Decay
	if drain {
		m.Energy -= cfg.ClimaxDrain
	}
	return m.Depleted()
}
