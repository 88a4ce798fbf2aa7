package components

// Metabolism tracks a creature's energy.
// Energy starts at Initial and only ever decreases.
type Metabolism struct {
	Energy  float64
	Initial float64
}

// Normalized returns energy as a fraction of the initial value, clamped to [0, 1].
func (m *Metabolism) Normalized() float64 {
	if m.Initial <= 0 {
		return 0
	}
	v := m.Energy / m.Initial
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Depleted reports whether the creature should be removed.
func (m *Metabolism) Depleted() bool {
	return m.Energy <= 0
}
