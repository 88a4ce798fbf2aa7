package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/abyss/components"
)

// Integrate advances the head by one explicit Euler step and clears acceleration.
func Integrate(m *components.Motion, b *components.Body) {
	m.Velocity = limit(r2.Add(m.Velocity, m.Acceleration), m.MaxSpeed)
	b.Segments[0] = r2.Add(b.Segments[0], m.Velocity)
	m.Acceleration = r2.Vec{}
}

// Relax pulls every trailing segment to exactly SegmentLength behind its leader
// in a single pass. Segments stacked on their leader are laid out along trail,
// the direction opposite to travel, or +X when trail is zero.
func Relax(b *components.Body, trail r2.Vec) {
	fallback := unit(trail)
	if fallback == (r2.Vec{}) {
		fallback = r2.Vec{X: 1}
	}

	for i := 1; i < len(b.Segments); i++ {
		prev := b.Segments[i-1]
		dir := unit(r2.Sub(b.Segments[i], prev))
		if dir == (r2.Vec{}) {
			dir = fallback
		}
		b.Segments[i] = r2.Add(prev, r2.Scale(b.SegmentLength, dir))
	}
}
