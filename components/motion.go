package components

import "gonum.org/v1/gonum/spatial/r2"

// Motion holds kinematic state. Only the head is driven by it.
type Motion struct {
	Velocity     r2.Vec
	Acceleration r2.Vec
	MaxSpeed     float64
	MaxForce     float64
}

// ApplyForce accumulates a force into acceleration.
func (m *Motion) ApplyForce(f r2.Vec) {
	m.Acceleration = r2.Add(m.Acceleration, f)
}
