package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FlowField is a time-parameterized ambient current.
// The vector at a point depends only on (x, y, Time).
type FlowField struct {
	Time float64
	Rate float64 // Time advance per unit of dt
}

// NewFlowField creates a flow field starting at time zero.
func NewFlowField(rate float64) *FlowField {
	return &FlowField{Rate: rate}
}

// ValueAt returns the unit flow direction at (x, y).
func (f *FlowField) ValueAt(x, y float64) r2.Vec {
	angle := math.Sin(x*0.5+f.Time) * math.Cos(y*0.5+f.Time) * math.Pi * 2
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Advance moves the field forward by dt.
func (f *FlowField) Advance(dt float64) {
	f.Time += dt * f.Rate
}
