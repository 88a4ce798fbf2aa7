package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/abyss/components"
)

func TestIntegrateClampsSpeed(t *testing.T) {
	m := components.Motion{
		Velocity:     r2.Vec{X: 0.05},
		Acceleration: r2.Vec{X: 1, Y: 1},
		MaxSpeed:     0.1,
	}
	b := components.NewBody(r2.Vec{X: 2, Y: 3}, 8, 0.15)

	Integrate(&m, &b)

	if !scalar.EqualWithinAbs(r2.Norm(m.Velocity), 0.1, 1e-12) {
		t.Errorf("speed = %v, want 0.1", r2.Norm(m.Velocity))
	}
	if m.Acceleration != (r2.Vec{}) {
		t.Errorf("acceleration not cleared: %v", m.Acceleration)
	}
	want := r2.Add(r2.Vec{X: 2, Y: 3}, m.Velocity)
	if b.Head() != want {
		t.Errorf("head = %v, want %v", b.Head(), want)
	}
	// Only the head moves
	if b.Segments[1] != (r2.Vec{X: 2, Y: 3}) {
		t.Errorf("trailing segment moved during integration: %v", b.Segments[1])
	}
}

func TestIntegrateBelowLimit(t *testing.T) {
	m := components.Motion{
		Velocity:     r2.Vec{X: 0.01},
		Acceleration: r2.Vec{Y: 0.02},
		MaxSpeed:     0.1,
	}
	b := components.NewBody(r2.Vec{}, 8, 0.15)

	Integrate(&m, &b)

	if m.Velocity != (r2.Vec{X: 0.01, Y: 0.02}) {
		t.Errorf("velocity = %v, want (0.01, 0.02)", m.Velocity)
	}
}

func TestRelaxInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	tests := []struct {
		name string
		body func() components.Body
	}{
		{"stacked at spawn", func() components.Body {
			return components.NewBody(r2.Vec{X: 1, Y: 1}, 12, 0.15)
		}},
		{"scattered", func() components.Body {
			b := components.NewBody(r2.Vec{}, 15, 0.15)
			for i := range b.Segments {
				b.Segments[i] = r2.Vec{X: rng.Float64()*10 - 5, Y: rng.Float64()*10 - 5}
			}
			return b
		}},
		{"partly stacked", func() components.Body {
			b := components.NewBody(r2.Vec{}, 10, 0.15)
			b.Segments[0] = r2.Vec{X: 0.3, Y: -0.2}
			return b
		}},
	}

	for _, tt := range tests {
		for _, trail := range []r2.Vec{{}, {X: -0.05, Y: 0.02}} {
			t.Run(tt.name, func(t *testing.T) {
				b := tt.body()
				head := b.Head()

				Relax(&b, trail)

				if b.Head() != head {
					t.Errorf("head moved during relaxation")
				}
				for i := 1; i < len(b.Segments); i++ {
					d := r2.Norm(r2.Sub(b.Segments[i], b.Segments[i-1]))
					if !scalar.EqualWithinAbs(d, b.SegmentLength, 1e-9) {
						t.Fatalf("segment %d is %v from its leader, want %v", i, d, b.SegmentLength)
					}
				}
			})
		}
	}
}

func TestRelaxStackedFollowsTrail(t *testing.T) {
	b := components.NewBody(r2.Vec{}, 3, 0.5)
	Relax(&b, r2.Vec{Y: -2})

	want := []r2.Vec{{}, {Y: -0.5}, {Y: -1}}
	for i, w := range want {
		if !scalar.EqualWithinAbs(b.Segments[i].X, w.X, 1e-12) || !scalar.EqualWithinAbs(b.Segments[i].Y, w.Y, 1e-12) {
			t.Errorf("segment %d = %v, want %v", i, b.Segments[i], w)
		}
	}
}

func TestMathHelpersNoNaN(t *testing.T) {
	inputs := []r2.Vec{
		{},
		{X: math.Inf(1)},
		{X: math.NaN(), Y: 1},
		{X: 1e-300, Y: 1e-300},
	}
	for _, v := range inputs {
		for _, out := range []r2.Vec{unit(v), withLength(v, 2), limit(v, 1)} {
			if math.IsNaN(out.X) || math.IsNaN(out.Y) || math.IsInf(out.X, 0) || math.IsInf(out.Y, 0) {
				t.Errorf("helper produced %v from %v", out, v)
			}
		}
	}
	if limit(r2.Vec{X: 3, Y: 4}, 0) != (r2.Vec{}) {
		t.Error("limit with zero max should be zero")
	}
}
