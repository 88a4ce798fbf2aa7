package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector helpers. Every helper maps a zero or non-finite input to the zero
// vector so NaN never reaches creature state.

// unit returns v scaled to length 1, or zero for a zero-length v.
func unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// withLength returns v rescaled to length l, or zero for a zero-length v.
func withLength(v r2.Vec, l float64) r2.Vec {
	return r2.Scale(l, unit(v))
}

// limit clamps the length of v to at most maxLen.
func limit(v r2.Vec, maxLen float64) r2.Vec {
	if maxLen <= 0 {
		return r2.Vec{}
	}
	n := r2.Norm(v)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return r2.Vec{}
	}
	if n > maxLen {
		return r2.Scale(maxLen/n, v)
	}
	return v
}

// distance returns the Euclidean distance between two points.
func distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}
