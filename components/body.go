package components

import "gonum.org/v1/gonum/spatial/r2"

// Body is the segmented trail of a creature.
// Segments[0] is the head; the segment count is fixed at creation.
type Body struct {
	Segments      []r2.Vec
	SegmentLength float64
}

// NewBody returns a body with every segment stacked at the spawn position.
func NewBody(at r2.Vec, numSegments int, segmentLength float64) Body {
	segs := make([]r2.Vec, numSegments)
	for i := range segs {
		segs[i] = at
	}
	return Body{Segments: segs, SegmentLength: segmentLength}
}

// Head returns the lead segment.
func (b *Body) Head() r2.Vec {
	return b.Segments[0]
}

// NumSegments returns the segment count, used as a static size proxy.
func (b *Body) NumSegments() int {
	return len(b.Segments)
}
