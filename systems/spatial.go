// Package systems provides the per-tick simulation systems: spatial index, flow field,
// steering behaviors, integration and metabolism.
package systems

// Point is an indexed position. Data identifies the owner, typically an index
// into the tick snapshot.
type Point struct {
	X, Y float64
	Data int
}

// BoundingBox is an axis-aligned rectangle given by its center and half extents.
type BoundingBox struct {
	X, Y         float64
	HalfW, HalfH float64
}

// Contains reports whether p lies inside the box. All four edges are inclusive.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.X-b.HalfW && p.X <= b.X+b.HalfW &&
		p.Y >= b.Y-b.HalfH && p.Y <= b.Y+b.HalfH
}

// Intersects reports whether the two boxes overlap. Boxes sharing only an edge intersect.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return !(o.X-o.HalfW > b.X+b.HalfW ||
		o.X+o.HalfW < b.X-b.HalfW ||
		o.Y-o.HalfH > b.Y+b.HalfH ||
		o.Y+o.HalfH < b.Y-b.HalfH)
}

// QuadTree is a point quadtree with capacity-bounded buckets.
// A node keeps up to capacity points; the first insert into a full node
// subdivides it once and every later insert is routed to a child.
// The tree is rebuilt from scratch each tick, so there is no removal.
type QuadTree struct {
	boundary BoundingBox
	capacity int
	points   []Point
	divided  bool

	ne, nw, se, sw *QuadTree
}

// NewQuadTree creates an empty tree covering boundary.
// Capacity below 1 is raised to 1.
func NewQuadTree(boundary BoundingBox, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		boundary: boundary,
		capacity: capacity,
		points:   make([]Point, 0, capacity),
	}
}

// Boundary returns the box covered by this node.
func (q *QuadTree) Boundary() BoundingBox {
	return q.boundary
}

// Subdivided reports whether this node has children.
func (q *QuadTree) Subdivided() bool {
	return q.divided
}

func (q *QuadTree) subdivide() {
	x, y := q.boundary.X, q.boundary.Y
	w, h := q.boundary.HalfW/2, q.boundary.HalfH/2

	q.ne = NewQuadTree(BoundingBox{X: x + w, Y: y - h, HalfW: w, HalfH: h}, q.capacity)
	q.nw = NewQuadTree(BoundingBox{X: x - w, Y: y - h, HalfW: w, HalfH: h}, q.capacity)
	q.se = NewQuadTree(BoundingBox{X: x + w, Y: y + h, HalfW: w, HalfH: h}, q.capacity)
	q.sw = NewQuadTree(BoundingBox{X: x - w, Y: y + h, HalfW: w, HalfH: h}, q.capacity)
	q.divided = true
}

// Insert adds p to the tree. Points outside the boundary are rejected.
func (q *QuadTree) Insert(p Point) bool {
	if !q.boundary.Contains(p) {
		return false
	}

	if len(q.points) < q.capacity {
		q.points = append(q.points, p)
		return true
	}

	if !q.divided {
		q.subdivide()
	}

	// Points on a shared edge go to the first child that contains them.
	return q.ne.Insert(p) || q.nw.Insert(p) || q.se.Insert(p) || q.sw.Insert(p)
}

// Query returns the payloads of all points inside r.
func (q *QuadTree) Query(r BoundingBox) []int {
	return q.QueryInto(nil, r)
}

// QueryInto appends the payloads of all points inside r to dst and returns it.
// Reuse dst across calls to avoid allocations.
// Order is own points, then NW, NE, SW, SE subtrees.
func (q *QuadTree) QueryInto(dst []int, r BoundingBox) []int {
	if !q.boundary.Intersects(r) {
		return dst
	}

	for _, p := range q.points {
		if r.Contains(p) {
			dst = append(dst, p.Data)
		}
	}

	if q.divided {
		dst = q.nw.QueryInto(dst, r)
		dst = q.ne.QueryInto(dst, r)
		dst = q.sw.QueryInto(dst, r)
		dst = q.se.QueryInto(dst, r)
	}

	return dst
}

// Len returns the number of points stored in the tree.
func (q *QuadTree) Len() int {
	n := len(q.points)
	if q.divided {
		n += q.ne.Len() + q.nw.Len() + q.se.Len() + q.sw.Len()
	}
	return n
}

// Depth returns the number of levels, 1 for an undivided root.
func (q *QuadTree) Depth() int {
	if !q.divided {
		return 1
	}
	d := max(q.ne.Depth(), q.nw.Depth(), q.se.Depth(), q.sw.Depth())
	return d + 1
}

// Nodes returns the total number of nodes in the tree.
func (q *QuadTree) Nodes() int {
	if !q.divided {
		return 1
	}
	return 1 + q.ne.Nodes() + q.nw.Nodes() + q.se.Nodes() + q.sw.Nodes()
}
