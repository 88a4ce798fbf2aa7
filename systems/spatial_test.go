package systems

import (
	"math/rand"
	"slices"
	"testing"
)

// ---------- BoundingBox ----------

func TestBoundingBoxContainsEdges(t *testing.T) {
	b := BoundingBox{X: 1, Y: -2, HalfW: 3, HalfH: 4}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{X: 1, Y: -2}, true},
		{"left edge", Point{X: -2, Y: -2}, true},
		{"right edge", Point{X: 4, Y: -2}, true},
		{"top edge", Point{X: 1, Y: -6}, true},
		{"bottom edge", Point{X: 1, Y: 2}, true},
		{"corner", Point{X: 4, Y: 2}, true},
		{"just outside right", Point{X: 4.0001, Y: -2}, false},
		{"just outside bottom", Point{X: 1, Y: 2.0001}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoundingBoxIntersectsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randBox := func() BoundingBox {
		return BoundingBox{
			X:     rng.Float64()*20 - 10,
			Y:     rng.Float64()*20 - 10,
			HalfW: rng.Float64() * 5,
			HalfH: rng.Float64() * 5,
		}
	}

	for i := 0; i < 1000; i++ {
		a, b := randBox(), randBox()
		if a.Intersects(b) != b.Intersects(a) {
			t.Fatalf("asymmetric intersection: %v vs %v", a, b)
		}
	}

	// Touching edges count as intersecting
	a := BoundingBox{X: 0, Y: 0, HalfW: 1, HalfH: 1}
	b := BoundingBox{X: 2, Y: 0, HalfW: 1, HalfH: 1}
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Error("boxes sharing an edge should intersect")
	}
}

// ---------- QuadTree ----------

func randomPoints(rng *rand.Rand, n int, root BoundingBox) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			X:    root.X + (rng.Float64()*2-1)*root.HalfW,
			Y:    root.Y + (rng.Float64()*2-1)*root.HalfH,
			Data: i,
		}
	}
	return pts
}

func TestQuadTreeCompleteness(t *testing.T) {
	root := BoundingBox{X: 0, Y: 0, HalfW: 20, HalfH: 20}
	rng := rand.New(rand.NewSource(1))

	for _, capacity := range []int{1, 2, 4, 16} {
		pts := randomPoints(rng, 300, root)
		qt := NewQuadTree(root, capacity)
		for _, p := range pts {
			if !qt.Insert(p) {
				t.Fatalf("capacity %d: insert of in-bounds point %v failed", capacity, p)
			}
		}

		got := qt.Query(root)
		slices.Sort(got)
		if len(got) != len(pts) {
			t.Fatalf("capacity %d: got %d payloads, want %d", capacity, len(got), len(pts))
		}
		for i, d := range got {
			if d != i {
				t.Fatalf("capacity %d: payload %d missing or duplicated", capacity, i)
			}
		}
		if qt.Len() != len(pts) {
			t.Errorf("capacity %d: Len() = %d, want %d", capacity, qt.Len(), len(pts))
		}
	}
}

func TestQuadTreeSoundness(t *testing.T) {
	root := BoundingBox{X: 0, Y: 0, HalfW: 20, HalfH: 20}
	rng := rand.New(rand.NewSource(2))
	pts := randomPoints(rng, 500, root)

	qt := NewQuadTree(root, 4)
	for _, p := range pts {
		qt.Insert(p)
	}

	var buf []int
	for i := 0; i < 200; i++ {
		r := BoundingBox{
			X:     rng.Float64()*40 - 20,
			Y:     rng.Float64()*40 - 20,
			HalfW: rng.Float64() * 8,
			HalfH: rng.Float64() * 8,
		}

		var want []int
		for _, p := range pts {
			if r.Contains(p) {
				want = append(want, p.Data)
			}
		}

		buf = qt.QueryInto(buf[:0], r)
		got := slices.Clone(buf)
		slices.Sort(got)

		if !slices.Equal(got, want) {
			t.Fatalf("query %v: got %v, want %v", r, got, want)
		}
	}
}

func TestQuadTreeRejectsOutOfBounds(t *testing.T) {
	qt := NewQuadTree(BoundingBox{HalfW: 10, HalfH: 10}, 4)

	if qt.Insert(Point{X: 10.5, Y: 0}) {
		t.Error("point outside root should be rejected")
	}
	if !qt.Insert(Point{X: 10, Y: -10}) {
		t.Error("point on the root corner should be accepted")
	}
	if qt.Len() != 1 {
		t.Errorf("Len() = %d, want 1", qt.Len())
	}
}

func TestQuadTreeSubdividesOnce(t *testing.T) {
	qt := NewQuadTree(BoundingBox{HalfW: 10, HalfH: 10}, 2)

	// All in the NE quadrant
	qt.Insert(Point{X: 5, Y: -5, Data: 0})
	qt.Insert(Point{X: 6, Y: -6, Data: 1})
	if qt.Subdivided() {
		t.Fatal("node at capacity should not be subdivided yet")
	}

	qt.Insert(Point{X: 4, Y: -4, Data: 2})
	if !qt.Subdivided() {
		t.Fatal("insert past capacity should subdivide")
	}
	if qt.Nodes() != 5 {
		t.Fatalf("Nodes() = %d after one subdivision, want 5", qt.Nodes())
	}

	ne := qt.ne
	qt.Insert(Point{X: 3, Y: -3, Data: 3})
	if qt.ne != ne {
		t.Error("further insert replaced an existing child")
	}
	if qt.Nodes() != 5 {
		t.Errorf("Nodes() = %d after further insert, want 5", qt.Nodes())
	}
	if ne.Len() != 2 {
		t.Errorf("NE child holds %d points, want 2", ne.Len())
	}
}

func TestQuadTreeCapacityFloor(t *testing.T) {
	qt := NewQuadTree(BoundingBox{HalfW: 1, HalfH: 1}, 0)
	qt.Insert(Point{X: 0.5, Y: 0.5})
	qt.Insert(Point{X: -0.5, Y: -0.5})

	if !qt.Subdivided() {
		t.Error("capacity 0 should behave as capacity 1")
	}
	if qt.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", qt.Depth())
	}
}

func TestQuadTreeScenario(t *testing.T) {
	qt := NewQuadTree(BoundingBox{X: 0, Y: 0, HalfW: 10, HalfH: 10}, 1)

	pts := []Point{
		{X: 0, Y: 0, Data: 0},
		{X: 5, Y: 5, Data: 1},
		{X: -5, Y: -5, Data: 2},
		{X: 9, Y: 9, Data: 3},
	}
	for _, p := range pts {
		if !qt.Insert(p) {
			t.Fatalf("insert %v failed", p)
		}
	}

	got := qt.Query(BoundingBox{X: 0, Y: 0, HalfW: 6, HalfH: 6})
	slices.Sort(got)

	want := []int{0, 1, 2}
	if !slices.Equal(got, want) {
		t.Errorf("Query = %v, want %v", got, want)
	}
}
