package msdf

import (
	"math"
	"testing"
)

// polygon builds a closed contour of linear edges through pts.
func polygon(pts ...Point) *Contour {
	c := NewContour()
	for i := range pts {
		c.AddEdge(NewLinearEdge(pts[i], pts[(i+1)%len(pts)]))
	}
	return c
}

// unitSquare returns the counter-clockwise square (0,0)-(1,1).
func unitSquare() *Shape {
	s := NewShape()
	s.AddContour(polygon(Point{0, 0}, Point{1, 0}, Point{1, 1}, Point{0, 1}))
	return s
}

// frameShape returns a 3x3 square with a 1x1 hole in its middle.
func frameShape() *Shape {
	s := NewShape()
	s.AddContour(polygon(Point{0, 0}, Point{3, 0}, Point{3, 3}, Point{0, 3}))
	s.AddContour(polygon(Point{1, 1}, Point{1, 2}, Point{2, 2}, Point{2, 1}))
	return s
}

// circleContour approximates a counter-clockwise circle with four cubics.
func circleContour(center Point, r float64) *Contour {
	const k = 0.5522847498
	c := NewContour()
	pts := [4]Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%4]
		c.AddEdge(NewCubicEdge(
			center.Add(a.Mul(r)),
			center.Add(a.Add(b.Mul(k)).Mul(r)),
			center.Add(b.Add(a.Mul(k)).Mul(r)),
			center.Add(b.Mul(r)),
		))
	}
	return c
}

func pointsNear(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func assertPointNear(t *testing.T, name string, got, want Point, eps float64) {
	t.Helper()
	if !pointsNear(got, want, eps) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// bruteForceDistance samples the edge densely and returns the smallest
// Euclidean distance to origin.
func bruteForceDistance(e *Edge, origin Point) float64 {
	const samples = 20000
	best := math.Inf(1)
	for i := 0; i <= samples; i++ {
		d := e.Point(float64(i) / samples).Sub(origin).Length()
		best = min(best, d)
	}
	return best
}

// testConfig returns a configuration with the given projection.
func testConfig(distanceRange, scale float64, translate Point) Config {
	cfg := DefaultConfig()
	cfg.Range = distanceRange
	cfg.Scale = Point{scale, scale}
	cfg.Translate = translate
	return cfg
}
