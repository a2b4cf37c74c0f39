package msdf

import (
	"math"
	"testing"
)

// notchedSquare is a square with a small ink trap notch in its top edge.
func notchedSquare() *Shape {
	s := NewShape()
	s.AddContour(polygon(
		Point{0, 0}, Point{10, 0}, Point{10, 10},
		Point{5.1, 10}, Point{5, 9.9}, Point{4.9, 10},
		Point{0, 10},
	))
	return s
}

func edgeColors(s *Shape) [][]EdgeColor {
	out := make([][]EdgeColor, len(s.Contours))
	for i, c := range s.Contours {
		for _, e := range c.Edges {
			out[i] = append(out[i], e.Color)
		}
	}
	return out
}

// assertCornersSeparated checks that at every corner the two adjoining
// edges have different colors and share at most one channel.
func assertCornersSeparated(t *testing.T, s *Shape, angleThreshold float64) {
	t.Helper()
	crossThreshold := math.Sin(angleThreshold)
	for ci, c := range s.Contours {
		for _, idx := range contourCorners(c, crossThreshold) {
			prev := c.Edges[(idx+len(c.Edges)-1)%len(c.Edges)].Color
			cur := c.Edges[idx].Color
			if prev == cur {
				t.Errorf("contour %d corner at edge %d: both edges are %v", ci, idx, cur)
			}
			if common := prev & cur; common.channels() > 1 {
				t.Errorf("contour %d corner at edge %d: %v and %v share %v", ci, idx, prev, cur, common)
			}
		}
	}
}

func TestColorSimpleCorners(t *testing.T) {
	tests := []struct {
		name  string
		shape func() *Shape
	}{
		{"square", unitSquare},
		{"frame", frameShape},
		{"notched", notchedSquare},
		{"triangle", func() *Shape {
			s := NewShape()
			s.AddContour(polygon(Point{0, 0}, Point{4, 0}, Point{2, 3}))
			return s
		}},
	}
	for _, tt := range tests {
		for _, seed := range []uint64{0, 1, 7, 12345, math.MaxUint64} {
			s := tt.shape()
			ColorSimple(s, 3, seed)
			assertCornersSeparated(t, s, 3)
			for _, c := range s.Contours {
				for _, e := range c.Edges {
					if e.Color.channels() < 2 {
						t.Errorf("%s seed %d: edge color %v has fewer than two channels", tt.name, seed, e.Color)
					}
				}
			}
		}
	}
}

func TestColorSimpleSmoothContour(t *testing.T) {
	s := NewShape()
	s.AddContour(circleContour(Point{0, 0}, 1))
	ColorSimple(s, 3, 42)

	first := s.Contours[0].Edges[0].Color
	if first.channels() != 2 {
		t.Errorf("smooth contour color = %v, want a two-channel color", first)
	}
	for i, e := range s.Contours[0].Edges {
		if e.Color != first {
			t.Errorf("edge %d color = %v, want %v", i, e.Color, first)
		}
	}
}

func TestColorSimpleTeardrop(t *testing.T) {
	teardrop := func() *Shape {
		s := NewShape()
		c := NewContour()
		c.AddEdge(NewCubicEdge(Point{0, 0}, Point{3, -2}, Point{3, 2}, Point{0, 0}))
		s.AddContour(c)
		return s
	}

	t.Run("single edge is split", func(t *testing.T) {
		s := teardrop()
		ColorSimple(s, 3, 0)
		edges := s.Contours[0].Edges
		if len(edges) != 3 {
			t.Fatalf("len(Edges) = %d, want 3", len(edges))
		}
		if edges[1].Color != ColorWhite {
			t.Errorf("middle color = %v, want White", edges[1].Color)
		}
		if edges[0].Color == edges[2].Color {
			t.Errorf("edges meeting at the corner share color %v", edges[0].Color)
		}
		if err := s.Validate(); err != nil {
			t.Errorf("Validate() after split = %v", err)
		}
	})

	t.Run("two edges are split", func(t *testing.T) {
		s := NewShape()
		c := NewContour()
		c.AddEdge(NewQuadraticEdge(Point{0, 0}, Point{3, -2}, Point{3, 0}))
		c.AddEdge(NewQuadraticEdge(Point{3, 0}, Point{3, 2}, Point{0, 0}))
		s.AddContour(c)
		ColorSimple(s, 3, 5)

		edges := s.Contours[0].Edges
		if len(edges) != 6 {
			t.Fatalf("len(Edges) = %d, want 6", len(edges))
		}
		if err := s.Validate(); err != nil {
			t.Errorf("Validate() after split = %v", err)
		}
		assertCornersSeparated(t, s, 3)
	})

	t.Run("three edges keep their geometry", func(t *testing.T) {
		s := teardrop()
		s.Normalize()
		before := s.Clone()
		ColorSimple(s, 3, 9)
		assertCornersSeparated(t, s, 3)
		for i := range s.Contours[0].Edges {
			if s.Contours[0].Edges[i].Points != before.Contours[0].Edges[i].Points {
				t.Errorf("edge %d geometry changed", i)
			}
		}
	})
}

func TestColorSimpleDeterministic(t *testing.T) {
	for _, seed := range []uint64{0, 3, 99, 1 << 40} {
		a, b := notchedSquare(), notchedSquare()
		a.AddContour(circleContour(Point{20, 20}, 3))
		b.AddContour(circleContour(Point{20, 20}, 3))

		ColorSimple(a, 3, seed)
		ColorSimple(b, 3, seed)

		ca, cb := edgeColors(a), edgeColors(b)
		for i := range ca {
			for j := range ca[i] {
				if ca[i][j] != cb[i][j] {
					t.Errorf("seed %d: contour %d edge %d: %v != %v", seed, i, j, ca[i][j], cb[i][j])
				}
			}
		}
	}
}

func TestColorInkTrap(t *testing.T) {
	for _, seed := range []uint64{0, 1, 2, 3, 77} {
		s := notchedSquare()
		ColorInkTrap(s, 3, seed)
		assertCornersSeparated(t, s, 3)

		again := notchedSquare()
		ColorInkTrap(again, 3, seed)
		ca, cb := edgeColors(s), edgeColors(again)
		for j := range ca[0] {
			if ca[0][j] != cb[0][j] {
				t.Errorf("seed %d: edge %d: %v != %v", seed, j, ca[0][j], cb[0][j])
			}
		}
	}
}

func TestColorInkTrapCarriesLastSplineColor(t *testing.T) {
	// The short closing edge makes the last corner minor.
	s := NewShape()
	s.AddContour(polygon(Point{0, 0}, Point{10, 0}, Point{10, 10}, Point{0, 10}, Point{0.5, 0.5}))
	s.AddContour(circleContour(Point{20, 5}, 2))
	ColorInkTrap(s, 3, 0)

	want := []EdgeColor{ColorMagenta, ColorYellow, ColorCyan, ColorYellow, ColorCyan}
	got := edgeColors(s)
	for i, c := range want {
		if got[0][i] != c {
			t.Errorf("edge %d color = %v, want %v", i, got[0][i], c)
		}
	}
	// The smooth contour continues from the minor corner's color.
	if c := got[1][0]; c != ColorMagenta {
		t.Errorf("smooth contour color = %v, want %v", c, ColorMagenta)
	}
}

func TestColorEdgesMode(t *testing.T) {
	a, b := notchedSquare(), notchedSquare()
	ColorEdges(a, ColoringInkTrap, 3, 11)
	ColorInkTrap(b, 3, 11)
	ca, cb := edgeColors(a), edgeColors(b)
	for j := range ca[0] {
		if ca[0][j] != cb[0][j] {
			t.Errorf("edge %d: ColorEdges %v, ColorInkTrap %v", j, ca[0][j], cb[0][j])
		}
	}
}

func TestSymmetricalTrichotomy(t *testing.T) {
	tests := []struct {
		position, n, want int
	}{
		{0, 3, -1},
		{1, 3, 0},
		{2, 3, 1},
		{0, 5, -1},
		{2, 5, 0},
		{4, 5, 1},
	}
	for _, tt := range tests {
		if got := symmetricalTrichotomy(tt.position, tt.n); got != tt.want {
			t.Errorf("symmetricalTrichotomy(%d, %d) = %d, want %d", tt.position, tt.n, got, tt.want)
		}
	}
}

func TestColorStateSequence(t *testing.T) {
	s := newColorState(0)
	if s.color != ColorCyan {
		t.Fatalf("initial color = %v, want Cyan", s.color)
	}
	for range 10 {
		prev := s.color
		c := s.next()
		if c == prev {
			t.Errorf("next() returned the same color %v", c)
		}
		if c.channels() != 2 {
			t.Errorf("next() = %v, want a two-channel color", c)
		}
	}
}

func TestColorStateAvoiding(t *testing.T) {
	s := colorState{color: ColorCyan}
	if got := s.nextAvoiding(ColorMagenta); got != ColorYellow {
		t.Errorf("Cyan avoiding Magenta = %v, want Yellow", got)
	}
}
