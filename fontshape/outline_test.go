package fontshape

import (
	"errors"
	"testing"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/msdf"
)

func on(x, y float64) OutlinePoint  { return OutlinePoint{X: x, Y: y, OnCurve: true} }
func off(x, y float64) OutlinePoint { return OutlinePoint{X: x, Y: y} }

func TestFromPoints(t *testing.T) {
	tests := []struct {
		name  string
		pts   []OutlinePoint
		types []msdf.EdgeType
		first [3]msdf.Point
	}{
		{
			name:  "polygon",
			pts:   []OutlinePoint{on(0, 0), on(10, 0), on(10, 10), on(0, 10)},
			types: []msdf.EdgeType{msdf.EdgeLinear, msdf.EdgeLinear, msdf.EdgeLinear, msdf.EdgeLinear},
			first: [3]msdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		},
		{
			name:  "implied midpoint",
			pts:   []OutlinePoint{on(0, 0), off(10, 0), off(10, 10), on(0, 10)},
			types: []msdf.EdgeType{msdf.EdgeQuadratic, msdf.EdgeQuadratic, msdf.EdgeLinear},
			first: [3]msdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}},
		},
		{
			name:  "starts at first on-curve point",
			pts:   []OutlinePoint{off(10, 0), on(10, 10), on(0, 10), on(0, 0)},
			types: []msdf.EdgeType{msdf.EdgeLinear, msdf.EdgeLinear, msdf.EdgeQuadratic},
			first: [3]msdf.Point{{X: 10, Y: 10}, {X: 0, Y: 10}},
		},
		{
			name:  "all off-curve",
			pts:   []OutlinePoint{off(0, 0), off(10, 0), off(10, 10), off(0, 10)},
			types: []msdf.EdgeType{msdf.EdgeQuadratic, msdf.EdgeQuadratic, msdf.EdgeQuadratic, msdf.EdgeQuadratic},
			first: [3]msdf.Point{{X: 0, Y: 5}, {X: 0, Y: 0}, {X: 5, Y: 0}},
		},
		{
			name:  "closing point repeated",
			pts:   []OutlinePoint{on(0, 0), on(10, 0), on(0, 10), on(0, 0)},
			types: []msdf.EdgeType{msdf.EdgeLinear, msdf.EdgeLinear, msdf.EdgeLinear},
			first: [3]msdf.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := FromPoints([][]OutlinePoint{tt.pts})
			if err != nil {
				t.Fatalf("FromPoints() error: %v", err)
			}
			if !shape.InverseYAxis {
				t.Error("InverseYAxis = false, want true")
			}
			if len(shape.Contours) != 1 {
				t.Fatalf("contours = %d, want 1", len(shape.Contours))
			}
			if err := shape.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}

			edges := shape.Contours[0].Edges
			if len(edges) != len(tt.types) {
				t.Fatalf("edges = %d, want %d", len(edges), len(tt.types))
			}
			for i, e := range edges {
				if e.Type != tt.types[i] {
					t.Errorf("edge %d type = %v, want %v", i, e.Type, tt.types[i])
				}
			}
			n := edges[0].NumPoints()
			for i := range n {
				if edges[0].Points[i] != tt.first[i] {
					t.Errorf("edge 0 point %d = %v, want %v", i, edges[0].Points[i], tt.first[i])
				}
			}
		})
	}
}

func TestFromPointsTooFewPoints(t *testing.T) {
	contours := [][]OutlinePoint{
		{on(0, 0), on(1, 0), on(0, 1)},
		{on(5, 5)},
	}
	_, err := FromPoints(contours)
	if !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("FromPoints() error = %v, want ErrTooFewPoints", err)
	}
}

func TestFromSegments(t *testing.T) {
	pt := func(x, y int) fixed.Point26_6 {
		return fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	}
	segments := sfnt.Segments{
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{pt(0, 0)}},
		{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{pt(10, 0)}},
		{Op: sfnt.SegmentOpQuadTo, Args: [3]fixed.Point26_6{pt(10, -10), pt(0, -10)}},
		// An empty contour is dropped.
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{pt(50, 50)}},
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{pt(20, 0)}},
		{Op: sfnt.SegmentOpCubeTo, Args: [3]fixed.Point26_6{pt(30, 0), pt(30, -10), pt(20, -10)}},
	}

	shape := FromSegments(segments)
	if !shape.InverseYAxis {
		t.Error("InverseYAxis = false, want true")
	}
	if len(shape.Contours) != 2 {
		t.Fatalf("contours = %d, want 2", len(shape.Contours))
	}
	if err := shape.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	first := shape.Contours[0].Edges
	if len(first) != 3 {
		t.Fatalf("first contour edges = %d, want 3", len(first))
	}
	// Y is flipped back to point up.
	if got, want := first[1].Points[1], (msdf.Point{X: 10, Y: 10}); got != want {
		t.Errorf("quad control = %v, want %v", got, want)
	}
	if first[2].Type != msdf.EdgeLinear || first[2].EndPoint() != (msdf.Point{}) {
		t.Errorf("closing edge = %+v, want line back to origin", first[2])
	}

	second := shape.Contours[1].Edges
	if len(second) != 2 || second[0].Type != msdf.EdgeCubic {
		t.Errorf("second contour = %+v, want cubic and closing line", second)
	}
}

func TestFromSegmentsEmpty(t *testing.T) {
	shape := FromSegments(nil)
	if len(shape.Contours) != 0 {
		t.Errorf("contours = %d, want 0", len(shape.Contours))
	}
}
