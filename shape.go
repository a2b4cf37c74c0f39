package msdf

import (
	"fmt"
	"math"
	"slices"
)

// validateEpsilon is the tolerance for the gap between consecutive edges.
const validateEpsilon = 1e-9

// Shape is a vector outline made of closed contours.
// A Shape owns its contours; they are never shared with another Shape.
type Shape struct {
	Contours []*Contour

	// InverseYAxis stores rows bottom-to-top: bitmap row r holds the
	// samples of pixel row height-1-r.
	InverseYAxis bool
}

// NewShape creates an empty shape.
func NewShape() *Shape {
	return &Shape{
		Contours: make([]*Contour, 0, 4),
	}
}

// AddContour appends a contour to the shape.
func (s *Shape) AddContour(c *Contour) {
	s.Contours = append(s.Contours, c)
}

// EdgeCount returns the total number of edges across all contours.
func (s *Shape) EdgeCount() int {
	count := 0
	for _, c := range s.Contours {
		count += len(c.Edges)
	}
	return count
}

// Bound returns the bounding box of the shape.
func (s *Shape) Bound() Rect {
	r := EmptyRect()
	for _, c := range s.Contours {
		r = r.Union(c.Bound())
	}
	return r
}

// Clone creates a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	clone := &Shape{
		Contours:     make([]*Contour, len(s.Contours)),
		InverseYAxis: s.InverseYAxis,
	}
	for i, c := range s.Contours {
		clone.Contours[i] = c.Clone()
	}
	return clone
}

// Validate reports the first edge that does not start where the previous
// edge of its contour ended. The returned error wraps
// ErrDiscontinuousContour.
func (s *Shape) Validate() error {
	for ci, c := range s.Contours {
		if len(c.Edges) == 0 {
			continue
		}
		corner := c.Edges[len(c.Edges)-1].EndPoint()
		for ei := range c.Edges {
			start := c.Edges[ei].StartPoint()
			if gap := start.Sub(corner); math.Abs(gap.X) > validateEpsilon || math.Abs(gap.Y) > validateEpsilon {
				return fmt.Errorf("contour %d, edge %d: gap %v: %w", ci, ei, gap, ErrDiscontinuousContour)
			}
			corner = c.Edges[ei].EndPoint()
		}
	}
	return nil
}

// Normalize splits single-edge contours into thirds so that every contour
// has enough edges to carry three colors, and drops empty contours.
func (s *Shape) Normalize() {
	s.Contours = slices.DeleteFunc(s.Contours, func(c *Contour) bool {
		return c == nil || len(c.Edges) == 0
	})
	for _, c := range s.Contours {
		if len(c.Edges) == 1 {
			parts := c.Edges[0].SplitInThirds()
			c.Edges = append(c.Edges[:0], parts[:]...)
		}
	}
}

// OrientContours reverses contours so that regions filled under the
// non-zero rule are enclosed by positive winding contours and holes by
// negative ones. Orientation is deduced from the order in which a
// horizontal line through each contour crosses all contours of the shape.
func (s *Shape) OrientContours() {
	type crossing struct {
		x         float64
		direction int
		contour   int
	}

	// An irrational ratio makes hitting a vertex unlikely.
	ratio := 0.5 * (math.Sqrt(5) - 1)

	orientations := make([]int, len(s.Contours))
	var crossings []crossing
	var buf []Intersection

	for i, c := range s.Contours {
		if orientations[i] != 0 || len(c.Edges) == 0 {
			continue
		}

		y0 := c.Edges[0].Point(0).Y
		y1 := y0
		for j := 0; j < len(c.Edges) && y0 == y1; j++ {
			y1 = c.Edges[j].Point(1).Y
		}
		for j := 0; j < len(c.Edges) && y0 == y1; j++ {
			y1 = c.Edges[j].Point(ratio).Y
		}
		y := mix(y0, y1, ratio)

		for j, other := range s.Contours {
			for k := range other.Edges {
				buf = other.Edges[k].ScanlineIntersections(buf[:0], y)
				for _, in := range buf {
					crossings = append(crossings, crossing{x: in.X, direction: in.Direction, contour: j})
				}
			}
		}
		if len(crossings) == 0 {
			continue
		}

		slices.SortFunc(crossings, func(a, b crossing) int {
			return sign(a.x - b.x)
		})
		for j := 1; j < len(crossings); j++ {
			if crossings[j].x == crossings[j-1].x {
				crossings[j].direction = 0
				crossings[j-1].direction = 0
			}
		}
		for j, cr := range crossings {
			if cr.direction == 0 {
				continue
			}
			// Even crossings enter a filled region; a positive contour
			// crosses downwards on entry.
			if (j&1 == 0) == (cr.direction < 0) {
				orientations[cr.contour]++
			} else {
				orientations[cr.contour]--
			}
		}
		crossings = crossings[:0]
	}

	for i, c := range s.Contours {
		if orientations[i] < 0 {
			c.Reverse()
		}
	}
}
