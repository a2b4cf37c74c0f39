package msdf

import (
	"slices"
	"sort"
)

// FillRule decides which winding numbers are inside a shape.
type FillRule int

const (
	// FillNonZero fills every point with a non-zero winding number.
	FillNonZero FillRule = iota

	// FillEvenOdd fills points with an odd winding number.
	FillEvenOdd
)

// String returns a string representation of the fill rule.
func (r FillRule) String() string {
	switch r {
	case FillNonZero:
		return "NonZero"
	case FillEvenOdd:
		return "EvenOdd"
	default:
		return "Unknown"
	}
}

// Filled applies the fill rule to a winding number.
func (r FillRule) Filled(winding int) bool {
	if r == FillEvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// Scanline holds the crossings of a shape with one horizontal line,
// sorted by x, with the running winding number after each crossing.
type Scanline struct {
	xs       []float64
	windings []int
	buf      []Intersection
}

// Reset recomputes the scanline for shape at height y. The backing storage
// is reused between calls.
func (l *Scanline) Reset(shape *Shape, y float64) {
	l.buf = l.buf[:0]
	for _, c := range shape.Contours {
		for i := range c.Edges {
			l.buf = c.Edges[i].ScanlineIntersections(l.buf, y)
		}
	}
	slices.SortStableFunc(l.buf, func(a, b Intersection) int {
		return sign(a.X - b.X)
	})

	l.xs = l.xs[:0]
	l.windings = l.windings[:0]
	total := 0
	for _, in := range l.buf {
		total += in.Direction
		l.xs = append(l.xs, in.X)
		l.windings = append(l.windings, total)
	}
}

// Len returns the number of crossings.
func (l *Scanline) Len() int {
	return len(l.xs)
}

// Winding returns the winding number of the shape at x on this line,
// counting the crossings at or left of x.
func (l *Scanline) Winding(x float64) int {
	i := sort.Search(len(l.xs), func(i int) bool { return l.xs[i] > x })
	if i == 0 {
		return 0
	}
	return l.windings[i-1]
}

// Filled reports whether x is inside the shape under the given rule.
func (l *Scanline) Filled(x float64, rule FillRule) bool {
	return rule.Filled(l.Winding(x))
}
