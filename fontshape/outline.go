package fontshape

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/msdf"
)

// OutlinePoint is one point of a TrueType contour in font units.
type OutlinePoint struct {
	X, Y float64

	// OnCurve is false for quadratic control points.
	OnCurve bool
}

// FromPoints builds a shape from TrueType style contours. Consecutive
// off-curve points imply an on-curve point half way between them, and a
// contour made only of off-curve points starts at the midpoint of its last
// and first points. Coordinates are kept as given, Y up.
func FromPoints(contours [][]OutlinePoint) (*msdf.Shape, error) {
	shape := msdf.NewShape()
	shape.InverseYAxis = true

	for i, pts := range contours {
		if len(pts) < 2 {
			return nil, fmt.Errorf("contour %d: %w", i, ErrTooFewPoints)
		}
		shape.AddContour(contourFromPoints(pts))
	}
	return shape, nil
}

func contourFromPoints(pts []OutlinePoint) *msdf.Contour {
	n := len(pts)
	start := -1
	for i, p := range pts {
		if p.OnCurve {
			start = i
			break
		}
	}

	b := contourBuilder{contour: msdf.NewContour()}
	if start < 0 {
		// All control points: begin at an implied point.
		b.moveTo(pts[n-1].point().Lerp(pts[0].point(), 0.5))
		for _, p := range pts {
			b.point(p)
		}
	} else {
		b.moveTo(pts[start].point())
		for k := 1; k < n; k++ {
			b.point(pts[(start+k)%n])
		}
	}
	b.close()
	return b.contour
}

func (p OutlinePoint) point() msdf.Point {
	return msdf.Point{X: p.X, Y: p.Y}
}

// contourBuilder accumulates edges of one contour from an on/off point
// stream.
type contourBuilder struct {
	contour *msdf.Contour
	first   msdf.Point
	current msdf.Point
	control msdf.Point
	pending bool
}

func (b *contourBuilder) moveTo(p msdf.Point) {
	b.first = p
	b.current = p
	b.pending = false
}

func (b *contourBuilder) point(p OutlinePoint) {
	q := p.point()
	switch {
	case p.OnCurve && b.pending:
		b.quadTo(b.control, q)
		b.pending = false
	case p.OnCurve:
		b.lineTo(q)
	case b.pending:
		mid := b.control.Lerp(q, 0.5)
		b.quadTo(b.control, mid)
		b.control = q
	default:
		b.control = q
		b.pending = true
	}
}

func (b *contourBuilder) lineTo(p msdf.Point) {
	if p == b.current {
		return
	}
	b.contour.AddEdge(msdf.NewLinearEdge(b.current, p))
	b.current = p
}

func (b *contourBuilder) quadTo(c, p msdf.Point) {
	b.contour.AddEdge(msdf.NewQuadraticEdge(b.current, c, p))
	b.current = p
}

func (b *contourBuilder) cubeTo(c1, c2, p msdf.Point) {
	b.contour.AddEdge(msdf.NewCubicEdge(b.current, c1, c2, p))
	b.current = p
}

// close ends the contour at its first point.
func (b *contourBuilder) close() {
	if b.pending {
		b.quadTo(b.control, b.first)
		b.pending = false
		return
	}
	b.lineTo(b.first)
}

// FromSegments builds a shape from an sfnt segment stream. sfnt reports Y
// pointing down; the shape flips it back so it matches FromPoints.
func FromSegments(segments sfnt.Segments) *msdf.Shape {
	shape := msdf.NewShape()
	shape.InverseYAxis = true

	var b *contourBuilder
	flush := func() {
		if b == nil {
			return
		}
		b.close()
		if len(b.contour.Edges) > 0 {
			shape.AddContour(b.contour)
		}
		b = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			b = &contourBuilder{contour: msdf.NewContour()}
			b.moveTo(fixedToPoint(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			if b != nil {
				b.lineTo(fixedToPoint(seg.Args[0]))
			}
		case sfnt.SegmentOpQuadTo:
			if b != nil {
				b.quadTo(fixedToPoint(seg.Args[0]), fixedToPoint(seg.Args[1]))
			}
		case sfnt.SegmentOpCubeTo:
			if b != nil {
				b.cubeTo(fixedToPoint(seg.Args[0]), fixedToPoint(seg.Args[1]), fixedToPoint(seg.Args[2]))
			}
		}
	}
	flush()
	return shape
}

// fixedToPoint converts a 26.6 point with Y down to a Y up msdf point.
func fixedToPoint(p fixed.Point26_6) msdf.Point {
	return msdf.Point{X: float64(p.X) / 64.0, Y: -float64(p.Y) / 64.0}
}
