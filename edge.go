package msdf

import (
	"math"
)

// EdgeType classifies edge segments by their geometric type.
type EdgeType int

const (
	// EdgeLinear is a straight line segment between two points.
	EdgeLinear EdgeType = iota

	// EdgeQuadratic is a quadratic Bezier curve (one control point).
	EdgeQuadratic

	// EdgeCubic is a cubic Bezier curve (two control points).
	EdgeCubic
)

// String returns a string representation of the edge type.
func (t EdgeType) String() string {
	switch t {
	case EdgeLinear:
		return "Linear"
	case EdgeQuadratic:
		return "Quadratic"
	case EdgeCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// EdgeColor is the set of RGB channels an edge contributes to.
type EdgeColor uint8

const (
	// ColorBlack means the edge contributes to no channels.
	ColorBlack EdgeColor = 0

	// ColorRed means the edge contributes to the red channel.
	ColorRed EdgeColor = 1

	// ColorGreen means the edge contributes to the green channel.
	ColorGreen EdgeColor = 2

	// ColorBlue means the edge contributes to the blue channel.
	ColorBlue EdgeColor = 4

	// ColorYellow combines red and green channels.
	ColorYellow = ColorRed | ColorGreen

	// ColorCyan combines green and blue channels.
	ColorCyan = ColorGreen | ColorBlue

	// ColorMagenta combines red and blue channels.
	ColorMagenta = ColorRed | ColorBlue

	// ColorWhite means the edge contributes to all channels.
	ColorWhite = ColorRed | ColorGreen | ColorBlue
)

// String returns a string representation of the edge color.
func (c EdgeColor) String() string {
	switch c {
	case ColorBlack:
		return "Black"
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorBlue:
		return "Blue"
	case ColorYellow:
		return "Yellow"
	case ColorCyan:
		return "Cyan"
	case ColorMagenta:
		return "Magenta"
	case ColorWhite:
		return "White"
	default:
		return "Unknown"
	}
}

// HasRed returns true if the color includes the red channel.
func (c EdgeColor) HasRed() bool { return c&ColorRed != 0 }

// HasGreen returns true if the color includes the green channel.
func (c EdgeColor) HasGreen() bool { return c&ColorGreen != 0 }

// HasBlue returns true if the color includes the blue channel.
func (c EdgeColor) HasBlue() bool { return c&ColorBlue != 0 }

// channels returns the number of channels set in c.
func (c EdgeColor) channels() int {
	n := 0
	for m := c & ColorWhite; m != 0; m &= m - 1 {
		n++
	}
	return n
}

// Edge is a single segment of a contour: a line, a quadratic or a cubic
// Bezier curve. The variant is selected by Type; Points holds as many
// points as the variant uses and zero values after that.
type Edge struct {
	// Type is the geometric type of this edge.
	Type EdgeType

	// Points contains the control and end points for this edge.
	// Linear: P0 (start), P1 (end)
	// Quadratic: P0 (start), P1 (control), P2 (end)
	// Cubic: P0 (start), P1 (control1), P2 (control2), P3 (end)
	Points [4]Point

	// Color determines which channels this edge affects.
	Color EdgeColor
}

// NewLinearEdge creates a new linear edge from start to end.
func NewLinearEdge(start, end Point) Edge {
	return Edge{
		Type:   EdgeLinear,
		Points: [4]Point{start, end, {}, {}},
		Color:  ColorWhite,
	}
}

// NewQuadraticEdge creates a new quadratic Bezier edge.
// A control point coinciding with an endpoint is moved to the middle of
// the chord so the tangent is never zero at the ends.
func NewQuadraticEdge(start, control, end Point) Edge {
	if control == start || control == end {
		control = start.Lerp(end, 0.5)
	}
	return Edge{
		Type:   EdgeQuadratic,
		Points: [4]Point{start, control, end, {}},
		Color:  ColorWhite,
	}
}

// NewCubicEdge creates a new cubic Bezier edge.
// When both control points coincide with endpoints, they are spread over
// the chord at 1/3 and 2/3.
func NewCubicEdge(start, control1, control2, end Point) Edge {
	if (control1 == start || control1 == end) && (control2 == start || control2 == end) {
		control1 = start.Lerp(end, 1.0/3.0)
		control2 = start.Lerp(end, 2.0/3.0)
	}
	return Edge{
		Type:   EdgeCubic,
		Points: [4]Point{start, control1, control2, end},
		Color:  ColorWhite,
	}
}

// NumPoints returns the number of points used by the edge type.
func (e *Edge) NumPoints() int {
	switch e.Type {
	case EdgeQuadratic:
		return 3
	case EdgeCubic:
		return 4
	default:
		return 2
	}
}

// StartPoint returns the first point of the edge.
func (e *Edge) StartPoint() Point {
	return e.Points[0]
}

// EndPoint returns the last point of the edge.
func (e *Edge) EndPoint() Point {
	return e.Points[e.NumPoints()-1]
}

// Point evaluates the edge at parameter t in [0, 1].
func (e *Edge) Point(t float64) Point {
	p := &e.Points
	switch e.Type {
	case EdgeQuadratic:
		return p[0].Lerp(p[1], t).Lerp(p[1].Lerp(p[2], t), t)
	case EdgeCubic:
		p12 := p[1].Lerp(p[2], t)
		return p[0].Lerp(p[1], t).Lerp(p12, t).Lerp(p12.Lerp(p[2].Lerp(p[3], t), t), t)
	default:
		return p[0].Lerp(p[1], t)
	}
}

// Direction returns the (unnormalized) tangent of the edge at t.
// For curves whose derivative vanishes at an end, the chord of the
// adjacent control points is returned instead.
func (e *Edge) Direction(t float64) Point {
	p := &e.Points
	switch e.Type {
	case EdgeQuadratic:
		tangent := p[1].Sub(p[0]).Lerp(p[2].Sub(p[1]), t)
		if tangent.IsZero() {
			return p[2].Sub(p[0])
		}
		return tangent
	case EdgeCubic:
		tangent := p[1].Sub(p[0]).Lerp(p[2].Sub(p[1]), t).Lerp(p[2].Sub(p[1]).Lerp(p[3].Sub(p[2]), t), t)
		if tangent.IsZero() {
			if t == 0 {
				return p[2].Sub(p[0])
			}
			if t == 1 {
				return p[3].Sub(p[1])
			}
		}
		return tangent
	default:
		return p[1].Sub(p[0])
	}
}

// Bound returns the axis-aligned bounding box of the edge, including
// interior extrema of curves.
func (e *Edge) Bound() Rect {
	p := &e.Points
	r := EmptyRect().Include(e.StartPoint()).Include(e.EndPoint())

	switch e.Type {
	case EdgeQuadratic:
		bot := p[1].Sub(p[0]).Sub(p[2].Sub(p[1]))
		if bot.X != 0 {
			if t := (p[1].X - p[0].X) / bot.X; t > 0 && t < 1 {
				r = r.Include(e.Point(t))
			}
		}
		if bot.Y != 0 {
			if t := (p[1].Y - p[0].Y) / bot.Y; t > 0 && t < 1 {
				r = r.Include(e.Point(t))
			}
		}
	case EdgeCubic:
		a0 := p[1].Sub(p[0])
		a1 := p[2].Sub(p[1]).Sub(a0).Mul(2)
		a2 := p[3].Sub(p[2].Mul(3)).Add(p[1].Mul(3)).Sub(p[0])
		for _, t := range solveQuadratic(a2.X, a1.X, a0.X) {
			if t > 0 && t < 1 {
				r = r.Include(e.Point(t))
			}
		}
		for _, t := range solveQuadratic(a2.Y, a1.Y, a0.Y) {
			if t > 0 && t < 1 {
				r = r.Include(e.Point(t))
			}
		}
	}
	return r
}

// Reverse flips the direction of the edge in place.
func (e *Edge) Reverse() {
	p := &e.Points
	switch e.Type {
	case EdgeQuadratic:
		p[0], p[2] = p[2], p[0]
	case EdgeCubic:
		p[0], p[3] = p[3], p[0]
		p[1], p[2] = p[2], p[1]
	default:
		p[0], p[1] = p[1], p[0]
	}
}

// SplitInThirds returns three edges of the same type covering [0, 1/3],
// [1/3, 2/3] and [2/3, 1] of e. The parts keep the color of e.
func (e *Edge) SplitInThirds() [3]Edge {
	const third, twoThirds = 1.0 / 3.0, 2.0 / 3.0
	p := &e.Points
	a, b := e.Point(third), e.Point(twoThirds)

	var parts [3]Edge
	switch e.Type {
	case EdgeQuadratic:
		parts[0] = Edge{Type: EdgeQuadratic, Points: [4]Point{p[0], p[0].Lerp(p[1], third), a}}
		parts[1] = Edge{Type: EdgeQuadratic, Points: [4]Point{
			a,
			p[0].Lerp(p[1], 5.0/9.0).Lerp(p[1].Lerp(p[2], 4.0/9.0), 0.5),
			b,
		}}
		parts[2] = Edge{Type: EdgeQuadratic, Points: [4]Point{b, p[1].Lerp(p[2], twoThirds), p[2]}}
	case EdgeCubic:
		c1 := p[0].Lerp(p[1], third)
		if p[0] == p[1] {
			c1 = p[0]
		}
		c6 := p[2].Lerp(p[3], twoThirds)
		if p[2] == p[3] {
			c6 = p[3]
		}
		parts[0] = Edge{Type: EdgeCubic, Points: [4]Point{
			p[0],
			c1,
			p[0].Lerp(p[1], third).Lerp(p[1].Lerp(p[2], third), third),
			a,
		}}
		parts[1] = Edge{Type: EdgeCubic, Points: [4]Point{
			a,
			p[0].Lerp(p[1], third).Lerp(p[1].Lerp(p[2], third), third).
				Lerp(p[1].Lerp(p[2], third).Lerp(p[2].Lerp(p[3], third), third), twoThirds),
			p[0].Lerp(p[1], twoThirds).Lerp(p[1].Lerp(p[2], twoThirds), twoThirds).
				Lerp(p[1].Lerp(p[2], twoThirds).Lerp(p[2].Lerp(p[3], twoThirds), twoThirds), third),
			b,
		}}
		parts[2] = Edge{Type: EdgeCubic, Points: [4]Point{
			b,
			p[1].Lerp(p[2], twoThirds).Lerp(p[2].Lerp(p[3], twoThirds), twoThirds),
			c6,
			p[3],
		}}
	default:
		parts[0] = Edge{Type: EdgeLinear, Points: [4]Point{p[0], a}}
		parts[1] = Edge{Type: EdgeLinear, Points: [4]Point{a, b}}
		parts[2] = Edge{Type: EdgeLinear, Points: [4]Point{b, p[1]}}
	}
	for i := range parts {
		parts[i].Color = e.Color
	}
	return parts
}

// Length estimates the arc length of the edge with a polyline through
// samples evenly spaced in t.
func (e *Edge) Length(samples int) float64 {
	if samples < 1 {
		samples = 1
	}
	length := 0.0
	prev := e.Point(0)
	for i := 1; i <= samples; i++ {
		cur := e.Point(float64(i) / float64(samples))
		length += cur.Sub(prev).Length()
		prev = cur
	}
	return length
}

// isCorner reports whether the turn from direction a to direction b is a
// corner: a reversal, a right angle or sharper, or a turn whose sine exceeds
// crossThreshold.
func isCorner(a, b Point, crossThreshold float64) bool {
	return a.Dot(b) <= 0 || math.Abs(a.Cross(b)) > crossThreshold
}
