package msdf

import (
	"math"
)

// Point is a 2D point or vector in shape space, in double precision.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p * scalar.
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LengthSquared returns the squared length (avoids sqrt).
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Normalize returns a unit vector in the same direction.
// A zero vector yields (0, 0) when allowZero is set and (0, 1) otherwise,
// so callers that need a usable direction never receive a zero vector.
func (p Point) Normalize(allowZero bool) Point {
	length := p.Length()
	if length == 0 {
		if allowZero {
			return Point{}
		}
		return Point{0, 1}
	}
	return Point{p.X / length, p.Y / length}
}

// Orthonormal returns the unit normal of p. With polarity true the normal
// is rotated 90 degrees counter-clockwise, otherwise clockwise.
func (p Point) Orthonormal(polarity bool) Point {
	length := p.Length()
	if length == 0 {
		if polarity {
			return Point{0, 1}
		}
		return Point{0, -1}
	}
	if polarity {
		return Point{-p.Y / length, p.X / length}
	}
	return Point{p.Y / length, -p.X / length}
}

// Lerp returns linear interpolation between p and q: (1-t)*p + t*q.
// Both endpoints are reproduced exactly.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		mix(p.X, q.X, t),
		mix(p.Y, q.Y, t),
	}
}

// IsZero reports whether both components are exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// EmptyRect returns an inverted rectangle that any Include call replaces.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Include returns the smallest rectangle containing r and p.
func (r Rect) Include(p Point) Rect {
	return Rect{
		MinX: min(r.MinX, p.X),
		MinY: min(r.MinY, p.Y),
		MaxX: max(r.MaxX, p.X),
		MaxY: max(r.MaxY, p.Y),
	}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		MinX: min(r.MinX, s.MinX),
		MinY: min(r.MinY, s.MinY),
		MaxX: max(r.MaxX, s.MaxX),
		MaxY: max(r.MaxY, s.MaxY),
	}
}

// Expand returns a rectangle expanded by the given margin on all sides.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		MinX: r.MinX - margin,
		MinY: r.MinY - margin,
		MaxX: r.MaxX + margin,
		MaxY: r.MaxY + margin,
	}
}

// SignedDistance is a signed distance to an edge plus a tie-breaker.
type SignedDistance struct {
	// Distance is the signed Euclidean distance.
	// Positive = inside (left of a positively wound contour), negative = outside.
	Distance float64

	// Dot is |cos| of the angle between the edge direction at the closest
	// endpoint and the vector to the query point. It is 0 when the closest
	// point lies strictly inside the edge. Smaller wins on equal distance.
	Dot float64
}

// InfiniteDistance is the initial value of every distance search.
func InfiniteDistance() SignedDistance {
	return SignedDistance{Distance: -math.MaxFloat64, Dot: 0}
}

// Less reports whether d is closer to its edge than other. Equal
// magnitudes are ordered by Dot, then towards the larger signed value.
func (d SignedDistance) Less(other SignedDistance) bool {
	absD := math.Abs(d.Distance)
	absO := math.Abs(other.Distance)
	if absD != absO {
		return absD < absO
	}
	if d.Dot != other.Dot {
		return d.Dot < other.Dot
	}
	return d.Distance > other.Distance
}

// nonZeroSign returns 1 for positive values and -1 otherwise, never 0.
func nonZeroSign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

// sign returns -1, 0 or 1.
func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// median returns the middle value of a, b and c.
func median[T float32 | float64](a, b, c T) T {
	return max(min(a, b), min(max(a, b), c))
}

// mix interpolates linearly between a and b.
func mix[T float32 | float64](a, b T, t float64) T {
	return T((1-t)*float64(a) + t*float64(b))
}
