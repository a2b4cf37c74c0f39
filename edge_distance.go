package msdf

import (
	"math"
)

// Newton-Raphson search parameters for the closest point on a cubic.
const (
	cubicSearchStarts = 4
	cubicSearchSteps  = 4
)

// SignedDistance returns the signed distance from origin to the edge and
// the parameter of the closest point. The parameter lies outside [0, 1]
// when the closest point is an endpoint and origin is beyond it, measured
// along the end tangent; DistanceToPerpendicularDistance relies on it.
func (e *Edge) SignedDistance(origin Point) (SignedDistance, float64) {
	switch e.Type {
	case EdgeQuadratic:
		return e.quadraticDistance(origin)
	case EdgeCubic:
		return e.cubicDistance(origin)
	default:
		return e.linearDistance(origin)
	}
}

func (e *Edge) linearDistance(origin Point) (SignedDistance, float64) {
	p0, p1 := e.Points[0], e.Points[1]
	aq := origin.Sub(p0)
	ab := p1.Sub(p0)
	param := aq.Dot(ab) / ab.LengthSquared()

	var eq Point
	if param > 0.5 {
		eq = p1.Sub(origin)
	} else {
		eq = p0.Sub(origin)
	}
	endpointDistance := eq.Length()

	if param > 0 && param < 1 {
		orthoDistance := ab.Cross(aq) / ab.Length()
		if math.Abs(orthoDistance) < endpointDistance {
			return SignedDistance{Distance: orthoDistance}, param
		}
	}
	return SignedDistance{
		Distance: nonZeroSign(ab.Cross(aq)) * endpointDistance,
		Dot:      math.Abs(ab.Normalize(false).Dot(eq.Normalize(false))),
	}, param
}

func (e *Edge) quadraticDistance(origin Point) (SignedDistance, float64) {
	p := &e.Points
	qa := p[0].Sub(origin)
	ab := p[1].Sub(p[0])
	br := p[2].Sub(p[1]).Sub(ab)

	a := br.Dot(br)
	b := 3 * ab.Dot(br)
	c := 2*ab.Dot(ab) + qa.Dot(br)
	d := qa.Dot(ab)

	epDir := e.Direction(0)
	minDistance := nonZeroSign(qa.Cross(epDir)) * qa.Length()
	param := -qa.Dot(epDir) / epDir.LengthSquared()

	qc := p[2].Sub(origin)
	if distance := qc.Length(); distance < math.Abs(minDistance) {
		epDir = e.Direction(1)
		minDistance = nonZeroSign(qc.Cross(epDir)) * distance
		param = origin.Sub(p[1]).Dot(epDir) / epDir.LengthSquared()
	}

	for _, t := range solveCubic(a, b, c, d) {
		if t <= 0 || t >= 1 {
			continue
		}
		qe := qa.Add(ab.Mul(2 * t)).Add(br.Mul(t * t))
		distance := qe.Length()
		if distance <= math.Abs(minDistance) {
			minDistance = nonZeroSign(qe.Cross(ab.Add(br.Mul(t)))) * distance
			param = t
		}
	}

	return curveResult(e, minDistance, param, qa, qc)
}

func (e *Edge) cubicDistance(origin Point) (SignedDistance, float64) {
	p := &e.Points
	qa := p[0].Sub(origin)
	ab := p[1].Sub(p[0])
	br := p[2].Sub(p[1]).Sub(ab)
	as := p[3].Sub(p[2]).Sub(p[2].Sub(p[1])).Sub(br)

	epDir := e.Direction(0)
	minDistance := nonZeroSign(qa.Cross(epDir)) * qa.Length()
	param := -qa.Dot(epDir) / epDir.LengthSquared()

	qd := p[3].Sub(origin)
	if distance := qd.Length(); distance < math.Abs(minDistance) {
		epDir = e.Direction(1)
		minDistance = nonZeroSign(qd.Cross(epDir)) * distance
		param = 1 + origin.Sub(p[3]).Dot(epDir)/epDir.LengthSquared()
	}

	at := func(t float64) Point {
		return qa.Add(ab.Mul(3 * t)).Add(br.Mul(3 * t * t)).Add(as.Mul(t * t * t))
	}

	for i := 0; i <= cubicSearchStarts; i++ {
		t := float64(i) / cubicSearchStarts
		qe := at(t)
		for range cubicSearchSteps {
			d1 := ab.Mul(3).Add(br.Mul(6 * t)).Add(as.Mul(3 * t * t))
			d2 := br.Mul(6).Add(as.Mul(6 * t))
			t -= qe.Dot(d1) / (d1.Dot(d1) + qe.Dot(d2))
			if t <= 0 || t >= 1 || !isFinite(t) {
				break
			}
			qe = at(t)
			distance := qe.Length()
			if distance < math.Abs(minDistance) {
				minDistance = nonZeroSign(qe.Cross(e.Direction(t))) * distance
				param = t
			}
		}
	}

	return curveResult(e, minDistance, param, qa, qd)
}

// curveResult attaches the endpoint tie-breaker to a curve distance.
// qa and qz are the vectors from origin to the first and last point.
func curveResult(e *Edge, minDistance, param float64, qa, qz Point) (SignedDistance, float64) {
	if param >= 0 && param <= 1 {
		return SignedDistance{Distance: minDistance}, param
	}
	if param < 0.5 {
		return SignedDistance{
			Distance: minDistance,
			Dot:      math.Abs(e.Direction(0).Normalize(false).Dot(qa.Normalize(false))),
		}, param
	}
	return SignedDistance{
		Distance: minDistance,
		Dot:      math.Abs(e.Direction(1).Normalize(false).Dot(qz.Normalize(false))),
	}, param
}

// DistanceToPerpendicularDistance converts a distance whose closest point
// lies beyond an endpoint (param outside [0, 1]) into the distance to the
// tangent ray extended from that endpoint, if that is not farther.
func (e *Edge) DistanceToPerpendicularDistance(distance *SignedDistance, origin Point, param float64) {
	if param < 0 {
		dir := e.Direction(0).Normalize(false)
		aq := origin.Sub(e.Point(0))
		if aq.Dot(dir) < 0 {
			perpendicular := dir.Cross(aq)
			if math.Abs(perpendicular) <= math.Abs(distance.Distance) {
				distance.Distance = perpendicular
				distance.Dot = 0
			}
		}
	} else if param > 1 {
		dir := e.Direction(1).Normalize(false)
		bq := origin.Sub(e.Point(1))
		if bq.Dot(dir) > 0 {
			perpendicular := dir.Cross(bq)
			if math.Abs(perpendicular) <= math.Abs(distance.Distance) {
				distance.Distance = perpendicular
				distance.Dot = 0
			}
		}
	}
}

// Intersection is a crossing of an edge with a horizontal line.
type Intersection struct {
	// X is the horizontal position of the crossing.
	X float64

	// Direction is +1 when the edge crosses upwards (increasing y)
	// and -1 when it crosses downwards.
	Direction int
}

// ScanlineIntersections appends the crossings of the edge with the
// horizontal line at y to dst and returns the extended slice.
//
// A vertex exactly on the line is attributed to the edge for which it is
// the lower end, so a closed contour produces consistent winding counts.
func (e *Edge) ScanlineIntersections(dst []Intersection, y float64) []Intersection {
	if e.Type == EdgeLinear {
		p0, p1 := e.Points[0], e.Points[1]
		if (y >= p0.Y && y < p1.Y) || (y >= p1.Y && y < p0.Y) {
			t := (y - p0.Y) / (p1.Y - p0.Y)
			dst = append(dst, Intersection{
				X:         mix(p0.X, p1.X, t),
				Direction: sign(p1.Y - p0.Y),
			})
		}
		return dst
	}

	const probe = 1e-6
	start, end := e.StartPoint(), e.EndPoint()

	if start.Y == y {
		if dy := sign(e.Point(probe).Y - y); dy > 0 {
			dst = append(dst, Intersection{X: start.X, Direction: dy})
		}
	}

	var roots []float64
	p := &e.Points
	if e.Type == EdgeQuadratic {
		ab := p[1].Sub(p[0])
		br := p[2].Sub(p[1]).Sub(ab)
		roots = solveQuadratic(br.Y, 2*ab.Y, p[0].Y-y)
	} else {
		ab := p[1].Sub(p[0])
		br := p[2].Sub(p[1]).Sub(ab)
		as := p[3].Sub(p[2]).Sub(p[2].Sub(p[1])).Sub(br)
		roots = solveCubic(as.Y, 3*br.Y, 3*ab.Y, p[0].Y-y)
	}

	var seen [3]float64
	n := 0
	for _, t := range roots {
		if t <= 0 || t >= 1 || !isFinite(t) {
			continue
		}
		if (start.Y == y && t < probe) || (end.Y == y && t > 1-probe) {
			continue
		}
		dup := false
		for _, s := range seen[:n] {
			if math.Abs(s-t) < probe {
				dup = true
				break
			}
		}
		if dup || n == len(seen) {
			continue
		}
		seen[n] = t
		n++

		dy := sign(e.Direction(t).Y)
		if dy == 0 {
			before := e.Point(max(t-probe, 0)).Y - y
			after := e.Point(min(t+probe, 1)).Y - y
			if sign(before) == sign(after) {
				continue
			}
			dy = sign(after - before)
			if dy == 0 {
				continue
			}
		}
		dst = append(dst, Intersection{X: e.Point(t).X, Direction: dy})
	}

	if end.Y == y {
		if dy := sign(y - e.Point(1-probe).Y); dy < 0 {
			dst = append(dst, Intersection{X: end.X, Direction: dy})
		}
	}
	return dst
}
