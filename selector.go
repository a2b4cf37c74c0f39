package msdf

import (
	"math"
)

// edgeEntry is the read-only per-edge data shared by all rows of one
// generation: endpoints, unit end tangents and the corner bisectors
// towards the neighbouring edges.
type edgeEntry struct {
	edge       *Edge
	start, end Point
	aDir, bDir Point
	aBisector  Point
	bBisector  Point
}

// contourEntry groups the prepared edges of a contour with its winding.
type contourEntry struct {
	edges   []edgeEntry
	winding int
}

// prepareContours precomputes edge data for every non-empty contour.
func prepareContours(shape *Shape) []contourEntry {
	entries := make([]contourEntry, 0, len(shape.Contours))
	for _, c := range shape.Contours {
		n := len(c.Edges)
		if n == 0 {
			continue
		}
		ce := contourEntry{
			edges:   make([]edgeEntry, n),
			winding: c.Winding(),
		}
		for i := range c.Edges {
			e := &c.Edges[i]
			prev := &c.Edges[(i+n-1)%n]
			next := &c.Edges[(i+1)%n]

			aDir := e.Direction(0).Normalize(true)
			bDir := e.Direction(1).Normalize(true)
			prevDir := prev.Direction(1).Normalize(true)
			nextDir := next.Direction(0).Normalize(true)

			ce.edges[i] = edgeEntry{
				edge:      e,
				start:     e.Point(0),
				end:       e.Point(1),
				aDir:      aDir,
				bDir:      bDir,
				aBisector: prevDir.Add(aDir).Normalize(true),
				bBisector: bDir.Add(nextDir).Normalize(true),
			}
		}
		entries = append(entries, ce)
	}
	return entries
}

// channelSelector tracks, for one channel, the closest true distance and
// the closest pseudo-distances on both sides of the outline.
type channelSelector struct {
	minTrue   SignedDistance
	minNeg    float64
	minPos    float64
	nearEdge  *Edge
	nearParam float64
}

func (s *channelSelector) reset() {
	s.minTrue = InfiniteDistance()
	s.minNeg = -math.MaxFloat64
	s.minPos = math.MaxFloat64
	s.nearEdge = nil
	s.nearParam = 0
}

func (s *channelSelector) addTrue(e *Edge, d SignedDistance, param float64) {
	if d.Less(s.minTrue) {
		s.minTrue = d
		s.nearEdge = e
		s.nearParam = param
	}
}

func (s *channelSelector) addPseudo(d float64) {
	if d <= 0 && d > s.minNeg {
		s.minNeg = d
	}
	if d >= 0 && d < s.minPos {
		s.minPos = d
	}
}

func (s *channelSelector) merge(o *channelSelector) {
	if o.minTrue.Less(s.minTrue) {
		s.minTrue = o.minTrue
		s.nearEdge = o.nearEdge
		s.nearParam = o.nearParam
	}
	if o.minNeg > s.minNeg {
		s.minNeg = o.minNeg
	}
	if o.minPos < s.minPos {
		s.minPos = o.minPos
	}
}

func (s *channelSelector) distance(p Point) float64 {
	minDistance := s.minPos
	if s.minTrue.Distance < 0 {
		minDistance = s.minNeg
	}
	if s.nearEdge != nil {
		d := s.minTrue
		s.nearEdge.DistanceToPerpendicularDistance(&d, p, s.nearParam)
		if math.Abs(d.Distance) < math.Abs(minDistance) {
			minDistance = d.Distance
		}
	}
	return minDistance
}

// pseudoDistance replaces distance with the distance to the ray leaving an
// endpoint ep-away along dir, when the point lies ahead on that ray and the
// ray is closer. It reports whether distance was replaced.
func pseudoDistance(distance *float64, ep, dir Point) bool {
	if ep.Dot(dir) > 0 {
		pd := dir.Cross(ep)
		if math.Abs(pd) < math.Abs(*distance) {
			*distance = pd
			return true
		}
	}
	return false
}

// multiDistance holds per-channel signed distances in R, G, B order.
type multiDistance [3]float64

func (d multiDistance) median() float64 {
	return median(d[0], d[1], d[2])
}

// multiSelector runs one channelSelector per color channel for a sample
// point.
type multiSelector struct {
	p  Point
	ch [3]channelSelector
}

func (m *multiSelector) reset(p Point) {
	m.p = p
	for i := range m.ch {
		m.ch[i].reset()
	}
}

// addEdge feeds one edge into the channels selected by its color.
func (m *multiSelector) addEdge(en *edgeEntry) {
	color := en.edge.Color
	if color&ColorWhite == 0 {
		return
	}
	d, param := en.edge.SignedDistance(m.p)
	for c := range m.ch {
		if color&(1<<c) != 0 {
			m.ch[c].addTrue(en.edge, d, param)
		}
	}

	ap := m.p.Sub(en.start)
	bp := m.p.Sub(en.end)
	if add := ap.Dot(en.aBisector); add > 0 {
		pd := d.Distance
		if pseudoDistance(&pd, ap, en.aDir.Neg()) {
			pd = -pd
		}
		m.addPseudo(color, pd)
	}
	if bdd := -bp.Dot(en.bBisector); bdd > 0 {
		pd := d.Distance
		pseudoDistance(&pd, bp, en.bDir)
		m.addPseudo(color, pd)
	}
}

func (m *multiSelector) addPseudo(color EdgeColor, d float64) {
	for c := range m.ch {
		if color&(1<<c) != 0 {
			m.ch[c].addPseudo(d)
		}
	}
}

func (m *multiSelector) merge(o *multiSelector) {
	for c := range m.ch {
		m.ch[c].merge(&o.ch[c])
	}
}

func (m *multiSelector) distance() multiDistance {
	return multiDistance{
		m.ch[0].distance(m.p),
		m.ch[1].distance(m.p),
		m.ch[2].distance(m.p),
	}
}
