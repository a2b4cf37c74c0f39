package msdf

import (
	"math"
)

// overlappingCombiner merges the per-contour distances of a shape whose
// contours may overlap, using contour windings to tell filled regions
// from holes. A combiner carries scratch state and serves one goroutine.
type overlappingCombiner struct {
	contours  []contourEntry
	selectors []multiSelector
	distances []multiDistance
}

func newOverlappingCombiner(contours []contourEntry) *overlappingCombiner {
	return &overlappingCombiner{
		contours:  contours,
		selectors: make([]multiSelector, len(contours)),
		distances: make([]multiDistance, len(contours)),
	}
}

// distance returns the combined multi-channel distance at p.
func (c *overlappingCombiner) distance(p Point) multiDistance {
	var shapeSel, innerSel, outerSel multiSelector
	shapeSel.reset(p)
	innerSel.reset(p)
	outerSel.reset(p)

	for i := range c.contours {
		sel := &c.selectors[i]
		sel.reset(p)
		edges := c.contours[i].edges
		for j := range edges {
			sel.addEdge(&edges[j])
		}
		d := sel.distance()
		c.distances[i] = d

		shapeSel.merge(sel)
		winding := c.contours[i].winding
		if winding > 0 && d.median() >= 0 {
			innerSel.merge(sel)
		}
		if winding < 0 && d.median() <= 0 {
			outerSel.merge(sel)
		}
	}

	shapeDistance := shapeSel.distance()
	innerDistance := innerSel.distance()
	outerDistance := outerSel.distance()
	innerScalar := innerDistance.median()
	outerScalar := outerDistance.median()

	var distance multiDistance
	winding := 0
	switch {
	case innerScalar >= 0 && math.Abs(innerScalar) <= math.Abs(outerScalar):
		distance = innerDistance
		winding = 1
		for i := range c.contours {
			if c.contours[i].winding <= 0 {
				continue
			}
			cd := c.distances[i].median()
			if math.Abs(cd) < math.Abs(outerScalar) && cd > distance.median() {
				distance = c.distances[i]
			}
		}
	case outerScalar <= 0 && math.Abs(outerScalar) < math.Abs(innerScalar):
		distance = outerDistance
		winding = -1
		for i := range c.contours {
			if c.contours[i].winding >= 0 {
				continue
			}
			cd := c.distances[i].median()
			if math.Abs(cd) < math.Abs(innerScalar) && cd < distance.median() {
				distance = c.distances[i]
			}
		}
	default:
		return shapeDistance
	}

	for i := range c.contours {
		if c.contours[i].winding == winding {
			continue
		}
		cd := c.distances[i].median()
		dm := distance.median()
		if cd*dm >= 0 && math.Abs(cd) < math.Abs(dm) {
			distance = c.distances[i]
		}
	}

	if distance.median() == shapeDistance.median() {
		distance = shapeDistance
	}
	return distance
}
