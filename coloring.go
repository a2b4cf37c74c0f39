package msdf

import (
	"math"
)

// edgeLengthSamples is the polyline resolution of ink trap length estimates.
const edgeLengthSamples = 4

// colorState is the deterministic channel color sequence shared by all
// contours of one coloring pass.
type colorState struct {
	seed  uint64
	color EdgeColor
}

// extract2 consumes one binary digit of the seed.
func (s *colorState) extract2() int {
	v := int(s.seed & 1)
	s.seed >>= 1
	return v
}

// extract3 consumes one ternary digit of the seed.
func (s *colorState) extract3() int {
	v := int(s.seed % 3)
	s.seed /= 3
	return v
}

func newColorState(seed uint64) colorState {
	s := colorState{seed: seed}
	s.color = [3]EdgeColor{ColorCyan, ColorMagenta, ColorYellow}[s.extract3()]
	return s
}

// next rotates the two-channel color by one or two positions.
func (s *colorState) next() EdgeColor {
	shifted := uint(s.color) << (1 + s.extract2())
	s.color = EdgeColor(shifted|shifted>>3) & ColorWhite
	return s.color
}

// nextAvoiding rotates the color so that it shares at most one channel
// with banned. When color and banned have exactly one channel in common
// the result is the complement of that channel.
func (s *colorState) nextAvoiding(banned EdgeColor) EdgeColor {
	combined := s.color & banned
	if combined == ColorRed || combined == ColorGreen || combined == ColorBlue {
		s.color = combined ^ ColorWhite
		return s.color
	}
	return s.next()
}

// symmetricalTrichotomy maps position in [0, n) to -1, 0 or 1 so that the
// three bands are symmetrical around the middle.
func symmetricalTrichotomy(position, n int) int {
	return int(3+2.875*float64(position)/float64(n-1)-1.4375+0.5) - 3
}

// contourCorners returns the indices of edges whose start is a corner.
func contourCorners(c *Contour, crossThreshold float64) []int {
	var corners []int
	prevDirection := c.Edges[len(c.Edges)-1].Direction(1)
	for i := range c.Edges {
		if isCorner(prevDirection.Normalize(false), c.Edges[i].Direction(0).Normalize(false), crossThreshold) {
			corners = append(corners, i)
		}
		prevDirection = c.Edges[i].Direction(1)
	}
	return corners
}

// ColorEdges assigns channel colors to all edges of shape with the given
// coloring mode.
func ColorEdges(shape *Shape, mode ColoringMode, angleThreshold float64, seed uint64) {
	if mode == ColoringInkTrap {
		ColorInkTrap(shape, angleThreshold, seed)
		return
	}
	ColorSimple(shape, angleThreshold, seed)
}

// ColorSimple assigns channel colors so that the two edges meeting at a
// corner never share all their channels. A vertex is a corner when the
// tangents turn by more than angleThreshold radians. The color sequence is
// fully determined by seed.
func ColorSimple(shape *Shape, angleThreshold float64, seed uint64) {
	crossThreshold := math.Sin(angleThreshold)
	state := newColorState(seed)

	for _, c := range shape.Contours {
		if len(c.Edges) == 0 {
			continue
		}
		corners := contourCorners(c, crossThreshold)

		switch len(corners) {
		case 0:
			colorSmooth(c, &state)
		case 1:
			colorTeardrop(c, &state, corners[0])
		default:
			cornerCount := len(corners)
			spline := 0
			start := corners[0]
			m := len(c.Edges)
			state.next()
			initial := state.color
			for i := range m {
				index := (start + i) % m
				if spline+1 < cornerCount && corners[spline+1] == index {
					spline++
					var banned EdgeColor
					if spline == cornerCount-1 {
						banned = initial
					}
					state.nextAvoiding(banned)
				}
				c.Edges[index].Color = state.color
			}
		}
	}
}

// colorSmooth gives every edge of a contour without corners one color.
func colorSmooth(c *Contour, state *colorState) {
	color := state.next()
	for i := range c.Edges {
		c.Edges[i].Color = color
	}
}

// colorTeardrop colors a contour with a single corner with three colors,
// white in the middle. Contours with fewer than three edges are split.
func colorTeardrop(c *Contour, state *colorState, corner int) {
	var colors [3]EdgeColor
	colors[0] = state.next()
	colors[1] = ColorWhite
	colors[2] = state.next()

	m := len(c.Edges)
	if m >= 3 {
		for i := range m {
			c.Edges[(corner+i)%m].Color = colors[1+symmetricalTrichotomy(i, m)]
		}
		return
	}

	var parts [6]Edge
	first := c.Edges[0].SplitInThirds()
	copy(parts[3*corner:], first[:])
	if m >= 2 {
		second := c.Edges[1].SplitInThirds()
		copy(parts[3-3*corner:], second[:])
		parts[0].Color, parts[1].Color = colors[0], colors[0]
		parts[2].Color, parts[3].Color = colors[1], colors[1]
		parts[4].Color, parts[5].Color = colors[2], colors[2]
		c.Edges = append(c.Edges[:0], parts[:]...)
		return
	}
	parts[0].Color = colors[0]
	parts[1].Color = colors[1]
	parts[2].Color = colors[2]
	c.Edges = append(c.Edges[:0], parts[:3]...)
}

type inkTrapCorner struct {
	index      int
	prevLength float64
	minor      bool
	color      EdgeColor
}

// ColorInkTrap is ColorSimple with special handling of short splines
// between two corners: when the spline before a corner is shorter than
// both neighbouring splines, the corner is treated as minor and takes a
// color derived from its neighbours instead of advancing the sequence.
func ColorInkTrap(shape *Shape, angleThreshold float64, seed uint64) {
	crossThreshold := math.Sin(angleThreshold)
	state := newColorState(seed)
	var corners []inkTrapCorner

	for _, c := range shape.Contours {
		if len(c.Edges) == 0 {
			continue
		}

		corners = corners[:0]
		splineLength := 0.0
		prevDirection := c.Edges[len(c.Edges)-1].Direction(1)
		for i := range c.Edges {
			e := &c.Edges[i]
			if isCorner(prevDirection.Normalize(false), e.Direction(0).Normalize(false), crossThreshold) {
				corners = append(corners, inkTrapCorner{index: i, prevLength: splineLength})
				splineLength = 0
			}
			splineLength += e.Length(edgeLengthSamples)
			prevDirection = e.Direction(1)
		}

		switch len(corners) {
		case 0:
			colorSmooth(c, &state)
			continue
		case 1:
			colorTeardrop(c, &state, corners[0].index)
			continue
		}

		cornerCount := len(corners)
		majorCount := cornerCount
		if cornerCount > 3 {
			corners[0].prevLength += splineLength
			for i := range cornerCount {
				next := corners[(i+1)%cornerCount].prevLength
				if corners[i].prevLength > next && next < corners[(i+2)%cornerCount].prevLength {
					corners[i].minor = true
					majorCount--
				}
			}
		}

		initial := ColorBlack
		for i := range corners {
			if corners[i].minor {
				continue
			}
			majorCount--
			var banned EdgeColor
			if majorCount == 0 {
				banned = initial
			}
			corners[i].color = state.nextAvoiding(banned)
			if initial == ColorBlack {
				initial = state.color
			}
		}

		color := state.color
		for i := range corners {
			if corners[i].minor {
				next := corners[(i+1)%cornerCount].color
				corners[i].color = (color & next) ^ ColorWhite
			} else {
				color = corners[i].color
			}
		}

		spline := 0
		start := corners[0].index
		color = corners[0].color
		m := len(c.Edges)
		for i := range m {
			index := (start + i) % m
			if spline+1 < cornerCount && corners[spline+1].index == index {
				spline++
				color = corners[spline].color
			}
			c.Edges[index].Color = color
		}
		state.color = color
	}
}
