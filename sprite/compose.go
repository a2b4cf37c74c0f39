package sprite

import (
	"fmt"

	"cogentcore.org/core/paint/ppath"
	"cogentcore.org/core/paint/ppath/intersect"

	"github.com/gogpu/msdf"
)

// DefaultSteps is the number of line segments a curved edge is flattened
// into when no step count is given.
const DefaultSteps = 16

// Flatten converts shape to a ppath.Path of closed polylines. Lines are
// copied as is and curves are sampled at steps equal parameter intervals.
func Flatten(shape *msdf.Shape, steps int) ppath.Path {
	if steps <= 0 {
		steps = DefaultSteps
	}

	var p ppath.Path
	for _, c := range shape.Contours {
		if len(c.Edges) == 0 {
			continue
		}
		start := c.Edges[0].StartPoint()
		p = appendCmd(p, ppath.MoveTo, start)
		for i := range c.Edges {
			e := &c.Edges[i]
			if e.Type == msdf.EdgeLinear {
				p = appendCmd(p, ppath.LineTo, e.EndPoint())
				continue
			}
			for k := 1; k <= steps; k++ {
				p = appendCmd(p, ppath.LineTo, e.Point(float64(k)/float64(steps)))
			}
		}
		p = appendCmd(p, ppath.Close, start)
	}
	return p
}

// appendCmd appends a MoveTo, LineTo or Close command. Each is stored as
// the command, its end point and the command again.
func appendCmd(p ppath.Path, cmd float32, pt msdf.Point) ppath.Path {
	return append(p, cmd, float32(pt.X), float32(pt.Y), cmd)
}

// FromPath converts a ppath.Path back into a shape. Arcs, which Flatten
// never produces, are replaced by their chord.
func FromPath(p ppath.Path) *msdf.Shape {
	shape := msdf.NewShape()

	var (
		c       *msdf.Contour
		start   msdf.Point
		current msdf.Point
	)
	flush := func() {
		if c != nil && len(c.Edges) > 0 {
			shape.AddContour(c)
		}
		c = nil
	}
	lineTo := func(pt msdf.Point) {
		if pt != current {
			c.AddEdge(msdf.NewLinearEdge(current, pt))
			current = pt
		}
	}
	at := func(i int) msdf.Point {
		return msdf.Point{X: float64(p[i]), Y: float64(p[i+1])}
	}

	for i := 0; i < len(p); {
		cmd := p[i]
		n := ppath.CmdLen(cmd)
		if n == 0 || i+n > len(p) {
			break
		}
		end := at(i + n - 3)
		if cmd != ppath.MoveTo && c == nil {
			// Commands without a preceding MoveTo start at the origin.
			c = msdf.NewContour()
			start, current = msdf.Point{}, msdf.Point{}
		}

		switch cmd {
		case ppath.MoveTo:
			flush()
			c = msdf.NewContour()
			start, current = end, end
		case ppath.LineTo, ppath.ArcTo:
			lineTo(end)
		case ppath.QuadTo:
			c.AddEdge(msdf.NewQuadraticEdge(current, at(i+1), end))
			current = end
		case ppath.CubeTo:
			c.AddEdge(msdf.NewCubicEdge(current, at(i+1), at(i+3), end))
			current = end
		case ppath.Close:
			lineTo(start)
			flush()
		}
		i += n
	}
	flush()
	return shape
}

// Compose folds paths in order into one shape. The first add path starts
// the result, later add paths are unioned with it and subtract paths are
// cut out of it. Subtract paths before the first add path have nothing to
// cut and are skipped. Curves are flattened into steps segments, so the
// result holds only linear edges.
func Compose(paths []Path, steps int) (*msdf.Shape, error) {
	var acc ppath.Path
	for i, path := range paths {
		shape, err := path.Shape()
		if err != nil {
			return nil, fmt.Errorf("sprite: path %d: %w", i, err)
		}
		flat := Flatten(shape, steps)

		switch path.Mode {
		case ModeAdd:
			if acc == nil {
				acc = intersect.Settle(flat, ppath.NonZero)
			} else {
				acc = intersect.Or(acc, flat)
			}
		case ModeSubtract:
			if acc == nil {
				msdf.Logger().Debug("sprite: subtract path before any add path", "path", i)
				continue
			}
			acc = intersect.Not(acc, flat)
		default:
			return nil, fmt.Errorf("sprite: path %d: %v: %w", i, path.Mode, ErrUnknownMode)
		}
	}

	shape := FromPath(acc)
	msdf.Logger().Debug("sprite: composed",
		"paths", len(paths),
		"contours", len(shape.Contours),
		"edges", shape.EdgeCount(),
	)
	return shape, nil
}
