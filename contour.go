package msdf

// Contour is a closed loop of edges. The end of every edge is expected to
// coincide with the start of the next one, wrapping around at the end.
type Contour struct {
	Edges []Edge
}

// NewContour creates an empty contour.
func NewContour() *Contour {
	return &Contour{
		Edges: make([]Edge, 0, 8),
	}
}

// AddEdge appends an edge to the contour.
func (c *Contour) AddEdge(e Edge) {
	c.Edges = append(c.Edges, e)
}

// Bound returns the bounding box of all edges in the contour.
func (c *Contour) Bound() Rect {
	r := EmptyRect()
	for i := range c.Edges {
		r = r.Union(c.Edges[i].Bound())
	}
	return r
}

// Winding returns the orientation of the contour: 1 when it encloses a
// positive (counter-clockwise) area, -1 for clockwise and 0 when empty or
// degenerate.
func (c *Contour) Winding() int {
	edges := c.Edges
	total := 0.0
	switch len(edges) {
	case 0:
		return 0
	case 1:
		a, b, cc := edges[0].Point(0), edges[0].Point(1.0/3.0), edges[0].Point(2.0/3.0)
		total = a.Cross(b) + b.Cross(cc) + cc.Cross(a)
	case 2:
		a, b := edges[0].Point(0), edges[0].Point(0.5)
		cc, d := edges[1].Point(0), edges[1].Point(0.5)
		total = a.Cross(b) + b.Cross(cc) + cc.Cross(d) + d.Cross(a)
	default:
		prev := edges[len(edges)-1].StartPoint()
		for i := range edges {
			cur := edges[i].StartPoint()
			total += prev.Cross(cur)
			prev = cur
		}
	}
	return sign(total)
}

// Reverse flips the orientation of the contour in place.
func (c *Contour) Reverse() {
	edges := c.Edges
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	for i := range edges {
		edges[i].Reverse()
	}
}

// Clone creates a deep copy of the contour.
func (c *Contour) Clone() *Contour {
	clone := &Contour{Edges: make([]Edge, len(c.Edges))}
	copy(clone.Edges, c.Edges)
	return clone
}
