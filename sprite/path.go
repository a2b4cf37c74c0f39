package sprite

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/msdf"
)

// Mode says how a path combines with the paths before it.
type Mode int

const (
	// ModeAdd unions the path with the paths before it.
	ModeAdd Mode = iota

	// ModeSubtract cuts the path out of the paths before it.
	ModeSubtract
)

// String returns the name used for the mode in sprite documents.
func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeSubtract:
		return "subtract"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "add" or "subtract". The empty string selects ModeAdd.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "add":
		return ModeAdd, nil
	case "subtract", "sub":
		return ModeSubtract, nil
	default:
		return 0, fmt.Errorf("sprite: %q: %w", s, ErrUnknownMode)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	mode, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// Anchor is a point of a sprite path. Curve bends the segment that leaves
// the anchor: zero keeps it straight, otherwise the segment becomes a
// quadratic curve whose control point sits Curve chord lengths to the right
// of the chord midpoint. Negative values bend to the left.
type Anchor struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Curve float64 `yaml:"curve,omitempty"`
}

func (a Anchor) point() msdf.Point {
	return msdf.Point{X: a.X, Y: a.Y}
}

// Path is a closed sprite outline. The last anchor connects back to the
// first.
type Path struct {
	Mode    Mode     `yaml:"mode"`
	Anchors []Anchor `yaml:"anchors"`
}

// Contour returns the outline of p as a single contour.
func (p Path) Contour() (*msdf.Contour, error) {
	n := len(p.Anchors)
	if n < 2 {
		return nil, fmt.Errorf("sprite: path with %d anchors: %w", n, ErrTooFewAnchors)
	}

	c := msdf.NewContour()
	for i, a := range p.Anchors {
		start := a.point()
		end := p.Anchors[(i+1)%n].point()
		if start == end {
			continue
		}
		if a.Curve == 0 {
			c.AddEdge(msdf.NewLinearEdge(start, end))
			continue
		}
		c.AddEdge(msdf.NewQuadraticEdge(start, curveControl(start, end, a.Curve), end))
	}
	if len(c.Edges) == 0 {
		return nil, fmt.Errorf("sprite: path has no extent: %w", ErrTooFewAnchors)
	}
	return c, nil
}

// Shape returns p as a one-contour shape, ignoring its mode.
func (p Path) Shape() (*msdf.Shape, error) {
	c, err := p.Contour()
	if err != nil {
		return nil, err
	}
	shape := msdf.NewShape()
	shape.AddContour(c)
	return shape, nil
}

// curveControl offsets the chord midpoint along the right-hand normal by
// curve times the chord length.
func curveControl(start, end msdf.Point, curve float64) msdf.Point {
	chord := end.Sub(start)
	right := msdf.Point{X: chord.Y, Y: -chord.X}
	return start.Lerp(end, 0.5).Add(right.Mul(curve))
}
