package msdf

import (
	"math"
)

// ColoringMode selects the edge coloring strategy.
type ColoringMode int

const (
	// ColoringSimple switches channel colors at every detected corner.
	ColoringSimple ColoringMode = iota

	// ColoringInkTrap additionally demotes short segments between
	// nearly colinear corners so narrow notches keep clean colors.
	ColoringInkTrap
)

// String returns a string representation of the coloring mode.
func (m ColoringMode) String() string {
	switch m {
	case ColoringSimple:
		return "simple"
	case ColoringInkTrap:
		return "inktrap"
	default:
		return "unknown"
	}
}

// Config holds MSDF generation parameters.
type Config struct {
	// Range is the width of the encoded distance band in shape units.
	// A distance of -Range/2 maps to 0 and +Range/2 maps to 1.
	// Default: 4.0
	Range float64

	// Scale maps shape units to pixels, per axis.
	// Default: (1, 1)
	Scale Point

	// Translate is added to shape coordinates before scaling.
	Translate Point

	// AngleThreshold is the maximum angle (in radians) between the incoming
	// and outgoing tangents at a vertex that is still considered smooth.
	// Default: 3.0
	AngleThreshold float64

	// Coloring selects the edge coloring strategy.
	// Default: ColoringSimple
	Coloring ColoringMode

	// Seed drives the deterministic channel color sequence.
	Seed uint64

	// OrientContours fixes contour orientation before coloring so that
	// filled regions have positive winding and holes negative.
	// Default: true
	OrientContours bool

	// ErrorCorrection enables the stencil based artifact correction pass.
	// Default: true
	ErrorCorrection bool

	// MinDeviationRatio is the minimum ratio between the interpolated median
	// deviation and the expected change per texel that counts as an artifact.
	// Default: 1.11111111111111111
	MinDeviationRatio float64

	// Workers is the number of goroutines splitting the rows of a bitmap.
	// Zero uses GOMAXPROCS.
	Workers int
}

// DefaultMinDeviationRatio is the default value of Config.MinDeviationRatio.
const DefaultMinDeviationRatio = 1.11111111111111111

// DefaultConfig returns the default MSDF configuration.
func DefaultConfig() Config {
	return Config{
		Range:             4.0,
		Scale:             Point{1, 1},
		AngleThreshold:    3.0,
		Coloring:          ColoringSimple,
		OrientContours:    true,
		ErrorCorrection:   true,
		MinDeviationRatio: DefaultMinDeviationRatio,
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if !(c.Range > 0) || math.IsInf(c.Range, 0) {
		return &ConfigError{Field: "Range", Reason: "must be positive and finite"}
	}
	if !(c.Scale.X > 0) || !(c.Scale.Y > 0) || math.IsInf(c.Scale.X, 0) || math.IsInf(c.Scale.Y, 0) {
		return &ConfigError{Field: "Scale", Reason: "must be positive and finite on both axes"}
	}
	if !isFinite(c.Translate.X) || !isFinite(c.Translate.Y) {
		return &ConfigError{Field: "Translate", Reason: "must be finite"}
	}
	if c.AngleThreshold <= 0 || c.AngleThreshold > math.Pi {
		return &ConfigError{Field: "AngleThreshold", Reason: "must be in (0, pi]"}
	}
	if c.Coloring != ColoringSimple && c.Coloring != ColoringInkTrap {
		return &ConfigError{Field: "Coloring", Reason: "unknown coloring mode"}
	}
	if c.MinDeviationRatio < 0 {
		return &ConfigError{Field: "MinDeviationRatio", Reason: "must not be negative"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "Workers", Reason: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "msdf: invalid config." + e.Field + ": " + e.Reason
}

// Projection is the affine mapping between shape space and pixel space.
type Projection struct {
	Scale     Point
	Translate Point
}

// Projection returns the shape-to-pixel mapping of the configuration.
func (c *Config) Projection() Projection {
	return Projection{Scale: c.Scale, Translate: c.Translate}
}

// Project maps a shape-space point to pixel space.
func (p Projection) Project(q Point) Point {
	return Point{(q.X + p.Translate.X) * p.Scale.X, (q.Y + p.Translate.Y) * p.Scale.Y}
}

// Unproject maps a pixel-space point to shape space.
func (p Projection) Unproject(q Point) Point {
	return Point{q.X/p.Scale.X - p.Translate.X, q.Y/p.Scale.Y - p.Translate.Y}
}

// UnprojectVector maps a pixel-space vector to shape space.
func (p Projection) UnprojectVector(v Point) Point {
	return Point{v.X / p.Scale.X, v.Y / p.Scale.Y}
}

// FitProjection returns a uniform scale and a translation that fit bounds
// centred into a width x height bitmap, leaving padding pixels on each side.
// Empty bounds yield a unit scale and a translation that centres the origin.
func FitProjection(bounds Rect, width, height int, padding float64) (scale, translate Point) {
	availW := float64(width) - 2*padding
	availH := float64(height) - 2*padding
	if availW <= 0 || availH <= 0 || bounds.IsEmpty() {
		return Point{1, 1}, Point{float64(width) / 2, float64(height) / 2}
	}

	s := min(availW/bounds.Width(), availH/bounds.Height())
	if !isFinite(s) || s <= 0 {
		s = 1
	}

	tx := (float64(width)/s-bounds.Width())/2 - bounds.MinX
	ty := (float64(height)/s-bounds.Height())/2 - bounds.MinY
	return Point{s, s}, Point{tx, ty}
}
