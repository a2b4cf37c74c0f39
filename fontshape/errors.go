package fontshape

import "errors"

// Sentinel errors for the fontshape package.
var (
	// ErrGlyphNotFound is returned when a font has no glyph for a rune or
	// the glyph index is out of range.
	ErrGlyphNotFound = errors.New("fontshape: glyph not found")

	// ErrTooFewPoints is returned by FromPoints for a contour with fewer
	// than two points.
	ErrTooFewPoints = errors.New("fontshape: contour has fewer than two points")

	// ErrFontNotFound is returned by Library.Get for a name that was never
	// added.
	ErrFontNotFound = errors.New("fontshape: font not found")
)
