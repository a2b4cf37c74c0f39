package msdf

import "errors"

// Sentinel errors for the msdf package.
var (
	// ErrEmptyShape is returned by GenerateBatch entries that carry a nil shape.
	ErrEmptyShape = errors.New("msdf: shape is nil")

	// ErrDiscontinuousContour is wrapped by Shape.Validate when an edge does
	// not start where the previous one ended.
	ErrDiscontinuousContour = errors.New("msdf: discontinuous contour")

	// ErrBitmapSize is returned when a bitmap has non-positive dimensions.
	ErrBitmapSize = errors.New("msdf: bitmap dimensions must be positive")
)
