package sprite

import "errors"

var (
	// ErrUnknownMode is returned for a path mode other than add or subtract.
	ErrUnknownMode = errors.New("sprite: unknown path mode")

	// ErrTooFewAnchors is returned for a path that does not enclose an area:
	// fewer than two anchors, or all anchors at the same point.
	ErrTooFewAnchors = errors.New("sprite: path needs at least two distinct anchors")

	// ErrEmptyDocument is returned by ParseDocument for a document without
	// paths.
	ErrEmptyDocument = errors.New("sprite: document has no paths")
)
