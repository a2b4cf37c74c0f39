// Package sprite builds msdf shapes from editor sprite paths.
//
// A sprite path is a closed loop of anchors. Each anchor carries a curve
// magnitude that bends the segment leaving it into a quadratic curve, so a
// path needs no explicit control points. Paths are either added to or
// subtracted from the paths before them; Compose folds them through
// polygon boolean operations (cogentcore.org/core/paint/ppath/intersect)
// using the non-zero fill rule and returns a shape of linear contours.
//
// Sprites are usually described in YAML documents:
//
//	doc, err := sprite.LoadDocument("badge.yaml")
//	if err != nil {
//	    return err
//	}
//	bm, err := doc.Generate(msdf.DefaultConfig())
package sprite
