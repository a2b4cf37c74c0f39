// Package msdf generates multi-channel signed distance fields (MSDF) from
// vector outlines.
//
// An MSDF stores, per pixel and per RGB channel, a normalized signed
// distance to a subset of the outline's edges. Edges meeting at a corner
// are assigned different channel subsets, so taking the median of the
// three channels in a shader reconstructs sharp corners at any
// magnification from a small texture.
//
// # Pipeline
//
// A Shape is built by an outline source (see the fontshape and sprite
// packages) and handed to a Generator:
//
//	shape.Normalize()          // split single-edge contours
//	shape.OrientContours()     // filled regions wind positively
//	ColorSimple(shape, 3, 0)   // assign channels to edges
//	GenerateField(...)         // per-contour distances + combiner
//	CorrectSign(...)           // agree with the non-zero fill
//	CorrectErrors(...)         // flatten interpolation artifacts
//
// Generator.Generate runs all of these stages.
//
// # Conventions
//
// Distances are positive inside the shape, which is the area to the left
// of the edges of a counter-clockwise (positive winding) contour. A pixel
// at (x, y) samples shape point (x+0.5, y+0.5)/Scale - Translate, and a
// distance d is stored as (d + Range/2) / Range, so 0.5 lies on the
// outline and values above 0.5 are inside.
//
// # Usage
//
//	cfg := msdf.DefaultConfig()
//	cfg.Range = 4
//	cfg.Scale, cfg.Translate = msdf.FitProjection(shape.Bound(), 32, 32, 2)
//	bm, err := msdf.NewGenerator(cfg).Generate(shape, 32, 32)
//	if err != nil {
//	    return err
//	}
//	return bm.SavePNG("glyph.png")
//
// # Thread Safety
//
// Generator is safe for concurrent use. A Shape is modified by Generate
// and must not be shared between concurrent calls.
package msdf
