// Package fontshape turns font glyph outlines into msdf shapes.
//
// Outlines arrive in one of two forms. FromPoints takes TrueType style
// point lists, where each point is flagged on or off the curve and two
// consecutive off-curve points imply an on-curve midpoint. FromSegments
// takes the move/line/quad/cube segment stream produced by
// golang.org/x/image/font/sfnt.
//
// Both produce shapes in font coordinates with the Y axis pointing up and
// msdf.Shape.InverseYAxis set, so the generated bitmap has its first row at
// the top of the glyph.
//
// Font wraps a parsed font file and adds glyph lookup by rune or index and
// string shaping through go-text/typesetting, which resolves ligatures and
// contextual forms to the glyph ids that actually need a field. Library
// keeps recently used fonts parsed in an LRU cache.
//
// # Usage
//
//	f, err := fontshape.Parse(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	shape, err := f.GlyphShape('A', 0)
//	if err != nil {
//	    return err
//	}
//	bm, err := msdf.NewGenerator(cfg).Generate(shape, 32, 32)
package fontshape
