package fontshape

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/msdf"
)

// Font is a parsed font file.
//
// Font is safe for concurrent use. Glyph loading draws sfnt buffers from a
// pool; the shaping face is created on first use.
type Font struct {
	data []byte
	sfnt *sfnt.Font

	buffers sync.Pool

	shaperOnce sync.Once
	shaper     *shaper
	shaperErr  error
}

// Parse parses a TrueType or OpenType font. The font keeps a reference to
// data, which must not be modified afterwards.
func Parse(data []byte) (*Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontshape: failed to parse font: %w", err)
	}
	return &Font{
		data: data,
		sfnt: f,
		buffers: sync.Pool{
			New: func() any { return new(sfnt.Buffer) },
		},
	}, nil
}

func (f *Font) buffer() *sfnt.Buffer {
	return f.buffers.Get().(*sfnt.Buffer)
}

// Name returns the family name of the font, or "" when it has none.
func (f *Font) Name() string {
	buf := f.buffer()
	defer f.buffers.Put(buf)
	name, err := f.sfnt.Name(buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// UnitsPerEm returns the size of the em square in font units.
func (f *Font) UnitsPerEm() int {
	return int(f.sfnt.UnitsPerEm())
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.sfnt.NumGlyphs()
}

// GlyphIndex returns the glyph index of r. Runes the font does not map
// return ErrGlyphNotFound.
func (f *Font) GlyphIndex(r rune) (uint16, error) {
	buf := f.buffer()
	defer f.buffers.Put(buf)
	idx, err := f.sfnt.GlyphIndex(buf, r)
	if err != nil {
		return 0, fmt.Errorf("fontshape: %U: %w", r, err)
	}
	if idx == 0 {
		return 0, fmt.Errorf("fontshape: %U: %w", r, ErrGlyphNotFound)
	}
	return uint16(idx), nil
}

// ppem converts a size in pixels per em to 26.6 fixed point. Sizes of zero
// or less select the em size, which yields coordinates in font units.
func (f *Font) ppem(size float64) fixed.Int26_6 {
	if size <= 0 {
		size = float64(f.sfnt.UnitsPerEm())
	}
	return fixed.Int26_6(math.Round(size * 64))
}

// GlyphShape returns the outline of the glyph mapped to r, scaled to size
// pixels per em (font units when size is zero).
func (f *Font) GlyphShape(r rune, size float64) (*msdf.Shape, error) {
	gid, err := f.GlyphIndex(r)
	if err != nil {
		return nil, err
	}
	return f.GlyphShapeByIndex(gid, size)
}

// GlyphShapeByIndex returns the outline of glyph gid, scaled to size pixels
// per em (font units when size is zero). Glyphs without an outline, such
// as a space, return an empty shape.
func (f *Font) GlyphShapeByIndex(gid uint16, size float64) (*msdf.Shape, error) {
	if int(gid) >= f.sfnt.NumGlyphs() {
		return nil, fmt.Errorf("fontshape: glyph %d: %w", gid, ErrGlyphNotFound)
	}

	buf := f.buffer()
	defer f.buffers.Put(buf)

	segments, err := f.sfnt.LoadGlyph(buf, sfnt.GlyphIndex(gid), f.ppem(size), nil)
	if err != nil {
		return nil, fmt.Errorf("fontshape: glyph %d: %w", gid, err)
	}
	shape := FromSegments(segments)

	msdf.Logger().Debug("fontshape: glyph loaded",
		"gid", gid,
		"size", size,
		"segments", len(segments),
		"contours", len(shape.Contours),
	)
	return shape, nil
}

// Advance returns the horizontal advance of glyph gid at size pixels per em
// (font units when size is zero).
func (f *Font) Advance(gid uint16, size float64) (float64, error) {
	buf := f.buffer()
	defer f.buffers.Put(buf)

	adv, err := f.sfnt.GlyphAdvance(buf, sfnt.GlyphIndex(gid), f.ppem(size), font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("fontshape: glyph %d: %w", gid, err)
	}
	return fixedToFloat(adv), nil
}

// fixedToFloat converts fixed.Int26_6 to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
