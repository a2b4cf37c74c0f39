package fontshape

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Glyph is one positioned glyph of a shaped string.
type Glyph struct {
	// ID is the glyph index in the font.
	ID uint16

	// Cluster is the index of the first rune of the text the glyph
	// represents.
	Cluster int

	// X and Y are the pen position including the glyph offset.
	X, Y float64

	// Advance is the horizontal pen advance after this glyph.
	Advance float64
}

// shaper holds the go-text font parsed from the same bytes as the sfnt
// font. font.Font is read-only and shared; faces and HarfbuzzShaper carry
// state and are created per call or pooled.
type shaper struct {
	font *font.Font
	pool sync.Pool
}

func newShaper(data []byte) (*shaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &shaper{
		font: face.Font,
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
}

// Shape runs text through HarfBuzz shaping at size pixels per em (font
// units when size is zero) and returns the resulting glyphs in visual
// order, left to right. Ligatures come back as a single glyph and kerning
// is applied to the positions.
func (f *Font) Shape(text string, size float64) ([]Glyph, error) {
	if text == "" {
		return nil, nil
	}

	f.shaperOnce.Do(func() {
		f.shaper, f.shaperErr = newShaper(f.data)
	})
	if f.shaperErr != nil {
		return nil, fmt.Errorf("fontshape: failed to load font for shaping: %w", f.shaperErr)
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f.shaper.font),
		Size:      f.ppem(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := f.shaper.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	f.shaper.pool.Put(hb)

	return convertGlyphs(output.Glyphs), nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func convertGlyphs(glyphs []shaping.Glyph) []Glyph {
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]Glyph, len(glyphs))
	var x fixed.Int26_6
	for i, g := range glyphs {
		result[i] = Glyph{
			ID:      uint16(g.GlyphID), //nolint:gosec // sfnt glyph indices are 16-bit
			Cluster: g.TextIndex(),
			X:       fixedToFloat(x + g.XOffset),
			Y:       fixedToFloat(g.YOffset),
			Advance: fixedToFloat(g.Advance),
		}
		x += g.Advance
	}
	return result
}
