package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gogpu/msdf"
	"github.com/gogpu/msdf/fontshape"
)

const defaultCharset = "U+0020-U+007E"

var cmdGlyphs = &cli.Command{
	Name:  "glyphs",
	Usage: "Render the glyphs of a font",
	Description: `Renders one texture per glyph. --text is shaped first, so ligatures and
contextual forms produce the glyphs a renderer would actually draw. --charset
lists code points and ranges, for example "U+0020-U+007E,ÄÖÜ". Without either
the printable ASCII range is rendered.`,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:     "font",
			Usage:    "TrueType or OpenType font file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "text",
			Usage: "Text to shape into glyphs",
		},
		&cli.StringFlag{
			Name:  "charset",
			Usage: "Code points and ranges to render",
		},
		&cli.IntFlag{
			Name:  "size",
			Value: 32,
			Usage: "Width and height of each texture in pixels",
		},
		&cli.Float64Flag{
			Name:  "padding",
			Value: 2,
			Usage: "Margin in pixels between the glyph and the texture border",
		},
	}, generatorFlags()...),
	Action: runGlyphs,
}

func runGlyphs(c *cli.Context) error {
	cfg, err := baseConfig(c)
	if err != nil {
		return err
	}

	lib := fontshape.NewLibrary(1)
	f, err := lib.Load(c.String("font"))
	if err != nil {
		return err
	}

	gids, err := collectGlyphs(f, c.String("text"), c.String("charset"))
	if err != nil {
		return err
	}

	size := c.Int("size")
	padding := c.Float64("padding")
	pxRange := c.Float64("range")

	var (
		items []msdf.BatchItem
		names []string
	)
	for _, gid := range gids {
		shape, err := f.GlyphShapeByIndex(gid, 0)
		if err != nil {
			return err
		}
		if shape.EdgeCount() == 0 {
			msdf.Logger().Debug("msdfgen: glyph has no outline", "gid", gid)
			continue
		}

		glyphCfg := cfg
		glyphCfg.Scale, glyphCfg.Translate = msdf.FitProjection(shape.Bound(), size, size, padding)
		glyphCfg.Range = pxRange / glyphCfg.Scale.X

		items = append(items, msdf.BatchItem{Shape: shape, Width: size, Height: size, Config: &glyphCfg})
		names = append(names, fmt.Sprintf("glyph_%05d", gid))
	}

	bms, err := msdf.NewGenerator(cfg).GenerateBatch(items, c.Int("jobs"))
	if err != nil {
		return err
	}

	outputs := make([]output, len(bms))
	for i, bm := range bms {
		outputs[i] = output{name: names[i], bm: bm}
	}
	return writeOutputs(c.String("out"), outputs)
}

// collectGlyphs resolves text and charset to a list of distinct glyph ids
// in first-seen order. Runes missing from the font are skipped.
func collectGlyphs(f *fontshape.Font, text, charset string) ([]uint16, error) {
	if text == "" && charset == "" {
		charset = defaultCharset
	}

	seen := make(map[uint16]bool)
	var gids []uint16
	add := func(gid uint16) {
		if !seen[gid] {
			seen[gid] = true
			gids = append(gids, gid)
		}
	}

	if text != "" {
		glyphs, err := f.Shape(text, 0)
		if err != nil {
			return nil, err
		}
		for _, g := range glyphs {
			add(g.ID)
		}
	}

	if charset != "" {
		rt, err := fontshape.ParseCharset(charset)
		if err != nil {
			return nil, err
		}
		for _, r := range fontshape.Runes(rt) {
			gid, err := f.GlyphIndex(r)
			if errors.Is(err, fontshape.ErrGlyphNotFound) {
				msdf.Logger().Warn("msdfgen: rune not in font", "rune", fmt.Sprintf("%U", r))
				continue
			}
			if err != nil {
				return nil, err
			}
			add(gid)
		}
	}
	return gids, nil
}
