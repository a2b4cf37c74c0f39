// Command msdfgen renders multi-channel signed distance field textures for
// font glyphs and sprite documents.
//
//	msdfgen glyphs --font Go-Regular.ttf --charset U+0041-U+005A --size 48 --out atlas/
//	msdfgen sprite --out sprites/ badge.yaml arrow.yaml
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/gogpu/msdf"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "msdfgen"
	app.Usage = "Generate multi-channel signed distance field textures"
	app.Description = `msdfgen turns font glyphs and sprite outlines into MSDF PNG textures that a shader can reconstruct at any scale`

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log per-shape diagnostics to stderr",
		},
	}
	app.Before = func(c *cli.Context) error {
		level := slog.LevelWarn
		if c.Bool("verbose") {
			level = slog.LevelDebug
		}
		msdf.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}
	app.Commands = []*cli.Command{
		cmdGlyphs,
		cmdSprite,
	}
	return app
}

// generatorFlags are shared by all sub-commands.
func generatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "out",
			Value: ".",
			Usage: "Output directory for the PNG files",
		},
		&cli.Float64Flag{
			Name:  "range",
			Value: 4,
			Usage: "Distance range in pixels",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Goroutines per bitmap (0 uses GOMAXPROCS)",
		},
		&cli.IntFlag{
			Name:  "jobs",
			Value: 4,
			Usage: "Shapes generated at the same time",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "Seed for the edge coloring",
		},
		&cli.StringFlag{
			Name:  "coloring",
			Value: msdf.ColoringSimple.String(),
			Usage: "Edge coloring strategy: simple or inktrap",
		},
		&cli.BoolFlag{
			Name:  "no-correction",
			Usage: "Skip the error correction pass",
		},
	}
}

// baseConfig builds the generator configuration from the shared flags.
// Projection and range are filled in per shape.
func baseConfig(c *cli.Context) (msdf.Config, error) {
	cfg := msdf.DefaultConfig()
	cfg.Workers = c.Int("workers")
	cfg.Seed = c.Uint64("seed")
	cfg.ErrorCorrection = !c.Bool("no-correction")

	switch strings.ToLower(c.String("coloring")) {
	case msdf.ColoringSimple.String():
		cfg.Coloring = msdf.ColoringSimple
	case msdf.ColoringInkTrap.String(), "ink-trap":
		cfg.Coloring = msdf.ColoringInkTrap
	default:
		return cfg, fmt.Errorf("unknown coloring %q", c.String("coloring"))
	}
	return cfg, cfg.Validate()
}

// output is one bitmap waiting to be written.
type output struct {
	name string
	bm   *msdf.Bitmap
}

// writeOutputs saves the bitmaps as PNG files in dir and prints a summary.
func writeOutputs(dir string, outputs []output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var bytes, pixels int64
	for _, o := range outputs {
		path := filepath.Join(dir, o.name+".png")
		if err := o.bm.SavePNG(path); err != nil {
			return err
		}
		if fi, err := os.Stat(path); err == nil {
			bytes += fi.Size()
		}
		pixels += int64(o.bm.Width) * int64(o.bm.Height)
		msdf.Logger().Debug("msdfgen: wrote", "path", path)
	}

	fmt.Printf("* Wrote %d textures to %s (%s pixels, %s)\n",
		len(outputs), dir, humanize.Comma(pixels), humanize.Bytes(uint64(bytes))) //nolint:gosec // sizes are non-negative
	return nil
}
