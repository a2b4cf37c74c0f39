package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/gogpu/msdf/sprite"
)

var cmdSprite = &cli.Command{
	Name:      "sprite",
	Usage:     "Render sprite documents",
	ArgsUsage: "<document.yaml>...",
	Flags:     generatorFlags(),
	Action:    runSprite,
}

func runSprite(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) == 0 {
		return errors.New("provide at least one sprite document")
	}

	cfg, err := baseConfig(c)
	if err != nil {
		return err
	}

	outputs := make([]output, 0, len(args))
	for _, path := range args {
		doc, err := sprite.LoadDocument(path)
		if err != nil {
			return err
		}
		if c.IsSet("range") {
			doc.Range = c.Float64("range")
		}

		bm, err := doc.Generate(cfg)
		if err != nil {
			return err
		}

		name := doc.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		outputs = append(outputs, output{name: name, bm: bm})
	}
	return writeOutputs(c.String("out"), outputs)
}
