package sprite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/msdf"
)

// Document defaults.
const (
	DefaultSize    = 32
	DefaultRange   = 4.0
	DefaultPadding = 2.0
)

// Document describes one sprite: the bitmap it is rendered to and the
// paths that make up its outline.
//
//	name: badge
//	width: 64
//	height: 64
//	range: 4
//	padding: 2
//	paths:
//	  - anchors: [{x: 0, y: 0}, {x: 10, y: 0, curve: 0.3}, {x: 10, y: 10}, {x: 0, y: 10}]
//	  - mode: subtract
//	    anchors: [{x: 3, y: 3}, {x: 7, y: 3}, {x: 7, y: 7}, {x: 3, y: 7}]
type Document struct {
	Name string `yaml:"name"`

	// Width and Height are the bitmap size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Range is the distance range in pixels.
	Range float64 `yaml:"range"`

	// Padding is the margin in pixels kept between the outline and the
	// bitmap border.
	Padding float64 `yaml:"padding"`

	// Steps is the number of segments per curve used when paths are
	// composed.
	Steps int `yaml:"steps"`

	// YUp marks coordinates with the Y axis pointing up. By default Y
	// points down, as in most editors.
	YUp bool `yaml:"y_up"`

	Paths []Path `yaml:"paths"`
}

// ParseDocument decodes a YAML sprite document and fills in defaults.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("sprite: failed to parse document: %w", err)
	}

	if doc.Width == 0 {
		doc.Width = DefaultSize
	}
	if doc.Height == 0 {
		doc.Height = DefaultSize
	}
	if doc.Range == 0 {
		doc.Range = DefaultRange
	}
	if doc.Padding == 0 {
		doc.Padding = DefaultPadding
	}
	if doc.Steps == 0 {
		doc.Steps = DefaultSteps
	}

	switch {
	case doc.Width < 0 || doc.Height < 0:
		return nil, fmt.Errorf("sprite: %s: size %dx%d: %w", doc.Name, doc.Width, doc.Height, msdf.ErrBitmapSize)
	case doc.Range < 0:
		return nil, fmt.Errorf("sprite: %s: negative range %v", doc.Name, doc.Range)
	case len(doc.Paths) == 0:
		return nil, fmt.Errorf("sprite: %s: %w", doc.Name, ErrEmptyDocument)
	}
	return doc, nil
}

// LoadDocument reads and parses the sprite document at path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return nil, fmt.Errorf("sprite: failed to read document: %w", err)
	}
	return ParseDocument(data)
}

// Shape returns the outline of the sprite. A document made of a single add
// path keeps its curves; anything else goes through Compose.
func (d *Document) Shape() (*msdf.Shape, error) {
	var (
		shape *msdf.Shape
		err   error
	)
	if len(d.Paths) == 1 && d.Paths[0].Mode == ModeAdd {
		shape, err = d.Paths[0].Shape()
	} else {
		shape, err = Compose(d.Paths, d.Steps)
	}
	if err != nil {
		return nil, err
	}
	shape.InverseYAxis = d.YUp
	return shape, nil
}

// Generate renders the sprite with cfg, replacing its projection and range
// with ones that fit the outline into the document's bitmap.
func (d *Document) Generate(cfg msdf.Config) (*msdf.Bitmap, error) {
	shape, err := d.Shape()
	if err != nil {
		return nil, err
	}

	scale, translate := msdf.FitProjection(shape.Bound(), d.Width, d.Height, d.Padding)
	cfg.Scale, cfg.Translate = scale, translate
	cfg.Range = d.Range / min(scale.X, scale.Y)

	bm, err := msdf.NewGenerator(cfg).Generate(shape, d.Width, d.Height)
	if err != nil {
		return nil, fmt.Errorf("sprite: %s: %w", d.Name, err)
	}
	return bm, nil
}
