package msdf

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/msdf/internal/parallel"
)

// Generator turns shapes into MSDF bitmaps.
// A Generator is safe for concurrent use; it holds only its configuration.
type Generator struct {
	config Config
}

// NewGenerator creates a new MSDF generator with the given configuration.
func NewGenerator(config Config) *Generator {
	return &Generator{
		config: config,
	}
}

// DefaultGenerator creates a new MSDF generator with default configuration.
func DefaultGenerator() *Generator {
	return NewGenerator(DefaultConfig())
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Prepare runs the geometric stages that precede rasterization on shape,
// in place: contour normalization, optional orientation fix and edge
// coloring.
func (g *Generator) Prepare(shape *Shape) {
	shape.Normalize()
	if g.config.OrientContours {
		shape.OrientContours()
	}
	ColorEdges(shape, g.config.Coloring, g.config.AngleThreshold, g.config.Seed)
}

// Generate prepares shape (modifying it in place) and renders a width x
// height MSDF: the distance field, followed by sign correction and, when
// enabled, error correction.
func (g *Generator) Generate(shape *Shape, width, height int) (*Bitmap, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}
	if shape == nil {
		return nil, ErrEmptyShape
	}
	bm, err := NewBitmap(width, height)
	if err != nil {
		return nil, err
	}

	log := Logger()
	if err := shape.Validate(); err != nil {
		log.Warn("msdf: invalid shape", "err", err)
	}

	g.Prepare(shape)
	proj := g.config.Projection()

	if shape.EdgeCount() == 0 {
		log.Debug("msdf: empty shape", "width", width, "height", height)
		return bm, nil
	}

	GenerateField(bm, shape, proj, g.config.Range, g.config.Workers)
	CorrectSign(bm, shape, proj, FillNonZero, g.config.Workers)

	corrected := 0
	if g.config.ErrorCorrection {
		ec := NewErrorCorrector(bm, proj, g.config.Range)
		ec.SetMinDeviationRatio(g.config.MinDeviationRatio)
		ec.SetWorkers(g.config.Workers)
		corrected = ec.Correct(shape)
	}

	log.Debug("msdf: generated",
		"width", width,
		"height", height,
		"contours", len(shape.Contours),
		"edges", shape.EdgeCount(),
		"scale", proj.Scale,
		"translate", proj.Translate,
		"corrected", corrected,
	)
	return bm, nil
}

// GenerateField fills bm with the raw multi-channel distance field of an
// already colored shape. Rows are split across workers goroutines; zero
// selects GOMAXPROCS.
func GenerateField(bm *Bitmap, shape *Shape, proj Projection, distanceRange float64, workers int) {
	contours := prepareContours(shape)
	invRange := 1 / distanceRange

	parallel.Rows(bm.Height, workers, func(band parallel.Band) {
		combiner := newOverlappingCombiner(contours)
		for y := band.Start; y < band.End; y++ {
			row := y
			if shape.InverseYAxis {
				row = bm.Height - 1 - y
			}
			for x := range bm.Width {
				p := proj.Unproject(Point{float64(x) + 0.5, float64(y) + 0.5})
				d := combiner.distance(p)
				px := bm.pixel(x, row)
				for c := range px {
					px[c] = encodeDistance(d[c], distanceRange, invRange)
				}
			}
		}
	})
}

// encodeDistance maps a signed distance to the [0, 1] band of the range.
// Infinite sentinels are clamped to finite float32 values.
func encodeDistance(d, distanceRange, invRange float64) float32 {
	v := (d + distanceRange/2) * invRange
	switch {
	case v > math.MaxFloat32:
		return math.MaxFloat32
	case v < -math.MaxFloat32:
		return -math.MaxFloat32
	}
	return float32(v)
}

// BatchItem is one shape of a batch and the size of its bitmap.
type BatchItem struct {
	Shape  *Shape
	Width  int
	Height int

	// Config replaces the generator's configuration for this item when
	// set, typically to give each shape its own projection.
	Config *Config
}

// GenerateBatch generates bitmaps for several shapes concurrently, with at
// most limit shapes in flight (zero means unlimited). Results are in input
// order. The first error cancels nothing already running but is returned
// once all shapes finish.
func (g *Generator) GenerateBatch(items []BatchItem, limit int) ([]*Bitmap, error) {
	results := make([]*Bitmap, len(items))

	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, item := range items {
		eg.Go(func() error {
			if item.Shape == nil {
				return fmt.Errorf("batch item %d: %w", i, ErrEmptyShape)
			}
			gen := g
			if item.Config != nil {
				gen = NewGenerator(*item.Config)
			}
			bm, err := gen.Generate(item.Shape, item.Width, item.Height)
			if err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			results[i] = bm
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
