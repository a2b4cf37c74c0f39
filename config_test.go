package msdf

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Range != 4.0 {
		t.Errorf("Range = %v, want 4.0", cfg.Range)
	}
	if cfg.Scale != (Point{1, 1}) {
		t.Errorf("Scale = %v, want (1, 1)", cfg.Scale)
	}
	if cfg.AngleThreshold != 3.0 {
		t.Errorf("AngleThreshold = %v, want 3.0", cfg.AngleThreshold)
	}
	if !cfg.OrientContours || !cfg.ErrorCorrection {
		t.Error("OrientContours and ErrorCorrection should be enabled by default")
	}
	if cfg.MinDeviationRatio != DefaultMinDeviationRatio {
		t.Errorf("MinDeviationRatio = %v, want %v", cfg.MinDeviationRatio, DefaultMinDeviationRatio)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero range", func(c *Config) { c.Range = 0 }, "Range"},
		{"negative range", func(c *Config) { c.Range = -1 }, "Range"},
		{"NaN range", func(c *Config) { c.Range = math.NaN() }, "Range"},
		{"infinite range", func(c *Config) { c.Range = math.Inf(1) }, "Range"},
		{"zero scale", func(c *Config) { c.Scale = Point{0, 1} }, "Scale"},
		{"negative scale", func(c *Config) { c.Scale = Point{1, -2} }, "Scale"},
		{"NaN translate", func(c *Config) { c.Translate = Point{math.NaN(), 0} }, "Translate"},
		{"zero angle", func(c *Config) { c.AngleThreshold = 0 }, "AngleThreshold"},
		{"angle above pi", func(c *Config) { c.AngleThreshold = 4 }, "AngleThreshold"},
		{"angle pi", func(c *Config) { c.AngleThreshold = math.Pi }, ""},
		{"unknown coloring", func(c *Config) { c.Coloring = ColoringMode(9) }, "Coloring"},
		{"negative deviation", func(c *Config) { c.MinDeviationRatio = -1 }, "MinDeviationRatio"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "Workers"},
		{"many workers", func(c *Config) { c.Workers = 64 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "Range", Reason: "must be positive and finite"}
	want := "msdf: invalid config.Range: must be positive and finite"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestColoringModeString(t *testing.T) {
	tests := []struct {
		mode ColoringMode
		want string
	}{
		{ColoringSimple, "simple"},
		{ColoringInkTrap, "inktrap"},
		{ColoringMode(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	proj := Projection{Scale: Point{8, 4}, Translate: Point{1.5, -2}}
	for _, p := range []Point{{0, 0}, {1, 1}, {-3.25, 7}, {100, -0.5}} {
		q := proj.Project(p)
		assertPointNear(t, "Unproject(Project(p))", proj.Unproject(q), p, 1e-12)
	}

	if got := proj.Project(Point{0, 0}); got != (Point{12, -8}) {
		t.Errorf("Project(0, 0) = %v, want (12, -8)", got)
	}
	if got := proj.UnprojectVector(Point{8, 4}); got != (Point{1, 1}) {
		t.Errorf("UnprojectVector(8, 4) = %v, want (1, 1)", got)
	}
}

func TestFitProjection(t *testing.T) {
	bounds := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	scale, translate := FitProjection(bounds, 100, 100, 10)

	if scale != (Point{8, 8}) {
		t.Fatalf("scale = %v, want (8, 8)", scale)
	}
	proj := Projection{Scale: scale, Translate: translate}
	assertPointNear(t, "min corner", proj.Project(Point{0, 0}), Point{10, 30}, 1e-9)
	assertPointNear(t, "max corner", proj.Project(Point{10, 5}), Point{90, 70}, 1e-9)
}

func TestFitProjectionOffsetBounds(t *testing.T) {
	bounds := Rect{MinX: -4, MinY: 3, MaxX: 0, MaxY: 7}
	scale, translate := FitProjection(bounds, 32, 64, 0)
	proj := Projection{Scale: scale, Translate: translate}

	if scale != (Point{8, 8}) {
		t.Fatalf("scale = %v, want (8, 8)", scale)
	}
	assertPointNear(t, "min corner", proj.Project(Point{-4, 3}), Point{0, 16}, 1e-9)
	assertPointNear(t, "max corner", proj.Project(Point{0, 7}), Point{32, 48}, 1e-9)
}

func TestFitProjectionEmpty(t *testing.T) {
	tests := []struct {
		name    string
		bounds  Rect
		padding float64
	}{
		{"empty bounds", EmptyRect(), 2},
		{"degenerate bounds", Rect{MinX: 1, MinY: 1, MaxX: 1, MaxY: 4}, 2},
		{"padding too large", Rect{MaxX: 1, MaxY: 1}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, translate := FitProjection(tt.bounds, 32, 16, tt.padding)
			if scale != (Point{1, 1}) {
				t.Errorf("scale = %v, want (1, 1)", scale)
			}
			if translate != (Point{16, 8}) {
				t.Errorf("translate = %v, want (16, 8)", translate)
			}
		})
	}
}
