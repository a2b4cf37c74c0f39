package sprite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/msdf"
)

const frameDoc = `
name: frame
width: 32
height: 32
paths:
  - anchors:
      - {x: 0, y: 0}
      - {x: 10, y: 0}
      - {x: 10, y: 10}
      - {x: 0, y: 10}
  - mode: subtract
    anchors: [{x: 3, y: 3}, {x: 7, y: 3}, {x: 7, y: 7}, {x: 3, y: 7}]
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(frameDoc))
	if err != nil {
		t.Fatalf("ParseDocument() error: %v", err)
	}
	if doc.Name != "frame" || doc.Width != 32 || doc.Height != 32 {
		t.Errorf("doc = %q %dx%d, want frame 32x32", doc.Name, doc.Width, doc.Height)
	}
	if doc.Range != DefaultRange || doc.Padding != DefaultPadding || doc.Steps != DefaultSteps {
		t.Errorf("defaults = range %v, padding %v, steps %d", doc.Range, doc.Padding, doc.Steps)
	}
	if len(doc.Paths) != 2 {
		t.Fatalf("paths = %d, want 2", len(doc.Paths))
	}
	if doc.Paths[0].Mode != ModeAdd || doc.Paths[1].Mode != ModeSubtract {
		t.Errorf("modes = %v, %v, want add, subtract", doc.Paths[0].Mode, doc.Paths[1].Mode)
	}
	if got := doc.Paths[1].Anchors[2]; got != (Anchor{X: 7, Y: 7}) {
		t.Errorf("anchor = %+v, want {7 7 0}", got)
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"no paths", "name: empty\n", ErrEmptyDocument},
		{"bad mode", "paths:\n  - mode: xor\n    anchors: [{x: 0, y: 0}, {x: 1, y: 0}]\n", ErrUnknownMode},
		{"negative size", "width: -4\npaths:\n  - anchors: [{x: 0, y: 0}, {x: 1, y: 0}]\n", msdf.ErrBitmapSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.in))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseDocument() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ParseDocument([]byte("width: [")); err == nil {
		t.Error("ParseDocument(malformed) succeeded")
	}
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.yaml")
	if err := os.WriteFile(path, []byte(frameDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error: %v", err)
	}
	if doc.Name != "frame" {
		t.Errorf("Name = %q, want frame", doc.Name)
	}

	if _, err := LoadDocument(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadDocument(missing) succeeded")
	}
}

func TestDocumentShape(t *testing.T) {
	doc := &Document{
		YUp: true,
		Paths: []Path{{Anchors: []Anchor{
			{X: 0, Y: 0, Curve: 0.2},
			{X: 10, Y: 0},
			{X: 5, Y: 8},
		}}},
	}
	shape, err := doc.Shape()
	if err != nil {
		t.Fatal(err)
	}
	if !shape.InverseYAxis {
		t.Error("InverseYAxis = false, want true for y_up documents")
	}
	// A lone add path keeps its curve.
	if shape.Contours[0].Edges[0].Type != msdf.EdgeQuadratic {
		t.Errorf("edge 0 type = %v, want quadratic", shape.Contours[0].Edges[0].Type)
	}
}

func TestDocumentGenerate(t *testing.T) {
	doc, err := ParseDocument([]byte(frameDoc))
	if err != nil {
		t.Fatal(err)
	}
	bm, err := doc.Generate(msdf.DefaultConfig())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if bm.Width != 32 || bm.Height != 32 {
		t.Fatalf("bitmap = %dx%d, want 32x32", bm.Width, bm.Height)
	}
	if m := bm.Median(16, 16); m >= 0.5 {
		t.Errorf("hole median = %v, want < 0.5", m)
	}
	if m := bm.Median(5, 16); m <= 0.5 {
		t.Errorf("rim median = %v, want > 0.5", m)
	}
	if m := bm.Median(0, 0); m >= 0.5 {
		t.Errorf("corner median = %v, want < 0.5", m)
	}
}
