package fontshape

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLibraryEviction(t *testing.T) {
	lib := NewLibrary(2)

	for _, tt := range []struct {
		name string
		data []byte
	}{
		{"regular", goregular.TTF},
		{"bold", gobold.TTF},
	} {
		if _, err := lib.Add(tt.name, tt.data); err != nil {
			t.Fatalf("Add(%s) error: %v", tt.name, err)
		}
	}

	// Touch regular so bold is the least recently used.
	if _, err := lib.Get("regular"); err != nil {
		t.Fatalf("Get(regular) error: %v", err)
	}
	if _, err := lib.Add("italic", goitalic.TTF); err != nil {
		t.Fatalf("Add(italic) error: %v", err)
	}

	if lib.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lib.Len())
	}
	if _, err := lib.Get("bold"); !errors.Is(err, ErrFontNotFound) {
		t.Errorf("Get(bold) error = %v, want ErrFontNotFound", err)
	}
	for _, name := range []string{"regular", "italic"} {
		if _, err := lib.Get(name); err != nil {
			t.Errorf("Get(%s) error: %v", name, err)
		}
	}

	if !lib.Remove("italic") || lib.Remove("italic") {
		t.Error("Remove(italic) should succeed once")
	}
}

func TestLibraryAddInvalid(t *testing.T) {
	lib := NewLibrary(0)
	if _, err := lib.Add("bad", []byte{0, 1, 2}); err == nil {
		t.Error("Add(garbage) succeeded")
	}
	if lib.Len() != 0 {
		t.Errorf("Len() = %d, want 0", lib.Len())
	}
}

func TestLibraryLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(4)
	f, err := lib.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	got, err := lib.Get("goregular")
	if err != nil {
		t.Fatalf("Get(goregular) error: %v", err)
	}
	if got != f {
		t.Error("Get returned a different font than Load")
	}

	// A second load is served from the library.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	again, err := lib.Load(path)
	if err != nil || again != f {
		t.Errorf("second Load() = %p, %v, want cached font", again, err)
	}

	if _, err := lib.Load(filepath.Join(dir, "missing.ttf")); err == nil {
		t.Error("Load(missing) succeeded")
	}
}
