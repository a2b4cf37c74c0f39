package fontshape

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gogpu/msdf"
)

// DefaultLibrarySize is the number of parsed fonts a Library keeps when
// NewLibrary is given a size of zero or less.
const DefaultLibrarySize = 16

// Library is a bounded, name keyed cache of parsed fonts. The least
// recently used font is evicted once the library is full. Library is safe
// for concurrent use.
type Library struct {
	fonts *lru.Cache[string, *Font]
}

// NewLibrary creates a library holding at most size fonts.
func NewLibrary(size int) *Library {
	if size <= 0 {
		size = DefaultLibrarySize
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, *Font](size)
	return &Library{fonts: cache}
}

// Add parses data and stores the font under name, replacing any font
// already stored there.
func (l *Library) Add(name string, data []byte) (*Font, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	l.fonts.Add(name, f)
	return f, nil
}

// Load reads and parses the font file at path. The font is stored under
// the base name of path without its extension; a font already stored
// under that name is returned without touching the file system.
func (l *Library) Load(path string) (*Font, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if f, ok := l.fonts.Get(name); ok {
		return f, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return nil, fmt.Errorf("fontshape: failed to read font: %w", err)
	}
	f, err := l.Add(name, data)
	if err != nil {
		return nil, err
	}
	msdf.Logger().Debug("fontshape: font loaded", "name", name, "path", path, "bytes", len(data))
	return f, nil
}

// Get returns the font stored under name.
func (l *Library) Get(name string) (*Font, error) {
	f, ok := l.fonts.Get(name)
	if !ok {
		return nil, fmt.Errorf("fontshape: %q: %w", name, ErrFontNotFound)
	}
	return f, nil
}

// Remove drops the font stored under name and reports whether it was
// present.
func (l *Library) Remove(name string) bool {
	return l.fonts.Remove(name)
}

// Len returns the number of fonts in the library.
func (l *Library) Len() int {
	return l.fonts.Len()
}
