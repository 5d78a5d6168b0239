// Package template loads the base form image and keeps the decoded pixels
// around between stamping runs.
package template

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
)

// DefaultPath is the template looked up in the working directory.
const DefaultPath = "igazolas.jpg"

// Store caches the decoded template. Load hands out copies, so callers may
// draw on the result freely.
type Store struct {
	path string

	mu     sync.Mutex
	cached *image.RGBA
	format string
}

func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the template file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns a fresh RGBA copy of the template, decoding the file on the
// first call or after Invalidate.
func (s *Store) Load() (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil {
		img, format, err := decode(s.path)
		if err != nil {
			return nil, err
		}
		s.cached = img
		s.format = format
	}

	cp := image.NewRGBA(s.cached.Bounds())
	copy(cp.Pix, s.cached.Pix)
	return cp, nil
}

// Format is the decoder name of the cached image, empty before the first Load.
func (s *Store) Format() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.format
}

// Invalidate drops the cached image; the next Load reads the file again.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.format = ""
	s.mu.Unlock()
}

func decode(path string) (*image.RGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode template %s: %w", path, err)
	}

	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return rgba, format, nil
}
