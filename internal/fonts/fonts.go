// Package fonts resolves a handwriting-style font from an ordered list of
// candidates, with an explicit policy for what happens when none is found.
package fonts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ErrNoFont is returned by Resolve when no candidate is usable and the
// fallback policy is FallbackNone.
var ErrNoFont = errors.New("no usable font found")

// Fallback decides what Resolve does when every candidate fails.
type Fallback string

const (
	// FallbackEmbedded uses the bundled Go Italic font.
	FallbackEmbedded Fallback = "embedded"
	// FallbackNone fails with ErrNoFont.
	FallbackNone Fallback = "none"
)

// EmbeddedName is the Name of the font returned by the embedded fallback.
const EmbeddedName = "Go Italic (embedded)"

// ParseFallback accepts "embedded" or "none"; the empty string means embedded.
func ParseFallback(s string) (Fallback, error) {
	switch Fallback(strings.ToLower(strings.TrimSpace(s))) {
	case "", FallbackEmbedded:
		return FallbackEmbedded, nil
	case FallbackNone:
		return FallbackNone, nil
	}
	return "", fmt.Errorf("unknown font fallback %q (want %q or %q)", s, FallbackEmbedded, FallbackNone)
}

// DefaultCandidates are tried in order: two handwriting faces, a brush
// script, then a plain sans.
func DefaultCandidates() []string {
	return []string{"segoepr.ttf", "Inkfree.ttf", "BRUSHSCI.TTF", "arial.ttf"}
}

// DefaultDirs returns the usual system font directories for Windows, Linux
// and macOS. Directories that do not exist are skipped during lookup.
func DefaultDirs() []string {
	dirs := []string{
		"C:/Windows/Fonts",
		"/usr/share/fonts",
		"/usr/local/share/fonts",
		"/Library/Fonts",
		"/System/Library/Fonts",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".fonts"),
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, "Library", "Fonts"),
		)
	}
	return dirs
}

// Font is a parsed font together with where it came from.
type Font struct {
	Name string
	Path string
	SFNT *sfnt.Font
}

// Face returns a face at size points and 72 DPI, so one point is one pixel.
// Faces are not safe for concurrent use; create one per render.
func (f *Font) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(f.SFNT, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face %s at %.1fpt: %w", f.Name, size, err)
	}
	return face, nil
}

// Resolver picks the first usable candidate.
type Resolver struct {
	Candidates []string
	Dirs       []string
	Fallback   Fallback
}

// NewResolver returns a resolver over the default candidates and directories
// with the embedded fallback.
func NewResolver() *Resolver {
	return &Resolver{
		Candidates: DefaultCandidates(),
		Dirs:       DefaultDirs(),
		Fallback:   FallbackEmbedded,
	}
}

// Resolve walks the candidates in order. A candidate containing a path
// separator is read directly; a bare file name is searched for in Dirs,
// case-insensitively and recursively.
func (r *Resolver) Resolve() (*Font, error) {
	var tried []string
	for _, c := range r.Candidates {
		path, ok := r.locate(c)
		if !ok {
			tried = append(tried, c)
			continue
		}
		f, err := Load(path)
		if err != nil {
			tried = append(tried, fmt.Sprintf("%s (%v)", c, err))
			continue
		}
		return f, nil
	}

	switch r.Fallback {
	case FallbackNone:
		return nil, fmt.Errorf("%w: tried %s", ErrNoFont, strings.Join(tried, ", "))
	default:
		return Embedded()
	}
}

// Load parses the font file at path.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return &Font{Name: filepath.Base(path), Path: path, SFNT: parsed}, nil
}

// Embedded returns the bundled Go Italic font.
func Embedded() (*Font, error) {
	parsed, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	return &Font{Name: EmbeddedName, SFNT: parsed}, nil
}

func (r *Resolver) locate(candidate string) (string, bool) {
	if strings.ContainsAny(candidate, `/\`) {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, true
		}
		return "", false
	}

	for _, dir := range r.Dirs {
		if path, ok := findIn(dir, candidate); ok {
			return path, true
		}
	}
	return "", false
}

var errFound = errors.New("found")

func findIn(dir, name string) (string, bool) {
	var match string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, a missing root ends the walk.
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.EqualFold(d.Name(), name) {
			match = path
			return errFound
		}
		return nil
	})
	return match, errors.Is(err, errFound)
}

// Static always resolves to the same font. The API server resolves once at
// startup instead of searching the font directories on every request.
type Static struct {
	Font *Font
}

func (s Static) Resolve() (*Font, error) {
	if s.Font == nil {
		return nil, ErrNoFont
	}
	return s.Font, nil
}
