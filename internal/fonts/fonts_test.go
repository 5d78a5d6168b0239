package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

func writeFont(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		in      string
		want    Fallback
		wantErr bool
	}{
		{"", FallbackEmbedded, false},
		{"embedded", FallbackEmbedded, false},
		{" NONE ", FallbackNone, false},
		{"system", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFallback(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_FirstCandidateWins(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, filepath.Join(dir, "nested", "deeper", "Inkfree.TTF"), goregular.TTF)
	writeFont(t, filepath.Join(dir, "arial.ttf"), goitalic.TTF)

	r := &Resolver{
		Candidates: []string{"segoepr.ttf", "inkfree.ttf", "arial.ttf"},
		Dirs:       []string{filepath.Join(dir, "missing"), dir},
		Fallback:   FallbackNone,
	}

	f, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "Inkfree.TTF", f.Name)
	assert.Equal(t, filepath.Join(dir, "nested", "deeper", "Inkfree.TTF"), f.Path)
}

func TestResolve_SkipsBrokenFont(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, filepath.Join(dir, "segoepr.ttf"), []byte("not a font"))
	writeFont(t, filepath.Join(dir, "arial.ttf"), goregular.TTF)

	r := &Resolver{Candidates: []string{"segoepr.ttf", "arial.ttf"}, Dirs: []string{dir}, Fallback: FallbackNone}

	f, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "arial.ttf", f.Name)
}

func TestResolve_PathCandidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.ttf")
	writeFont(t, path, goitalic.TTF)

	r := &Resolver{Candidates: []string{path}, Fallback: FallbackNone}

	f, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
}

func TestResolve_Fallback(t *testing.T) {
	dir := t.TempDir()

	t.Run("embedded", func(t *testing.T) {
		r := &Resolver{Candidates: []string{"segoepr.ttf"}, Dirs: []string{dir}, Fallback: FallbackEmbedded}
		f, err := r.Resolve()
		require.NoError(t, err)
		assert.Equal(t, EmbeddedName, f.Name)
		assert.Empty(t, f.Path)
	})

	t.Run("none", func(t *testing.T) {
		r := &Resolver{Candidates: []string{"segoepr.ttf", "Inkfree.ttf"}, Dirs: []string{dir}, Fallback: FallbackNone}
		_, err := r.Resolve()
		require.ErrorIs(t, err, ErrNoFont)
		assert.Contains(t, err.Error(), "segoepr.ttf")
		assert.Contains(t, err.Error(), "Inkfree.ttf")
	})
}

func TestFontFace(t *testing.T) {
	f, err := Embedded()
	require.NoError(t, err)

	face, err := f.Face(100)
	require.NoError(t, err)
	defer face.Close()

	m := face.Metrics()
	assert.Greater(t, m.Ascent.Ceil(), 80)
	assert.Less(t, m.Ascent.Ceil(), 120)

	bounds, advance := font.BoundString(face, "25.12.05")
	assert.Positive(t, advance.Ceil())
	assert.Less(t, bounds.Min.Y.Floor(), 0)
}

func TestStatic(t *testing.T) {
	_, err := Static{}.Resolve()
	assert.ErrorIs(t, err, ErrNoFont)

	f, err := Embedded()
	require.NoError(t, err)
	got, err := Static{Font: f}.Resolve()
	require.NoError(t, err)
	assert.Same(t, f, got)
}
