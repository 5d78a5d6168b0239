package stamper

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func TestSamplePoints(t *testing.T) {
	pts := samplePoints(image.Rect(100, 100, 200, 150))

	assert.Len(t, pts, 16)
	assert.Contains(t, pts, image.Pt(100, 90))
	assert.Contains(t, pts, image.Pt(200, 160))
	assert.Contains(t, pts, image.Pt(90, 125))
	assert.Contains(t, pts, image.Pt(210, 150))
}

func TestSampleBackground(t *testing.T) {
	paper := color.RGBA{250, 245, 230, 255}

	t.Run("uniform surroundings", func(t *testing.T) {
		img := uniform(400, 300, paper)
		assert.Equal(t, paper, SampleBackground(img, image.Rect(100, 100, 200, 150)))
	})

	t.Run("box content ignored", func(t *testing.T) {
		img := uniform(400, 300, paper)
		box := image.Rect(100, 100, 200, 150)
		draw.Draw(img, box, &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)
		assert.Equal(t, paper, SampleBackground(img, box))
	})

	t.Run("average of two halves", func(t *testing.T) {
		img := uniform(400, 300, color.RGBA{200, 200, 200, 255})
		// Left half darker: left edge and the left parts of top/bottom.
		draw.Draw(img, image.Rect(0, 0, 150, 300), &image.Uniform{color.RGBA{100, 100, 100, 255}}, image.Point{}, draw.Src)
		got := SampleBackground(img, image.Rect(100, 100, 200, 150))
		assert.Less(t, got.R, uint8(200))
		assert.Greater(t, got.R, uint8(100))
		assert.Equal(t, uint8(255), got.A)
	})

	t.Run("no samples inside image", func(t *testing.T) {
		img := uniform(20, 20, paper)
		assert.Equal(t, fallbackBackground, SampleBackground(img, img.Bounds()))
	})
}

func TestClearRegion(t *testing.T) {
	paper := color.RGBA{250, 245, 230, 255}
	img := uniform(400, 300, paper)
	box := image.Rect(100, 100, 200, 150)
	draw.Draw(img, box, &image.Uniform{color.RGBA{10, 10, 10, 255}}, image.Point{}, draw.Src)

	bg := ClearRegion(img, box)

	assert.Equal(t, paper, bg)
	for _, p := range []image.Point{{100, 100}, {150, 125}, {199, 149}} {
		assert.Equal(t, paper, img.RGBAAt(p.X, p.Y))
	}
}
