package stamper

import (
	"image"
	"image/color"
	"image/draw"
)

const sampleOffset = 10

var fallbackBackground = color.RGBA{240, 240, 240, 255}

// samplePoints lists the pixels read around box: five along the top and
// bottom edges and three along the left and right edges, each sampleOffset
// pixels outside the box.
func samplePoints(box image.Rectangle) []image.Point {
	x1, y1, x2, y2 := box.Min.X, box.Min.Y, box.Max.X, box.Max.Y
	pts := make([]image.Point, 0, 16)
	for i := 0; i < 5; i++ {
		x := x1 + (x2-x1)*i/4
		pts = append(pts, image.Pt(x, y1-sampleOffset), image.Pt(x, y2+sampleOffset))
	}
	for i := 0; i < 3; i++ {
		y := y1 + (y2-y1)*i/2
		pts = append(pts, image.Pt(x1-sampleOffset, y), image.Pt(x2+sampleOffset, y))
	}
	return pts
}

// SampleBackground averages the template colour around box. Points that
// fall outside img are skipped; with nothing left a light grey is returned.
func SampleBackground(img image.Image, box image.Rectangle) color.RGBA {
	bounds := img.Bounds()
	var r, g, b, n uint32
	for _, p := range samplePoints(box) {
		if !p.In(bounds) {
			continue
		}
		c := color.RGBAModel.Convert(img.At(p.X, p.Y)).(color.RGBA)
		r += uint32(c.R)
		g += uint32(c.G)
		b += uint32(c.B)
		n++
	}
	if n == 0 {
		return fallbackBackground
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}

// ClearRegion fills box with the colour sampled around it, wiping any
// placeholder content in the template.
func ClearRegion(img draw.Image, box image.Rectangle) color.RGBA {
	bg := SampleBackground(img, box)
	draw.Draw(img, box, &image.Uniform{bg}, image.Point{}, draw.Src)
	return bg
}
