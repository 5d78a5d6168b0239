package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/abaddouh/igazolo/internal/output"
	"github.com/abaddouh/igazolo/internal/stamper"
)

// Writes a blank stand-in for igazolas.jpg with the date boxes outlined, so
// the stamper can be tried without the real scanned form.
func main() {
	width := flag.Int("width", 3300, "Width of the placeholder image")
	height := flag.Int("height", 2300, "Height of the placeholder image")
	outputPath := flag.String("output", "igazolas.jpg", "Output path for the placeholder image")
	flag.Parse()

	img := image.NewRGBA(image.Rect(0, 0, *width, *height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{250, 248, 242, 255}}, image.Point{}, draw.Src)

	for _, r := range stamper.DefaultRegions() {
		if !r.Box.In(img.Bounds()) {
			log.Fatalf("Region %s %v does not fit a %dx%d image", r.Name, r.Box, *width, *height)
		}
		outline(img, r.Box, color.RGBA{200, 200, 200, 255})
		addLabel(img, r.Box.Min.X, r.Box.Min.Y-8, r.Name)
	}

	if err := output.WriteJPEG(*outputPath, img, 95); err != nil {
		log.Fatalf("Error writing placeholder image: %v", err)
	}

	log.Printf("Placeholder image created: %s", *outputPath)
}

func outline(img *image.RGBA, box image.Rectangle, col color.RGBA) {
	for x := box.Min.X; x < box.Max.X; x++ {
		img.SetRGBA(x, box.Min.Y-1, col)
		img.SetRGBA(x, box.Max.Y, col)
	}
	for y := box.Min.Y; y < box.Max.Y; y++ {
		img.SetRGBA(box.Min.X-1, y, col)
		img.SetRGBA(box.Max.X, y, col)
	}
}

func addLabel(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{50, 50, 50, 255}
	point := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  point,
	}
	d.DrawString(label)
}
