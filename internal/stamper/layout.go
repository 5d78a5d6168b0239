package stamper

import (
	"image"

	"golang.org/x/image/math/fixed"
)

// Padding is the distance kept between the text and the box edges.
type Padding struct {
	Left   int
	Bottom int
}

// Placement is where a string ends up inside its box.
type Placement struct {
	// Dot is the baseline origin handed to font.Drawer.
	Dot image.Point
	// Glyphs is the ink bounding box in image coordinates.
	Glyphs image.Rectangle
}

// Place left-aligns text in box and sits its ink bounding box on the line
// pad.Bottom pixels above the box bottom. bounds is the string's bounding
// box relative to the dot, as returned by font.BoundString.
//
// Text taller than the box is pushed down so it never starts above box.Min.Y.
func Place(box image.Rectangle, bounds fixed.Rectangle26_6, pad Padding) Placement {
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()

	dot := image.Point{
		X: box.Min.X + pad.Left,
		Y: box.Max.Y - pad.Bottom - maxY,
	}
	if dot.Y+minY < box.Min.Y {
		dot.Y = box.Min.Y - minY
	}

	return Placement{
		Dot:    dot,
		Glyphs: image.Rect(dot.X+minX, dot.Y+minY, dot.X+maxX, dot.Y+maxY),
	}
}
