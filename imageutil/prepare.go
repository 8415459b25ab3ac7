package imageutil

import (
	"image"

	"github.com/disintegration/gift"
)

// DefaultCellAspect is the height/width ratio of a typical terminal cell.
// Output scaled with this value keeps the image's proportions when each
// block becomes one character cell.
const DefaultCellAspect = 2.0

// Prepare resizes an image so that it renders to the given number of text
// columns with blockWidth x blockHeight pixel blocks, compensating for the
// cell aspect ratio, and applies a mild sharpen to keep detail through the
// downscale. cellAspect <= 0 selects DefaultCellAspect.
func Prepare(img image.Image, columns, blockWidth, blockHeight int, cellAspect float64) *image.RGBA {
	if cellAspect <= 0 {
		cellAspect = DefaultCellAspect
	}

	srcAspect := float64(img.Bounds().Dx()) / float64(img.Bounds().Dy())
	rows := int(float64(columns) / srcAspect / cellAspect)
	if rows < 1 {
		rows = 1
	}

	g := gift.New(
		gift.Resize(columns*blockWidth, rows*blockHeight, gift.LanczosResampling),
		gift.UnsharpMask(0.6, 1.0, 0.05),
	)
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// Grayscale returns a grayscale copy of the image, useful ahead of shaded
// palettes where hue carries no information.
func Grayscale(img image.Image) *image.RGBA {
	g := gift.New(gift.Grayscale())
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// Invert returns a copy of the image with colors inverted, for rendering
// dark-on-light sources to a dark terminal.
func Invert(img image.Image) *image.RGBA {
	g := gift.New(gift.Invert())
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
