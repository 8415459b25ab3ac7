// Package boxify converts raster images into grids of Unicode block-drawing
// glyphs that approximate the image on a monospaced text surface. An image is
// partitioned into fixed-size pixel blocks, each block's sub-pixel pattern and
// brightness are packed into a lookup index, and the index is resolved to a
// glyph through a palette. Per-block terminal colors can be attached with a
// color cell compression colorizer.
package boxify

import (
	"image"
)

// Color represents a 4-channel RGBA color with 8-bit channels, where each
// channel ranges from 0 to 255.
type Color struct {
	R, G, B, A uint8
}

// distanceSquared calculates the squared Euclidean distance between two
// colors in the RGB color space. Alpha is ignored.
func (c Color) distanceSquared(other Color) int {
	dr := int(c.R) - int(other.R)
	dg := int(c.G) - int(other.G)
	db := int(c.B) - int(other.B)
	return dr*dr + dg*dg + db*db
}

// luminance calculates the NTSC luminance of a color from its raw RGB
// channels, yielding a value in [0, 255].
func (c Color) luminance() float64 {
	return 0.3*float64(c.R) + 0.59*float64(c.G) + 0.11*float64(c.B)
}

// PixelSource provides pixel access to an image for the duration of one
// render pass. At is only valid for 0 <= x < Width() and 0 <= y < Height().
// Implementations must not change while a render is in progress.
type PixelSource interface {
	Width() int
	Height() int
	At(x, y int) Color
}

// ImageSource adapts a standard library image.Image to the PixelSource
// interface. Channel values are reduced from the 16-bit range returned by
// image/color to 8 bits.
type ImageSource struct {
	img    image.Image
	bounds image.Rectangle
}

// NewImageSource returns an ImageSource reading from img. Coordinates are
// translated so that (0, 0) addresses the top-left pixel regardless of the
// image's bounds offset.
func NewImageSource(img image.Image) *ImageSource {
	return &ImageSource{img: img, bounds: img.Bounds()}
}

func (s *ImageSource) Width() int  { return s.bounds.Dx() }
func (s *ImageSource) Height() int { return s.bounds.Dy() }

func (s *ImageSource) At(x, y int) Color {
	r, g, b, a := s.img.At(s.bounds.Min.X+x, s.bounds.Min.Y+y).RGBA()
	return Color{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}
