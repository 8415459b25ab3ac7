package boxify

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// setThreshold is the brightness above which a sub-pixel counts as set.
const setThreshold = 0.5

// BrightnessFunc maps a color sample to a brightness value in [0, 1].
type BrightnessFunc func(Color) float64

// PixelAnalyzer decides whether a sampled color counts as a "set" sub-pixel
// and how bright it is. Implementations must be pure and side-effect free so
// they can be shared read-only across concurrent render passes.
type PixelAnalyzer interface {
	IsSet(c Color) bool
	Brightness(c Color) float64
}

// brightnessAnalyzer derives IsSet from a brightness function by comparing
// against setThreshold.
type brightnessAnalyzer struct {
	fn BrightnessFunc
}

func (a brightnessAnalyzer) Brightness(c Color) float64 { return a.fn(c) }
func (a brightnessAnalyzer) IsSet(c Color) bool         { return a.fn(c) > setThreshold }

// AnalyzerFromBrightness wraps a brightness function into a PixelAnalyzer
// whose IsSet is true when the brightness exceeds 0.5.
func AnalyzerFromBrightness(fn BrightnessFunc) PixelAnalyzer {
	return brightnessAnalyzer{fn: fn}
}

// ValueBrightness returns the HSV value component of a color, ignoring alpha.
func ValueBrightness(c Color) float64 {
	col := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	_, _, v := col.Hsv()
	return v
}

// AlphaBrightness returns the alpha channel scaled to [0, 1), ignoring the
// color channels entirely.
func AlphaBrightness(c Color) float64 {
	return float64(c.A) / 256.0
}

// AlphaValueBrightness composes AlphaBrightness and ValueBrightness, so a
// fully transparent pixel is never bright regardless of its color.
func AlphaValueBrightness(c Color) float64 {
	return AlphaBrightness(c) * ValueBrightness(c)
}

// Predefined analyzers. All are stateless and safe for concurrent use.
var (
	// DefaultAnalyzer weighs the HSV value of a color by its alpha.
	DefaultAnalyzer = AnalyzerFromBrightness(AlphaValueBrightness)

	// AlphaAnalyzer considers only the alpha channel, which suits images
	// where shape is carried by transparency rather than color.
	AlphaAnalyzer = AnalyzerFromBrightness(AlphaBrightness)

	// ValueAnalyzer considers only the HSV value of the color channels.
	ValueAnalyzer = AnalyzerFromBrightness(ValueBrightness)
)
