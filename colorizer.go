package boxify

// PixelVote is a colorizer's opinion on whether a sub-pixel should count as
// set for glyph-shape purposes. VoteNone leaves the analyzer's decision
// unchanged. Any out-of-domain value is treated the same as VoteNone.
type PixelVote int

const (
	VoteNone PixelVote = iota
	VoteSet
	VoteUnset
)

// Colorizer is the extension hook set invoked by the render pipeline. For
// each render pass the invocation order is fixed: RowStart once per row,
// then per block BlockOpen, ProcessSubPixel for every in-bounds sub-pixel,
// BeforeGlyph, AfterGlyph and BlockClose, then RowEnd. Implementations must
// tolerate partial blocks at image edges and renders with zero sub-pixels.
//
// Colorizers are deliberately stateful and reused sequentially across one
// render pass; an instance must not be shared by concurrent renders.
type Colorizer interface {
	RowStart(ctx *RenderContext)
	RowEnd(ctx *RenderContext)
	BlockOpen(ctx *RenderContext)
	ProcessSubPixel(ctx *RenderContext, dx, dy int, c Color, isSet bool, brightness float64) PixelVote
	BeforeGlyph(ctx *RenderContext)
	AfterGlyph(ctx *RenderContext)
	BlockClose(ctx *RenderContext)
}

// ColorTotals accumulates running sums of the RGB channels and a sample
// count for one luminance cluster. Reset once per block.
type ColorTotals struct {
	R, G, B int
	Count   int
}

func (t *ColorTotals) add(c Color) {
	t.R += int(c.R)
	t.G += int(c.G)
	t.B += int(c.B)
	t.Count++
}

// mean returns the average accumulated color. The mean of zero samples is
// defined as pure black.
func (t *ColorTotals) mean() Color {
	if t.Count == 0 {
		return Color{A: 255}
	}
	return Color{
		R: uint8(t.R / t.Count),
		G: uint8(t.G / t.Count),
		B: uint8(t.B / t.Count),
		A: 255,
	}
}

func (t *ColorTotals) reset() { *t = ColorTotals{} }

// CCC attaches per-block terminal colors using a color cell compression
// scheme: the sub-pixels of a block are split into two clusters around the
// block's average NTSC luminance, each cluster's mean color becomes the
// block's foreground respectively background, and the brighter cluster also
// votes its sub-pixels "set" so that glyph shape follows brightness.
//
// With a legacy palette configured the cluster means are matched to the
// nearest of the 16 terminal colors; otherwise 24-bit color codes are
// emitted directly. Consecutive identical codes within a row are emitted
// only once.
//
// A CCC instance carries per-render state and must not be shared across
// concurrent render passes.
type CCC struct {
	legacy *LegacyPalette // nil emits 24-bit color

	lum    []float64 // per-offset luminance, index (blockWidth*dy)+dx
	avgLum float64

	above ColorTotals // cluster at or above average luminance
	below ColorTotals

	lastFg, lastBg string

	// matchCache memoizes legacy palette matches; cluster means repeat
	// heavily in flat image regions.
	matchCache map[Color]int
}

// NewCCC returns a colorizer emitting 24-bit ANSI color codes.
func NewCCC() *CCC {
	return &CCC{}
}

// NewLegacyCCC returns a colorizer that matches block colors to the given
// 16-color terminal palette.
func NewLegacyCCC(palette *LegacyPalette) *CCC {
	return &CCC{
		legacy:     palette,
		matchCache: make(map[Color]int),
	}
}

// RowStart emits a color reset and restarts the per-row code
// de-duplication.
func (c *CCC) RowStart(ctx *RenderContext) {
	c.lastFg = ""
	c.lastBg = ""
	ctx.Sink.Append(ResetColors)
}

// RowEnd emits a color reset so the line terminator runs in default colors.
func (c *CCC) RowEnd(ctx *RenderContext) {
	ctx.Sink.Append(ResetColors)
}

// BlockOpen computes the NTSC luminance of every in-bounds sub-pixel of the
// block at (ctx.X, ctx.Y) and the block's average luminance.
func (c *CCC) BlockOpen(ctx *RenderContext) {
	p := ctx.Palette
	if n := p.BlockWidth() * p.BlockHeight(); len(c.lum) < n {
		c.lum = make([]float64, n)
	}
	var total float64
	var samples int
	for dy := 0; dy < p.BlockHeight(); dy++ {
		if ctx.Y+dy >= ctx.Source.Height() {
			break
		}
		for dx := 0; dx < p.BlockWidth(); dx++ {
			if ctx.X+dx >= ctx.Source.Width() {
				continue
			}
			l := ctx.Source.At(ctx.X+dx, ctx.Y+dy).luminance()
			c.lum[p.BlockWidth()*dy+dx] = l
			total += l
			samples++
		}
	}
	if samples > 0 {
		c.avgLum = total / float64(samples)
	} else {
		c.avgLum = 0
	}
}

// ProcessSubPixel classifies a sub-pixel against the block's average
// luminance, accumulates its raw color into the matching cluster, and votes
// the classification back so brighter sub-pixels count as foreground for
// glyph-shape purposes too.
func (c *CCC) ProcessSubPixel(ctx *RenderContext, dx, dy int, col Color, isSet bool, brightness float64) PixelVote {
	if c.lum[ctx.Palette.BlockWidth()*dy+dx] >= c.avgLum {
		c.above.add(col)
		return VoteSet
	}
	c.below.add(col)
	return VoteUnset
}

// BeforeGlyph emits the block's foreground and background color codes,
// skipping any code identical to the one last emitted on the current row.
func (c *CCC) BeforeGlyph(ctx *RenderContext) {
	fg := c.foregroundCode(c.above.mean())
	bg := c.backgroundCode(c.below.mean())
	if fg != c.lastFg {
		ctx.Sink.Append(fg)
		c.lastFg = fg
	}
	if bg != c.lastBg {
		ctx.Sink.Append(bg)
		c.lastBg = bg
	}
}

// AfterGlyph is a no-op; the hook exists for colorizers that trail each
// glyph with their own control data.
func (c *CCC) AfterGlyph(ctx *RenderContext) {}

// BlockClose resets both cluster accumulators for the next block.
func (c *CCC) BlockClose(ctx *RenderContext) {
	c.above.reset()
	c.below.reset()
}

func (c *CCC) foregroundCode(mean Color) string {
	if c.legacy == nil {
		return foregroundRGB(mean)
	}
	return sgr(c.legacy.Entry(c.match(mean)).Code)
}

func (c *CCC) backgroundCode(mean Color) string {
	if c.legacy == nil {
		return backgroundRGB(mean)
	}
	return sgr(c.legacy.Entry(c.match(mean)).Code + 10)
}

func (c *CCC) match(col Color) int {
	if idx, ok := c.matchCache[col]; ok {
		return idx
	}
	idx := c.legacy.Nearest(col)
	c.matchCache[col] = idx
	return idx
}
