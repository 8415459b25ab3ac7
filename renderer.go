package boxify

// RenderContext carries the shared mutable iteration state for one render
// pass. Exactly one context exists per render invocation; it is threaded
// through every hook call and discarded when the render returns. Contexts
// are never shared across concurrent renders.
type RenderContext struct {
	// X, Y hold the top-left pixel origin of the block currently being
	// rendered.
	X, Y int

	Source    PixelSource
	Palette   *Palette
	Sink      Sink
	Frame     *Frame
	Colorizer Colorizer

	// EmptyGlyph and FullGlyph, when non-empty, replace the palette's
	// endpoint glyphs at index 0 and Len()-1.
	EmptyGlyph string
	FullGlyph  string

	// Columns is the frame content width in blocks.
	Columns int
}

// Renderer converts a pixel source into block-glyph text. A renderer built
// without a colorizer is stateless and safe for concurrent use; with a
// colorizer configured, the colorizer's per-render state restricts the
// renderer to one render pass at a time.
type Renderer struct {
	palette    *Palette
	analyzer   PixelAnalyzer
	colorizer  Colorizer
	frame      *Frame
	emptyGlyph string
	fullGlyph  string
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a Renderer with the given options. Defaults: the
// Quadrants palette, the DefaultAnalyzer, no colorizer and no frame.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		palette:  Quadrants,
		analyzer: DefaultAnalyzer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithPalette sets the glyph palette.
func WithPalette(p *Palette) RendererOption {
	return func(r *Renderer) { r.palette = p }
}

// WithAnalyzer sets the pixel analyzer deciding sub-pixel brightness and
// set-ness.
func WithAnalyzer(a PixelAnalyzer) RendererOption {
	return func(r *Renderer) { r.analyzer = a }
}

// WithColorizer sets the colorizer hooks invoked around every block.
func WithColorizer(c Colorizer) RendererOption {
	return func(r *Renderer) { r.colorizer = c }
}

// WithFrame draws the given border decoration around the output.
func WithFrame(f *Frame) RendererOption {
	return func(r *Renderer) { r.frame = f }
}

// WithEmptyGlyph replaces the glyph for all-unset blocks, e.g. with a
// non-breaking space instead of the palette's literal space.
func WithEmptyGlyph(glyph string) RendererOption {
	return func(r *Renderer) { r.emptyGlyph = glyph }
}

// WithFullGlyph replaces the glyph for all-set blocks.
func WithFullGlyph(glyph string) RendererOption {
	return func(r *Renderer) { r.fullGlyph = glyph }
}

// Render renders the source into a string. Output is byte-for-byte
// reproducible for a fixed source, palette and hook set.
func (r *Renderer) Render(src PixelSource) (string, error) {
	var sink StringSink
	if err := r.RenderTo(src, &sink); err != nil {
		return "", err
	}
	return sink.String(), nil
}

// RenderTo renders the source into the given sink. On error the sink is
// left partially written and its content should be discarded.
func (r *Renderer) RenderTo(src PixelSource, sink Sink) error {
	p := r.palette
	ctx := &RenderContext{
		Source:     src,
		Palette:    p,
		Sink:       sink,
		Frame:      r.frame,
		Colorizer:  r.colorizer,
		EmptyGlyph: r.emptyGlyph,
		FullGlyph:  r.fullGlyph,
		Columns:    (src.Width() + p.BlockWidth() - 1) / p.BlockWidth(),
	}

	if r.frame != nil {
		r.frame.writeTop(sink, ctx.Columns)
	}

	// A source with zero width or height performs zero iterations and
	// produces only the frame borders.
	height := src.Height()
	if src.Width() == 0 {
		height = 0
	}

	for y := 0; y < height; y += p.BlockHeight() {
		ctx.Y = y
		if r.frame != nil {
			sink.Append(r.frame.Prefix + r.frame.Left)
		}
		if r.colorizer != nil {
			r.colorizer.RowStart(ctx)
		}
		for x := 0; x < src.Width(); x += p.BlockWidth() {
			ctx.X = x
			if r.colorizer != nil {
				r.colorizer.BlockOpen(ctx)
			}
			glyph, err := r.renderBlock(ctx)
			if err != nil {
				return err
			}
			if r.colorizer != nil {
				r.colorizer.BeforeGlyph(ctx)
			}
			sink.Append(glyph)
			if r.colorizer != nil {
				r.colorizer.AfterGlyph(ctx)
				r.colorizer.BlockClose(ctx)
			}
		}
		if r.colorizer != nil {
			r.colorizer.RowEnd(ctx)
		}
		if r.frame != nil {
			sink.Append(r.frame.Right + r.frame.Suffix)
		}
		sink.AppendLine()
	}

	if r.frame != nil {
		r.frame.writeBottom(sink, ctx.Columns)
	}
	return nil
}

// renderBlock samples the block at (ctx.X, ctx.Y), builds the palette index
// and resolves it to a glyph.
//
// Sub-pixel offsets outside the source bounds are skipped rather than
// zero-filled; the brightness average still divides by the full block area,
// which biases partial blocks at the right and bottom edges toward fewer
// samples. That asymmetry is the documented edge policy.
func (r *Renderer) renderBlock(ctx *RenderContext) (string, error) {
	p := ctx.Palette
	src := ctx.Source

	var bits int
	var total float64
	for dy := 0; dy < p.BlockHeight(); dy++ {
		if ctx.Y+dy >= src.Height() {
			break
		}
		for dx := 0; dx < p.BlockWidth(); dx++ {
			if ctx.X+dx >= src.Width() {
				continue
			}
			c := src.At(ctx.X+dx, ctx.Y+dy)
			brightness := r.analyzer.Brightness(c)
			set := r.analyzer.IsSet(c)
			if ctx.Colorizer != nil {
				switch ctx.Colorizer.ProcessSubPixel(ctx, dx, dy, c, set, brightness) {
				case VoteSet:
					set = true
				case VoteUnset:
					set = false
				}
				// Out-of-domain votes deliberately fall through
				// unchanged; "no opinion" is a valid response.
			}
			total += brightness
			if set {
				bits |= 1 << (p.BlockWidth()*dy + dx)
			}
		}
	}

	avg := total / float64(p.BlockWidth()*p.BlockHeight())
	return r.resolveGlyph(p.shadeIndex(bits, avg))
}

// resolveGlyph maps the final index through the endpoint overrides and the
// palette table.
func (r *Renderer) resolveGlyph(index int) (string, error) {
	if index == 0 && r.emptyGlyph != "" {
		return r.emptyGlyph, nil
	}
	if index == r.palette.Len()-1 && r.fullGlyph != "" {
		return r.fullGlyph, nil
	}
	return r.palette.Glyph(index)
}
