package boxify

import (
	"bytes"
	"strings"
	"testing"
)

var (
	white = Color{255, 255, 255, 255}
	black = Color{0, 0, 0, 255}
)

// gridSource is a PixelSource backed by a row-major color grid.
type gridSource struct {
	rows [][]Color
}

func sourceFromRows(rows ...[]Color) *gridSource {
	return &gridSource{rows: rows}
}

// uniformSource returns a w x h source filled with one color.
func uniformSource(w, h int, c Color) *gridSource {
	rows := make([][]Color, h)
	for y := range rows {
		rows[y] = make([]Color, w)
		for x := range rows[y] {
			rows[y][x] = c
		}
	}
	return &gridSource{rows: rows}
}

func (s *gridSource) Width() int {
	if len(s.rows) == 0 {
		return 0
	}
	return len(s.rows[0])
}

func (s *gridSource) Height() int { return len(s.rows) }

func (s *gridSource) At(x, y int) Color { return s.rows[y][x] }

func TestRenderFullColumn(t *testing.T) {
	t.Parallel()

	// A 1x2 all-white source with the half-block palette resolves to the
	// single all-set glyph.
	src := sourceFromRows([]Color{white}, []Color{white})
	out, err := NewRenderer(WithPalette(Halves)).Render(src)
	if err != nil {
		t.Fatal(err)
	}
	if out != "█\n" {
		t.Errorf("Render = %q, want %q", out, "█\n")
	}
}

func TestRenderSingleQuadrant(t *testing.T) {
	t.Parallel()

	// Only the top-left pixel is bright, so only bit 0 is set.
	src := sourceFromRows(
		[]Color{white, black},
		[]Color{black, black},
	)
	out, err := NewRenderer(WithPalette(Quadrants)).Render(src)
	if err != nil {
		t.Fatal(err)
	}
	if out != "▘\n" {
		t.Errorf("Render = %q, want %q", out, "▘\n")
	}
}

func TestRenderDegenerateSourceWithFrame(t *testing.T) {
	t.Parallel()

	// A 0x0 source renders zero body rows: just the top border followed
	// immediately by the bottom border.
	out, err := NewRenderer(WithPalette(Quadrants), WithFrame(BoxFrame)).Render(sourceFromRows())
	if err != nil {
		t.Fatal(err)
	}
	if out != "┌┐\n└┘\n" {
		t.Errorf("Render = %q, want %q", out, "┌┐\n└┘\n")
	}
}

func TestRenderZeroWidthSource(t *testing.T) {
	t.Parallel()

	// Zero width with nonzero height is just as degenerate as 0x0: no
	// body rows are emitted, with or without a frame.
	src := sourceFromRows([]Color{}, []Color{}, []Color{}, []Color{})
	if src.Width() != 0 || src.Height() != 4 {
		t.Fatalf("Source is %dx%d, want 0x4", src.Width(), src.Height())
	}

	out, err := NewRenderer(WithPalette(Quadrants)).Render(src)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("Render = %q, want empty output", out)
	}

	out, err = NewRenderer(WithPalette(Quadrants), WithFrame(BoxFrame)).Render(src)
	if err != nil {
		t.Fatal(err)
	}
	if out != "┌┐\n└┘\n" {
		t.Errorf("Render = %q, want %q", out, "┌┐\n└┘\n")
	}

	// Row hooks must not fire for rows that are never rendered.
	rec := &recordingColorizer{}
	if _, err := NewRenderer(WithPalette(Quadrants), WithColorizer(rec)).Render(src); err != nil {
		t.Fatal(err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("Colorizer hooks fired on a zero-width source: %v", rec.calls)
	}
}

func TestRenderDegenerateSourceWithoutFrame(t *testing.T) {
	t.Parallel()

	out, err := NewRenderer().Render(sourceFromRows())
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("Render = %q, want empty output", out)
	}
}

func TestRenderDeterminism(t *testing.T) {
	t.Parallel()

	src := sourceFromRows(
		[]Color{white, black, white, {200, 30, 40, 255}},
		[]Color{black, white, {10, 250, 90, 255}, black},
	)

	render := func() string {
		r := NewRenderer(WithPalette(Quadrants), WithColorizer(NewCCC()))
		out, err := r.Render(src)
		if err != nil {
			t.Fatal(err)
		}
		return out
	}

	first := render()
	for i := 0; i < 5; i++ {
		if got := render(); got != first {
			t.Fatalf("Render %d differs:\n%q\n%q", i, got, first)
		}
	}
}

func TestBitToggleConvention(t *testing.T) {
	t.Parallel()

	// Setting exactly sub-pixel (dx, dy) must produce index
	// 1 << (blockWidth*dy + dx), verified through the glyph that index
	// resolves to.
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			rows := [][]Color{
				{black, black},
				{black, black},
			}
			rows[dy][dx] = white
			out, err := NewRenderer(WithPalette(Quadrants)).Render(sourceFromRows(rows...))
			if err != nil {
				t.Fatal(err)
			}
			want, err := Quadrants.Glyph(1 << (2*dy + dx))
			if err != nil {
				t.Fatal(err)
			}
			if out != want+"\n" {
				t.Errorf("Sub-pixel (%d,%d): Render = %q, want %q", dx, dy, out, want+"\n")
			}
		}
	}
}

func TestRenderPartialEdgeBlocks(t *testing.T) {
	t.Parallel()

	// 3x3 all-white with 2x2 blocks: the right column and bottom row of
	// blocks are partial, and out-of-bounds offsets are skipped.
	out, err := NewRenderer(WithPalette(Quadrants)).Render(uniformSource(3, 3, white))
	if err != nil {
		t.Fatal(err)
	}
	want := "█▌\n▀▘\n"
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestEndpointGlyphOverrides(t *testing.T) {
	t.Parallel()

	const nbsp = " "

	out, err := NewRenderer(WithPalette(Quadrants), WithEmptyGlyph(nbsp)).
		Render(uniformSource(2, 2, black))
	if err != nil {
		t.Fatal(err)
	}
	if out != nbsp+"\n" {
		t.Errorf("Empty override: Render = %q, want %q", out, nbsp+"\n")
	}

	out, err = NewRenderer(WithPalette(Quadrants), WithFullGlyph("X")).
		Render(uniformSource(2, 2, white))
	if err != nil {
		t.Fatal(err)
	}
	if out != "X\n" {
		t.Errorf("Full override: Render = %q, want %q", out, "X\n")
	}

	// Overrides must not leak onto interior indices.
	src := sourceFromRows(
		[]Color{white, black},
		[]Color{black, black},
	)
	out, err = NewRenderer(WithPalette(Quadrants), WithEmptyGlyph(nbsp), WithFullGlyph("X")).
		Render(src)
	if err != nil {
		t.Fatal(err)
	}
	if out != "▘\n" {
		t.Errorf("Interior index: Render = %q, want %q", out, "▘\n")
	}
}

func TestRenderWithFrame(t *testing.T) {
	t.Parallel()

	out, err := NewRenderer(WithPalette(Halves), WithFrame(BoxFrame)).
		Render(uniformSource(2, 2, white))
	if err != nil {
		t.Fatal(err)
	}
	want := "┌──┐\n│██│\n└──┘\n"
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestFramePrefixSuffix(t *testing.T) {
	t.Parallel()

	frame := &Frame{
		TopLeft: "+", Top: "-", TopRight: "+",
		Left: "|", Right: "|",
		BottomLeft: "+", Bottom: "-", BottomRight: "+",
		Prefix: "> ", Suffix: " <",
	}
	out, err := NewRenderer(WithPalette(Halves), WithFrame(frame)).
		Render(sourceFromRows([]Color{white}, []Color{white}))
	if err != nil {
		t.Fatal(err)
	}
	want := "> +-+ <\n> |█| <\n> +-+ <\n"
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestRenderToWriterSink(t *testing.T) {
	t.Parallel()

	src := uniformSource(4, 4, white)
	r := NewRenderer(WithPalette(Quadrants))

	direct, err := r.Render(src)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	if err := r.RenderTo(src, sink); err != nil {
		t.Fatal(err)
	}
	if err := sink.Err(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != direct {
		t.Errorf("Streaming output %q differs from in-memory output %q",
			buf.String(), direct)
	}
}

func TestShadedRender(t *testing.T) {
	t.Parallel()

	// Uniform mid-gray with the 1x1 shade palette: brightness just above
	// the set threshold lands in an interior bucket.
	gray := Color{200, 200, 200, 255}
	out, err := NewRenderer(WithPalette(Blocks)).Render(uniformSource(2, 1, gray))
	if err != nil {
		t.Fatal(err)
	}
	// brightness = (255/256)*(200/255) = 200/256 ≈ 0.78, bucket 3 of 4.
	want := "▓▓\n"
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}

	out, err = NewRenderer(WithPalette(Blocks)).Render(uniformSource(2, 1, black))
	if err != nil {
		t.Fatal(err)
	}
	if out != "  \n" {
		t.Errorf("Black render = %q, want %q", out, "  \n")
	}
}

// recordingColorizer appends hook names to a log, to pin down invocation
// order.
type recordingColorizer struct {
	calls []string
}

func (r *recordingColorizer) RowStart(*RenderContext) { r.calls = append(r.calls, "rowStart") }
func (r *recordingColorizer) RowEnd(*RenderContext)   { r.calls = append(r.calls, "rowEnd") }
func (r *recordingColorizer) BlockOpen(*RenderContext) {
	r.calls = append(r.calls, "blockOpen")
}
func (r *recordingColorizer) ProcessSubPixel(_ *RenderContext, dx, dy int, _ Color, _ bool, _ float64) PixelVote {
	r.calls = append(r.calls, "sub")
	return VoteNone
}
func (r *recordingColorizer) BeforeGlyph(*RenderContext) { r.calls = append(r.calls, "beforeGlyph") }
func (r *recordingColorizer) AfterGlyph(*RenderContext)  { r.calls = append(r.calls, "afterGlyph") }
func (r *recordingColorizer) BlockClose(*RenderContext)  { r.calls = append(r.calls, "blockClose") }

func TestHookInvocationOrder(t *testing.T) {
	t.Parallel()

	rec := &recordingColorizer{}
	_, err := NewRenderer(WithPalette(Halves), WithColorizer(rec)).
		Render(uniformSource(2, 2, white))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"rowStart",
		"blockOpen", "sub", "sub", "beforeGlyph", "afterGlyph", "blockClose",
		"blockOpen", "sub", "sub", "beforeGlyph", "afterGlyph", "blockClose",
		"rowEnd",
	}
	if strings.Join(rec.calls, ",") != strings.Join(want, ",") {
		t.Errorf("Hook order:\n got %v\nwant %v", rec.calls, want)
	}
}

// voteColorizer returns a fixed vote from ProcessSubPixel and does nothing
// else.
type voteColorizer struct {
	vote PixelVote
}

func (v voteColorizer) RowStart(*RenderContext)  {}
func (v voteColorizer) RowEnd(*RenderContext)    {}
func (v voteColorizer) BlockOpen(*RenderContext) {}
func (v voteColorizer) ProcessSubPixel(*RenderContext, int, int, Color, bool, float64) PixelVote {
	return v.vote
}
func (v voteColorizer) BeforeGlyph(*RenderContext) {}
func (v voteColorizer) AfterGlyph(*RenderContext)  {}
func (v voteColorizer) BlockClose(*RenderContext)  {}

func TestSubPixelVoteOverrides(t *testing.T) {
	t.Parallel()

	src := sourceFromRows(
		[]Color{white, black},
		[]Color{black, white},
	)

	testCases := []struct {
		name string
		vote PixelVote
		want string
	}{
		{"force set", VoteSet, "█\n"},
		{"force unset", VoteUnset, " \n"},
		{"no opinion keeps analyzer result", VoteNone, "▚\n"},
		// An out-of-domain vote is "no opinion", not an error.
		{"malformed vote is ignored", PixelVote(42), "▚\n"},
		{"negative vote is ignored", PixelVote(-3), "▚\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := NewRenderer(
				WithPalette(Quadrants),
				WithColorizer(voteColorizer{vote: tc.vote}),
			).Render(src)
			if err != nil {
				t.Fatal(err)
			}
			if out != tc.want {
				t.Errorf("Render = %q, want %q", out, tc.want)
			}
		})
	}
}

func TestRenderAllBrailleColumnHeights(t *testing.T) {
	t.Parallel()

	// Fill a 2x4 block from the top: each additional bright row adds the
	// two corresponding dots.
	for filled := 0; filled <= 4; filled++ {
		rows := make([][]Color, 4)
		bits := 0
		for y := 0; y < 4; y++ {
			c := black
			if y < filled {
				c = white
				bits |= 0b11 << (2 * y)
			}
			rows[y] = []Color{c, c}
		}
		out, err := NewRenderer(WithPalette(Braille)).Render(sourceFromRows(rows...))
		if err != nil {
			t.Fatal(err)
		}
		want, err := Braille.Glyph(bits)
		if err != nil {
			t.Fatal(err)
		}
		if out != want+"\n" {
			t.Errorf("%d filled rows: Render = %q, want %q", filled, out, want+"\n")
		}
	}
}
