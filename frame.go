package boxify

import "strings"

// Frame decorates rendered output with a border. The top and bottom borders
// are sized to the content width in blocks; Left and Right bracket every
// content row. Prefix and Suffix, when set, are applied to every emitted
// line, which helps when embedding output inside another text format.
// Frames are purely textual and never interact with pixel or color logic.
type Frame struct {
	TopLeft, Top, TopRight          string
	Left, Right                     string
	BottomLeft, Bottom, BottomRight string

	Prefix, Suffix string
}

// writeTop writes the top border line for the given content width.
func (f *Frame) writeTop(sink Sink, columns int) {
	sink.Append(f.Prefix + f.TopLeft + strings.Repeat(f.Top, columns) + f.TopRight + f.Suffix)
	sink.AppendLine()
}

// writeBottom writes the bottom border line for the given content width.
func (f *Frame) writeBottom(sink Sink, columns int) {
	sink.Append(f.Prefix + f.BottomLeft + strings.Repeat(f.Bottom, columns) + f.BottomRight + f.Suffix)
	sink.AppendLine()
}

// Predefined frames.
var (
	// BoxFrame draws a single-line box around the output.
	BoxFrame = &Frame{
		TopLeft: "┌", Top: "─", TopRight: "┐",
		Left: "│", Right: "│",
		BottomLeft: "└", Bottom: "─", BottomRight: "┘",
	}

	// ASCIIFrame draws a plain ASCII box for surfaces without box-drawing
	// characters.
	ASCIIFrame = &Frame{
		TopLeft: "+", Top: "-", TopRight: "+",
		Left: "|", Right: "|",
		BottomLeft: "+", Bottom: "-", BottomRight: "+",
	}
)
