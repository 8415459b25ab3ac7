package boxify

import "fmt"

// LegacyColorEntry pairs a reference color with its numeric terminal
// foreground code. The matching background code is Code+10 by convention, so
// foreground 31 (red) implies background 41.
type LegacyColorEntry struct {
	Color Color
	Code  int
}

// LegacyPalette is an ordered collection of exactly 16 terminal colors: the
// 8 base colors (codes 30-37) and their bright variants (codes 90-97).
// Instances are immutable and safe for concurrent use.
type LegacyPalette struct {
	entries [16]LegacyColorEntry
}

// NewLegacyPalette constructs a 16-color terminal palette. Any other entry
// count is a construction error.
func NewLegacyPalette(entries []LegacyColorEntry) (*LegacyPalette, error) {
	if len(entries) != 16 {
		return nil, fmt.Errorf("boxify: legacy palette requires exactly 16 entries, got %d",
			len(entries))
	}
	p := &LegacyPalette{}
	copy(p.entries[:], entries)
	return p, nil
}

func mustLegacyPalette(entries []LegacyColorEntry) *LegacyPalette {
	p, err := NewLegacyPalette(entries)
	if err != nil {
		panic(err)
	}
	return p
}

// Entry returns the entry at the given index. An index outside [0, 16)
// signals a calculation defect upstream and panics with a descriptive
// message.
func (p *LegacyPalette) Entry(index int) LegacyColorEntry {
	if index < 0 || index >= len(p.entries) {
		panic(fmt.Sprintf("boxify: legacy palette index %d out of range [0, %d)",
			index, len(p.entries)))
	}
	return p.entries[index]
}

// Nearest returns the index of the entry closest to c by squared Euclidean
// distance in RGB space. When two entries are equally close the lower index
// wins.
func (p *LegacyPalette) Nearest(c Color) int {
	best := 0
	bestDist := c.distanceSquared(p.entries[0].Color)
	for i := 1; i < len(p.entries); i++ {
		if d := c.distanceSquared(p.entries[i].Color); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func rgb(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// VGAPalette holds the canonical VGA colors for the 16 terminal codes.
var VGAPalette = mustLegacyPalette([]LegacyColorEntry{
	{rgb(0x000000), 30}, // black
	{rgb(0xAA0000), 31}, // red
	{rgb(0x00AA00), 32}, // green
	{rgb(0xAA5500), 33}, // yellow (brown)
	{rgb(0x0000AA), 34}, // blue
	{rgb(0xAA00AA), 35}, // magenta
	{rgb(0x00AAAA), 36}, // cyan
	{rgb(0xAAAAAA), 37}, // white
	{rgb(0x555555), 90}, // bright black
	{rgb(0xFF5555), 91}, // bright red
	{rgb(0x55FF55), 92}, // bright green
	{rgb(0xFFFF55), 93}, // bright yellow
	{rgb(0x5555FF), 94}, // bright blue
	{rgb(0xFF55FF), 95}, // bright magenta
	{rgb(0x55FFFF), 96}, // bright cyan
	{rgb(0xFFFFFF), 97}, // bright white
})

// TermPalette holds colors measured from a contemporary terminal emulator's
// default theme, which tends to match displayed output better than the VGA
// values.
var TermPalette = mustLegacyPalette([]LegacyColorEntry{
	{rgb(0x000000), 30},
	{rgb(0xF0524F), 31},
	{rgb(0x5C962C), 32},
	{rgb(0xA68A0D), 33},
	{rgb(0x3993D4), 34},
	{rgb(0xA771BF), 35},
	{rgb(0x00A3A3), 36},
	{rgb(0x808080), 37},
	{rgb(0x575959), 90},
	{rgb(0xFF4050), 91},
	{rgb(0x4FC414), 92},
	{rgb(0xE5BF00), 93},
	{rgb(0x1FB0FF), 94},
	{rgb(0xED7EED), 95},
	{rgb(0x00E5E5), 96},
	{rgb(0xFFFFFF), 97},
})
