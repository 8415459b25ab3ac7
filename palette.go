package boxify

import (
	"fmt"
)

// Palette is an immutable lookup table mapping a block index to a glyph.
// A palette defines the pixel dimensions of one block and, for shaded
// palettes, how many brightness buckets the index space encodes.
//
// For binary palettes (ShadeLevels == 1) the table holds exactly
// 2^(BlockWidth*BlockHeight) glyphs and bit b of the index, at position
// (BlockWidth*dy)+dx, means the sub-pixel at relative offset (dx, dy) is set:
// row-major, top-to-bottom, left-to-right, with bit 0 at the top-left. Index
// 0 is the all-unset glyph and the last index is the all-set glyph.
//
// For shaded palettes (ShadeLevels > 1) the table holds
// (2^(BlockWidth*BlockHeight)-1)*ShadeLevels + 1 glyphs; see shadeIndex for
// the composition of the bit index with the quantized average brightness.
type Palette struct {
	blockWidth  int
	blockHeight int
	shadeLevels int
	glyphs      []string
}

// NewPalette constructs a palette and validates that the glyph table length
// matches the length implied by the block dimensions and shade levels. The
// table is copied; the returned palette is immutable and safe for concurrent
// use.
func NewPalette(blockWidth, blockHeight, shadeLevels int, glyphs []string) (*Palette, error) {
	if blockWidth < 1 || blockHeight < 1 {
		return nil, fmt.Errorf("boxify: block dimensions must be at least 1x1, got %dx%d",
			blockWidth, blockHeight)
	}
	if shadeLevels < 1 {
		return nil, fmt.Errorf("boxify: shade levels must be at least 1, got %d", shadeLevels)
	}
	want := paletteLength(blockWidth, blockHeight, shadeLevels)
	if len(glyphs) != want {
		return nil, fmt.Errorf(
			"boxify: glyph table has %d entries, %dx%d blocks with %d shade levels require exactly %d",
			len(glyphs), blockWidth, blockHeight, shadeLevels, want)
	}
	table := make([]string, len(glyphs))
	copy(table, glyphs)
	return &Palette{
		blockWidth:  blockWidth,
		blockHeight: blockHeight,
		shadeLevels: shadeLevels,
		glyphs:      table,
	}, nil
}

// paletteLength computes the glyph table length implied by the block
// dimensions and shade levels.
func paletteLength(blockWidth, blockHeight, shadeLevels int) int {
	combinations := 1 << (blockWidth * blockHeight)
	if shadeLevels == 1 {
		return combinations
	}
	return (combinations-1)*shadeLevels + 1
}

// mustPalette panics on a construction error. Reserved for the predefined
// package-level palettes whose tables are fixed at compile time.
func mustPalette(blockWidth, blockHeight, shadeLevels int, glyphs []string) *Palette {
	p, err := NewPalette(blockWidth, blockHeight, shadeLevels, glyphs)
	if err != nil {
		panic(err)
	}
	return p
}

// BlockWidth returns the pixel width of one block.
func (p *Palette) BlockWidth() int { return p.blockWidth }

// BlockHeight returns the pixel height of one block.
func (p *Palette) BlockHeight() int { return p.blockHeight }

// ShadeLevels returns the number of brightness buckets; 1 for binary
// palettes.
func (p *Palette) ShadeLevels() int { return p.shadeLevels }

// Len returns the number of glyphs in the table.
func (p *Palette) Len() int { return len(p.glyphs) }

// Glyph returns the glyph at the given index. An index outside [0, Len())
// signals a calculation defect upstream and yields an error; it is never
// clamped.
func (p *Palette) Glyph(index int) (string, error) {
	if index < 0 || index >= len(p.glyphs) {
		return "", fmt.Errorf("boxify: glyph index %d out of range [0, %d)",
			index, len(p.glyphs))
	}
	return p.glyphs[index], nil
}

// shadeIndex composes the bit-packed sub-pixel index with the block's average
// brightness into a final table index. For binary palettes the bit index is
// returned unchanged. For shaded palettes an all-unset block maps to 0 and
// any other bit index selects a run of ShadeLevels glyphs, addressed by the
// brightness bucket floor(avg*ShadeLevels) clamped to [1, ShadeLevels].
func (p *Palette) shadeIndex(bits int, avg float64) int {
	if p.shadeLevels == 1 {
		return bits
	}
	if bits == 0 {
		return 0
	}
	bucket := int(avg * float64(p.shadeLevels))
	if bucket < 1 {
		bucket = 1
	} else if bucket > p.shadeLevels {
		bucket = p.shadeLevels
	}
	return (bits-1)*p.shadeLevels + bucket
}

// Predefined palettes. Constructed once at package initialization and
// treated as immutable thereafter.
var (
	// Halves maps 1x2 blocks to the half-block elements.
	Halves = mustPalette(1, 2, 1, []string{
		" ", // 00: empty
		"▀", // 01: top
		"▄", // 10: bottom
		"█", // 11: full
	})

	// Quadrants maps 2x2 blocks to the quadrant block elements. Bit 0 is
	// the top-left sub-pixel, bit 1 top-right, bit 2 bottom-left, bit 3
	// bottom-right.
	Quadrants = mustPalette(2, 2, 1, []string{
		" ", // 0000: empty
		"▘", // 0001: top-left
		"▝", // 0010: top-right
		"▀", // 0011: upper half
		"▖", // 0100: bottom-left
		"▌", // 0101: left half
		"▞", // 0110: diagonal top-right / bottom-left
		"▛", // 0111: all but bottom-right
		"▗", // 1000: bottom-right
		"▚", // 1001: diagonal top-left / bottom-right
		"▐", // 1010: right half
		"▜", // 1011: all but bottom-left
		"▄", // 1100: lower half
		"▙", // 1101: all but top-right
		"▟", // 1110: all but top-left
		"█", // 1111: full
	})

	// Sextants maps 2x3 blocks to the Unicode 13 "Symbols for Legacy
	// Computing" sextant glyphs.
	Sextants = mustPalette(2, 3, 1, sextantTable())

	// Braille maps 2x4 blocks to the 256 braille patterns.
	Braille = mustPalette(2, 4, 1, brailleTable())

	// Blocks is a 1x1 shaded palette using the shade block elements.
	Blocks = mustPalette(1, 1, 4, []string{" ", "░", "▒", "▓", "█"})

	// ASCIIRamp is a 1x1 shaded palette using a conventional ASCII
	// grayscale ramp, for surfaces that cannot display block elements.
	ASCIIRamp = mustPalette(1, 1, 9, []string{
		" ", ".", ":", "-", "=", "+", "*", "#", "%", "@",
	})
)

// sextantTable builds the 64-glyph table for 2x3 blocks. The sextant range
// at U+1FB00 deliberately omits four patterns that already exist as block
// elements: empty, the left and right half blocks, and the full block.
func sextantTable() []string {
	table := make([]string, 64)
	offset := 0
	for bits := 0; bits < 64; bits++ {
		switch bits {
		case 0b000000:
			table[bits] = " "
		case 0b010101:
			table[bits] = "▌"
		case 0b101010:
			table[bits] = "▐"
		case 0b111111:
			table[bits] = "█"
		default:
			table[bits] = string(rune(0x1FB00 + offset))
			offset++
		}
	}
	return table
}

// brailleBits maps a sub-pixel offset (BlockWidth*dy)+dx within a 2x4 block
// to the corresponding bit of a braille pattern codepoint. Braille dots are
// numbered column-first with dots 7 and 8 appended as a fourth row, so the
// layout is not row-major.
var brailleBits = [8]int{
	0x01, 0x08, // (0,0) (1,0)
	0x02, 0x10, // (0,1) (1,1)
	0x04, 0x20, // (0,2) (1,2)
	0x40, 0x80, // (0,3) (1,3)
}

// brailleTable builds the 256-glyph table for 2x4 blocks from the braille
// patterns block at U+2800.
func brailleTable() []string {
	table := make([]string, 256)
	for bits := 0; bits < 256; bits++ {
		pattern := 0
		for b := 0; b < 8; b++ {
			if bits&(1<<b) != 0 {
				pattern |= brailleBits[b]
			}
		}
		table[bits] = string(rune(0x2800 + pattern))
	}
	return table
}
