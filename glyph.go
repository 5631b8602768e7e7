package pagepack

import "fmt"

// The character range covered by every font table.
const (
	FirstChar = 32
	LastChar  = 126

	// GlyphCount is the number of glyphs in a font table.
	GlyphCount = LastChar - FirstChar + 1
)

// GlyphSource provides the bitmaps of a single font.
type GlyphSource interface {
	// Bounds returns the declared bounding box of the font.
	Bounds() (width, height int)
	// Glyph returns the bitmap of r, or false if the font has none.
	Glyph(r rune) (*Grid, bool)
}

// GlyphEntry is one encoded character of a font table.
type GlyphEntry struct {
	Char rune
	Grid *Grid
	Data []byte

	// Fallback is set when the space glyph stood in for a missing one.
	Fallback bool
}

// FontTable is the encoded glyph table of one font size.
type FontTable struct {
	Name   string
	Width  int
	Height int

	Glyphs []GlyphEntry
	Data   []byte
}

// BuildFontTable encodes the glyphs FirstChar to LastChar of src. Missing
// glyphs are replaced with the space glyph; if that is missing too the build
// fails with a *MissingGlyphError.
func BuildFontTable(name string, src GlyphSource) (*FontTable, error) {
	width, height := src.Bounds()
	if height <= 0 || height%PageHeight != 0 {
		return nil, &UnsupportedFontHeightError{Height: height}
	}

	if width < 0 {
		return nil, fmt.Errorf("pagepack: BuildFontTable: %s: invalid width %d", name, width)
	}

	table := &FontTable{
		Name:   name,
		Width:  width,
		Height: height,
		Glyphs: make([]GlyphEntry, 0, GlyphCount),
	}

	glyphSize := width * (height / PageHeight)
	table.Data = make([]byte, 0, glyphSize*GlyphCount)

	for c := rune(FirstChar); c <= LastChar; c++ {
		glyph, fallback, err := lookupGlyph(src, c)
		if err != nil {
			return nil, err
		}

		grid, err := fitGrid(glyph, width, height)
		if err != nil {
			return nil, err
		}

		data := Pack(grid)
		table.Glyphs = append(table.Glyphs, GlyphEntry{
			Char:     c,
			Grid:     grid,
			Data:     data,
			Fallback: fallback,
		})
		table.Data = append(table.Data, data...)
	}

	return table, nil
}

func lookupGlyph(src GlyphSource, c rune) (*Grid, bool, error) {
	if g, ok := src.Glyph(c); ok {
		return g, false, nil
	}

	if g, ok := src.Glyph(' '); ok {
		return g, true, nil
	}

	return nil, false, &MissingGlyphError{Char: c}
}

// fitGrid samples g onto a grid of exactly width x height.
func fitGrid(g *Grid, width, height int) (*Grid, error) {
	if g.width == width && g.height == height {
		return g, nil
	}

	return NewGrid(width, height, g.At)
}

// Pages returns the number of pages every glyph spans.
func (t *FontTable) Pages() int {
	return t.Height / PageHeight
}

// GlyphSize returns the number of bytes of a single glyph.
func (t *FontTable) GlyphSize() int {
	return t.Width * t.Pages()
}

// Offset returns the position of r's glyph in Data. Characters outside
// FirstChar..LastChar map to the first glyph.
func (t *FontTable) Offset(r rune) int {
	if r < FirstChar || r > LastChar {
		r = FirstChar
	}

	return int(r-FirstChar) * t.GlyphSize()
}

// Glyph returns the encoded bytes of r, derived from the width and page
// count alone.
func (t *FontTable) Glyph(r rune) []byte {
	off := t.Offset(r)
	return t.Data[off : off+t.GlyphSize()]
}
