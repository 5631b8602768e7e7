package pagepack

import (
	"fmt"
	"strconv"
)

// MissingGlyphError is returned when a character and its space fallback are
// both absent from a glyph source.
type MissingGlyphError struct {
	Char rune
}

func (e *MissingGlyphError) Error() string {
	return fmt.Sprintf("pagepack: missing glyph [%c] and no space character", e.Char)
}

// UnsupportedFontHeightError is returned when a bitmap height is not a
// positive multiple of 8 pixels.
type UnsupportedFontHeightError struct {
	Height int
}

func (e *UnsupportedFontHeightError) Error() string {
	return "pagepack: height " + strconv.Itoa(e.Height) +
		" is not a positive multiple of 8 pixels"
}

// SourceUnavailableError is returned when a glyph or text source cannot be
// opened or read.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("pagepack: source %q unavailable: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
