package pagepack

import (
	"errors"
	"image"
	"image/color"
)

// PageHeight is the number of rows covered by one display page.
const PageHeight = 8

// Grid is an immutable monochrome bitmap, row 0 at the top. Its height is
// always a positive multiple of PageHeight.
type Grid struct {
	width  int
	height int
	pix    []bool
}

// NewGrid builds a grid of the given size, sampling at for every cell.
// A nil at produces an empty (all off) grid.
func NewGrid(width, height int, at func(x, y int) bool) (*Grid, error) {
	if width < 0 {
		return nil, errors.New("pagepack: NewGrid: width must not be negative")
	}

	if height <= 0 || height%PageHeight != 0 {
		return nil, &UnsupportedFontHeightError{Height: height}
	}

	g := &Grid{
		width:  width,
		height: height,
		pix:    make([]bool, width*height),
	}

	if at == nil {
		return g, nil
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.pix[y*width+x] = at(x, y)
		}
	}

	return g, nil
}

// GridFromImage converts an image into a grid. A pixel is on when it is
// mostly opaque and bright, which covers both alpha masks and white-on-black
// artwork. The image height must be a multiple of PageHeight.
func GridFromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	return NewGrid(b.Dx(), b.Dy(), func(x, y int) bool {
		return pixelOn(img.At(b.Min.X+x, b.Min.Y+y))
	})
}

func pixelOn(c color.Color) bool {
	_, _, _, a := c.RGBA()
	if a < 0x8000 {
		return false
	}

	return color.Gray16Model.Convert(c).(color.Gray16).Y >= 0x8000
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Pages returns the number of 8-row pages.
func (g *Grid) Pages() int {
	return g.height / PageHeight
}

// At reports whether the cell at (x, y) is on. Cells outside the grid are
// off.
func (g *Grid) At(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}

	return g.pix[y*g.width+x]
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}

	for i := range g.pix {
		if g.pix[i] != o.pix[i] {
			return false
		}
	}

	return true
}
