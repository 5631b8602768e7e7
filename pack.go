package pagepack

import "fmt"

// PackColumn packs 8 vertical samples, top first, into one byte. Bit i is
// set when samples[i] is on.
func PackColumn(samples [PageHeight]bool) byte {
	var b byte
	var i uint
	for i = 0; i < PageHeight; i++ {
		if samples[i] {
			b |= 1 << i
		}
	}

	return b
}

// PageScanner yields the packed bytes of one page of a grid, one per column
// from left to right.
type PageScanner struct {
	grid   *Grid
	top    int
	column int
}

// ScanPage returns a scanner over the given page. It panics if the page is
// outside the grid.
func (g *Grid) ScanPage(page int) *PageScanner {
	if page < 0 || page >= g.Pages() {
		panic(fmt.Sprintf("pagepack: page %d out of range [0, %d)", page, g.Pages()))
	}

	return &PageScanner{
		grid: g,
		top:  page * PageHeight,
	}
}

// Next returns the byte of the next column. The second result is false once
// every column has been returned.
func (s *PageScanner) Next() (byte, bool) {
	if s.column >= s.grid.width {
		return 0, false
	}

	var samples [PageHeight]bool
	for i := range samples {
		samples[i] = s.grid.At(s.column, s.top+i)
	}
	s.column++

	return PackColumn(samples), true
}

// Reset rewinds the scanner to the first column.
func (s *PageScanner) Reset() {
	s.column = 0
}

// AppendPage appends the packed bytes of page to dst.
func AppendPage(dst []byte, g *Grid, page int) []byte {
	s := g.ScanPage(page)
	for b, ok := s.Next(); ok; b, ok = s.Next() {
		dst = append(dst, b)
	}

	return dst
}

// Pack returns the packed representation of the whole grid: pages in
// increasing row order, each scanned left to right.
func Pack(g *Grid) []byte {
	out := make([]byte, 0, g.width*g.Pages())
	for page := 0; page < g.Pages(); page++ {
		out = AppendPage(out, g, page)
	}

	return out
}

// Unpack rebuilds a grid from data laid out the way Pack writes it.
func Unpack(data []byte, width, height int) (*Grid, error) {
	if width < 0 {
		return nil, fmt.Errorf("pagepack: Unpack: invalid width %d", width)
	}

	if height <= 0 || height%PageHeight != 0 {
		return nil, &UnsupportedFontHeightError{Height: height}
	}

	if want := width * (height / PageHeight); len(data) != want {
		return nil, fmt.Errorf("pagepack: Unpack: expected %d bytes, got %d",
			want, len(data))
	}

	return NewGrid(width, height, func(x, y int) bool {
		b := data[(y/PageHeight)*width+x]
		return b&(1<<uint(y%PageHeight)) != 0
	})
}
