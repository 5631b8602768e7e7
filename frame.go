package pagepack

import (
	"bufio"
	"io"
)

// Frame is a MaskWidth x MaskHeight page-addressed display buffer, laid out
// the same way as the mask tables.
type Frame [MaskSize]byte

// DrawChar copies the glyph of r from t into the frame with its top left
// corner at column x of the page containing row y. Glyphs that would not fit
// on screen from that page are skipped.
func (f *Frame) DrawChar(x, y int, t *FontTable, r rune) {
	top := (y / PageHeight) * PageHeight
	if x < 0 || y < 0 || x > MaskWidth-t.Width || top > MaskHeight-t.Height {
		return
	}

	src := t.Glyph(r)
	dst := (top/PageHeight)*MaskWidth + x
	for page := 0; page < t.Pages(); page++ {
		copy(f[dst:dst+t.Width], src[page*t.Width:(page+1)*t.Width])
		dst += MaskWidth
	}
}

// DrawString draws s from left to right starting at (x, y) and returns the
// column after the last character.
func (f *Frame) DrawString(x, y int, t *FontTable, s string) int {
	for _, r := range s {
		f.DrawChar(x, y, t, r)
		x += t.Width
	}

	return x
}

// Compose applies the masks: OR plane first, then AND plane.
func (f *Frame) Compose(m *Masks) {
	for i := range f {
		f[i] = (f[i] | m.Or[i]) & m.And[i]
	}
}

// Grid unpacks the frame.
func (f *Frame) Grid() *Grid {
	g, err := Unpack(f[:], MaskWidth, MaskHeight)
	if err != nil {
		panic(err)
	}

	return g
}

// WriteTo writes the raw frame to a writer.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	wr := bufio.NewWriter(w)

	n, err := wr.Write(f[:])
	if err != nil {
		return int64(n), err
	}

	return int64(n), wr.Flush()
}
