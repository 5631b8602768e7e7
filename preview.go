package pagepack

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/gift"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/bmp"
)

// PreviewOptions controls how grids are rendered to images. Colours are hex
// strings such as "#7fdbff".
type PreviewOptions struct {
	Scale int
	On    string
	Off   string

	// Colours of cells forced off ('X') and on ('+') in mask previews.
	And string
	Or  string
}

// DefaultPreviewOptions renders lit pixels in OLED blue on a dark panel.
var DefaultPreviewOptions = PreviewOptions{
	Scale: 4,
	On:    "#7fdbff",
	Off:   "#101820",
	And:   "#ff4136",
	Or:    "#2ecc40",
}

type previewPalette struct {
	on, off, and, or color.RGBA
}

func (o *PreviewOptions) validate() (previewPalette, error) {
	var p previewPalette

	if o.Scale < 1 {
		return p, errors.New("pagepack: preview: scale must be at least 1")
	}

	if o.Scale > 64 {
		return p, errors.New("pagepack: preview: scale must be no greater than 64")
	}

	for _, c := range []struct {
		hex string
		dst *color.RGBA
	}{
		{o.On, &p.on},
		{o.Off, &p.off},
		{o.And, &p.and},
		{o.Or, &p.or},
	} {
		parsed, err := colorful.Hex(c.hex)
		if err != nil {
			return p, fmt.Errorf("pagepack: preview: invalid colour %q: %w", c.hex, err)
		}
		*c.dst = color.RGBAModel.Convert(parsed).(color.RGBA)
	}

	return p, nil
}

// RenderImage draws g with the on and off colours, scaled up by opts.Scale.
func RenderImage(g *Grid, opts PreviewOptions) (image.Image, error) {
	pal, err := opts.validate()
	if err != nil {
		return nil, err
	}

	return renderCells(g.Width(), g.Height(), opts.Scale, func(x, y int) color.RGBA {
		if g.At(x, y) {
			return pal.on
		}
		return pal.off
	}), nil
}

// MaskImage draws both mask planes: cells cleared by the AND plane, cells set
// by the OR plane and untouched cells each get their own colour.
func MaskImage(m *Masks, opts PreviewOptions) (image.Image, error) {
	pal, err := opts.validate()
	if err != nil {
		return nil, err
	}

	and, err := Unpack(m.And, MaskWidth, MaskHeight)
	if err != nil {
		return nil, err
	}

	or, err := Unpack(m.Or, MaskWidth, MaskHeight)
	if err != nil {
		return nil, err
	}

	return renderCells(MaskWidth, MaskHeight, opts.Scale, func(x, y int) color.RGBA {
		switch {
		case !and.At(x, y):
			return pal.and
		case or.At(x, y):
			return pal.or
		}
		return pal.off
	}), nil
}

func renderCells(width, height, scale int, at func(x, y int) color.RGBA) image.Image {
	src := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src.SetRGBA(x, y, at(x, y))
		}
	}

	if scale == 1 || width == 0 {
		return src
	}

	resize := gift.Resize(width*scale, height*scale, gift.NearestNeighborResampling)
	dst := image.NewRGBA(resize.Bounds(src.Bounds()))
	resize.Draw(dst, src, &gift.Options{
		Parallelization: false,
	})

	return dst
}

// FontSheet lays out every glyph of t, decoded back from the packed table
// data, in rows of columns glyphs.
func FontSheet(t *FontTable, columns int) (*Grid, error) {
	if columns < 1 {
		return nil, errors.New("pagepack: FontSheet: columns must be at least 1")
	}

	glyphs := make([]*Grid, GlyphCount)
	for i := range glyphs {
		g, err := Unpack(t.Glyph(rune(FirstChar+i)), t.Width, t.Height)
		if err != nil {
			return nil, err
		}
		glyphs[i] = g
	}

	rows := (GlyphCount + columns - 1) / columns
	return NewGrid(columns*t.Width, rows*t.Height, func(x, y int) bool {
		if t.Width == 0 {
			return false
		}

		i := (y/t.Height)*columns + x/t.Width
		if i >= GlyphCount {
			return false
		}

		return glyphs[i].At(x%t.Width, y%t.Height)
	})
}

// ImageFormat returns the preview format implied by a file name: "bmp" for
// .bmp files, "png" otherwise.
func ImageFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return "bmp"
	}

	return "png"
}

// EncodeImage writes img as "png" or "bmp".
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	}

	return fmt.Errorf("pagepack: EncodeImage: unsupported format %q", format)
}
