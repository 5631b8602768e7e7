// Package bdf reads BDF bitmap fonts as glyph sources for pagepack.
package bdf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"

	gobdf "github.com/zachomedia/go-bdf"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/tmpim/pagepack"
)

// Source is a parsed BDF font. Every glyph is drawn on the font bounding
// box, so all glyphs share the same size.
type Source struct {
	font *gobdf.Font
	face font.Face

	width   int
	height  int
	offsetX int
	offsetY int
}

var _ pagepack.GlyphSource = (*Source)(nil)

// Open reads and parses the BDF font at path.
func Open(path string) (*Source, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, &pagepack.SourceUnavailableError{Path: path, Err: err}
	}

	src, err := Parse(data)
	if err != nil {
		return nil, &pagepack.SourceUnavailableError{Path: path, Err: err}
	}

	return src, nil
}

// Parse parses a BDF font.
func Parse(data []byte) (*Source, error) {
	src := &Source{}

	err := src.readBoundingBox(data)
	if err != nil {
		return nil, err
	}

	f, err := gobdf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bdf: %w", err)
	}

	src.font = f
	src.face = f.NewFace()
	return src, nil
}

// readBoundingBox reads the FONTBOUNDINGBOX property, which go-bdf does not
// expose.
func (s *Source) readBoundingBox(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "FONTBOUNDINGBOX":
			if len(fields) != 5 {
				return fmt.Errorf("bdf: malformed FONTBOUNDINGBOX %q", scanner.Text())
			}

			var vals [4]int
			for i := range vals {
				v, err := strconv.Atoi(fields[i+1])
				if err != nil {
					return fmt.Errorf("bdf: malformed FONTBOUNDINGBOX: %w", err)
				}
				vals[i] = v
			}

			s.width, s.height, s.offsetX, s.offsetY = vals[0], vals[1], vals[2], vals[3]
			return nil
		case "STARTCHAR":
			// properties always precede the glyphs
			return errors.New("bdf: missing FONTBOUNDINGBOX")
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	return errors.New("bdf: missing FONTBOUNDINGBOX")
}

// Bounds returns the font bounding box size.
func (s *Source) Bounds() (width, height int) {
	return s.width, s.height
}

// Glyph draws r on the font bounding box. It returns false if the font has
// no glyph for r.
func (s *Source) Glyph(r rune) (*pagepack.Grid, bool) {
	// the face substitutes DEFAULT_CHAR for missing glyphs
	if _, ok := s.font.CharMap[r]; !ok {
		return nil, false
	}

	// the baseline sits offsetY pixels above the bottom of the box
	dot := fixed.P(-s.offsetX, s.height+s.offsetY)

	dr, mask, maskp, _, ok := s.face.Glyph(dot, r)
	if !ok || mask == nil {
		return nil, false
	}

	g, err := pagepack.NewGrid(s.width, s.height, func(x, y int) bool {
		if !image.Pt(x, y).In(dr) {
			return false
		}

		_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
		return a > 0
	})
	if err != nil {
		return nil, false
	}

	return g, true
}

// OpenSpecs opens one font per size, naming files by substituting each size
// into pattern (for example "spleen-%s.bdf") inside dir.
func OpenSpecs(dir, pattern string, sizes []string) ([]pagepack.FontSpec, error) {
	specs := make([]pagepack.FontSpec, 0, len(sizes))
	for _, size := range sizes {
		src, err := Open(filepath.Join(dir, fmt.Sprintf(pattern, size)))
		if err != nil {
			return nil, err
		}

		specs = append(specs, pagepack.FontSpec{
			Name:   size,
			Source: src,
		})
	}

	return specs, nil
}
