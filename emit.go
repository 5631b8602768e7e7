package pagepack

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
)

// Emitter serializes encoded tables to an output sink. The caller owns the
// sink and closes it.
type Emitter interface {
	EmitFonts(w io.Writer, set *FontSet) error
	EmitMasks(w io.Writer, m *Masks) error
}

// EmitterFor returns the emitter for an output format: "c", "go" or "bin".
// pkg is only used by the Go emitter.
func EmitterFor(name, pkg string) (Emitter, error) {
	switch name {
	case "c":
		return CHeader{}, nil
	case "go":
		if pkg == "" {
			return nil, fmt.Errorf("pagepack: EmitterFor: go output needs a package name")
		}
		return GoSource{Package: pkg}, nil
	case "bin":
		return Binary{}, nil
	}

	return nil, fmt.Errorf("pagepack: EmitterFor: unrecognized format %q", name)
}

// CHeader writes C array definitions for the display firmware.
type CHeader struct{}

// EmitFonts writes font_widths, one font_<pages> array per table and the
// fonts pointer table. Arrays are named by page count, so no two tables may
// share one.
func (CHeader) EmitFonts(w io.Writer, set *FontSet) error {
	seen := make(map[int]string, len(set.Tables))
	for _, t := range set.Tables {
		if prev, ok := seen[t.Pages()]; ok {
			return fmt.Errorf("pagepack: CHeader: fonts %s and %s are both %d pages tall",
				prev, t.Name, t.Pages())
		}
		seen[t.Pages()] = t.Name
	}

	wr := bufio.NewWriter(w)

	widths := set.Widths()
	strs := make([]string, len(widths))
	for i, width := range widths {
		strs[i] = fmt.Sprint(width)
	}
	fmt.Fprintf(wr, "static const int font_widths[ %d ] = { %s };\n",
		len(widths), strings.Join(strs, ", "))

	names := make([]string, len(set.Tables))
	for i, t := range set.Tables {
		names[i] = fmt.Sprintf("font_%d", t.Pages())

		fmt.Fprintf(wr, "const unsigned char %s[] = {\n", names[i])
		for _, glyph := range t.Glyphs {
			for page := 0; page < t.Pages(); page++ {
				for _, b := range glyph.Data[page*t.Width : (page+1)*t.Width] {
					fmt.Fprintf(wr, "0x%02x,", b)
				}
				if page == 0 {
					fmt.Fprintf(wr, " // Character \"%c\"", glyph.Char)
				}
				wr.WriteString("\n")
			}
		}
		wr.WriteString("};\n")
	}

	fmt.Fprintf(wr, "static const unsigned char *fonts[ %d ] = { %s };\n",
		len(names), strings.Join(names, ", "))

	return wr.Flush()
}

// EmitMasks writes the oled_mask_and and oled_mask_or arrays.
func (CHeader) EmitMasks(w io.Writer, m *Masks) error {
	wr := bufio.NewWriter(w)

	fmt.Fprintf(wr, "unsigned char oled_mask_and[ %d ] = {\n", MaskSize)
	writeMaskRows(wr, m.And)
	fmt.Fprintf(wr, "};\n\nunsigned char oled_mask_or[ %d ] = {\n", MaskSize)
	writeMaskRows(wr, m.Or)
	wr.WriteString("};\n")

	return wr.Flush()
}

func writeMaskRows(wr *bufio.Writer, data []byte) {
	const perLine = 16

	for page := 0; page < MaskHeight/PageHeight; page++ {
		if page > 0 {
			wr.WriteString("\n")
		}

		row := data[page*MaskWidth : (page+1)*MaskWidth]
		for i, b := range row {
			fmt.Fprintf(wr, "0x%02x,", b)
			if i%perLine == perLine-1 {
				wr.WriteString("\n")
			}
		}
	}
}

// GoSource writes a gofmt'ed Go file declaring the tables.
type GoSource struct {
	Package string
}

// EmitFonts declares FontWidths and Fonts.
func (e GoSource) EmitFonts(w io.Writer, set *FontSet) error {
	var buf bytes.Buffer

	e.header(&buf)
	fmt.Fprintf(&buf, "// FontWidths holds the pixel width of each table in Fonts.\n")
	fmt.Fprintf(&buf, "var FontWidths = %#v\n\n", set.Widths())

	fmt.Fprintf(&buf, "// Fonts holds the glyph tables for characters %d to %d, smallest font first.\n",
		FirstChar, LastChar)
	fmt.Fprintf(&buf, "var Fonts = [][]byte{\n")
	for i := range set.Tables {
		fmt.Fprintf(&buf, "font%d,\n", i)
	}
	fmt.Fprintf(&buf, "}\n")

	for i, t := range set.Tables {
		fmt.Fprintf(&buf, "\n// font%d is %s, %dx%d pixels.\n", i, t.Name, t.Width, t.Height)
		fmt.Fprintf(&buf, "var font%d = []byte{\n", i)
		for _, glyph := range t.Glyphs {
			writeGoBytes(&buf, glyph.Data)
			fmt.Fprintf(&buf, "// %q\n", glyph.Char)
		}
		fmt.Fprintf(&buf, "}\n")
	}

	return writeFormatted(w, buf.Bytes())
}

// EmitMasks declares MaskAnd and MaskOr.
func (e GoSource) EmitMasks(w io.Writer, m *Masks) error {
	var buf bytes.Buffer

	e.header(&buf)
	planes := []struct {
		name string
		doc  string
		data []byte
	}{
		{"MaskAnd", "MaskAnd clears the pixels marked with 'X'.", m.And},
		{"MaskOr", "MaskOr sets the pixels marked with '+'.", m.Or},
	}

	for i, p := range planes {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "// %s\n", p.doc)
		fmt.Fprintf(&buf, "var %s = [%d]byte{\n", p.name, MaskSize)
		for row := 0; row < len(p.data); row += 16 {
			writeGoBytes(&buf, p.data[row:row+16])
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "}\n")
	}

	return writeFormatted(w, buf.Bytes())
}

func (e GoSource) header(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "// Code generated by pagepack. DO NOT EDIT.\n\n")
	fmt.Fprintf(buf, "package %s\n\n", e.Package)
}

func writeGoBytes(buf *bytes.Buffer, data []byte) {
	for _, b := range data {
		fmt.Fprintf(buf, "0x%02x, ", b)
	}
}

func writeFormatted(w io.Writer, src []byte) error {
	code, err := format.Source(src)
	if err != nil {
		return fmt.Errorf("pagepack: format generated code: %w", err)
	}

	_, err = w.Write(code)
	return err
}

// Binary writes the raw tables: fonts in set order, masks AND then OR.
type Binary struct{}

// EmitFonts writes every table's data back to back.
func (Binary) EmitFonts(w io.Writer, set *FontSet) error {
	wr := bufio.NewWriter(w)
	for _, t := range set.Tables {
		if _, err := wr.Write(t.Data); err != nil {
			return err
		}
	}

	return wr.Flush()
}

// EmitMasks writes the AND plane followed by the OR plane.
func (Binary) EmitMasks(w io.Writer, m *Masks) error {
	wr := bufio.NewWriter(w)
	for _, plane := range [][]byte{m.And, m.Or} {
		if _, err := wr.Write(plane); err != nil {
			return err
		}
	}

	return wr.Flush()
}
