package pagepack

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func blankLines() []string {
	lines := make([]string, MaskHeight)
	for i := range lines {
		lines[i] = strings.Repeat(".", MaskWidth)
	}
	return lines
}

func setCell(lines []string, x, y int, c rune) []string {
	out := append([]string(nil), lines...)
	row := []rune(out[y])
	row[x] = c
	out[y] = string(row)
	return out
}

func TestMaskFirstByte(t *testing.T) {
	m := BuildMasks(setCell(blankLines(), 0, 0, 'X'))

	if len(m.And) != MaskSize || len(m.Or) != MaskSize {
		t.Fatalf("expected %d byte planes, got %d and %d", MaskSize, len(m.And), len(m.Or))
	}
	if m.And[0] != 0xfe {
		t.Fatalf("expected AND[0] = fe, got %02x", m.And[0])
	}
	if m.Or[0] != 0x00 {
		t.Fatalf("expected OR[0] = 00, got %02x", m.Or[0])
	}
	for i := 1; i < MaskSize; i++ {
		if m.And[i] != 0xff || m.Or[i] != 0x00 {
			t.Fatalf("byte %d: expected ff/00, got %02x/%02x", i, m.And[i], m.Or[i])
		}
	}
}

func TestMaskPlaneIndependence(t *testing.T) {
	base := setCell(setCell(blankLines(), 5, 9, 'X'), 100, 40, '+')
	ref := BuildMasks(base)

	xs := BuildMasks(setCell(base, 70, 63, 'X'))
	if bytes.Equal(xs.And, ref.And) {
		t.Error("toggling an 'X' should change the AND mask")
	}
	if !bytes.Equal(xs.Or, ref.Or) {
		t.Error("toggling an 'X' should not change the OR mask")
	}

	pluses := BuildMasks(setCell(base, 127, 0, '+'))
	if !bytes.Equal(pluses.And, ref.And) {
		t.Error("toggling a '+' should not change the AND mask")
	}
	if bytes.Equal(pluses.Or, ref.Or) {
		t.Error("toggling a '+' should change the OR mask")
	}

	other := BuildMasks(setCell(setCell(base, 3, 3, 'x'), 4, 4, '#'))
	if !bytes.Equal(other.And, ref.And) || !bytes.Equal(other.Or, ref.Or) {
		t.Error("unrelated characters should change neither mask")
	}
}

func TestMaskPadding(t *testing.T) {
	var doc strings.Builder
	for i := 0; i < 10; i++ {
		doc.WriteString("X+X+X\n")
	}

	lines, err := ReadMaskLines(strings.NewReader(doc.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != MaskHeight {
		t.Fatalf("expected %d lines, got %d", MaskHeight, len(lines))
	}

	and := AndPlane.Grid(lines)
	or := OrPlane.Grid(lines)
	for y := 0; y < MaskHeight; y++ {
		for x := 0; x < MaskWidth; x++ {
			inside := y < 10 && x < 5
			if and.At(x, y) != (inside && x%2 == 0) {
				t.Fatalf("AND cell (%d, %d) unexpected", x, y)
			}
			if or.At(x, y) != (inside && x%2 == 1) {
				t.Fatalf("OR cell (%d, %d) unexpected", x, y)
			}
		}
	}

	m := BuildMasks(lines)
	if len(m.And) != MaskSize || len(m.Or) != MaskSize {
		t.Fatalf("expected %d byte planes", MaskSize)
	}
	// column 0 of page 1 covers rows 8-15, only rows 8 and 9 are marked
	if m.And[MaskWidth] != 0xfc || m.Or[MaskWidth] != 0x00 {
		t.Fatalf("unexpected page 1 bytes %02x/%02x", m.And[MaskWidth], m.Or[MaskWidth])
	}
	if m.Or[MaskWidth+1] != 0x03 {
		t.Fatalf("expected OR page 1 column 1 = 03, got %02x", m.Or[MaskWidth+1])
	}
}

func TestMaskTruncation(t *testing.T) {
	var doc strings.Builder
	for i := 0; i < 80; i++ {
		doc.WriteString(strings.Repeat(" ", MaskWidth) + "XXXX\r\n")
	}
	doc.WriteString("+\n")

	lines, err := ReadMaskLines(strings.NewReader(doc.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != MaskHeight {
		t.Fatalf("expected %d lines, got %d", MaskHeight, len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != MaskWidth {
			t.Fatalf("expected %d characters, got %d", MaskWidth, len([]rune(line)))
		}
	}

	m := BuildMasks(lines)
	if !bytes.Equal(m.And, EmptyMasks().And) || !bytes.Equal(m.Or, EmptyMasks().Or) {
		t.Fatal("expected markers past column 128 and row 64 to be ignored")
	}
}

func TestMaskVeryLongLines(t *testing.T) {
	doc := "X" + strings.Repeat(" ", 2<<20) + "\n" +
		strings.Repeat("é", MaskWidth-1) + strings.Repeat("+", 2<<20) + "\n" +
		"+"

	lines, err := ReadMaskLines(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != MaskHeight {
		t.Fatalf("expected %d lines, got %d", MaskHeight, len(lines))
	}

	and := AndPlane.Grid(lines)
	or := OrPlane.Grid(lines)
	for y := 0; y < MaskHeight; y++ {
		for x := 0; x < MaskWidth; x++ {
			if and.At(x, y) != (x == 0 && y == 0) {
				t.Fatalf("AND cell (%d, %d) unexpected", x, y)
			}
			if or.At(x, y) != ((x == MaskWidth-1 && y == 1) || (x == 0 && y == 2)) {
				t.Fatalf("OR cell (%d, %d) unexpected", x, y)
			}
		}
	}
}

func TestMaskWideCharacters(t *testing.T) {
	// columns count characters, not bytes
	lines := NormalizeMaskLines([]string{"ééX"})

	if !AndPlane.Grid(lines).At(2, 0) {
		t.Fatal("expected marker at column 2")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestReadMaskLinesError(t *testing.T) {
	if _, err := ReadMaskLines(failingReader{}); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected read error, got %v", err)
	}

	_, err := ReadMaskFile("testdata/does-not-exist.txt")
	var srcErr *SourceUnavailableError
	if !errors.As(err, &srcErr) || srcErr.Path != "testdata/does-not-exist.txt" {
		t.Fatalf("expected SourceUnavailableError, got %v", err)
	}
}

func TestReadMaskFile(t *testing.T) {
	lines, err := ReadMaskFile("testdata/corners.txt")
	if err != nil {
		t.Fatal(err)
	}

	m := BuildMasks(lines)
	// top left corner is forced off, bottom right forced on
	if m.And[0] != 0xfe {
		t.Fatalf("expected AND[0] = fe, got %02x", m.And[0])
	}
	if m.Or[MaskSize-1] != 0x80 {
		t.Fatalf("expected OR[1023] = 80, got %02x", m.Or[MaskSize-1])
	}
}
