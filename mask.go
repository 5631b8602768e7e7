package pagepack

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Dimensions of the display masks.
const (
	MaskWidth  = 128
	MaskHeight = 64
	MaskSize   = MaskWidth * MaskHeight / PageHeight
)

// MaskPlane derives one compositing plane from mask text: cells holding
// Marker are set. Inverted planes are complemented after packing.
type MaskPlane struct {
	Name   string
	Marker rune
	Invert bool
}

// The two planes of a mask file. 'X' forces pixels off through the AND
// mask, '+' forces them on through the OR mask.
var (
	AndPlane = MaskPlane{Name: "and", Marker: 'X', Invert: true}
	OrPlane  = MaskPlane{Name: "or", Marker: '+', Invert: false}
)

// Masks holds the encoded AND and OR planes.
type Masks struct {
	And []byte
	Or  []byte
}

// ReadMaskLines reads up to MaskHeight lines of mask text and normalizes
// them with NormalizeMaskLines. Lines of any length are accepted; only read
// errors are returned.
func ReadMaskLines(r io.Reader) ([]string, error) {
	var lines []string

	br := bufio.NewReader(r)
	for len(lines) < MaskHeight {
		line, err := readMaskLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return NormalizeMaskLines(lines), nil
}

// maxMaskLineBytes always holds the first MaskWidth characters of a line.
const maxMaskLineBytes = MaskWidth * utf8.UTFMax

// readMaskLine reads one line, keeping at most maxMaskLineBytes of it. It
// returns io.EOF only when no line is left.
func readMaskLine(br *bufio.Reader) (string, error) {
	var line []byte
	started := false
	for {
		frag, isPrefix, err := br.ReadLine()
		if err == io.EOF && started {
			return string(line), nil
		}
		if err != nil {
			return "", err
		}
		started = true

		if room := maxMaskLineBytes - len(line); room > 0 {
			if len(frag) > room {
				frag = frag[:room]
			}
			line = append(line, frag...)
		}

		if !isPrefix {
			return string(line), nil
		}
	}
}

// ReadMaskFile reads the mask text at path. Open and read failures are
// returned as *SourceUnavailableError.
func ReadMaskFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	lines, err := ReadMaskLines(f)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}

	return lines, nil
}

// NormalizeMaskLines returns exactly MaskHeight lines of exactly MaskWidth
// characters. Trailing whitespace is dropped, long lines and extra lines are
// cut, and missing cells are filled with spaces.
func NormalizeMaskLines(lines []string) []string {
	out := make([]string, MaskHeight)
	for y := range out {
		var line []rune
		if y < len(lines) {
			line = []rune(strings.TrimRightFunc(lines[y], unicode.IsSpace))
		}

		if len(line) > MaskWidth {
			line = line[:MaskWidth]
		}

		out[y] = string(line) + strings.Repeat(" ", MaskWidth-len(line))
	}

	return out
}

// Grid returns the plane's cells over the mask text. Lines are normalized
// first, so any input yields a MaskWidth x MaskHeight grid.
func (p MaskPlane) Grid(lines []string) *Grid {
	rows := make([][]rune, MaskHeight)
	for y, line := range NormalizeMaskLines(lines) {
		rows[y] = []rune(line)
	}

	g, err := NewGrid(MaskWidth, MaskHeight, func(x, y int) bool {
		return rows[y][x] == p.Marker
	})
	if err != nil {
		panic(err)
	}

	return g
}

// Encode packs the plane into MaskSize bytes.
func (p MaskPlane) Encode(lines []string) []byte {
	data := Pack(p.Grid(lines))
	if p.Invert {
		for i := range data {
			data[i] ^= 0xFF
		}
	}

	return data
}

// BuildMasks encodes both planes of the mask text.
func BuildMasks(lines []string) *Masks {
	return &Masks{
		And: AndPlane.Encode(lines),
		Or:  OrPlane.Encode(lines),
	}
}

// EmptyMasks returns masks that leave every pixel untouched.
func EmptyMasks() *Masks {
	return BuildMasks(nil)
}
