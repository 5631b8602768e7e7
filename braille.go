package pagepack

import "strings"

// braille dot bit for each (x, y) position of a 2x4 cell
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Braille renders g as lines of Unicode braille characters, each covering
// 2x4 pixels.
func Braille(g *Grid) string {
	var sb strings.Builder

	for y := 0; y < g.Height(); y += 4 {
		for x := 0; x < g.Width(); x += 2 {
			var r rune = 0x2800
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if g.At(x+dx, y+dy) {
						r |= brailleDots[dy][dx]
					}
				}
			}
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
