package viz

import (
	"math"
	"strings"

	"github.com/san-kum/flowlab/internal/field"
)

// Arrow glyphs indexed by direction sector, counter-clockwise from east.
var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// arrowFor maps a vector to an arrow glyph by its angle. Vectors shorter
// than min render as a dot.
func arrowFor(v field.Vec2, min float64) rune {
	if v.Norm() < min {
		return '·'
	}
	angle := math.Atan2(v.Y, v.X)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	sector := int(math.Round(angle/(math.Pi/4))) % 8
	return arrows[sector]
}

// Quiver renders the grid as a cols x rows character plot of direction
// arrows. The grid is downsampled by nearest index, and rows run from the
// top of the domain down so the plot reads like a plane.
func Quiver(g *field.Grid, cols, rows int) string {
	if cols <= 0 || rows <= 0 || g.Cols() == 0 || g.Rows() == 0 {
		return ""
	}
	var b strings.Builder
	for r := 0; r < rows; r++ {
		j := (rows - 1 - r) * g.Rows() / rows
		for c := 0; c < cols; c++ {
			i := c * g.Cols() / cols
			b.WriteRune(arrowFor(g.At(i, j), 1e-12))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
