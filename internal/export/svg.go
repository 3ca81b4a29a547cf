// Package export renders trajectories and fields to SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/flowlab/internal/field"
)

var palette = []string{"#00ff00", "#00bfff", "#ff6060", "#ffd700", "#da70d6", "#00ffc8"}

// colorFor maps a particle color tag to a stroke color. Non-empty tags pass
// through unchanged; empty tags cycle the palette by index.
func colorFor(tag string, idx int) string {
	if tag != "" {
		return tag
	}
	return palette[idx%len(palette)]
}

// TrajectoriesToSVG renders each trajectory as a polyline, all scaled into
// a shared bounding box with 10% padding. Colors name the per-particle
// stroke; a nil or short colors slice falls back to the palette.
func TrajectoriesToSVG(trajectories [][]field.Vec2, colors []string, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	points := 0
	for _, traj := range trajectories {
		for _, p := range traj {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
			points++
		}
	}
	if points == 0 {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, traj := range trajectories {
		if len(traj) == 0 {
			continue
		}
		tag := ""
		if i < len(colors) {
			tag = colors[i]
		}
		stroke := colorFor(tag, i)

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for j, p := range traj {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FieldToSVG renders the grid as a quiver plot: one line with an arrowhead
// per cell, anchored at the cell center, length scaled so the longest
// vector spans one cell.
func FieldToSVG(g *field.Grid, width, height int) string {
	cols, rows := g.Cols(), g.Rows()
	if cols == 0 || rows == 0 {
		return ""
	}

	maxNorm := 0.0
	for _, c := range g.Cells() {
		if n := c.Vector.Norm(); n > maxNorm {
			maxNorm = n
		}
	}
	if maxNorm == 0 {
		maxNorm = 1
	}

	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)
	arrowLen := math.Min(cellW, cellH) * 0.9

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#00ff00" stroke-width="1">
`, width, height, width, height))

	for _, c := range g.Cells() {
		v := c.Vector
		n := v.Norm()
		if n == 0 {
			continue
		}

		x0 := (float64(c.I) + 0.5) * cellW
		y0 := float64(height) - (float64(c.J)+0.5)*cellH
		scale := arrowLen / maxNorm
		x1 := x0 + v.X*scale
		y1 := y0 - v.Y*scale

		sb.WriteString(fmt.Sprintf("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x0, y0, x1, y1))

		// arrowhead: two short strokes off the tip
		angle := math.Atan2(y1-y0, x1-x0)
		headLen := arrowLen * 0.3
		for _, da := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
			hx := x1 + headLen*math.Cos(angle+da)
			hy := y1 + headLen*math.Sin(angle+da)
			sb.WriteString(fmt.Sprintf("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x1, y1, hx, hy))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
