package viz

import (
	"math"

	"github.com/san-kum/flowlab/internal/field"
)

// DrawTrajectories plots trajectories onto the canvas, scaling all paths
// into the dot space with a shared bounding box and a small margin. The y
// axis points up, so higher y lands near the top of the canvas.
func DrawTrajectories(c *Canvas, trajectories [][]field.Vec2) {
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
		return
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	const margin = 1
	w := float64(c.DotWidth() - 1 - 2*margin)
	h := float64(c.DotHeight() - 1 - 2*margin)

	toDot := func(p field.Vec2) (int, int) {
		x := margin + int(math.Round((p.X-minX)/spanX*w))
		y := margin + int(math.Round((1-(p.Y-minY)/spanY)*h))
		return x, y
	}

	for _, traj := range trajectories {
		if len(traj) == 1 {
			x, y := toDot(traj[0])
			c.Set(x, y)
			continue
		}
		for i := 1; i < len(traj); i++ {
			x0, y0 := toDot(traj[i-1])
			x1, y1 := toDot(traj[i])
			c.Line(x0, y0, x1, y1)
		}
	}
}
