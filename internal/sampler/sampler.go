// Package sampler blends a neighbourhood of field vectors into a single
// sampled vector.
package sampler

import (
	"math"

	"github.com/san-kum/flowlab/internal/field"
)

// Epsilon is the minimum distance used for weighting. A window cell that
// coincides exactly with the query point would otherwise divide by zero; the
// floor lets it dominate the sum instead.
const Epsilon = 1e-9

// Sampler answers weighted-neighbourhood queries against one grid. It never
// mutates the grid, so any number of samplers and particles may share it.
type Sampler struct {
	grid *field.Grid
}

func New(grid *field.Grid) *Sampler {
	return &Sampler{grid: grid}
}

// Grid returns the grid this sampler reads.
func (s *Sampler) Grid() *field.Grid { return s.grid }

// Sample returns the inverse-distance-weighted sum of the vectors in the
// neighbourhood window around (x, y).
//
// The query is first reduced modulo the domain extents, so sampling at a
// coordinate outside the domain equals sampling at its wrapped image. The
// window spans the half-open index range [floor(q-k/2), floor(q+k/2)) per
// axis, k cells wide, and each index is wrapped modulo the grid extent
// independently; a window straddling an edge is the concatenation of a tail
// range and a head range. Distances are Euclidean, from the wrapped query to
// each window cell's own coordinate.
func (s *Sampler) Sample(x, y float64) field.Vec2 {
	g := s.grid
	half := float64(g.Neighbourhood()) / 2

	qx := wrapCoord(x, g.Width())
	qy := wrapCoord(y, g.Height())

	iMin := int(math.Floor(qx - half))
	iMax := int(math.Floor(qx + half))
	jMin := int(math.Floor(qy - half))
	jMax := int(math.Floor(qy + half))

	decay := g.Decay()
	res := g.Resolution()

	var sum field.Vec2
	for i := iMin; i < iMax; i++ {
		wi := wrapIndex(i, g.Cols())
		cx := float64(wi) * res
		for j := jMin; j < jMax; j++ {
			wj := wrapIndex(j, g.Rows())
			cy := float64(wj) * res

			d := math.Hypot(cx-qx, cy-qy)
			if d < Epsilon {
				d = Epsilon
			}
			w := decay.Weight(d)

			v := g.At(wi, wj)
			sum.X += v.X * w
			sum.Y += v.Y * w
		}
	}
	return sum
}

// wrapCoord reduces v into [0, extent).
func wrapCoord(v, extent float64) float64 {
	m := math.Mod(v, extent)
	if m < 0 {
		m += extent
	}
	return m
}

// wrapIndex reduces i into [0, n).
func wrapIndex(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}
