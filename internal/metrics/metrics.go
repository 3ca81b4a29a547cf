// Package metrics provides per-step accumulators for particle advection.
package metrics

import (
	"github.com/san-kum/flowlab/internal/field"
)

// PathLength sums the magnitude of every applied step vector.
type PathLength struct {
	total float64
}

func NewPathLength() *PathLength { return &PathLength{} }

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(pos, vec field.Vec2, step int) {
	p.total += vec.Norm()
}

func (p *PathLength) Value() float64 { return p.total }
func (p *PathLength) Reset()         { p.total = 0 }

// Displacement tracks the straight-line distance from the initial position
// to the latest one.
type Displacement struct {
	start   field.Vec2
	current field.Vec2
	samples int
}

func NewDisplacement() *Displacement { return &Displacement{} }

func (d *Displacement) Name() string { return "displacement" }

func (d *Displacement) Observe(pos, vec field.Vec2, step int) {
	if d.samples == 0 {
		// pos is the position after the first step; back out the start.
		d.start = pos.Sub(vec)
	}
	d.current = pos
	d.samples++
}

func (d *Displacement) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.current.Sub(d.start).Norm()
}

func (d *Displacement) Reset() {
	d.start = field.Vec2{}
	d.current = field.Vec2{}
	d.samples = 0
}

// Excursion measures the fraction of steps spent outside the nominal field
// domain. Positions are never clamped, so this is the natural gauge of how
// far a flow pushes particles off the grid.
type Excursion struct {
	width, height float64
	outside       int
	samples       int
}

func NewExcursion(width, height float64) *Excursion {
	return &Excursion{width: width, height: height}
}

func (e *Excursion) Name() string { return "excursion" }

func (e *Excursion) Observe(pos, vec field.Vec2, step int) {
	e.samples++
	if pos.X < 0 || pos.X >= e.width || pos.Y < 0 || pos.Y >= e.height {
		e.outside++
	}
}

func (e *Excursion) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.outside) / float64(e.samples)
}

func (e *Excursion) Reset() {
	e.outside = 0
	e.samples = 0
}
