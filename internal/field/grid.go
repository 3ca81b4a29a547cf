package field

import (
	"math"
	"sync"

	"github.com/san-kum/flowlab/internal/logging"
)

// MinNeighbourhood is the smallest usable sampling window. Smaller values
// are clamped, not rejected.
const MinNeighbourhood = 2

// Grid is a dense 2D vector field sampled at fixed resolution over the
// domain [0,width) x [0,height). Between initializations the cell array is
// never mutated in place, so concurrent readers may share a grid freely.
type Grid struct {
	width, height float64
	resolution    float64
	neighbourhood int
	decay         Decay

	cols, rows int
	cells      []Vec2
}

// Cell pairs an index coordinate with its stored vector, for enumeration by
// downstream renderers.
type Cell struct {
	I, J   int
	Vector Vec2
}

// New builds and populates a grid. Non-positive extents or resolution are
// fatal. A neighbourhood below MinNeighbourhood and an unknown decay are
// corrected and logged. The grid is populated with the default swirl
// generator before New returns; use Initialize to overwrite it.
func New(width, height, resolution float64, neighbourhood int, decay Decay) (*Grid, error) {
	if width <= 0 {
		return nil, ConfigError{Param: "width", Value: width, Message: "must be positive"}
	}
	if height <= 0 {
		return nil, ConfigError{Param: "height", Value: height, Message: "must be positive"}
	}
	if resolution <= 0 {
		return nil, ConfigError{Param: "resolution", Value: resolution, Message: "must be positive"}
	}

	if neighbourhood < MinNeighbourhood {
		logging.Logf("neighbourhood size must be > 1, clamping %d to %d", neighbourhood, MinNeighbourhood)
		neighbourhood = MinNeighbourhood
	}
	if _, ok := ParseDecay(string(decay)); !ok {
		logging.Logf("unknown decay %q, using %s", decay, DefaultDecay)
		decay = DefaultDecay
	}

	g := &Grid{
		width:         width,
		height:        height,
		resolution:    resolution,
		neighbourhood: neighbourhood,
		decay:         decay,
		cols:          int(math.Ceil(width / resolution)),
		rows:          int(math.Ceil(height / resolution)),
	}
	g.Initialize(nil)
	return g, nil
}

// Initialize overwrites every cell with gen evaluated at the cell's
// coordinate. A nil gen selects the default swirl generator. Cells are
// filled into a fresh array that is installed in a single assignment, so a
// reader holding the grid never observes a partially populated field.
func (g *Grid) Initialize(gen Generator) {
	if gen == nil {
		gen = NewSwirl(g.width, g.height)
	}

	cells := make([]Vec2, g.cols*g.rows)

	var wg sync.WaitGroup
	for i := 0; i < g.cols; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := float64(i) * g.resolution
			for j := 0; j < g.rows; j++ {
				cells[i*g.rows+j] = gen(x, float64(j)*g.resolution)
			}
		}(i)
	}
	wg.Wait()

	g.cells = cells
}

func (g *Grid) Width() float64      { return g.width }
func (g *Grid) Height() float64     { return g.height }
func (g *Grid) Resolution() float64 { return g.resolution }
func (g *Grid) Neighbourhood() int  { return g.neighbourhood }
func (g *Grid) Decay() Decay        { return g.decay }
func (g *Grid) Cols() int           { return g.cols }
func (g *Grid) Rows() int           { return g.rows }

// At returns the vector stored at index (i, j). Indices must be in range.
func (g *Grid) At(i, j int) Vec2 {
	return g.cells[i*g.rows+j]
}

// Coordinate returns the domain coordinate sampled by cell (i, j).
func (g *Grid) Coordinate(i, j int) (float64, float64) {
	return float64(i) * g.resolution, float64(j) * g.resolution
}

// Cells enumerates the grid as (index coordinate, vector) pairs in row-major
// order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, 0, len(g.cells))
	for i := 0; i < g.cols; i++ {
		for j := 0; j < g.rows; j++ {
			out = append(out, Cell{I: i, J: j, Vector: g.cells[i*g.rows+j]})
		}
	}
	return out
}

// Snapshot copies the raw cell array, column-major with stride Rows.
func (g *Grid) Snapshot() []Vec2 {
	out := make([]Vec2, len(g.cells))
	copy(out, g.cells)
	return out
}
