// Package analysis provides post-hoc statistics over particle trajectories.
package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/flowlab/internal/field"
)

// Summary condenses one trajectory into scalar statistics.
type Summary struct {
	Steps        int
	PathLength   float64
	Displacement float64
	// Tortuosity is path length over net displacement; 1 for a straight
	// path, 0 when the particle returned to its start.
	Tortuosity float64
	MeanStep   float64
	StdDevStep float64
	Bounds     Bounds
}

// Bounds is the axis-aligned box visited by a trajectory.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Summarize computes the summary of a trajectory. An empty or single-point
// trajectory yields a zero summary with its bounds set to that point.
func Summarize(traj []field.Vec2) Summary {
	if len(traj) == 0 {
		return Summary{}
	}

	xs, ys := Coordinates(traj)
	s := Summary{
		Steps: len(traj) - 1,
		Bounds: Bounds{
			MinX: floats.Min(xs), MaxX: floats.Max(xs),
			MinY: floats.Min(ys), MaxY: floats.Max(ys),
		},
	}
	if s.Steps == 0 {
		return s
	}

	stepLens := make([]float64, s.Steps)
	for i := 0; i < s.Steps; i++ {
		stepLens[i] = traj[i+1].Sub(traj[i]).Norm()
	}

	s.PathLength = floats.Sum(stepLens)
	s.Displacement = traj[len(traj)-1].Sub(traj[0]).Norm()
	s.MeanStep = stat.Mean(stepLens, nil)
	if s.Steps > 1 {
		s.StdDevStep = stat.StdDev(stepLens, nil)
	}
	if s.Displacement > 0 {
		s.Tortuosity = s.PathLength / s.Displacement
	}
	return s
}

// Coordinates splits a trajectory into per-axis series for plotting.
func Coordinates(traj []field.Vec2) (xs, ys []float64) {
	xs = make([]float64, len(traj))
	ys = make([]float64, len(traj))
	for i, p := range traj {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// AggregatePathLength returns the mean path length over a set of
// trajectories.
func AggregatePathLength(trajs [][]field.Vec2) float64 {
	if len(trajs) == 0 {
		return 0
	}
	lengths := make([]float64, len(trajs))
	for i, traj := range trajs {
		lengths[i] = Summarize(traj).PathLength
	}
	return stat.Mean(lengths, nil)
}
