// Package field provides the discretized 2D vector field.
//
// A [Grid] holds one vector per cell, sampled at fixed resolution over a
// bounded domain. Cells are populated by a pluggable [Generator]:
//
//   - [NewSwirl]: the default self-referential recurrence
//   - [NewSimplex]: smooth simplex-noise flow
//   - [NewVortex]: circulation around the domain center
//   - [Identity]: each cell holds its own coordinate
//
// Grids are immutable between initializations. Initialize installs a fully
// populated cell array in one assignment, so a re-initialization concurrent
// with readers behaves as a snapshot swap, never as in-place mutation.
package field
