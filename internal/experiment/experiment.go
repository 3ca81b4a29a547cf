package experiment

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/flowlab/internal/advect"
	"github.com/san-kum/flowlab/internal/config"
	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/metrics"
	"github.com/san-kum/flowlab/internal/sampler"
)

// Experiment builds a populated grid and a seeded particle batch from one
// configuration and advects the batch to completion.
type Experiment struct {
	cfg        *config.Config
	grid       *field.Grid
	randSource *rand.Rand
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Setup constructs and populates the grid. Configuration for which the grid
// shape is undefined fails here, before any particles exist.
func (e *Experiment) Setup() error {
	grid, err := field.New(e.cfg.Width, e.cfg.Height, e.cfg.Resolution,
		e.cfg.Neighbourhood, field.Decay(e.cfg.Decay))
	if err != nil {
		return err
	}

	gen, err := NewRegistry().GetGenerator(e.cfg.Generator, e.cfg)
	if err != nil {
		return err
	}
	grid.Initialize(gen)

	e.grid = grid
	return nil
}

// Grid returns the populated grid, nil before Setup.
func (e *Experiment) Grid() *field.Grid { return e.grid }

// Particles seeds a fresh particle set from the experiment's random source.
func (e *Experiment) Particles() []*advect.Particle {
	return advect.SeedParticles(e.randSource, e.cfg.Particles.Count,
		e.cfg.Width, e.cfg.Height, e.cfg.Particles.Lifespan, e.cfg.Particles.Color)
}

// Run advects a seeded batch against the grid and returns per-particle
// results with the standard metric set.
func (e *Experiment) Run() ([]advect.Result, error) {
	if e.grid == nil {
		return nil, fmt.Errorf("experiment not set up")
	}

	batch := advect.NewBatch(sampler.New(e.grid), func() []advect.Metric {
		return []advect.Metric{
			metrics.NewPathLength(),
			metrics.NewDisplacement(),
			metrics.NewExcursion(e.cfg.Width, e.cfg.Height),
		}
	})

	return batch.Run(e.Particles()), nil
}
