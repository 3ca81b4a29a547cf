package advect

import (
	"math/rand"
	"sync"
)

// Result pairs an advected particle with the metric values observed over
// its run.
type Result struct {
	Particle *Particle
	Metrics  map[string]float64
}

// Batch advects independent particles concurrently against one shared,
// read-only sampler. The grid behind the sampler must not be mutated for
// the duration of a run; re-initialization must swap in a new grid instead.
type Batch struct {
	sampler Sampler
	metrics func() []Metric
}

// NewBatch creates a batch runner. metrics, if non-nil, produces a fresh
// metric set per particle so concurrent runs never share accumulator state.
func NewBatch(sampler Sampler, metrics func() []Metric) *Batch {
	return &Batch{sampler: sampler, metrics: metrics}
}

// Run advects every particle to completion, one goroutine per particle, and
// returns per-particle results in input order.
func (b *Batch) Run(particles []*Particle) []Result {
	results := make([]Result, len(particles))

	var wg sync.WaitGroup
	for i := range particles {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			adv := New(b.sampler)
			var ms []Metric
			if b.metrics != nil {
				ms = b.metrics()
				for _, m := range ms {
					adv.AddMetric(m)
				}
			}

			adv.RunToCompletion(particles[idx])

			values := make(map[string]float64, len(ms))
			for _, m := range ms {
				values[m.Name()] = m.Value()
			}
			results[idx] = Result{Particle: particles[idx], Metrics: values}
		}(i)
	}
	wg.Wait()

	return results
}

// SeedParticles places n particles uniformly over the domain using the
// caller-owned random source, keeping runs reproducible from a seed.
func SeedParticles(rng *rand.Rand, n int, width, height float64, lifespan int, color string) []*Particle {
	particles := make([]*Particle, n)
	for i := range particles {
		particles[i] = NewParticle(rng.Float64()*width, rng.Float64()*height, lifespan, color)
	}
	return particles
}
