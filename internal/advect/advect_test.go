package advect

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/sampler"
)

type constSampler struct {
	vec field.Vec2
}

func (c constSampler) Sample(x, y float64) field.Vec2 { return c.vec }

func TestStepAdvancesParticle(t *testing.T) {
	adv := New(constSampler{field.Vec2{X: 1, Y: -2}})
	p := NewParticle(0.5, 0.5, 3, "black")

	if err := adv.Step(p); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	want := field.Vec2{X: 1.5, Y: -1.5}
	if p.Position() != want {
		t.Errorf("position after step: got %+v, want %+v", p.Position(), want)
	}
	if p.Remaining() != 2 {
		t.Errorf("remaining: got %d, want 2", p.Remaining())
	}
}

func TestTrajectoryInvariant(t *testing.T) {
	adv := New(constSampler{field.Vec2{X: 0.1, Y: 0.1}})
	p := NewParticle(0, 0, 5, "")

	for !p.Terminal() {
		if got, want := len(p.Trajectory()), p.Lifespan()-p.Remaining()+1; got != want {
			t.Fatalf("trajectory length %d, want %d at remaining=%d", got, want, p.Remaining())
		}
		if err := adv.Step(p); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	if got := len(p.Trajectory()); got != p.Lifespan()+1 {
		t.Errorf("final trajectory length %d, want %d", got, p.Lifespan()+1)
	}
}

func TestStepOnTerminalParticle(t *testing.T) {
	adv := New(constSampler{})

	p := NewParticle(0, 0, 1, "")
	adv.RunToCompletion(p)

	if !p.Terminal() {
		t.Fatal("particle should be terminal")
	}
	if err := adv.Step(p); !errors.Is(err, ErrTerminalParticle) {
		t.Errorf("step on terminal particle: got %v, want ErrTerminalParticle", err)
	}
}

func TestZeroLifespan(t *testing.T) {
	adv := New(constSampler{})
	p := NewParticle(1, 2, 0, "")

	if !p.Terminal() {
		t.Error("zero-lifespan particle must be born terminal")
	}
	if got := len(p.Trajectory()); got != 1 {
		t.Errorf("trajectory length %d, want 1", got)
	}
	if err := adv.Step(p); !errors.Is(err, ErrTerminalParticle) {
		t.Errorf("expected ErrTerminalParticle, got %v", err)
	}
}

func TestNegativeLifespanClamped(t *testing.T) {
	p := NewParticle(0, 0, -4, "")
	if p.Lifespan() != 0 || !p.Terminal() {
		t.Errorf("negative lifespan should clamp to 0, got lifespan=%d", p.Lifespan())
	}
}

type recordObserver struct {
	vecs []field.Vec2
}

func (r *recordObserver) OnStep(p *Particle, vec field.Vec2, step int) {
	r.vecs = append(r.vecs, vec)
}

// The unit-field scenario: each position must equal the previous one plus
// the vector the sampler produced there. The check is additive on purpose:
// subtracting huge positions loses low-order bits of the vector, while
// repeating the Add reproduces the stored position bit for bit.
func TestRunToCompletionAgainstSampler(t *testing.T) {
	g, err := field.New(1, 1, 0.05, 2, field.InvLinear)
	if err != nil {
		t.Fatalf("grid construction failed: %v", err)
	}
	s := sampler.New(g)

	adv := New(s)
	rec := &recordObserver{}
	adv.AddObserver(rec)

	p := NewParticle(0, 0, 3, "black")
	adv.RunToCompletion(p)

	traj := p.Trajectory()
	if len(traj) != 4 {
		t.Fatalf("trajectory length %d, want 4", len(traj))
	}
	if len(rec.vecs) != 3 {
		t.Fatalf("observed %d steps, want 3", len(rec.vecs))
	}

	for i := 0; i < len(traj)-1; i++ {
		vec := s.Sample(traj[i].X, traj[i].Y)
		if rec.vecs[i] != vec {
			t.Errorf("step %d: applied vector %+v, re-sampled %+v", i, rec.vecs[i], vec)
		}
		if got := traj[i].Add(vec); got != traj[i+1] {
			t.Errorf("step %d: prior position plus sampled vector %+v, stored position %+v",
				i, got, traj[i+1])
		}
	}
}

type countMetric struct {
	steps int
}

func (c *countMetric) Name() string                             { return "steps" }
func (c *countMetric) Observe(pos, vec field.Vec2, step int)    { c.steps++ }
func (c *countMetric) Value() float64                           { return float64(c.steps) }
func (c *countMetric) Reset()                                   { c.steps = 0 }

func TestBatchRun(t *testing.T) {
	b := NewBatch(constSampler{field.Vec2{X: 1}}, func() []Metric {
		return []Metric{&countMetric{}}
	})

	rng := rand.New(rand.NewSource(7))
	particles := SeedParticles(rng, 8, 1, 1, 10, "red")

	results := b.Run(particles)
	if len(results) != len(particles) {
		t.Fatalf("got %d results, want %d", len(results), len(particles))
	}

	for i, r := range results {
		if r.Particle != particles[i] {
			t.Errorf("result %d out of order", i)
		}
		if !r.Particle.Terminal() {
			t.Errorf("particle %d not terminal after batch run", i)
		}
		if got := r.Metrics["steps"]; got != 10 {
			t.Errorf("particle %d observed %v steps, want 10", i, got)
		}
	}
}

func TestSeedParticlesReproducible(t *testing.T) {
	a := SeedParticles(rand.New(rand.NewSource(42)), 5, 2, 3, 1, "")
	b := SeedParticles(rand.New(rand.NewSource(42)), 5, 2, 3, 1, "")

	for i := range a {
		if a[i].Position() != b[i].Position() {
			t.Errorf("particle %d: %+v != %+v; same seed must give same layout",
				i, a[i].Position(), b[i].Position())
		}
	}
}
