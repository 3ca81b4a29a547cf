package advect

import (
	"errors"

	"github.com/san-kum/flowlab/internal/field"
)

// ErrTerminalParticle is returned by Step for a particle whose step budget
// is already exhausted. It signals a programmer error, not a normal end of
// advection.
var ErrTerminalParticle = errors.New("advect: step on terminal particle")

// Sampler yields the field vector to apply at a position. Satisfied by
// *sampler.Sampler.
type Sampler interface {
	Sample(x, y float64) field.Vec2
}

// Metric accumulates a scalar over the steps of one particle's advection.
type Metric interface {
	Name() string
	Observe(pos, vec field.Vec2, step int)
	Value() float64
	Reset()
}

// Observer is notified after every step.
type Observer interface {
	OnStep(p *Particle, vec field.Vec2, step int)
}

// Advector drives particles through the field one unit step at a time.
type Advector struct {
	sampler   Sampler
	metrics   []Metric
	observers []Observer
}

func New(sampler Sampler) *Advector {
	return &Advector{sampler: sampler}
}

func (a *Advector) AddMetric(m Metric)     { a.metrics = append(a.metrics, m) }
func (a *Advector) AddObserver(o Observer) { a.observers = append(a.observers, o) }

// Step samples the field at the particle's position, adds the sampled
// vector to the position (explicit Euler, unit step), appends the new
// position to the trajectory and decrements the countdown.
func (a *Advector) Step(p *Particle) error {
	if p.remaining == 0 {
		return ErrTerminalParticle
	}

	step := p.lifespan - p.remaining
	vec := a.sampler.Sample(p.pos.X, p.pos.Y)

	p.pos = p.pos.Add(vec)
	p.trajectory = append(p.trajectory, p.pos)
	p.remaining--

	for _, m := range a.metrics {
		m.Observe(p.pos, vec, step)
	}
	for _, o := range a.observers {
		o.OnStep(p, vec, step)
	}
	return nil
}

// RunToCompletion steps the particle until it is Terminal. There is no
// cancellation: a started advection always completes its step budget.
func (a *Advector) RunToCompletion(p *Particle) {
	for _, m := range a.metrics {
		m.Reset()
	}
	for !p.Terminal() {
		// Step cannot fail here; terminality was just checked.
		_ = a.Step(p)
	}
}
