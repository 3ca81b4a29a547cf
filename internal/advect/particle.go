package advect

import "github.com/san-kum/flowlab/internal/field"

// Particle is a point advected through the field. Its position is
// unconstrained: particles may drift out of the field's coordinate domain,
// only the sampler's index lookups wrap.
//
// A particle is Active while steps remain and Terminal once the countdown
// hits zero; Terminal particles are immutable.
type Particle struct {
	pos        field.Vec2
	lifespan   int
	remaining  int
	trajectory []field.Vec2
	color      string
}

// NewParticle creates an Active particle at (x, y) with a fixed step budget.
// A negative lifespan is treated as zero: the particle is born Terminal.
// The color tag is opaque and passed through to rendering unmodified.
func NewParticle(x, y float64, lifespan int, color string) *Particle {
	if lifespan < 0 {
		lifespan = 0
	}
	p := &Particle{
		pos:       field.Vec2{X: x, Y: y},
		lifespan:  lifespan,
		remaining: lifespan,
		color:     color,
	}
	// The trajectory always starts with the initial position and grows by
	// exactly one entry per step, so the full capacity is known up front.
	p.trajectory = make([]field.Vec2, 1, lifespan+1)
	p.trajectory[0] = p.pos
	return p
}

func (p *Particle) Position() field.Vec2 { return p.pos }
func (p *Particle) Lifespan() int        { return p.lifespan }
func (p *Particle) Remaining() int       { return p.remaining }
func (p *Particle) Color() string        { return p.color }

// Terminal reports whether the particle has exhausted its step budget.
func (p *Particle) Terminal() bool { return p.remaining == 0 }

// Trajectory returns the positions visited so far, initial position first.
// The slice is append-only and owned by the particle; callers must not
// modify it.
func (p *Particle) Trajectory() []field.Vec2 { return p.trajectory }
