package sampler

import (
	"math"
	"testing"

	"github.com/san-kum/flowlab/internal/field"
)

func mustGrid(t *testing.T, w, h, res float64, k int, decay field.Decay) *field.Grid {
	t.Helper()
	g, err := field.New(w, h, res, k, decay)
	if err != nil {
		t.Fatalf("grid construction failed: %v", err)
	}
	return g
}

func TestSampleUniformField(t *testing.T) {
	g := mustGrid(t, 1, 1, 0.05, 3, field.InvLinear)
	g.Initialize(func(x, y float64) field.Vec2 {
		return field.Vec2{X: 3, Y: 4}
	})

	s := New(g)
	v := s.Sample(0.37, 0.61)

	if !v.IsValid() || v.X <= 0 {
		t.Fatalf("expected a finite positive sample, got %+v", v)
	}
	if ratio := v.Y / v.X; math.Abs(ratio-4.0/3.0) > 1e-12 {
		t.Errorf("uniform field must keep component ratio: got %f, want %f", ratio, 4.0/3.0)
	}
}

func TestSampleNearBoundaryStaysInRange(t *testing.T) {
	g := mustGrid(t, 1, 1, 0.05, 2, field.InvLinear)
	s := New(g)

	// Queries near edges, outside the domain, and far outside. Any of these
	// panicking means the window indexed out of range.
	queries := []struct{ x, y float64 }{
		{0, 0},
		{0.99, 0.99},
		{-0.01, 0.5},
		{0.5, -0.01},
		{12.7, -33.2},
		{-5.3, 100.7},
	}

	for _, q := range queries {
		v := s.Sample(q.x, q.y)
		if !v.IsValid() {
			t.Errorf("Sample(%g, %g) produced invalid vector %+v", q.x, q.y, v)
		}
	}
}

func TestSampleWrapEquivalence(t *testing.T) {
	g := mustGrid(t, 1, 1, 0.05, 2, field.InvLinear)
	s := New(g)

	// Offsets chosen so the modulo reduction is exact in floating point.
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
	}{
		{"x shifted by domain", 2.5, 0.5, 0.5, 0.5},
		{"y shifted by domain", 0.25, 3.25, 0.25, 0.25},
		{"negative x", -0.25, 0.5, 0.75, 0.5},
		{"both shifted", -0.5, 1.5, 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := s.Sample(tt.x1, tt.y1)
			b := s.Sample(tt.x2, tt.y2)
			if a != b {
				t.Errorf("Sample(%g,%g)=%+v, Sample(%g,%g)=%+v; wrapped queries must agree",
					tt.x1, tt.y1, a, tt.x2, tt.y2, b)
			}
		})
	}
}

func TestSampleDegenerateDistance(t *testing.T) {
	// Query exactly on a window cell's coordinate: d=0 for that cell. The
	// epsilon floor must keep every decay law finite, with the coincident
	// cell dominating the sum.
	for _, decay := range []field.Decay{field.InvLinear, field.InvQuadratic, field.InvCubic} {
		g := mustGrid(t, 4, 4, 1, 2, decay)
		g.Initialize(field.Identity)
		s := New(g)

		v := s.Sample(2, 2)
		if !v.IsValid() {
			t.Fatalf("%s: sample at cell coordinate produced %+v", decay, v)
		}
		// Cell (2,2) holds (2,2): the dominant term is symmetric.
		if math.Abs(v.X-v.Y) > math.Abs(v.X)*1e-6 {
			t.Errorf("%s: expected dominant symmetric contribution, got %+v", decay, v)
		}
		if v.X < decay.Weight(Epsilon)*2*0.999 {
			t.Errorf("%s: coincident cell should dominate, got %+v", decay, v)
		}
	}
}

func TestSampleStraddlingWindow(t *testing.T) {
	// 2x2 grid, query at the origin. The window [floor(-1), floor(1)) wraps
	// to indices {1, 0} on both axes, so all four cells contribute.
	g := mustGrid(t, 1, 1, 0.5, 2, field.InvLinear)
	g.Initialize(func(x, y float64) field.Vec2 {
		return field.Vec2{X: 1, Y: 1}
	})
	s := New(g)

	// Distances from (0,0): 0 (floored), 0.5, 0.5, 0.5*sqrt2.
	want := 1/Epsilon + 2*(1/0.5) + 1/(0.5*math.Sqrt2)
	got := s.Sample(0, 0)
	if math.Abs(got.X-want) > want*1e-9 {
		t.Errorf("straddling window weight sum: got %g, want %g", got.X, want)
	}
	if got.X != got.Y {
		t.Errorf("uniform field must sample symmetrically, got %+v", got)
	}
}

func TestSampleReflectsReinitialization(t *testing.T) {
	g := mustGrid(t, 1, 1, 0.1, 2, field.InvQuadratic)
	s := New(g)

	g.Initialize(func(x, y float64) field.Vec2 { return field.Vec2{X: 1} })
	before := s.Sample(0.5, 0.5)

	g.Initialize(func(x, y float64) field.Vec2 { return field.Vec2{X: 2} })
	after := s.Sample(0.5, 0.5)

	if math.Abs(after.X-2*before.X) > math.Abs(after.X)*1e-12 {
		t.Errorf("re-initialized field must be visible to the sampler: before %+v, after %+v", before, after)
	}
}
