package field

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Generator maps a domain coordinate to the field vector stored there.
type Generator func(x, y float64) Vec2

// Identity returns the coordinate unchanged. Useful as a reference field:
// every cell holds its own position.
func Identity(x, y float64) Vec2 {
	return Vec2{x, y}
}

// NewSwirl is the default field recurrence. The value at a point is itself a
// position-like quantity, folded back into the domain, which produces a
// self-referential bounded flow rather than anything physical.
func NewSwirl(width, height float64) Generator {
	return func(x, y float64) Vec2 {
		x = 2*math.Pi*math.Sin(x) + y
		y = 2*math.Pi*math.Cos(y) + x
		if x < 0 || x >= width {
			x = wrap(x, width)
		}
		if y < 0 || y >= height {
			y = wrap(y, height)
		}
		return Vec2{x, y}
	}
}

// NewSimplex derives the field from smooth simplex noise: one noise channel
// picks the heading, a second offset channel picks the magnitude.
func NewSimplex(seed int64, scale, strength float64) Generator {
	noise := opensimplex.New(seed)
	return func(x, y float64) Vec2 {
		angle := noise.Eval2(x*scale, y*scale) * 2 * math.Pi
		mag := (noise.Eval2(x*scale+100, y*scale+100) + 1) * 0.5 * strength
		return Vec2{math.Cos(angle) * mag, math.Sin(angle) * mag}
	}
}

// NewVortex circulates the field around the domain center.
func NewVortex(width, height, strength float64) Generator {
	cx, cy := width/2, height/2
	return func(x, y float64) Vec2 {
		dx, dy := x-cx, y-cy
		r := math.Hypot(dx, dy)
		if r == 0 {
			return Vec2{}
		}
		return Vec2{-dy / r * strength, dx / r * strength}
	}
}

// wrap reduces v into [0, extent) with a Euclidean modulo.
func wrap(v, extent float64) float64 {
	m := math.Mod(v, extent)
	if m < 0 {
		m += extent
	}
	return m
}
