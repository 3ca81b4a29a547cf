package field

// Decay selects the inverse-distance law used to weight neighbourhood
// vectors when sampling the field.
type Decay string

const (
	InvLinear    Decay = "inv_linear"
	InvQuadratic Decay = "inv_quadratic"
	InvCubic     Decay = "inv_cubic"

	DefaultDecay = InvLinear
)

// ParseDecay reports whether name is a recognized decay law.
func ParseDecay(name string) (Decay, bool) {
	switch Decay(name) {
	case InvLinear, InvQuadratic, InvCubic:
		return Decay(name), true
	}
	return DefaultDecay, false
}

// Weight maps a distance to its blending weight. Callers must floor the
// distance before calling; d == 0 divides by zero under every law.
func (d Decay) Weight(dist float64) float64 {
	switch d {
	case InvQuadratic:
		return 1 / (dist * dist)
	case InvCubic:
		return 1 / (dist * dist * dist)
	default:
		return 1 / dist
	}
}
