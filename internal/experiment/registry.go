package experiment

import (
	"fmt"

	"github.com/san-kum/flowlab/internal/config"
	"github.com/san-kum/flowlab/internal/field"
)

const (
	simplexScale    = 0.1
	simplexStrength = 1.0
	vortexStrength  = 1.0
)

// Registry maps generator names to constructors. Generators are built
// against a concrete configuration because most of them depend on the
// domain extents or the seed.
type Registry struct {
	generators map[string]func(cfg *config.Config) field.Generator
}

func NewRegistry() *Registry {
	r := &Registry{
		generators: make(map[string]func(cfg *config.Config) field.Generator),
	}

	r.generators["swirl"] = func(cfg *config.Config) field.Generator {
		return field.NewSwirl(cfg.Width, cfg.Height)
	}
	r.generators["simplex"] = func(cfg *config.Config) field.Generator {
		return field.NewSimplex(cfg.Seed, simplexScale, simplexStrength)
	}
	r.generators["vortex"] = func(cfg *config.Config) field.Generator {
		return field.NewVortex(cfg.Width, cfg.Height, vortexStrength)
	}
	r.generators["identity"] = func(cfg *config.Config) field.Generator {
		return field.Identity
	}

	return r
}

func (r *Registry) GetGenerator(name string, cfg *config.Config) (field.Generator, error) {
	fn, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return fn(cfg), nil
}

func (r *Registry) ListGenerators() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	return names
}
