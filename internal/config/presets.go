package config

var Presets = map[string]*Config{
	"unit": {
		Width: 1, Height: 1, Resolution: 0.05,
		Neighbourhood: 2, Decay: "inv_linear", Generator: "swirl",
		Particles: ParticlesConfig{Count: 3, Lifespan: 100, Color: "black"},
	},
	"classic": {
		Width: 100, Height: 100, Resolution: 0.1,
		Neighbourhood: 3, Decay: "inv_linear", Generator: "swirl",
		Particles: ParticlesConfig{Count: 10, Lifespan: 100, Color: "black"},
	},
	"sharp": {
		Width: 100, Height: 100, Resolution: 0.1,
		Neighbourhood: 5, Decay: "inv_cubic", Generator: "swirl",
		Particles: ParticlesConfig{Count: 10, Lifespan: 200, Color: "black"},
	},
	"noise": {
		Width: 50, Height: 50, Resolution: 0.25,
		Neighbourhood: 3, Decay: "inv_quadratic", Generator: "simplex",
		Particles: ParticlesConfig{Count: 20, Lifespan: 150, Color: "blue"},
	},
	"vortex": {
		Width: 20, Height: 20, Resolution: 0.1,
		Neighbourhood: 3, Decay: "inv_quadratic", Generator: "vortex",
		Particles: ParticlesConfig{Count: 12, Lifespan: 120, Color: "red"},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
