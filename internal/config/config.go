package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 100.0
	DefaultHeight        = 100.0
	DefaultResolution    = 0.1
	DefaultNeighbourhood = 3
	DefaultDecay         = "inv_linear"
	DefaultGenerator     = "swirl"
	DefaultParticles     = 3
	DefaultLifespan      = 100
)

type Config struct {
	Width         float64         `yaml:"width"`
	Height        float64         `yaml:"height"`
	Resolution    float64         `yaml:"resolution"`
	Neighbourhood int             `yaml:"neighbourhood_size"`
	Decay         string          `yaml:"decay"`
	Generator     string          `yaml:"generator"`
	Seed          int64           `yaml:"seed"`
	Particles     ParticlesConfig `yaml:"particles"`
}

type ParticlesConfig struct {
	Count    int    `yaml:"count"`
	Lifespan int    `yaml:"lifespan"`
	Color    string `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Resolution:    DefaultResolution,
		Neighbourhood: DefaultNeighbourhood,
		Decay:         DefaultDecay,
		Generator:     DefaultGenerator,
		Particles: ParticlesConfig{
			Count:    DefaultParticles,
			Lifespan: DefaultLifespan,
			Color:    "black",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
