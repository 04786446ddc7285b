package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAlpha   = 0.8
	DefaultTol     = 1e-6
	DefaultMaxIter = 100
	DefaultQ0      = 1.0
	DefaultDim     = 16
)

// Config describes one convergence experiment. Load starts from the package
// defaults, so a partial yaml file only overrides what it names.
type Config struct {
	Model   string  `yaml:"model"`
	Solver  string  `yaml:"solver"`
	Mixer   string  `yaml:"mixer"`
	Dim     int     `yaml:"dim"`
	Alpha   float64 `yaml:"alpha"`
	Tol     float64 `yaml:"tol"`
	MaxIter int     `yaml:"max_iter"`
	Window  int     `yaml:"window"`
	Q0      float64 `yaml:"q0"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:   "silicon",
		Solver:  "damped",
		Mixer:   "simple",
		Dim:     DefaultDim,
		Alpha:   DefaultAlpha,
		Tol:     DefaultTol,
		MaxIter: DefaultMaxIter,
		Q0:      DefaultQ0,
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
