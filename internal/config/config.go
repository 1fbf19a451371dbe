package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mcint/internal/sampling"
)

const (
	DefaultProblem     = "plane"
	DefaultGenerator   = sampling.SourcePCG
	DefaultSamples     = 10000
	DefaultMinExp      = 1.0
	DefaultMaxExp      = 5.0
	DefaultPoints      = 20
	DefaultEnvironment = "production"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config drives a run. Fields may be overridden by MCINT_* environment
// variables. A zero Seed means the caller picks one.
type Config struct {
	Problem     string      `yaml:"problem" env:"MCINT_PROBLEM" env-default:"plane"`
	Generator   string      `yaml:"generator" env:"MCINT_GENERATOR" env-default:"pcg"`
	Seed        uint64      `yaml:"seed" env:"MCINT_SEED"`
	Samples     int         `yaml:"samples" env:"MCINT_SAMPLES" env-default:"10000"`
	Sweep       SweepConfig `yaml:"sweep"`
	Environment string      `yaml:"environment" env:"MCINT_ENVIRONMENT" env-default:"production"`
}

// SweepConfig describes the sample counts of a convergence sweep:
// Points log-spaced values from 10^MinExp to 10^MaxExp.
type SweepConfig struct {
	MinExp float64 `yaml:"min_exp" env:"MCINT_SWEEP_MIN_EXP" env-default:"1"`
	MaxExp float64 `yaml:"max_exp" env:"MCINT_SWEEP_MAX_EXP" env-default:"5"`
	Points int     `yaml:"points" env:"MCINT_SWEEP_POINTS" env-default:"20"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:   DefaultProblem,
		Generator: DefaultGenerator,
		Samples:   DefaultSamples,
		Sweep: SweepConfig{
			MinExp: DefaultMinExp,
			MaxExp: DefaultMaxExp,
			Points: DefaultPoints,
		},
		Environment: DefaultEnvironment,
	}
}

// Load reads a YAML file and applies environment overrides. An empty path
// reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidConfig, c.Samples)
	}
	if c.Generator != "" && !slices.Contains(sampling.Sources(), c.Generator) {
		return fmt.Errorf("%w: unknown generator %q", ErrInvalidConfig, c.Generator)
	}
	return c.Sweep.Validate()
}

func (s SweepConfig) Validate() error {
	if s.Points <= 0 {
		return fmt.Errorf("%w: sweep points must be positive, got %d", ErrInvalidConfig, s.Points)
	}
	if s.MinExp < 0 || s.MinExp > s.MaxExp {
		return fmt.Errorf("%w: sweep exponents must satisfy 0 <= min <= max, got %g..%g", ErrInvalidConfig, s.MinExp, s.MaxExp)
	}
	return nil
}
