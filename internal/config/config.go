package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerequity/equity"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "poker-odds.hcl"

// Config represents the complete poker-odds configuration
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	LogLevel   string              `hcl:"log_level,optional"`
}

// SimulationSettings controls the Monte Carlo run
type SimulationSettings struct {
	Iterations int    `hcl:"iterations,optional"`
	Workers    int    `hcl:"workers,optional"`
	Seed       *int64 `hcl:"seed,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Simulation: &SimulationSettings{
			Iterations: equity.DefaultIterations,
			Workers:    equity.DefaultWorkers(),
		},
		LogLevel: "info",
	}
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Iterations == 0 {
		c.Simulation.Iterations = equity.DefaultIterations
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = equity.DefaultWorkers()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the configuration for values the simulator would reject
func (c *Config) Validate() error {
	if c.Simulation == nil {
		return fmt.Errorf("missing simulation settings")
	}
	if c.Simulation.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Simulation.Iterations)
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Simulation.Workers)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
