package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the YAML run configuration. Secrets (DATABASE_URL) come from the
// environment, not the file; command-line flags override file values.
type Config struct {
	CensusPath  string `yaml:"census_path"`
	BirthsPath  string `yaml:"births_path"`
	TargetState string `yaml:"target_state"`
	Bins        int    `yaml:"bins"`
	Persist     bool   `yaml:"persist"`
}

// Default matches the original Queensland scoping analysis.
func Default() Config {
	return Config{
		TargetState: "QLD",
		Bins:        20,
	}
}

// Load reads a YAML config file, filling unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.TargetState == "" {
		cfg.TargetState = Default().TargetState
	}
	if cfg.Bins == 0 {
		cfg.Bins = Default().Bins
	}
	return cfg, nil
}
