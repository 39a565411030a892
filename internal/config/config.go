// Package config loads the benchmark configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
)

// DefaultYAML is the documented starter configuration; `mrtacoal
// config init` drops it next to a dataset.
const DefaultYAML = `# mrtacoal benchmark configuration
dataset: data/benchmark

# Instance range, inclusive on both ends.
start_instance: 0
end_instance: 19

# Scheduler: coalition-greedy or task-order.
scheduler: coalition-greedy

# Optional outputs. Empty strings disable them.
csv: ""
db: ""
`

// Config models the benchmark configuration file.
type Config struct {
	Dataset   string `yaml:"dataset"`
	Start     int    `yaml:"start_instance"`
	End       int    `yaml:"end_instance"`
	Scheduler string `yaml:"scheduler"`
	CSV       string `yaml:"csv,omitempty"`
	DB        string `yaml:"db,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dataset:   "data/benchmark",
		Start:     0,
		End:       19,
		Scheduler: "coalition-greedy",
	}
}

// Load reads a YAML config file on top of the defaults and validates
// the result. Unset keys keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the instance range and the scheduler name.
func (c Config) Validate() error {
	if c.Dataset == "" {
		return fmt.Errorf("dataset directory is empty")
	}
	if c.End < c.Start {
		return fmt.Errorf("end_instance %d before start_instance %d", c.End, c.Start)
	}
	for _, name := range algo.Names() {
		if c.Scheduler == name {
			return nil
		}
	}
	return fmt.Errorf("unknown scheduler %q (have %v)", c.Scheduler, algo.Names())
}

// WriteDefault writes the documented default config to path, refusing
// to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return os.WriteFile(path, []byte(DefaultYAML), 0o644)
}
