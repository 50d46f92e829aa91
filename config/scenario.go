package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/malick97/Rental-Profit/services"
)

// Scenario is a saved pricing form. Fields use the same names as the
// HTTP API; omitted fields take the usual defaults.
//
//	name: Trastevere two-bed
//	city: Roma
//	beds: 2
//	nightly_price: 140
type Scenario struct {
	Name string              `yaml:"name"`
	Form services.FormValues `yaml:",inline"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	return &s, nil
}

// SweepRange returns the configured price sweep.
func (c *Config) SweepRange() services.SweepRange {
	return services.SweepRange{
		LowFactor:  c.SweepLowFactor,
		HighFactor: c.SweepHighFactor,
		Step:       c.SweepStep,
	}
}

// Validate reports configuration that would make every run meaningless.
func (c *Config) Validate() error {
	if err := c.SweepRange().Validate(); err != nil {
		return fmt.Errorf("SWEEP_LOW_FACTOR/SWEEP_HIGH_FACTOR/SWEEP_STEP: %w", err)
	}
	return nil
}
