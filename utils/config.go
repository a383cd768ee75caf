package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for the simulation
type Config struct {
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	StepDelayMs   int     `json:"step_delay_ms"`
	RandomDensity float64 `json:"random_density"`
	Seed          int64   `json:"seed"` // 0 seeds from the clock
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:          30,
		Cols:          30,
		StepDelayMs:   100,
		RandomDensity: 0.2,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// Validate checks that every option is usable
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("[Validate] grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.StepDelayMs <= 0 {
		return errors.Errorf("[Validate] step_delay_ms must be positive, got %d", c.StepDelayMs)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	}
	return nil
}

// StepDelay is the pause between generations while running
func (c Config) StepDelay() time.Duration {
	return time.Duration(c.StepDelayMs) * time.Millisecond
}

// DensityThreshold is the draw a cell must exceed to start alive
func (c Config) DensityThreshold() float64 {
	return 1 - c.RandomDensity
}
