// Package cliconfig holds CLI configuration for the hybridmark tool:
// defaults, TOML file loading, and environment overrides, with explicit
// flags taking precedence over both.
package cliconfig

import (
	"fmt"
)

// Config holds CLI configuration for hybridmark.
type Config struct {
	Strategy string
	Strength float64

	BlockSize     int
	PyramidLevels int
	Redundancy    int

	ConfidenceThreshold float64
	EdgeThreshold       float64
	VarianceThreshold   float64

	ShuffleSeed int64

	JPEGQuality int
	MaxEdge     int
	LogLevel    string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Strategy:            "auto",
		Strength:            0.5,
		BlockSize:           8,
		PyramidLevels:       3,
		Redundancy:          3,
		ConfidenceThreshold: 0.80,
		EdgeThreshold:       0.05,
		VarianceThreshold:   100,
		JPEGQuality:         90,
		LogLevel:            "info",
	}
}

// Validate checks value ranges and reports the first violation.
func (c Config) Validate() error {
	switch c.Strategy {
	case "auto", "dct", "dwt", "hybrid":
	default:
		return fmt.Errorf("strategy %q must be one of auto, dct, dwt, hybrid", c.Strategy)
	}
	if c.Strength <= 0 || c.Strength > 1 {
		return fmt.Errorf("strength %v must be in (0,1]", c.Strength)
	}
	if c.Redundancy < 1 {
		return fmt.Errorf("redundancy %d must be at least 1", c.Redundancy)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg-quality %d must be in [1,100]", c.JPEGQuality)
	}
	if c.MaxEdge < 0 {
		return fmt.Errorf("max-edge %d must not be negative", c.MaxEdge)
	}
	return nil
}
