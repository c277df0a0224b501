package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML field names. Pointer fields
// distinguish "absent" from zero values.
type FileConfig struct {
	Strategy            string   `toml:"strategy"`
	Strength            *float64 `toml:"strength"`
	BlockSize           *int     `toml:"block_size"`
	PyramidLevels       *int     `toml:"pyramid_levels"`
	Redundancy          *int     `toml:"redundancy"`
	ConfidenceThreshold *float64 `toml:"confidence_threshold"`
	EdgeThreshold       *float64 `toml:"edge_threshold"`
	VarianceThreshold   *float64 `toml:"variance_threshold"`
	ShuffleSeed         *int64   `toml:"shuffle_seed"`
	JPEGQuality         *int     `toml:"jpeg_quality"`
	MaxEdge             *int     `toml:"max_edge"`
	LogLevel            string   `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.hybridmark/config.toml if the user home
// directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".hybridmark", "config.toml")
	}
	return ""
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// ApplyFileConfig applies file values to cfg, skipping any flag the
// user set explicitly (the changed map, keyed by flag name).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	if fc.Strategy != "" && !changed["strategy"] {
		cfg.Strategy = fc.Strategy
	}
	if fc.LogLevel != "" && !changed["log-level"] {
		cfg.LogLevel = fc.LogLevel
	}
	setFloat(&cfg.Strength, fc.Strength, "strength", changed)
	setInt(&cfg.BlockSize, fc.BlockSize, "block-size", changed)
	setInt(&cfg.PyramidLevels, fc.PyramidLevels, "levels", changed)
	setInt(&cfg.Redundancy, fc.Redundancy, "redundancy", changed)
	setFloat(&cfg.ConfidenceThreshold, fc.ConfidenceThreshold, "confidence-threshold", changed)
	setFloat(&cfg.EdgeThreshold, fc.EdgeThreshold, "edge-threshold", changed)
	setFloat(&cfg.VarianceThreshold, fc.VarianceThreshold, "variance-threshold", changed)
	setInt64(&cfg.ShuffleSeed, fc.ShuffleSeed, "seed", changed)
	setInt(&cfg.JPEGQuality, fc.JPEGQuality, "jpeg-quality", changed)
	setInt(&cfg.MaxEdge, fc.MaxEdge, "max-edge", changed)
}

func setFloat(dst *float64, v *float64, flag string, changed map[string]bool) {
	if v != nil && !changed[flag] {
		*dst = *v
	}
}

func setInt(dst *int, v *int, flag string, changed map[string]bool) {
	if v != nil && !changed[flag] {
		*dst = *v
	}
}

func setInt64(dst *int64, v *int64, flag string, changed map[string]bool) {
	if v != nil && !changed[flag] {
		*dst = *v
	}
}
