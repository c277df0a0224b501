package cliconfig

import (
	"os"
	"strconv"
)

// ApplyEnvConfig applies HYBRIDMARK_* environment variables to cfg.
// They override file config but lose to explicitly set flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	envString(&cfg.Strategy, "HYBRIDMARK_STRATEGY", "strategy", changed)
	envString(&cfg.LogLevel, "HYBRIDMARK_LOG_LEVEL", "log-level", changed)
	envFloat(&cfg.Strength, "HYBRIDMARK_STRENGTH", "strength", changed)
	envInt(&cfg.BlockSize, "HYBRIDMARK_BLOCK_SIZE", "block-size", changed)
	envInt(&cfg.PyramidLevels, "HYBRIDMARK_PYRAMID_LEVELS", "levels", changed)
	envInt(&cfg.Redundancy, "HYBRIDMARK_REDUNDANCY", "redundancy", changed)
	envFloat(&cfg.ConfidenceThreshold, "HYBRIDMARK_CONFIDENCE_THRESHOLD", "confidence-threshold", changed)
	envFloat(&cfg.EdgeThreshold, "HYBRIDMARK_EDGE_THRESHOLD", "edge-threshold", changed)
	envFloat(&cfg.VarianceThreshold, "HYBRIDMARK_VARIANCE_THRESHOLD", "variance-threshold", changed)
	envInt64(&cfg.ShuffleSeed, "HYBRIDMARK_SHUFFLE_SEED", "seed", changed)
	envInt(&cfg.JPEGQuality, "HYBRIDMARK_JPEG_QUALITY", "jpeg-quality", changed)
	envInt(&cfg.MaxEdge, "HYBRIDMARK_MAX_EDGE", "max-edge", changed)
}

func envString(dst *string, key, flag string, changed map[string]bool) {
	if v := os.Getenv(key); v != "" && !changed[flag] {
		*dst = v
	}
}

func envFloat(dst *float64, key, flag string, changed map[string]bool) {
	if v := os.Getenv(key); v != "" && !changed[flag] {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envInt(dst *int, key, flag string, changed map[string]bool) {
	if v := os.Getenv(key); v != "" && !changed[flag] {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envInt64(dst *int64, key, flag string, changed map[string]bool) {
	if v := os.Getenv(key); v != "" && !changed[flag] {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
