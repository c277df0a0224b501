package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "auto", cfg.Strategy)
	assert.Equal(t, 0.5, cfg.Strength)
}

func TestValidate(t *testing.T) {
	test := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, ok: true},
		{name: "dwt strategy", mutate: func(c *Config) { c.Strategy = "dwt" }, ok: true},
		{name: "unknown strategy", mutate: func(c *Config) { c.Strategy = "wavelet" }, ok: false},
		{name: "strength zero", mutate: func(c *Config) { c.Strength = 0 }, ok: false},
		{name: "strength above one", mutate: func(c *Config) { c.Strength = 1.2 }, ok: false},
		{name: "redundancy zero", mutate: func(c *Config) { c.Redundancy = 0 }, ok: false},
		{name: "quality out of range", mutate: func(c *Config) { c.JPEGQuality = 0 }, ok: false},
		{name: "negative max edge", mutate: func(c *Config) { c.MaxEdge = -1 }, ok: false},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
strategy = "dct"
strength = 0.7
block_size = 16
shuffle_seed = 424242
log_level = "debug"
`), 0o600))

	fc, err := LoadFileConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dct", fc.Strategy)
	require.NotNil(t, fc.Strength)
	assert.Equal(t, 0.7, *fc.Strength)
	require.NotNil(t, fc.BlockSize)
	assert.Equal(t, 16, *fc.BlockSize)
	require.NotNil(t, fc.ShuffleSeed)
	assert.Equal(t, int64(424242), *fc.ShuffleSeed)
	assert.Equal(t, "debug", fc.LogLevel)
	assert.Nil(t, fc.Redundancy, "absent keys must stay nil")
}

func TestLoadFileConfig_Errors(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("strategy = [not toml"), 0o600))
	_, err = LoadFileConfig(path)
	assert.Error(t, err)
}

func TestApplyFileConfig_Precedence(t *testing.T) {
	strength := 0.9
	levels := 4
	fc := FileConfig{
		Strategy:      "hybrid",
		Strength:      &strength,
		PyramidLevels: &levels,
	}

	cfg := DefaultConfig()
	changed := map[string]bool{"strength": true}
	ApplyFileConfig(&cfg, fc, changed)

	assert.Equal(t, "hybrid", cfg.Strategy)
	assert.Equal(t, 0.5, cfg.Strength, "explicit flag must win over file")
	assert.Equal(t, 4, cfg.PyramidLevels)
	assert.Equal(t, 8, cfg.BlockSize, "absent file keys keep defaults")
}

func TestApplyEnvConfig_Precedence(t *testing.T) {
	t.Setenv("HYBRIDMARK_STRATEGY", "dwt")
	t.Setenv("HYBRIDMARK_STRENGTH", "0.3")
	t.Setenv("HYBRIDMARK_SHUFFLE_SEED", "777")
	t.Setenv("HYBRIDMARK_JPEG_QUALITY", "not-a-number")
	t.Setenv("HYBRIDMARK_MAX_EDGE", "2048")

	cfg := DefaultConfig()
	changed := map[string]bool{"strategy": true, "max-edge": true}
	ApplyEnvConfig(&cfg, changed)

	assert.Equal(t, "auto", cfg.Strategy, "explicit flag must win over env")
	assert.Equal(t, 0.3, cfg.Strength)
	assert.Equal(t, int64(777), cfg.ShuffleSeed)
	assert.Equal(t, 90, cfg.JPEGQuality, "unparsable env values are ignored")
	assert.Zero(t, cfg.MaxEdge, "explicit flag must win over env")

	t.Setenv("HYBRIDMARK_JPEG_QUALITY", "75")
	ApplyEnvConfig(&cfg, map[string]bool{"jpeg-quality": true})
	assert.Equal(t, 90, cfg.JPEGQuality, "explicit flag must win over env")
	ApplyEnvConfig(&cfg, map[string]bool{})
	assert.Equal(t, 75, cfg.JPEGQuality)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir), "directories are not config files")
}
