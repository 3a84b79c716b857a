package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.715, cfg.RelaxFactor)
	assert.Equal(t, 256, cfg.HistogramBins)
	assert.Equal(t, 10*time.Minute, cfg.BucketWidth)
	assert.Equal(t, ';', cfg.SeparatorRune())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
separator: ","
relax_factor: 0.8
bucket_width: 5m
format: yaml
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ',', cfg.SeparatorRune())
	assert.Equal(t, 0.8, cfg.RelaxFactor)
	assert.Equal(t, 5*time.Minute, cfg.BucketWidth)
	assert.Equal(t, "yaml", cfg.Format)
	// untouched keys keep their defaults
	assert.Equal(t, 5.0, cfg.LowerFence)
	assert.Equal(t, "DateTime", cfg.TimeColumn)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("relax_factor: [1, 2"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"separator", func(c *Config) { c.Separator = "|" }},
		{"relax zero", func(c *Config) { c.RelaxFactor = 0 }},
		{"relax above one", func(c *Config) { c.RelaxFactor = 1.2 }},
		{"bins", func(c *Config) { c.HistogramBins = 1 }},
		{"negative fence", func(c *Config) { c.UpperFence = -1 }},
		{"bucket width", func(c *Config) { c.BucketWidth = 0 }},
		{"time column", func(c *Config) { c.TimeColumn = "" }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"format", func(c *Config) { c.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	for _, sep := range []string{";", ",", ":", "."} {
		cfg := DefaultConfig()
		cfg.Separator = sep
		assert.NoError(t, cfg.Validate(), sep)
	}
}
