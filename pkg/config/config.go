package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kacperjurak/goramancore"
)

// Config holds all settings of one classification run
type Config struct {
	Separator     string        `yaml:"separator" validate:"oneof=; 0x2C : ."`
	RelaxFactor   float64       `yaml:"relax_factor" validate:"gt=0,lte=1"`
	HistogramBins int           `yaml:"histogram_bins" validate:"gte=2"`
	LowerFence    float64       `yaml:"lower_fence" validate:"gte=0"`
	UpperFence    float64       `yaml:"upper_fence" validate:"gte=0"`
	BucketWidth   time.Duration `yaml:"bucket_width" validate:"gt=0"`
	TimeColumn    string        `yaml:"time_column" validate:"required"`
	Workers       int           `yaml:"workers" validate:"gte=1"`
	Format        string        `yaml:"format" validate:"oneof=json yaml msgpack"`
	Output        string        `yaml:"output"`
	MetricsOut    string        `yaml:"metrics_out"`
	WithSpectra   bool          `yaml:"with_spectra"`
	Debug         bool          `yaml:"debug"`
	Quiet         bool          `yaml:"quiet"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Separator:     ";",
		RelaxFactor:   goramancore.DefaultRelaxFactor,
		HistogramBins: goramancore.DefaultHistogramBins,
		LowerFence:    goramancore.DefaultLowerFence,
		UpperFence:    goramancore.DefaultUpperFence,
		BucketWidth:   goramancore.DefaultBucketWidth,
		TimeColumn:    goramancore.DefaultTimeColumn,
		Workers:       3,
		Format:        "json",
	}
}

// LoadFile overlays the YAML file at path onto the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SeparatorRune returns the column separator as a rune.
func (c *Config) SeparatorRune() rune {
	for _, r := range c.Separator {
		return r
	}
	return 0
}
