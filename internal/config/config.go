// Package config defines the pipeline configuration: named, typed,
// defaulted fields loaded from a YAML file and validated once at load time.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ericboehlke/Resistor-Reader/internal/bands"
	"github.com/ericboehlke/Resistor-Reader/internal/roi"
)

// Debug toggles per-stage snapshot emission. The toggles are consumed by
// the snapshot recorder, never by the algorithms.
type Debug struct {
	Dir        string `yaml:"dir"`
	Preprocess bool   `yaml:"preprocess"`
	ROI        bool   `yaml:"roi"`
	Bands      bool   `yaml:"bands"`
}

// Any reports whether any stage snapshot is enabled.
func (d Debug) Any() bool {
	return d.Preprocess || d.ROI || d.Bands
}

// Config holds every tunable of the reading pipeline.
type Config struct {
	Foreground roi.ForegroundOptions `yaml:"foreground"`
	ROI        roi.ExtractOptions    `yaml:"roi"`
	Bands      bands.Options         `yaml:"bands"`
	Debug      Debug                 `yaml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Foreground: roi.DefaultForegroundOptions(),
		ROI:        roi.DefaultExtractOptions(),
		Bands:      bands.DefaultOptions(),
		Debug:      Debug{Dir: "logs"},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field once so the stages can trust their options.
func (c Config) Validate() error {
	if c.Foreground.HueDelta < 1 || c.Foreground.HueDelta > 90 {
		return fmt.Errorf("foreground.hue_delta %g outside [1, 90]", c.Foreground.HueDelta)
	}
	if c.ROI.LeadDistance <= 0 {
		return fmt.Errorf("roi.lead_distance %g must be positive", c.ROI.LeadDistance)
	}
	if c.ROI.Padding < 0 {
		return fmt.Errorf("roi.padding %d must not be negative", c.ROI.Padding)
	}
	if c.Bands.PeakSeparation <= 0 || c.Bands.PeakSeparation > 0.5 {
		return fmt.Errorf("bands.peak_separation %g outside (0, 0.5]", c.Bands.PeakSeparation)
	}
	if c.Bands.SmoothKernel < 1 || c.Bands.SmoothKernel%2 == 0 {
		return fmt.Errorf("bands.smooth_kernel %d must be odd and positive", c.Bands.SmoothKernel)
	}
	return nil
}
