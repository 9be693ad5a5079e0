// Package config loads pipeline settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-transform/internal/pipeline"
	"github.com/ironsheep/image-transform/internal/transform"
)

// Config mirrors pipeline.Options with names suitable for a file.
type Config struct {
	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	InverseOutput string `yaml:"inverse_output"`
	Weights       string `yaml:"weights"`
	Domain        string `yaml:"domain"`
	JPEGQuality   int    `yaml:"jpeg_quality"`
	Stretch       *bool  `yaml:"stretch"`
}

// Default returns a config with every field set to its default.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads a YAML file, fills in defaults and validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Input == "" {
		c.Input = pipeline.DefaultInput
	}
	if c.Output == "" {
		c.Output = pipeline.DefaultOutput
	}
	if c.Weights == "" {
		c.Weights = "literal"
	}
	if c.Domain == "" {
		c.Domain = transform.Domain8Bit.String()
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = 95
	}
	if c.Stretch == nil {
		stretch := true
		c.Stretch = &stretch
	}
}

// Validate checks names and ranges.
func (c *Config) Validate() error {
	if _, err := transform.ParseWeights(c.Weights); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if _, err := transform.ParseDomain(c.Domain); err != nil {
		return fmt.Errorf("domain: %w", err)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be in 1..100, got %d", c.JPEGQuality)
	}
	if c.Output == c.InverseOutput {
		return fmt.Errorf("output and inverse_output must differ")
	}
	return nil
}

// Options converts the config to pipeline options. The config must be valid.
func (c *Config) Options() (pipeline.Options, error) {
	if err := c.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	weights, _ := transform.ParseWeights(c.Weights)
	domain, _ := transform.ParseDomain(c.Domain)

	stretch := true
	if c.Stretch != nil {
		stretch = *c.Stretch
	}

	return pipeline.Options{
		Input:         c.Input,
		Output:        c.Output,
		InverseOutput: c.InverseOutput,
		Weights:       weights,
		Domain:        domain,
		JPEGQuality:   c.JPEGQuality,
		Stretch:       stretch,
	}, nil
}
