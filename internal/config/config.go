// Package config loads the almanac configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete almanac configuration.
type Config struct {
	DefaultSite string        `yaml:"default_site"`
	Sites       []SiteConfig  `yaml:"sites"`
	Phases      []PhaseConfig `yaml:"phases"`
	Logging     LoggingConfig `yaml:"logging"`
}

// SiteConfig is a named observer location.
type SiteConfig struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	HeightM   float64 `yaml:"height_m"`
}

// PhaseConfig is a custom day phase appended to the built-in six.
type PhaseConfig struct {
	AngleDeg float64 `yaml:"angle_deg"`
	Morning  string  `yaml:"morning"`
	Evening  string  `yaml:"evening"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load loads configuration from a YAML file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	names := make(map[string]bool, len(c.Sites))
	for _, s := range c.Sites {
		if s.Name == "" {
			return fmt.Errorf("site with coordinates %.4f, %.4f has no name", s.Latitude, s.Longitude)
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate site name %q", s.Name)
		}
		names[s.Name] = true
	}
	if c.DefaultSite != "" && !names[c.DefaultSite] {
		return fmt.Errorf("default_site %q not found among sites", c.DefaultSite)
	}
	for _, p := range c.Phases {
		if p.Morning == "" || p.Evening == "" {
			return fmt.Errorf("phase at %.2f° needs both morning and evening names", p.AngleDeg)
		}
	}
	return nil
}

// Site returns the named site, or the default site when name is empty.
func (c *Config) Site(name string) (SiteConfig, bool) {
	if name == "" {
		name = c.DefaultSite
	}
	for _, s := range c.Sites {
		if s.Name == name {
			return s, true
		}
	}
	return SiteConfig{}, false
}
