// Package config loads goguide settings from defaults, an optional YAML
// file, a .env file and the environment, in that order of precedence
// (later wins). Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvSection     = "GOGUIDE_SECTION"
	EnvKeepGoing   = "GOGUIDE_KEEP_GOING"
	EnvHeaders     = "GOGUIDE_HEADERS"
	EnvLogLevel    = "GOGUIDE_LOG_LEVEL"
	EnvLogFormat   = "GOGUIDE_LOG_FORMAT"
	EnvMetricsFile = "GOGUIDE_METRICS_FILE"
)

// Config is the complete goguide configuration.
type Config struct {
	// Section is the topic to run; empty runs every topic unless
	// SectionSet is true.
	Section string `yaml:"section"`
	// SectionSet records that the section was given explicitly (environment
	// or flag), so an empty value names a topic instead of meaning "all".
	SectionSet bool `yaml:"-"`
	// KeepGoing continues past a failing topic instead of stopping.
	KeepGoing bool `yaml:"keep_going"`
	// Headers prints the banner and per-topic headers.
	Headers bool `yaml:"headers"`
	// MetricsFile receives Prometheus text exposition after the run.
	MetricsFile string `yaml:"metrics_file"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

var validate = validator.New()

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Headers: true,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadFile reads a YAML file over the defaults. An empty path returns the
// defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) into the process environment. Missing files are not an error;
// variables already set are not overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSection); ok {
		c.Section = v
		c.SectionSet = true
	}
	if v, ok := lookup(EnvMetricsFile); ok {
		c.MetricsFile = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = v
	}

	for name, dst := range map[string]*bool{
		EnvKeepGoing: &c.KeepGoing,
		EnvHeaders:   &c.Headers,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", name, v, err)
		}
		*dst = b
	}
	return nil
}

// Validate checks field values. The section identifier is checked by the
// runner, which knows the registry.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load runs the whole chain: .env, YAML file, environment, validation.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
