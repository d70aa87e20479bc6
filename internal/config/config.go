// Package config loads CLI configuration from a YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. ORDERSPLIT_LOG_LEVEL.
const EnvPrefix = "ORDERSPLIT"

// Config represents the complete CLI configuration.
type Config struct {
	Log   LogConfig   `yaml:"log" envconfig:"LOG"`
	Split SplitConfig `yaml:"split" envconfig:"SPLIT"`
	Batch BatchConfig `yaml:"batch" envconfig:"BATCH"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// SplitConfig contains split defaults.
type SplitConfig struct {
	Mode      string `yaml:"mode" envconfig:"MODE" validate:"oneof=plain order-operation"`
	Overwrite bool   `yaml:"overwrite" envconfig:"OVERWRITE"`
}

// BatchConfig contains directory split configuration.
type BatchConfig struct {
	Jobs   int    `yaml:"jobs" envconfig:"JOBS" validate:"gte=1,lte=64"`
	Suffix string `yaml:"suffix" envconfig:"SUFFIX" validate:"required,excludesall=/\\"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:   LogConfig{Level: "info"},
		Split: SplitConfig{Mode: "plain"},
		Batch: BatchConfig{Jobs: 4, Suffix: "_by_order"},
	}
}

// Load applies, in order, the defaults, the YAML file at path (skipped when
// path is empty) and ORDERSPLIT_* environment variables, then validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
