// Package config provides configuration loading and validation for the evaluator service and CLI.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/ksa-evaluator/internal/comparison"
	"github.com/jonathan/ksa-evaluator/internal/evaluation"
	"github.com/jonathan/ksa-evaluator/internal/pipeline"
	"github.com/jonathan/ksa-evaluator/internal/stages"
	"github.com/jonathan/ksa-evaluator/internal/types"
	"github.com/jonathan/ksa-evaluator/internal/weights"
)

// Defaults for the service settings
const (
	DefaultPort      = 8080
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config represents the evaluator configuration that can be loaded from a JSON file.
// Missing fields keep their defaults; environment variables override the file.
type Config struct {
	// Service
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL, empty for in-memory storage
	LogLevel    string `json:"log_level,omitempty"`    // debug, info, warn or error
	LogFormat   string `json:"log_format,omitempty"`   // text or json
	Concurrency int    `json:"concurrency,omitempty"`  // Batch evaluation worker limit
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed CLI output

	// Scoring
	Evaluation evaluation.Config        `json:"evaluation"`
	Criteria   types.ComparisonCriteria `json:"criteria"`
	Comparison comparison.Config        `json:"comparison"`
	Stages     stages.Config            `json:"stages"`
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		Concurrency: pipeline.DefaultConcurrency,
		Evaluation:  evaluation.DefaultConfig(),
		Criteria:    comparison.DefaultCriteria(),
		Comparison:  comparison.DefaultConfig(),
		Stages:      stages.DefaultConfig(),
	}
}

// Load reads the JSON file at path over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// Resolve path relative to current directory if not absolute
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides service settings with the non-empty variables returned by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	if v := getenv("EVAL_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid EVAL_CONCURRENCY: %v", err)
		}
		c.Concurrency = n
	}
	return nil
}

// Validate checks the service settings and every scoring weight vector.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("config error: 'concurrency' must be at least 1, got %d", c.Concurrency)
	}
	if err := c.Evaluation.Validate(); err != nil {
		return fmt.Errorf("config error: evaluation: %w", err)
	}
	if err := weights.CheckFractions("criteria", c.Criteria.Map()); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.Comparison.Validate(); err != nil {
		return fmt.Errorf("config error: comparison: %w", err)
	}
	if err := c.Stages.Validate(); err != nil {
		return fmt.Errorf("config error: stages: %w", err)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// PipelineOptions converts the scoring settings into pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Concurrency = c.Concurrency
	opts.Evaluation = c.Evaluation
	opts.Criteria = c.Criteria
	opts.Comparison = c.Comparison
	opts.Stages = c.Stages
	opts.Now = func() time.Time { return time.Now().UTC() }
	return opts
}
