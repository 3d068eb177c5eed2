// Package config defines the service configuration: plain data types,
// defaults and validation here, loading and env merging in loader.go.
package config

import (
	"fmt"
	"time"

	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// RateLimitRPS caps inbound requests per second per client IP;
	// RateLimitBurst is the bucket size. Zero RPS disables limiting.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// KEGGConfig holds KEGG REST client parameters.
type KEGGConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// MatcherConfig holds the similarity scoring parameters.
type MatcherConfig struct {
	// Threshold is the similarity score at or above which a match is
	// auto-accepted. Must lie in [0, 1].
	Threshold float64 `mapstructure:"threshold"`
}

// BatchConfig holds batch-run parameters: which input columns carry the
// name and formula, and the pacing delay between database requests.
type BatchConfig struct {
	NameColumn    string        `mapstructure:"name_column"`
	FormulaColumn string        `mapstructure:"formula_column"`
	Delay         time.Duration `mapstructure:"delay"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	Namespace            string `mapstructure:"namespace"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
}

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig      `mapstructure:"server"`
	KEGG    KEGGConfig        `mapstructure:"kegg"`
	Matcher MatcherConfig     `mapstructure:"matcher"`
	Batch   BatchConfig       `mapstructure:"batch"`
	Metrics MetricsConfig     `mapstructure:"metrics"`
	Log     logging.LogConfig `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error
// as fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("config: server.rate_limit_rps must not be negative, got %v", c.Server.RateLimitRPS)
	}

	if c.KEGG.BaseURL == "" {
		return fmt.Errorf("config: kegg.base_url is required")
	}
	if c.KEGG.Timeout <= 0 {
		return fmt.Errorf("config: kegg.timeout must be positive, got %v", c.KEGG.Timeout)
	}

	if c.Matcher.Threshold < 0 || c.Matcher.Threshold > 1 {
		return fmt.Errorf("config: matcher.threshold %v is out of range [0, 1]", c.Matcher.Threshold)
	}

	if c.Batch.NameColumn == "" {
		return fmt.Errorf("config: batch.name_column is required")
	}
	if c.Batch.FormulaColumn == "" {
		return fmt.Errorf("config: batch.formula_column is required")
	}
	if c.Batch.Delay < 0 {
		return fmt.Errorf("config: batch.delay must not be negative, got %v", c.Batch.Delay)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
