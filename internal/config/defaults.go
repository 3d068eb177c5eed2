package config

import "time"

// Default value constants.
const (
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultRateLimitRPS   = 10.0
	DefaultRateLimitBurst = 20

	DefaultKEGGBaseURL = "https://rest.kegg.jp"
	DefaultKEGGTimeout = 30 * time.Second

	DefaultThreshold = 0.8

	DefaultBatchNameColumn    = "Standardized_Name"
	DefaultBatchFormulaColumn = "Formula"
	DefaultBatchDelay         = time.Second

	DefaultMetricsNamespace = "keggmatch"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields already set by the caller are left unchanged so explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		// Batch requests hold the connection for the whole run.
		cfg.Server.WriteTimeout = 10 * time.Minute
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.RateLimitRPS == 0 {
		cfg.Server.RateLimitRPS = DefaultRateLimitRPS
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = DefaultRateLimitBurst
	}

	if cfg.KEGG.BaseURL == "" {
		cfg.KEGG.BaseURL = DefaultKEGGBaseURL
	}
	if cfg.KEGG.Timeout == 0 {
		cfg.KEGG.Timeout = DefaultKEGGTimeout
	}

	// Threshold 0 is a legal explicit value but a useless one in practice;
	// treat it as unset, matching the documented default.
	if cfg.Matcher.Threshold == 0 {
		cfg.Matcher.Threshold = DefaultThreshold
	}

	if cfg.Batch.NameColumn == "" {
		cfg.Batch.NameColumn = DefaultBatchNameColumn
	}
	if cfg.Batch.FormulaColumn == "" {
		cfg.Batch.FormulaColumn = DefaultBatchFormulaColumn
	}
	if cfg.Batch.Delay == 0 {
		cfg.Batch.Delay = DefaultBatchDelay
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
