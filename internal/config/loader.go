package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "KEGGMATCH"

// newViper builds a pre-configured Viper instance: YAML file type,
// KEGGMATCH_ env prefix, automatic env binding, and a key replacer mapping
// "." to "_" so that nested keys like "kegg.base_url" resolve to
// "KEGGMATCH_KEGG_BASE_URL".
//
// Every key gets its default registered here; viper only merges environment
// overrides for keys it knows about.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "10m")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit_rps", DefaultRateLimitRPS)
	v.SetDefault("server.rate_limit_burst", DefaultRateLimitBurst)

	v.SetDefault("kegg.base_url", DefaultKEGGBaseURL)
	v.SetDefault("kegg.timeout", "30s")
	v.SetDefault("kegg.user_agent", "")

	v.SetDefault("matcher.threshold", DefaultThreshold)

	v.SetDefault("batch.name_column", DefaultBatchNameColumn)
	v.SetDefault("batch.formula_column", DefaultBatchFormulaColumn)
	v.SetDefault("batch.delay", "1s")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.enable_process_metrics", true)
	v.SetDefault("metrics.enable_go_metrics", true)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	return v
}

// Load reads the YAML file at configPath, merges KEGGMATCH_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from KEGGMATCH_* environment
// variables, with no config file required. Preferred for containerised
// deployments.
//
// Naming convention:
//
//	KEGGMATCH_<SECTION>_<FIELD>   e.g.  KEGGMATCH_KEGG_BASE_URL
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	// Environment overrides arrive as strings; weak typing lets them decode
	// into numeric fields.
	weak := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(cfg, weak); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed
// Config whenever the file changes on disk. Intended for hot-reloading
// non-critical settings such as log level and rate limits; callers apply
// only the safe subset at runtime.
//
// Watch is non-blocking; viper manages the background goroutine. A changed
// file that fails to parse or validate is skipped without invoking onChange.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should have called Load first, so errors here
	// are ignored.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad wraps Load and panics on any error. For use in main() where a
// config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
