package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config that passes Validate.
func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_ServerPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.Server.Port = port
		err := cfg.Validate()
		require.Error(t, err, "port %d", port)
		assert.Contains(t, err.Error(), "server.port")
	}
}

func TestValidate_ServerMode(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Mode = "production"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.mode")
}

func TestValidate_KEGG(t *testing.T) {
	cfg := validConfig()
	cfg.KEGG.BaseURL = ""
	assert.ErrorContains(t, cfg.Validate(), "kegg.base_url")

	cfg = validConfig()
	cfg.KEGG.Timeout = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "kegg.timeout")
}

func TestValidate_Threshold(t *testing.T) {
	for _, bad := range []float64{-0.5, 1.5} {
		cfg := validConfig()
		cfg.Matcher.Threshold = bad
		assert.ErrorContains(t, cfg.Validate(), "matcher.threshold", "threshold %v", bad)
	}
}

func TestValidate_BatchColumns(t *testing.T) {
	cfg := validConfig()
	cfg.Batch.NameColumn = ""
	assert.ErrorContains(t, cfg.Validate(), "batch.name_column")

	cfg = validConfig()
	cfg.Batch.FormulaColumn = ""
	assert.ErrorContains(t, cfg.Validate(), "batch.formula_column")
}

func TestValidate_Log(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "trace"
	assert.ErrorContains(t, cfg.Validate(), "log.level")

	cfg = validConfig()
	cfg.Log.Format = "text"
	assert.ErrorContains(t, cfg.Validate(), "log.format")
}
