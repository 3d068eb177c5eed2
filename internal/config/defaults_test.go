package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, DefaultKEGGBaseURL, cfg.KEGG.BaseURL)
	assert.Equal(t, DefaultKEGGTimeout, cfg.KEGG.Timeout)
	assert.Equal(t, DefaultThreshold, cfg.Matcher.Threshold)
	assert.Equal(t, DefaultBatchNameColumn, cfg.Batch.NameColumn)
	assert.Equal(t, DefaultBatchFormulaColumn, cfg.Batch.FormulaColumn)
	assert.Equal(t, DefaultBatchDelay, cfg.Batch.Delay)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Matcher.Threshold = 0.5
	cfg.Batch.Delay = 250 * time.Millisecond
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Matcher.Threshold)
	assert.Equal(t, 250*time.Millisecond, cfg.Batch.Delay)
}

func TestApplyDefaults_NilIsSafe(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}
