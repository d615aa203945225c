package config

import (
	"github.com/skybi/tally/internal/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.True(t, cfg.IsEnvProduction())
	assert.Equal(t, ":8081", cfg.APIListenAddress)
	assert.Equal(t, ValueKindInt, cfg.ValueKind)
	assert.Equal(t, key.DefaultMaxLength, cfg.MaxKeyLength)
	assert.Equal(t, time.Minute, cfg.ReportInterval)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("TALLY_ENVIRONMENT", "dev")
	t.Setenv("TALLY_API_LISTEN_ADDRESS", "127.0.0.1:9000")
	t.Setenv("TALLY_VALUE_KIND", "FLOAT")
	t.Setenv("TALLY_MAX_KEY_LENGTH", "11")
	t.Setenv("TALLY_REPORT_INTERVAL", "0")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.IsEnvProduction())
	assert.Equal(t, "127.0.0.1:9000", cfg.APIListenAddress)
	assert.Equal(t, ValueKindFloat, cfg.ValueKind)
	assert.Equal(t, 11, cfg.MaxKeyLength)
	assert.Equal(t, time.Duration(0), cfg.ReportInterval)
}

func TestLoadFromEnvRejectsInvalidValues(t *testing.T) {
	t.Setenv("TALLY_VALUE_KIND", "string")
	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{ValueKind: ValueKindInt, MaxKeyLength: 30, ReportInterval: time.Second}
	assert.NoError(t, valid.Validate())

	tooShort := valid
	tooShort.MaxKeyLength = 1
	assert.Error(t, tooShort.Validate())

	negative := valid
	negative.ReportInterval = -time.Second
	assert.Error(t, negative.Validate())
}
