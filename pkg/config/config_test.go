package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "data/features/feature_names.csv", cfg.Artifacts.SchemaPath)
	assert.Equal(t, "models/model.json", cfg.Artifacts.ModelPath)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Bureau.Enabled)
	assert.Equal(t, 90, cfg.HistoryRetentionDays)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HISTORY_RETENTION_DAYS", "30")
	t.Setenv("BUREAU_ENABLED", "true")
	t.Setenv("BUREAU_BASE_URL", "https://bureau.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.HistoryRetentionDays)
	assert.True(t, cfg.Bureau.Enabled)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("ENV", "testing")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("database enabled without url", func(t *testing.T) {
		t.Setenv("DATABASE_ENABLED", "true")
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bureau enabled without base url", func(t *testing.T) {
		t.Setenv("BUREAU_ENABLED", "true")
		t.Setenv("BUREAU_BASE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("X_INT", 7), "unparseable values fall back to the default")

	t.Setenv("X_BOOL", "yes-ish")
	assert.False(t, getEnvAsBool("X_BOOL", false))

	t.Setenv("X_DUR", "oops")
	assert.Equal(t, "1h0m0s", getEnvAsDuration("X_DUR", "1h").String())
}
