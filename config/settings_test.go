package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumry-app/SUMRY-sub001/internal/scoring"
)

func TestEngineSettingsApplyDefaults(t *testing.T) {
	var s EngineSettings
	s.ApplyDefaults()

	assert.Equal(t, scoring.DefaultWeights(), s.Boosts)
	assert.Equal(t, 50, s.DefaultLimit)
	assert.Equal(t, 5, s.SuggestionLimit)
	assert.Equal(t, 60*time.Second, s.CacheTTL)
	assert.Equal(t, 50, s.CacheCapacity)
	assert.Equal(t, 4, s.IndexWorkers)
}

func TestEngineSettingsApplyDefaultsKeepsExplicitValues(t *testing.T) {
	s := EngineSettings{DefaultLimit: 20, CacheTTL: 5 * time.Minute}
	s.ApplyDefaults()

	assert.Equal(t, 20, s.DefaultLimit)
	assert.Equal(t, 5*time.Minute, s.CacheTTL)
	assert.Equal(t, 5, s.SuggestionLimit)
}

func TestEngineSettingsValidate(t *testing.T) {
	good := EngineSettings{}
	good.ApplyDefaults()
	assert.Empty(t, good.Validate())

	bad := EngineSettings{
		DefaultLimit: -1,
		CacheTTL:     -time.Second,
		Boosts:       scoring.Weights{Exact: -1, Prefix: 5, Fuzzy: 2, Token: 1},
	}
	problems := bad.Validate()
	assert.Len(t, problems, 3)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, int64(10<<20), cfg.MaxRequestBytes)
	assert.Equal(t, 50, cfg.Engine.DefaultLimit)
}

func TestLoadFromFile(t *testing.T) {
	raw := `
port: "9000"
env: prod
log_level: warn
engine:
  default_limit: 25
  cache_ttl: 2m
  boosts:
    exact: 20
    prefix: 8
    fuzzy: 3
    token: 2
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 25, cfg.Engine.DefaultLimit)
	assert.Equal(t, 2*time.Minute, cfg.Engine.CacheTTL)
	assert.Equal(t, scoring.Weights{Exact: 20, Prefix: 8, Fuzzy: 3, Token: 2}, cfg.Engine.Boosts)
	// Unset settings still receive defaults.
	assert.Equal(t, 5, cfg.Engine.SuggestionLimit)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	raw := `
engine:
  default_limit: -5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
