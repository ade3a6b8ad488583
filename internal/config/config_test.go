package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg, res := NormalizeAndValidate(Default())
	assert.True(t, res.OK(), "defaults must validate: %v", res.Errors)
	assert.NotEmpty(t, cfg.Scoring.Vocabulary)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  role: Platform Engineer
fetch:
  concurrency: 5
  pacing: bucket
scoring:
  min_match_score: 0.3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer", cfg.Search.Role)
	assert.Equal(t, 5, cfg.Fetch.Concurrency)
	assert.Equal(t, "bucket", cfg.Fetch.Pacing)
	assert.Equal(t, 0.3, cfg.Scoring.MinMatchScore)
	// untouched keys keep their defaults
	assert.Equal(t, "United States", cfg.Search.Location)
	assert.NotEmpty(t, cfg.Scoring.Vocabulary)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadKnobs(t *testing.T) {
	base := Default()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero concurrency", func(c *Config) { c.Fetch.Concurrency = 0 }},
		{"negative concurrency", func(c *Config) { c.Fetch.Concurrency = -1 }},
		{"zero timeout", func(c *Config) { c.Fetch.TimeoutMs = 0 }},
		{"negative pacing", func(c *Config) { c.Fetch.PacingMs = -5 }},
		{"unknown pacing policy", func(c *Config) { c.Fetch.Pacing = "exponential" }},
		{"score above one", func(c *Config) { c.Scoring.MinMatchScore = 1.5 }},
		{"empty vocabulary", func(c *Config) { c.Scoring.Vocabulary = nil }},
		{"no role", func(c *Config) { c.Search.Role = "  " }},
		{"no sources", func(c *Config) {
			c.Sources.Indeed.Enabled = false
			c.Sources.LinkedIn.Enabled = false
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			_, res := NormalizeAndValidate(cfg)
			assert.False(t, res.OK())
		})
	}
}

func TestVocabularyNormalized(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Vocabulary = []string{" SQL ", "sql", "", "Python"}

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	assert.Equal(t, []string{"SQL", "Python"}, out.Scoring.Vocabulary)
}
