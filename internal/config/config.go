// Package config loads and validates the engine's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
		Output  string `yaml:"output"` // empty means a timestamped file in data_dir
	} `yaml:"app"`

	Search struct {
		Role     string `yaml:"role"`
		Location string `yaml:"location"`
		MaxJobs  int    `yaml:"max_jobs"`
	} `yaml:"search"`

	Sources struct {
		Indeed struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"indeed"`
		LinkedIn struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"linkedin"`
	} `yaml:"sources"`

	Fetch struct {
		Concurrency int     `yaml:"concurrency"`
		TimeoutMs   int     `yaml:"timeout_ms"`
		PacingMs    int     `yaml:"pacing_ms"`
		Pacing      string  `yaml:"pacing"` // "fixed" or "bucket"
		HostRPS     float64 `yaml:"host_rps"`
	} `yaml:"fetch"`

	Scoring struct {
		MinMatchScore float64  `yaml:"min_match_score"`
		Vocabulary    []string `yaml:"vocabulary"`
	} `yaml:"scoring"`
}

// Default returns the configuration a bare run uses: both boards enabled,
// the built-in skill vocabulary, and the pacing the boards tolerate.
func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.Search.Role = "Data Engineer"
	cfg.Search.Location = "United States"
	cfg.Search.MaxJobs = 25
	cfg.Sources.Indeed.Enabled = true
	cfg.Sources.LinkedIn.Enabled = true
	cfg.Fetch.Concurrency = 3
	cfg.Fetch.TimeoutMs = 15000
	cfg.Fetch.PacingMs = 2000
	cfg.Fetch.Pacing = "fixed"
	cfg.Fetch.HostRPS = 1
	cfg.Scoring.MinMatchScore = 0.5
	cfg.Scoring.Vocabulary = DefaultVocabulary()
	return cfg
}

// Load reads path over the defaults. An empty path returns the defaults
// untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config read: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config parse: %w", err)
	}
	return cfg, nil
}
