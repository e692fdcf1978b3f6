package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/nabheet/opencausenx/internal/explain"
	"github.com/nabheet/opencausenx/internal/ingest"
)

// Config is the persistent application configuration
type Config struct {
	// Feed sources to ingest events from
	Sources []ingest.Source `json:"sources"`

	// Business model files to map events against
	BusinessModelFiles []string `json:"business_model_files"`

	// Explainer selects the optional text-generation provider
	Explainer explain.Settings `json:"explainer"`

	// Pipeline settings
	Pipeline PipelineConfig `json:"pipeline"`
}

// PipelineConfig holds scheduling and batch settings
type PipelineConfig struct {
	// Schedule is a cron expression for periodic runs
	Schedule string `json:"schedule"`

	// StorePath is the SQLite database location ("" for the default)
	StorePath string `json:"store_path,omitempty"`

	// ExplainTopN limits how many top-ranked mappings get a generated
	// explanation per run (the rest use the template)
	ExplainTopN int `json:"explain_top_n"`

	// FetchTimeoutSec is the per-source fetch timeout in seconds
	FetchTimeoutSec int `json:"fetch_timeout_sec"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Sources:            ingest.DefaultSources(),
		BusinessModelFiles: []string{},
		Explainer: explain.Settings{
			Provider: "", // template explanations only until configured
			Endpoint: "http://localhost:11434",
		},
		Pipeline: PipelineConfig{
			Schedule:        "@every 30m",
			ExplainTopN:     5,
			FetchTimeoutSec: 30,
		},
	}
}

// Dir returns the application data directory
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".opencause")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// DefaultStorePath returns the default SQLite database path
func DefaultStorePath() string {
	return filepath.Join(Dir(), "opencause.db")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults and try to auto-populate from environment
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	if cfg.Pipeline.Schedule == "" {
		cfg.Pipeline.Schedule = "@every 30m"
	}
	if cfg.Pipeline.FetchTimeoutSec <= 0 {
		cfg.Pipeline.FetchTimeoutSec = 30
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for API keys
}

// AutoPopulateFromEnv fills in explainer credentials from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Explainer.APIKey = key
		if c.Explainer.Provider == "" {
			c.Explainer.Provider = "openai"
		}
	}
	if endpoint := os.Getenv("OLLAMA_HOST"); endpoint != "" {
		c.Explainer.Endpoint = endpoint
		if c.Explainer.Provider == "" {
			c.Explainer.Provider = "ollama"
		}
	}
}

// StorePath returns the configured store path or the default
func (c *Config) StorePath() string {
	if c.Pipeline.StorePath != "" {
		return c.Pipeline.StorePath
	}
	return DefaultStorePath()
}
