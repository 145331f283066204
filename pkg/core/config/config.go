// Package config loads service configuration from a YAML file and the
// environment. Environment variables win over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Environment variables read by Load.
const (
	EnvAddr        = "VALUATION_ADDR"
	EnvDatabaseURL = "DATABASE_URL"
	EnvStoreDir    = "VALUATION_STORE_DIR"
	EnvCatalog     = "VALUATION_CATALOG"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvDeepSeekKey = "DEEPSEEK_API_KEY"
	EnvLogLevel    = "VALUATION_LOG_LEVEL"
	EnvConfigPath  = "VALUATION_CONFIG"
)

// DefaultPath is the config file looked up when VALUATION_CONFIG is unset.
const DefaultPath = "config/valuation.yaml"

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Commentary CommentaryConfig `yaml:"commentary"`
	Log        LogConfig        `yaml:"log"`
	Batch      BatchConfig      `yaml:"batch"`
	Listing    ListingConfig    `yaml:"listing"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	DatabaseURL string `yaml:"database_url"`
	Dir         string `yaml:"dir"` // file backend, used when DatabaseURL is empty
}

type CatalogConfig struct {
	OverridesPath string `yaml:"overrides_path"`
}

type CommentaryConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Provider   string        `yaml:"provider"` // gemini or deepseek
	Model      string        `yaml:"model"`
	APIKey     string        `yaml:"-"` // env only
	Timeout    time.Duration `yaml:"timeout"`
	PromptsDir string        `yaml:"prompts_dir"` // optional prompt overrides
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
	MaxInputs   int `yaml:"max_inputs"`
}

type ListingConfig struct {
	FetchTimeout      time.Duration `yaml:"fetch_timeout"`
	UserAgent         string        `yaml:"user_agent"`
	AllowPrivateHosts bool          `yaml:"allow_private_hosts"` // local tooling only
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Store:  StoreConfig{Dir: ".cache/valuations"},
		Commentary: CommentaryConfig{
			Provider: "gemini",
			Timeout:  30 * time.Second,
		},
		Log:     LogConfig{Level: "info"},
		Batch:   BatchConfig{Concurrency: 4, MaxInputs: 500},
		Listing: ListingConfig{FetchTimeout: 15 * time.Second, UserAgent: "business-valuation/1.0"},
	}
}

// Load reads path (DefaultPath, or VALUATION_CONFIG, when empty) on top of
// Default() and applies environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Parse(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes YAML into cfg, keeping values the document does not set.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Store.DatabaseURL = v
	}
	if v := os.Getenv(EnvStoreDir); v != "" {
		c.Store.Dir = v
	}
	if v := os.Getenv(EnvCatalog); v != "" {
		c.Catalog.OverridesPath = v
	}
	keyEnv := EnvGeminiKey
	if c.Commentary.Provider == "deepseek" {
		keyEnv = EnvDeepSeekKey
	}
	if v := os.Getenv(keyEnv); v != "" {
		c.Commentary.APIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("VALUATION_COMMENTARY"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("VALUATION_COMMENTARY: %w", err)
		}
		c.Commentary.Enabled = enabled
	}
	return nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be >= 1, got %d", c.Batch.Concurrency)
	}
	if c.Batch.MaxInputs < 1 {
		return fmt.Errorf("batch.max_inputs must be >= 1, got %d", c.Batch.MaxInputs)
	}
	switch c.Commentary.Provider {
	case "", "gemini", "deepseek":
	default:
		return fmt.Errorf("commentary.provider %q is not supported", c.Commentary.Provider)
	}
	if c.Listing.FetchTimeout <= 0 {
		return errors.New("listing.fetch_timeout must be positive")
	}
	return nil
}

// CommentaryReady reports whether LLM commentary can be generated.
func (c Config) CommentaryReady() bool {
	return c.Commentary.Enabled && c.Commentary.APIKey != ""
}
