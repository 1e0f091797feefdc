package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level banklytics.yaml configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Import  ImportConfig  `yaml:"import"`
	Report  ReportConfig  `yaml:"report"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig locates the local key-value store.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ImportConfig controls CSV ingestion.
type ImportConfig struct {
	DefaultAccountID string `yaml:"default_account_id"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a banklytics.yaml file from disk and applies environment
// overrides (BANKLYTICS_STORAGE_PATH, BANKLYTICS_LOG_LEVEL).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: "banklytics.db",
		},
		Import: ImportConfig{
			DefaultAccountID: "imported_account",
		},
		Report: ReportConfig{
			CurrencySymbol: "₹",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BANKLYTICS_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("BANKLYTICS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
