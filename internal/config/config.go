package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents sandman configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written (empty disables file logging)
	LogDir string `yaml:"log_dir"`

	// JournalPath is the SQLite journal location (empty = $SANDMAN_HOME/journal.db)
	JournalPath string `yaml:"journal_path"`

	// Apply rewrites timestamps instead of only reporting them
	Apply bool `yaml:"apply"`

	// Workers bounds the number of concurrent stat calls
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		LogDir:      ".sandman/logs",
		JournalPath: "",
		Apply:       false,
		Workers:     8,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Presence matters for keys whose zero value is meaningful
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if _, exists := rawMap["log_dir"]; exists {
		// An explicit empty log_dir disables file logging
		cfg.LogDir = fileCfg.LogDir
	}
	if fileCfg.JournalPath != "" {
		cfg.JournalPath = fileCfg.JournalPath
	}
	if _, exists := rawMap["apply"]; exists {
		cfg.Apply = fileCfg.Apply
	}
	if _, exists := rawMap["workers"]; exists {
		cfg.Workers = fileCfg.Workers
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .sandman/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".sandman", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, logDir *string, journalPath *string, apply *bool, workers *int) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if journalPath != nil {
		c.JournalPath = *journalPath
	}
	if apply != nil {
		c.Apply = *apply
	}
	if workers != nil {
		c.Workers = *workers
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}

	return nil
}

// ResolveJournalPath returns the configured journal path, falling back to
// the journal inside the sandman home directory.
func (c *Config) ResolveJournalPath() (string, error) {
	if c.JournalPath != "" {
		return c.JournalPath, nil
	}
	return GetJournalPath()
}
