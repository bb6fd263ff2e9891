package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogDir != ".sandman/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, ".sandman/logs")
	}
	if cfg.JournalPath != "" {
		t.Errorf("JournalPath = %q, want empty", cfg.JournalPath)
	}
	if cfg.Apply {
		t.Error("Apply = true, want false")
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `log_level: debug
log_dir: /tmp/sandman-logs
journal_path: /tmp/journal.db
apply: true
workers: 32
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogDir != "/tmp/sandman-logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/tmp/sandman-logs")
	}
	if cfg.JournalPath != "/tmp/journal.db" {
		t.Errorf("JournalPath = %q, want %q", cfg.JournalPath, "/tmp/journal.db")
	}
	if !cfg.Apply {
		t.Error("Apply = false, want true")
	}
	if cfg.Workers != 32 {
		t.Errorf("Workers = %d, want 32", cfg.Workers)
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q (default)", cfg.LogLevel, "info")
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8 (default)", cfg.Workers)
	}
}

// TestLoadConfigInvalidYAML tests error handling for malformed YAML
func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
log_level: debug
workers: [this is not valid
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig() expected error for invalid YAML, got nil")
	}
}

// TestLoadConfigExplicitEmptyLogDir verifies an empty log_dir disables file logging
func TestLoadConfigExplicitEmptyLogDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("log_dir: \"\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
}

// TestLoadConfigPartialValues tests that partial config merges with defaults
func TestLoadConfigPartialValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.LogDir != ".sandman/logs" {
		t.Errorf("LogDir = %q, want default", cfg.LogDir)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want default 8", cfg.Workers)
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	sandmanDir := filepath.Join(tmpDir, ".sandman")
	if err := os.MkdirAll(sandmanDir, 0755); err != nil {
		t.Fatalf("failed to create .sandman dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sandmanDir, "config.yaml"), []byte("workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()

	level := "error"
	logDir := ""
	apply := true
	workers := 3
	cfg.MergeWithFlags(&level, &logDir, nil, &apply, &workers)

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "error")
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
	if cfg.JournalPath != "" {
		t.Errorf("JournalPath should be untouched, got %q", cfg.JournalPath)
	}
	if !cfg.Apply {
		t.Error("Apply = false, want true")
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "trace level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: false},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -4 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveJournalPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)

	cfg := DefaultConfig()
	got, err := cfg.ResolveJournalPath()
	if err != nil {
		t.Fatalf("ResolveJournalPath() error = %v", err)
	}
	if want := filepath.Join(home, "journal.db"); got != want {
		t.Errorf("ResolveJournalPath() = %q, want %q", got, want)
	}

	cfg.JournalPath = "/srv/sandman/journal.db"
	got, err = cfg.ResolveJournalPath()
	if err != nil {
		t.Fatalf("ResolveJournalPath() error = %v", err)
	}
	if got != "/srv/sandman/journal.db" {
		t.Errorf("ResolveJournalPath() = %q, want explicit path", got)
	}
}
