package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the sandman home directory.
const HomeEnvVar = "SANDMAN_HOME"

// GetSandmanHome returns the sandman home directory
// Priority order:
//  1. SANDMAN_HOME environment variable (if set)
//  2. $HOME/.sandman
//
// The directory is created if it doesn't exist
func GetSandmanHome() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create sandman home directory: %w", err)
		}
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}

	sandmanHome := filepath.Join(userHome, ".sandman")
	if err := os.MkdirAll(sandmanHome, 0755); err != nil {
		return "", fmt.Errorf("create sandman home directory: %w", err)
	}

	return sandmanHome, nil
}

// GetJournalPath returns the default journal database path
// Always returns: $SANDMAN_HOME/journal.db
func GetJournalPath() (string, error) {
	home, err := GetSandmanHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, "journal.db"), nil
}

// GetLockDir returns the directory holding per-target lock files
func GetLockDir() (string, error) {
	home, err := GetSandmanHome()
	if err != nil {
		return "", err
	}

	lockDir := filepath.Join(home, "locks")
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return "", fmt.Errorf("create lock directory: %w", err)
	}

	return lockDir, nil
}
