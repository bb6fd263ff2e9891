package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("path is not a directory")

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the paths of all regular files, in traversal order
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanFiles recursively collects the regular files below dir, ignoring
// symbolic links. Returned paths are rooted at dir as given.
func ScanFiles(dir string) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}
	scanDir(dir, result)

	return result, nil
}

// scanDir appends the files of dir, then recurses into its subdirectories.
func scanDir(dir string, result *ScanResult) {
	// os.ReadDir sorts by name and reports lstat types, so symlinks never
	// look like regular files or directories here.
	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("error reading %s: %w", dir, err))
		// Partial listings are still processed below
	}

	for _, entry := range entries {
		if entry.Type().IsRegular() {
			result.Files = append(result.Files, filepath.Join(dir, entry.Name()))
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			scanDir(filepath.Join(dir, entry.Name()), result)
		}
	}
}
