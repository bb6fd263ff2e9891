package shift

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/harrison/sandman/internal/models"
)

// MaxShift bounds both the month and the day offset.
const MaxShift = 1000

// ErrInvalidArgument marks a positional argument that failed validation.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidateArgs checks the four positional arguments of a shift run and
// returns them as parameters. The directory is returned absolute with
// symlinks resolved. Apply is left false.
func ValidateArgs(inputDir, months, days, cutoff string) (models.ShiftParams, error) {
	var params models.ShiftParams

	dir, err := validateDir(inputDir)
	if err != nil {
		return params, err
	}

	m, err := parseOffset("shift_add_months", months)
	if err != nil {
		return params, err
	}
	d, err := parseOffset("shift_add_days", days)
	if err != nil {
		return params, err
	}

	c, err := ParseCutoff(cutoff)
	if err != nil {
		return params, err
	}

	params.InputDir = dir
	params.Months = m
	params.Days = d
	params.Cutoff = c
	return params, nil
}

func validateDir(inputDir string) (string, error) {
	if inputDir == "" {
		return "", fmt.Errorf("%w: input_dir is empty", ErrInvalidArgument)
	}

	info, err := os.Stat(inputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: input_dir %q does not exist", ErrInvalidArgument, inputDir)
		}
		return "", fmt.Errorf("%w: input_dir %q: %v", ErrInvalidArgument, inputDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: input_dir %q is not a directory", ErrInvalidArgument, inputDir)
	}
	if err := checkAccess(inputDir); err != nil {
		return "", fmt.Errorf("%w: input_dir %q is not readable and writable: %v", ErrInvalidArgument, inputDir, err)
	}

	abs, err := filepath.Abs(inputDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", inputDir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", inputDir, err)
	}
	return resolved, nil
}

func parseOffset(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > MaxShift {
		return 0, fmt.Errorf("%w: %s %q must be an integer between 0 and %d", ErrInvalidArgument, name, value, MaxShift)
	}
	return n, nil
}
