package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/sandman/internal/models"
)

// colorScheme defines consistent colors for summary counters.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for counters.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// formatColorizedCounts renders the summary counters.
// Shifted files are green; a dry run is flagged in yellow instead.
// Failures are red when non-zero.
func formatColorizedCounts(summary models.RunSummary, scheme *colorScheme) string {
	parts := []string{
		formatColorizedMetric("scanned", summary.Scanned, scheme),
		formatColorizedMetric("selected", summary.Selected, scheme),
	}

	if summary.Applied {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.success.Sprint("shifted"), scheme.value.Sprintf("%d", summary.Shifted)))
	} else {
		parts = append(parts, scheme.warn.Sprint("dry run"))
	}

	if summary.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.fail.Sprint("failed"), scheme.fail.Sprintf("%d", summary.Failed)))
	} else {
		parts = append(parts, formatColorizedMetric("failed", 0, scheme))
	}

	return strings.Join(parts, ", ")
}
