package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// MaxListedFiles caps how many paths a warning lists.
const MaxListedFiles = 20

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when color is enabled
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, file := range w.Files {
			if i == MaxListedFiles {
				fmt.Fprintf(&b, "      ... and %d more\n", len(w.Files)-MaxListedFiles)
				break
			}
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnFailedPaths creates a warning for files and directories a run could
// not process.
func WarnFailedPaths(paths []string) Warning {
	return Warning{
		Title:      fmt.Sprintf("%d path(s) could not be processed", len(paths)),
		Message:    "The errors are listed in the log above.",
		Files:      paths,
		Suggestion: "Check permissions on the affected paths and re-run.",
	}
}

// WarnMissingPaths creates a warning for journaled files that were skipped
// by a restore because they no longer exist.
func WarnMissingPaths(paths []string) Warning {
	return Warning{
		Title:   fmt.Sprintf("%d journaled file(s) no longer exist", len(paths)),
		Message: "They were skipped.",
		Files:   paths,
	}
}

// DryRunNotice creates the notice shown after a run that changed nothing.
func DryRunNotice() Warning {
	return Warning{
		Title:      "Dry run, no timestamps were changed",
		Suggestion: "Re-run with --apply to modify files.",
	}
}
