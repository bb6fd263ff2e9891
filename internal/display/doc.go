// Package display renders user-facing warning blocks on the terminal.
//
// Warnings are written in yellow when color output is enabled:
//
//	warning := display.WarnFailedPaths(result.FailedPaths)
//	warning.Display(os.Stderr)
//
// Long path lists are truncated to MaxListedFiles entries followed by a
// count of the remainder.
package display
