package logger

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/harrison/sandman/internal/models"
)

var timestampPrefix = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] `)

func TestNewConsoleLoggerNormalizesLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "debug", want: "debug"},
		{input: "  WARN ", want: "warn"},
		{input: "", want: "info"},
		{input: "loud", want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cl := NewConsoleLogger(&bytes.Buffer{}, tt.input)
			if cl.logLevel != tt.want {
				t.Errorf("logLevel = %q, want %q", cl.logLevel, tt.want)
			}
		})
	}
}

func TestConsoleLoggerBufferHasNoColor(t *testing.T) {
	cl := NewConsoleLogger(&bytes.Buffer{}, "info")
	if cl.colorOutput {
		t.Error("color output should be disabled for non-terminal writers")
	}
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "warn")

	cl.LogTrace("trace message")
	cl.LogDebug("debug message")
	cl.LogInfo("info message")
	cl.LogWarn("warn message")
	cl.LogError("error message")

	output := buf.String()
	for _, hidden := range []string{"trace message", "debug message", "info message"} {
		if strings.Contains(output, hidden) {
			t.Errorf("output should not contain %q, got %q", hidden, output)
		}
	}
	if !strings.Contains(output, "[WARN] warn message") {
		t.Errorf("missing warn line in %q", output)
	}
	if !strings.Contains(output, "[ERROR] error message") {
		t.Errorf("missing error line in %q", output)
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if !timestampPrefix.MatchString(line) {
			t.Errorf("line %q lacks [HH:MM:SS] prefix", line)
		}
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "trace")

	// Must not panic
	cl.LogInfo("ignored")
	cl.LogRunStart(models.ShiftParams{})
	cl.LogShift(models.ShiftEntry{})
	cl.LogProgress(1, 2)
	cl.LogSummary(models.RunSummary{})
}

func TestConsoleLoggerLogRunStart(t *testing.T) {
	tests := []struct {
		name  string
		apply bool
		want  string
	}{
		{name: "dry run", apply: false, want: "dry run)"},
		{name: "apply", apply: true, want: "apply)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, "info")
			cl.LogRunStart(models.ShiftParams{
				InputDir: "/data/recover",
				Months:   27,
				Days:     4,
				Cutoff:   time.Date(2022, time.March, 29, 0, 0, 0, 0, time.Local),
				Apply:    tt.apply,
			})

			output := buf.String()
			if !strings.Contains(output, "Shifting /data/recover by +27 months +4 days (files older than 2022-03-29, ") {
				t.Errorf("unexpected run start line %q", output)
			}
			if !strings.Contains(output, tt.want) {
				t.Errorf("output %q should contain %q", output, tt.want)
			}
		})
	}
}

func TestConsoleLoggerLogShift(t *testing.T) {
	entry := models.ShiftEntry{
		Path:    "/data/recover/a.txt",
		Base:    time.Date(2020, time.January, 31, 10, 0, 0, 0, time.UTC),
		NewTime: time.Date(2020, time.February, 29, 10, 0, 0, 0, time.UTC),
		Status:  models.StatusPlanned,
	}

	t.Run("hidden at info", func(t *testing.T) {
		var buf bytes.Buffer
		NewConsoleLogger(&buf, "info").LogShift(entry)
		if buf.Len() != 0 {
			t.Errorf("expected no output at info level, got %q", buf.String())
		}
	})

	t.Run("shown at debug", func(t *testing.T) {
		var buf bytes.Buffer
		NewConsoleLogger(&buf, "debug").LogShift(entry)
		if !strings.Contains(buf.String(), "/data/recover/a.txt 2020-01-31T10:00:00Z -> 2020-02-29T10:00:00Z (PLANNED)") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("failures warn", func(t *testing.T) {
		var buf bytes.Buffer
		failed := entry
		failed.Status = models.StatusFailed
		failed.Error = "permission denied"
		NewConsoleLogger(&buf, "info").LogShift(failed)
		if !strings.Contains(buf.String(), "[WARN] /data/recover/a.txt: permission denied") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestConsoleLoggerLogProgress(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLogger(&buf, "debug").LogProgress(50, 100)

	if !strings.Contains(buf.String(), "Progress: [==========          ] 50/100 (50%)") {
		t.Errorf("unexpected progress output %q", buf.String())
	}
}

func TestConsoleLoggerLogSummary(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	cl.LogSummary(models.RunSummary{
		RunID:    "run-1",
		Applied:  true,
		Scanned:  10,
		Selected: 4,
		Shifted:  3,
		Failed:   1,
		Duration: 90 * time.Second,
	})

	output := buf.String()
	for _, want := range []string{
		"=== Run Summary ===",
		"scanned: 10, selected: 4, shifted: 3, failed: 1",
		"Run ID: run-1",
		"Duration: 1m30s",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("summary missing %q in %q", want, output)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: 0, want: "0s"},
		{d: 5 * time.Second, want: "5s"},
		{d: time.Minute, want: "1m"},
		{d: 90 * time.Second, want: "1m30s"},
		{d: 2 * time.Hour, want: "2h"},
		{d: 2*time.Hour + 15*time.Minute, want: "2h15m"},
		{d: time.Hour + time.Minute + time.Second, want: "1h1m1s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatDuration(tt.d); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestNoOpLoggerDiscardsEverything(t *testing.T) {
	l := NewNoOpLogger()
	l.LogTrace("trace")
	l.LogDebug("debug")
	l.LogInfo("info")
	l.LogWarn("warn")
	l.LogError("error")
	l.LogRunStart(models.ShiftParams{InputDir: "/data"})
	l.LogShift(models.ShiftEntry{Path: "/data/a"})
	l.LogProgress(1, 2)
	l.LogSummary(models.RunSummary{Shifted: 1})
}
