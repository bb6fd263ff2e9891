package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/sandman/internal/config"
	"github.com/harrison/sandman/internal/logger"
	"github.com/harrison/sandman/internal/models"
	"github.com/harrison/sandman/internal/shift"
	"github.com/spf13/cobra"
)

// multiLogger implements shift.Logger by delegating to multiple loggers
type multiLogger struct {
	loggers []shift.Logger
}

// LogWarn forwards to all loggers
func (ml *multiLogger) LogWarn(message string) {
	for _, logger := range ml.loggers {
		logger.LogWarn(message)
	}
}

// LogRunStart forwards to all loggers
func (ml *multiLogger) LogRunStart(params models.ShiftParams) {
	for _, logger := range ml.loggers {
		logger.LogRunStart(params)
	}
}

// LogShift forwards to all loggers
func (ml *multiLogger) LogShift(entry models.ShiftEntry) {
	for _, logger := range ml.loggers {
		logger.LogShift(entry)
	}
}

// LogProgress forwards to all loggers
func (ml *multiLogger) LogProgress(done, total int) {
	for _, logger := range ml.loggers {
		logger.LogProgress(done, total)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(summary models.RunSummary) {
	for _, logger := range ml.loggers {
		logger.LogSummary(summary)
	}
}

// newRunLogger creates the console logger on stderr and, unless the log
// directory is empty, a file logger. The returned close function must be
// called when the run ends.
func newRunLogger(stderr io.Writer, cfg *config.Config) (*multiLogger, func(), error) {
	consoleLog := logger.NewConsoleLogger(stderr, cfg.LogLevel)
	ml := &multiLogger{loggers: []shift.Logger{consoleLog}}

	if cfg.LogDir == "" {
		return ml, func() {}, nil
	}

	fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	ml.loggers = append(ml.loggers, fileLog)

	return ml, func() { fileLog.Close() }, nil
}

// addConfigFlags registers the flags shared by commands that read the
// configuration file.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .sandman/config.yaml)")
	cmd.Flags().String("journal", "", "Path to the journal database (default: $SANDMAN_HOME/journal.db)")
}

// addLogFlags registers the logging flags.
func addLogFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for run logs (empty string disables file logging)")
}

// loadConfig reads the config file and applies any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.MergeWithFlags(
		changedString(cmd, "log-level"),
		changedString(cmd, "log-dir"),
		changedString(cmd, "journal"),
		changedBool(cmd, "apply"),
		changedInt(cmd, "workers"),
	)

	if err := cfg.Validate(); err != nil {
		return nil, usageError(err)
	}

	return cfg, nil
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}
