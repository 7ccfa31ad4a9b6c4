package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauern/edit-guard/internal/constants"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogRotationConfig holds configuration for log rotation
type LogRotationConfig struct {
	MaxAge     int  `json:"maxAge" yaml:"maxAge" toml:"maxAge"`             // Maximum number of days to retain log files
	MaxSize    int  `json:"maxSize" yaml:"maxSize" toml:"maxSize"`          // Maximum size in megabytes before rotation
	MaxBackups int  `json:"maxBackups" yaml:"maxBackups" toml:"maxBackups"` // Maximum number of backup files to retain
	Compress   bool `json:"compress" yaml:"compress" toml:"compress"`       // Whether to compress rotated files
}

// DefaultLogRotationConfig returns sensible defaults for log rotation
func DefaultLogRotationConfig() LogRotationConfig {
	return LogRotationConfig{
		MaxAge:     30,
		MaxSize:    10,
		MaxBackups: 5,
		Compress:   true,
	}
}

// SetupLogRotation configures a rotating writer for logPath.
// Returns nil when the log directory cannot be created.
func SetupLogRotation(logPath string, cfg LogRotationConfig) *lumberjack.Logger {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}

// CleanupOldLogs removes .log and .gz files in logDir older than maxAgeDays.
// This catches files lumberjack no longer tracks, such as logs of renamed hooks.
// It returns the number of files removed.
func CleanupOldLogs(logDir string, maxAgeDays int) (int, error) {
	if maxAgeDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	removed := 0

	err := filepath.Walk(logDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if (ext == ".log" || ext == ".gz") && info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
		return nil
	})

	return removed, err
}

// GetLogPath returns the standard log path for a given hook key, relative to the project
func GetLogPath(hookKey string) string {
	return filepath.Join(constants.ClaudeDir, constants.HooksSubDir, fmt.Sprintf("%s.log", hookKey))
}

// Logging format constants
const (
	LoggingFormatJSONL  = "jsonl"
	LoggingFormatPretty = "pretty"
)

// IsValidLoggingFormat returns true if the provided format is supported.
func IsValidLoggingFormat(f string) bool {
	return f == LoggingFormatJSONL || f == LoggingFormatPretty
}
