package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log levels accepted in the logger section. critical maps to the error level.
const (
	LogLevelDebug    = "debug"
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelCritical = "critical"
)

// Log sinks: console writes to stdout, file rotates through lumberjack.
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation defaults and bounds for the file sink
const (
	DefaultLogFile       = "./logs/elri.log"
	DefaultLogMaxSizeMB  = 100
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28

	maxLogSizeMB  = 100
	maxLogBackups = 10
	maxLogAgeDays = 365
)

// LoggerSettings is the logger section of the repository configuration
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=debug info warning error critical"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// Validate checks the level and sink, and the rotation fields when logging to a file
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	if s.LogType != LogTypeFile {
		return nil
	}
	if s.FilePath == "" {
		return fmt.Errorf("file path is required for file logger")
	}
	if s.MaxSize < 1 || s.MaxSize > maxLogSizeMB {
		return fmt.Errorf("max size must be between 1 and %d MB", maxLogSizeMB)
	}
	if s.MaxBackups < 1 || s.MaxBackups > maxLogBackups {
		return fmt.Errorf("max backups must be between 1 and %d", maxLogBackups)
	}
	if s.MaxAge < 1 || s.MaxAge > maxLogAgeDays {
		return fmt.Errorf("max age must be between 1 and %d days", maxLogAgeDays)
	}
	return nil
}
