package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
)

var (
	loggerInstance Logger
	loggerErr      error
	loggerOnce     sync.Once
)

// InitLogger initializes the singleton logger.
func InitLogger(settings *config.LoggerSettings) error {
	loggerOnce.Do(func() {
		loggerInstance, loggerErr = newLogger(settings)
	})
	return loggerErr
}

// GetLogger returns the initialized logger instance.
func GetLogger() (Logger, error) {
	if loggerInstance == nil {
		return nil, fmt.Errorf("logger not initialized: call InitLogger first")
	}
	return loggerInstance, nil
}

func newLogger(c *config.LoggerSettings) (Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch c.LogType {
	case config.LogTypeConsole:
		return NewConsoleLogger(c.LogLevel), nil
	case config.LogTypeFile:
		if c.FilePath == "" {
			return nil, fmt.Errorf("file path required for file logger")
		}
		return NewFileLogger(c.LogLevel, c.FilePath, c.MaxSize, c.MaxBackups, c.MaxAge), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", c.LogType)
	}
}

// Helper functions
func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError, config.LogLevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}

// splitArgs separates a leading message from trailing key/value pairs.
// ok is false when the arguments do not follow that shape.
func splitArgs(args ...interface{}) (msg string, attrs []any, ok bool) {
	if len(args) < 3 || len(args)%2 == 0 {
		return "", nil, false
	}
	msg, isString := args[0].(string)
	if !isString {
		return "", nil, false
	}
	for i := 1; i < len(args); i += 2 {
		if _, isKey := args[i].(string); !isKey {
			return "", nil, false
		}
	}
	return msg, args[1:], true
}

func emit(l *slog.Logger, level slog.Level, args ...interface{}) string {
	if msg, attrs, ok := splitArgs(args...); ok {
		l.Log(context.Background(), level, msg, attrs...)
		return msg
	}
	msg := formatArgs(args...)
	l.Log(context.Background(), level, msg)
	return msg
}
