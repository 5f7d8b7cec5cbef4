package logger

import (
	"log/slog"
	"os"
)

// ConsoleLogger is an implementation of Logger that logs to the console.
type ConsoleLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a new console logger with the specified log level.
func NewConsoleLogger(level string) Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	handler := slog.NewTextHandler(os.Stdout, opts)

	return &ConsoleLogger{logger: slog.New(handler)}
}

// Debug logs a debug message to the console.
func (l *ConsoleLogger) Debug(args ...interface{}) {
	emit(l.logger, slog.LevelDebug, args...)
}

// Info logs an informational message to the console.
func (l *ConsoleLogger) Info(args ...interface{}) {
	emit(l.logger, slog.LevelInfo, args...)
}

// Warn logs a warning message to the console.
func (l *ConsoleLogger) Warn(args ...interface{}) {
	emit(l.logger, slog.LevelWarn, args...)
}

// Error logs an error message to the console.
func (l *ConsoleLogger) Error(args ...interface{}) {
	emit(l.logger, slog.LevelError, args...)
}

// Fatal logs a fatal message and exits.
func (l *ConsoleLogger) Fatal(args ...interface{}) {
	emit(l.logger, slog.LevelError, args...)
	os.Exit(1)
}

// Panic logs a panic message and panics.
func (l *ConsoleLogger) Panic(args ...interface{}) {
	msg := emit(l.logger, slog.LevelError, args...)
	panic(msg)
}
