package logger

import (
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
)

// FileLogger is an implementation of Logger that logs JSON records to a rotated file.
type FileLogger struct {
	logger *slog.Logger
}

// NewFileLogger creates a new file logger with rotation settings.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	handler := slog.NewJSONHandler(writer, opts)

	return &FileLogger{logger: slog.New(handler)}
}

// Debug logs a debug message.
func (l *FileLogger) Debug(args ...interface{}) {
	emit(l.logger, slog.LevelDebug, args...)
}

// Info logs an informational message.
func (l *FileLogger) Info(args ...interface{}) {
	emit(l.logger, slog.LevelInfo, args...)
}

// Warn logs a warning message.
func (l *FileLogger) Warn(args ...interface{}) {
	emit(l.logger, slog.LevelWarn, args...)
}

// Error logs an error message.
func (l *FileLogger) Error(args ...interface{}) {
	emit(l.logger, slog.LevelError, args...)
}

// Fatal logs a fatal message and exits.
func (l *FileLogger) Fatal(args ...interface{}) {
	emit(l.logger, slog.LevelError, args...)
	os.Exit(1)
}

// Panic logs a panic message and panics.
func (l *FileLogger) Panic(args ...interface{}) {
	msg := emit(l.logger, slog.LevelError, args...)
	panic(msg)
}
