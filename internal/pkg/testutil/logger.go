package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"github.com/stretchr/testify/require"
)

// SetupTestLogger sets up a logger for testing purposes.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}

	err := logger.InitLogger(settings)
	require.NoError(t, err)

	log, err := logger.GetLogger()
	require.NoError(t, err)

	return log
}

// LogEntry is a single message captured by RecordingLogger
type LogEntry struct {
	Level   string
	Message string
}

// RecordingLogger keeps every message in memory so tests can assert on them
type RecordingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

// NewRecordingLogger returns an empty RecordingLogger
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: fmt.Sprint(args...)})
}

// Debug records a debug message
func (l *RecordingLogger) Debug(args ...interface{}) { l.record("debug", args...) }

// Info records an informational message
func (l *RecordingLogger) Info(args ...interface{}) { l.record("info", args...) }

// Warn records a warning
func (l *RecordingLogger) Warn(args ...interface{}) { l.record("warn", args...) }

// Error records an error
func (l *RecordingLogger) Error(args ...interface{}) { l.record("error", args...) }

// Fatal records a fatal message without exiting
func (l *RecordingLogger) Fatal(args ...interface{}) { l.record("fatal", args...) }

// Panic records a message and panics
func (l *RecordingLogger) Panic(args ...interface{}) {
	l.record("panic", args...)
	panic(fmt.Sprint(args...))
}

// Count returns how many entries were recorded at level
func (l *RecordingLogger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
