// Package logger provides the small leveled logging surface kiosk
// components share. The dashboard owns the terminal while it runs, so
// output goes to stderr and stays quiet unless KIOSK_DEBUG is set.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is the printf-style leveled interface components log through.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// writerLogger writes timestamped lines to a single writer. The debug
// gate is resolved once at construction rather than per call.
type writerLogger struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
	debug  bool
}

// New creates a logger writing to w. A non-empty prefix is inserted
// between the level tag and the message (e.g. "[scheduler]").
func New(w io.Writer, prefix string, debug bool) Logger {
	return &writerLogger{w: w, prefix: prefix, debug: debug}
}

func (l *writerLogger) emit(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	head := time.Now().Format("15:04:05") + " " + level
	if l.prefix != "" {
		head += " " + l.prefix
	}
	fmt.Fprintf(l.w, head+" "+format+"\n", args...)
}

func (l *writerLogger) Debug(format string, args ...interface{}) {
	if l.debug {
		l.emit("DEBUG", format, args...)
	}
}

func (l *writerLogger) Info(format string, args ...interface{}) {
	l.emit("INFO", format, args...)
}

func (l *writerLogger) Warn(format string, args ...interface{}) {
	l.emit("WARN", format, args...)
}

func (l *writerLogger) Error(format string, args ...interface{}) {
	l.emit("ERROR", format, args...)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Noop returns a logger that discards everything. Handed to components
// in tests and wherever a nil logger would otherwise need guarding.
func Noop() Logger {
	return noopLogger{}
}

// LogMessage is one captured log line.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log lines in memory so tests can assert on them.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates an empty capturing logger.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) record(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.record("debug", format, args...)
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.record("info", format, args...)
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.record("warn", format, args...)
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.record("error", format, args...)
}

// HasLevel reports whether any captured line was logged at level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear drops all captured lines.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = nil
}

var (
	defaultMu sync.RWMutex
	defaultL  = New(os.Stderr, "", os.Getenv("KIOSK_DEBUG") != "")
)

// Default returns the process-wide logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultL
}

// SetDefault replaces the process-wide logger.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultL = l
}
