// Package log provides structured logging for tedit.
// Entries carry a level, a category and key=value fields, and are written to
// a file only when debugging is enabled with --debug or TEDIT_DEBUG.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatBuffer    Category = "buffer"    // Buffer edits, loads and bulk line operations
	CatHistory   Category = "history"   // Undo and redo
	CatPattern   Category = "pattern"   // Pattern compilation and matching
	CatClipboard Category = "clipboard" // Clipboard reads and writes
	CatConfig    Category = "config"    // Configuration loading/saving
	CatUI        Category = "ui"        // TextEdit events
	CatCLI       Category = "cli"       // Command line runs
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	globalMu      sync.Mutex
)

// Init initializes the global logger, appending to the file at path.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is the user's debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(&Logger{file: f, writer: f, enabled: true, minLevel: LevelDebug})
	return func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		if defaultLogger != nil && defaultLogger.file == f {
			_ = f.Close()
			defaultLogger = nil
		}
	}, nil
}

// InitWriter sends log entries to w instead of a file. It is meant for tests.
// Returns a function that uninstalls the logger.
func InitWriter(w io.Writer) func() {
	l := &Logger{writer: w, enabled: true, minLevel: LevelDebug}
	install(l)
	return func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		if defaultLogger == l {
			defaultLogger = nil
		}
	}
}

func install(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	defaultLogger = l
}

func current() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	return defaultLogger
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel || l.writer == nil {
		return
	}

	// Format: 2026-10-14T10:45:00 [DEBUG] [buffer] message key=value key2=value2
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	// Odd field count: the orphan key gets no value
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	sb.WriteByte('\n')

	_, _ = io.WriteString(l.writer, sb.String())
}
