// Package log provides structured debug logging for scrollto.
// Output goes to a file (terminal UIs own stdout), either via an explicit
// path or through tea.LogToFile, and is disabled entirely until Init is
// called, so the library is silent by default.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
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
	CatRegistry Category = "registry" // Item registration and pruning
	CatResolve  Category = "resolve"  // Index resolution
	CatSeq      Category = "seq"      // Scroll operation sequencing
	CatPort     Category = "teaport"  // Bubble Tea adapter
	CatWatcher  Category = "watcher"  // Item feed watching
	CatConfig   Category = "config"   // Configuration loading/saving
	CatDemo     Category = "demo"     // Demo application
)

// Logger writes timestamped level/category entries with key=value fields.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	minLevel Level
}

var (
	mu            sync.Mutex
	defaultLogger *Logger
)

// Init opens (or creates) the log file at path and enables logging.
// Returns a cleanup function closing the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return install(f), nil
}

// InitWithTeaLog enables logging through tea.LogToFile, which also routes
// the standard library log package to the same file.
func InitWithTeaLog(path, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	return install(f), nil
}

func install(f *os.File) func() {
	mu.Lock()
	defaultLogger = &Logger{file: f, writer: f, minLevel: LevelDebug}
	mu.Unlock()
	return func() {
		mu.Lock()
		defaultLogger = nil
		mu.Unlock()
		_ = f.Close()
	}
}

// SetMinLevel raises or lowers the minimum level that gets written.
func SetMinLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger != nil {
		defaultLogger.minLevel = level
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields...) }

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) { write(LevelInfo, cat, msg, fields...) }

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) { write(LevelWarn, cat, msg, fields...) }

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields...) }

// ErrorErr logs an error value alongside the message.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [DEBUG] [seq] message key=value
	entry := fmt.Sprintf("%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}

	_, _ = io.WriteString(l.writer, entry+"\n")
}
