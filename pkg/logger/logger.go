package logger

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Params contains configuration for the global logger.
type Params struct {
	Debug  bool
	Prefix string
}

var (
	mu        sync.RWMutex
	singleton *log.Logger
)

// Init initializes the global logger writing to stderr. It must be called
// once at process start before any logging functions are used; calls before
// Init are dropped.
func Init(params Params) {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}

	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          params.Prefix,
	})

	mu.Lock()
	singleton = l
	mu.Unlock()
}

func get() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return singleton
}

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) {
	if l := get(); l != nil {
		l.Debug(message, keyvals...)
	}
}

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) {
	if l := get(); l != nil {
		l.Info(message, keyvals...)
	}
}

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) {
	if l := get(); l != nil {
		l.Warn(message, keyvals...)
	}
}

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) {
	if l := get(); l != nil {
		l.Error(message, keyvals...)
	}
}

// Fatal writes a message at FATAL level and terminates the program.
func Fatal(message string, keyvals ...any) {
	if l := get(); l != nil {
		l.Fatal(message, keyvals...)
	}
}
