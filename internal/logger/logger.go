// Package logger configures the process-wide structured logger.
package logger

import (
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

// defaultLogger holds the global logger instance atomically.
var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(charm.New(os.Stderr))
}

// Default returns the global logger.
func Default() *charm.Logger {
	return defaultLogger.Load().(*charm.Logger)
}

// SetDefault replaces the global logger.
func SetDefault(l *charm.Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// Setup builds a logger writing to stderr at the given level and installs
// it as the default. Unknown level strings fall back to info.
func Setup(level string) *charm.Logger {
	l := charm.NewWithOptions(os.Stderr, charm.Options{
		ReportTimestamp: false,
		Level:           parseLevel(level),
	})
	SetDefault(l)
	return l
}

func parseLevel(s string) charm.Level {
	switch s {
	case "debug":
		return charm.DebugLevel
	case "warn", "warning":
		return charm.WarnLevel
	case "error":
		return charm.ErrorLevel
	default:
		return charm.InfoLevel
	}
}
