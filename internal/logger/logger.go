// Package logger provides leveled logging for the application, backed by
// a shared hclog root logger. Components that want structured key/value
// logging can request a named child via Named().
package logger

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu   sync.RWMutex
	root = hclog.New(&hclog.LoggerOptions{
		Name:  "watchtrack",
		Level: hclog.Info,
	})
)

// Init reconfigures the root logger with the given level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info.
func Init(level string) {
	mu.Lock()
	defer mu.Unlock()

	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	root = hclog.New(&hclog.LoggerOptions{
		Name:  "watchtrack",
		Level: lvl,
	})
}

// SetLevel changes the level of the root logger at runtime.
func SetLevel(level string) {
	mu.RLock()
	defer mu.RUnlock()

	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return
	}
	root.SetLevel(lvl)
}

// Named returns a child logger for a component.
func Named(name string) hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(name)
}

// Info logs informational messages
func Info(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	root.Info(fmt.Sprintf(format, args...))
}

// Warn logs warning messages
func Warn(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	root.Warn(fmt.Sprintf(format, args...))
}

// Error logs error messages
func Error(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	root.Error(fmt.Sprintf(format, args...))
}

// Debug logs debug messages
func Debug(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	root.Debug(fmt.Sprintf(format, args...))
}
