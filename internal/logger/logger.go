// Package logger provides verbose logging for the scrybe CLI.
// When verbose mode is enabled via the --verbose flag, diagnostic
// messages are printed to stderr to make the search pipeline and the
// archive API traffic observable.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("DEBUG", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("INFO", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("WARN", format, args...)
}

// Error prints an error message if verbose mode is enabled.
func Error(format string, args ...any) {
	logf("ERROR", format, args...)
}

func logf(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
	}
}
