// Package logging provides concrete implementations of the autoinsight.Logger interface.
package logging

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	verbosePrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorPrefixStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose       bool
	verbosePrefix string
	errorPrefix   string
	mu            sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger with plain prefixes.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose:       verbose,
		verbosePrefix: "[VERBOSE]",
		errorPrefix:   "[ERROR]",
	}
}

// NewColorConsoleLogger creates a ConsoleLogger with styled prefixes.
// Callers should only use it when the terminal supports color; the
// plain constructor is the right choice for pipes and NO_COLOR runs.
func NewColorConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose:       verbose,
		verbosePrefix: verbosePrefixStyle.Render("[VERBOSE]"),
		errorPrefix:   errorPrefixStyle.Render("[ERROR]"),
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, l.verbosePrefix+" "+format+"\n", args...)
	} else {
		fmt.Fprint(os.Stderr, l.verbosePrefix+" "+format+"\n")
	}
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	} else {
		fmt.Fprint(os.Stderr, format+"\n")
	}
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, l.errorPrefix+" "+format+"\n", args...)
	} else {
		fmt.Fprint(os.Stderr, l.errorPrefix+" "+format+"\n")
	}
}
