package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/sparkify/internal/tui"
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	styled  bool
	out     io.Writer
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger on stderr. Prefixes are colored
// only when stderr is a terminal and NO_COLOR is unset.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbose, tui.ColorEnabled(os.Stderr))
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to out.
func NewConsoleLoggerTo(out io.Writer, verbose, styled bool) *ConsoleLogger {
	return &ConsoleLogger{verbose: verbose, styled: styled, out: out}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(tui.MutedStyle, "[VERBOSE]", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(lipgloss.Style{}, "", format, args)
}

// Warn logs a problem that did not stop the run.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.write(tui.WarningStyle, "[WARN]", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(tui.ErrorStyle, "[ERROR]", format, args)
}

func (l *ConsoleLogger) write(style lipgloss.Style, prefix, format string, args []interface{}) {
	line := message(format, args)
	if prefix != "" {
		if l.styled {
			prefix = style.Render(prefix)
		}
		line = prefix + " " + line
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

// message formats like fmt.Sprintf but leaves format untouched when there
// are no args, so a literal '%' in a message survives.
func message(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
