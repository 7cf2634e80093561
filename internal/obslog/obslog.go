// Package obslog provides the run's structured logging, following the
// layered stderr/leveled design of the wider example pack's logging helper:
// a plain stderr handler by default, switched to a more detailed leveled
// handler under --verbose, plus a locale-formatted final summary line.
package obslog

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats diagnostic counts with thousands separators for
// human-facing summary lines.
var printer = message.NewPrinter(language.English)

// Logger is the run's logger: a thin wrapper over slog.Logger that also
// knows how to render the final locale-formatted summary line.
type Logger struct {
	slog    *slog.Logger
	verbose bool
}

// New builds a Logger writing to stderr. In non-verbose mode only warnings
// and errors are emitted; --verbose raises the level to include per-group
// diagnostics.
func New(verbose bool) *Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{slog: slog.New(handler), verbose: verbose}
}

// Verbose reports whether the logger is in verbose mode.
func (l *Logger) Verbose() bool {
	return l.verbose
}

// Debug logs a per-group or per-bucket diagnostic, visible only under
// --verbose.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Warn logs a recoverable condition, such as an SCC budget fallback.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs a fatal condition immediately before the process exits.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// Summary writes the final run summary to stderr: bucket count, group
// count, skipped-line tally, and the best result found, all with
// locale-formatted thousands separators. The tally is a verbose-only
// diagnostic; in non-verbose mode Summary emits nothing.
func (l *Logger) Summary(buckets, groups, skipped int, best string) {
	if !l.verbose {
		return
	}
	fmt.Fprintln(os.Stderr, printer.Sprintf(
		"buckets=%d groups=%d skipped=%d best=%s", buckets, groups, skipped, best))
}
