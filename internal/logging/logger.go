package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger writes human-oriented diagnostics to stderr. Resolved credential
// values must never be passed to it directly; wrap them in Secret first.
type Logger struct {
	out     io.Writer
	debug   bool
	noColor bool
}

// New creates a logger. Debug messages are dropped unless debug is true.
func New(debug, noColor bool) *Logger {
	return &Logger{
		out:     os.Stderr,
		debug:   debug,
		noColor: noColor,
	}
}

// NewWithWriter creates a logger that writes to the given writer. Used by
// tests to capture output.
func NewWithWriter(w io.Writer, debug, noColor bool) *Logger {
	return &Logger{
		out:     w,
		debug:   debug,
		noColor: noColor,
	}
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit("\033[32m✓\033[0m", "✓", format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit("\033[33m⚠\033[0m", "⚠", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit("\033[31m✗\033[0m", "✗", format, args...)
}

// Debug logs a debug message if debug mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.emit("\033[36m[DEBUG]\033[0m", "[DEBUG]", format, args...)
}

func (l *Logger) emit(coloredPrefix, plainPrefix, format string, args ...interface{}) {
	prefix := coloredPrefix
	if l.noColor {
		prefix = plainPrefix
	}
	fmt.Fprintf(l.out, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Secret wraps a credential value so that formatting verbs never print it.
type Secret string

// String implements fmt.Stringer, always returning a redacted value.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v formatting.
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// Mask returns a value safe for inclusion in diagnostics: short values are
// fully hidden, longer ones keep the first and last three characters.
func Mask(value string) string {
	if len(value) <= 8 {
		return "***"
	}
	return value[:3] + "***" + value[len(value)-3:]
}

// Redact replaces known secret values in s with [REDACTED].
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if len(secret) > 3 {
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}
