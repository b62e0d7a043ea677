// Package observability provides structured logging with sensitive data
// redaction. Request bodies carry provider API keys, so anything logged from
// them passes through the redactor first.
package observability

import (
	"io"
	"log/slog"
	"strings"
)

// Logger wraps slog.Logger with redaction support.
type Logger struct {
	*slog.Logger
	redactor *Redactor
}

// Options configures a logger.
type Options struct {
	Level  slog.Level
	Output io.Writer
	JSON   bool
}

// NewLogger creates a logger writing to opts.Output with the given redactor.
func NewLogger(opts Options, redactor *Redactor) *Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	return &Logger{Logger: slog.New(handler), redactor: redactor}
}

// ParseLevel maps a config-file level name to a slog.Level. Unknown names
// fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Wrap adapts an existing slog.Logger, attaching a redactor.
func Wrap(logger *slog.Logger, redactor *Redactor) *Logger {
	return &Logger{Logger: logger, redactor: redactor}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithFields returns a logger with additional fields attached.
func (l *Logger) WithFields(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), redactor: l.redactor}
}

// RedactedDebug logs at DEBUG level with redacted message and args.
func (l *Logger) RedactedDebug(msg string, args ...any) {
	l.Debug(l.redact(msg), l.redactArgs(args)...)
}

// RedactedInfo logs at INFO level with redacted message and args.
func (l *Logger) RedactedInfo(msg string, args ...any) {
	l.Info(l.redact(msg), l.redactArgs(args)...)
}

// RedactedError logs at ERROR level with redacted message and args.
func (l *Logger) RedactedError(msg string, args ...any) {
	l.Error(l.redact(msg), l.redactArgs(args)...)
}

func (l *Logger) redact(s string) string {
	if l.redactor == nil {
		return s
	}
	return l.redactor.Redact(s)
}

func (l *Logger) redactArgs(args []any) []any {
	if l.redactor == nil {
		return args
	}
	out := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			out[i] = l.redactor.Redact(v)
		case error:
			out[i] = l.redactor.Redact(v.Error())
		default:
			out[i] = arg
		}
	}
	return out
}
