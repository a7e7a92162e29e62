// Package logger provides structured logging for webdust.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log levels.
type Level = zerolog.Level

// Log levels.
const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Logger wraps zerolog for structured logging.
type Logger struct {
	zl zerolog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level      Level
	Pretty     bool // Use console writer (colored output)
	Output     io.Writer
	TimeFormat string
	Component  string // Component name (e.g., "crawl", "classify", "output")
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:      InfoLevel,
		Pretty:     true,
		Output:     os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// New creates a new logger with the given configuration.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: "15:04:05",
		}
	}

	zl := zerolog.New(output).
		With().
		Timestamp().
		Logger().
		Level(cfg.Level)

	if cfg.Component != "" {
		zl = zl.With().Str("component", cfg.Component).Logger()
	}

	return &Logger{zl: zl}
}

// NewDefault creates a logger with default configuration.
func NewDefault() *Logger {
	return New(DefaultConfig())
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		zl: l.zl.With().Str("component", component).Logger(),
	}
}

// WithURL returns a new logger with URL field.
func (l *Logger) WithURL(url string) *Logger {
	return &Logger{
		zl: l.zl.With().Str("url", url).Logger(),
	}
}

// WithError returns a new logger with error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		zl: l.zl.With().Err(err).Logger(),
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.zl.Error().Msg(msg)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// Fatalf logs a formatted fatal message and exits.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.zl.Fatal().Msgf(format, args...)
}

// RequestEvent logs an HTTP fetch event.
func (l *Logger) RequestEvent(url string, statusCode int, duration time.Duration) {
	l.zl.Debug().
		Str("url", url).
		Int("status_code", statusCode).
		Dur("duration", duration).
		Msg("HTTP request")
}

// EndpointEvent logs a discovered endpoint with its assigned vectors.
func (l *Logger) EndpointEvent(url string, depth int, vectors []string) {
	l.zl.Info().
		Str("url", url).
		Int("depth", depth).
		Strs("vectors", vectors).
		Msg("Endpoint")
}

// ErrorEvent logs an error event with context.
func (l *Logger) ErrorEvent(err error, url string, operation string) {
	l.zl.Error().
		Err(err).
		Str("url", url).
		Str("operation", operation).
		Msg("Operation failed")
}

// SetLevel changes the log level.
func (l *Logger) SetLevel(level Level) {
	l.zl = l.zl.Level(level)
}

// ParseLevel parses a level string.
func ParseLevel(levelStr string) (Level, error) {
	return zerolog.ParseLevel(levelStr)
}
