// Package output renders scan results as a terminal table, JSON, or a
// plain-text summary.
package output

import (
	"io"
)

// Writer defines the interface for result writers.
type Writer interface {
	// WriteResult renders the complete scan result
	WriteResult(result *Result) error

	// Flush flushes any buffered output
	Flush() error

	// Close closes the writer
	Close() error
}

// Config holds output configuration.
type Config struct {
	Format  string // table, json, text
	Pretty  bool
	NoColor bool
}

// NewWriter creates a writer for the configured format.
func NewWriter(w io.Writer, config Config) Writer {
	switch config.Format {
	case "json":
		return NewJSONWriter(w, config.Pretty)
	case "text":
		return NewTextWriter(w)
	default:
		return NewTableWriter(w, !config.NoColor)
	}
}
