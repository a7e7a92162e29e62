package output

import (
	"encoding/json"
	"io"
)

// JSONWriter renders results as JSON.
type JSONWriter struct {
	w      io.Writer
	pretty bool
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool) *JSONWriter {
	return &JSONWriter{w: w, pretty: pretty}
}

// WriteResult writes the complete result as one JSON document.
func (jw *JSONWriter) WriteResult(result *Result) error {
	enc := json.NewEncoder(jw.w)
	if jw.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

// Flush is a no-op for the JSON writer.
func (jw *JSONWriter) Flush() error {
	return nil
}

// Close closes the underlying writer when it is closeable.
func (jw *JSONWriter) Close() error {
	if closer, ok := jw.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
