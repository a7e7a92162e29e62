package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TextWriter renders a plain-text summary suitable for saving to a
// file.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a plain-text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteResult writes the uncolored summary table.
func (tw *TextWriter) WriteResult(result *Result) error {
	fmt.Fprintf(tw.w, "WebDust Results for %s\n", result.Domain)
	fmt.Fprintf(tw.w, "Time: %s\n", result.CompletedAt.Format(time.DateTime))
	fmt.Fprintf(tw.w, "Duration: %.2f seconds\n", result.Stats.Duration.Seconds())
	fmt.Fprintf(tw.w, "Endpoints: %d\n\n", len(result.Endpoints))

	fmt.Fprintf(tw.w, "%-50s %-10s %-6s %-8s %-20s\n", "URL", "PARAMS", "FORM", "UPLOAD", "VECTORS")
	fmt.Fprintln(tw.w, strings.Repeat("-", 100))

	for _, ep := range result.Endpoints {
		url := ep.URL
		if len(url) > 50 {
			url = url[:50]
		}
		fmt.Fprintf(tw.w, "%-50s %-10d %-6s %-8s %-20s\n",
			url, len(ep.Params), yesNo(ep.HasForm), yesNo(ep.HasUpload),
			strings.Join(ep.Vectors, ", "))
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(tw.w, "\nSkipped URLs: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(tw.w, "  %s: %s\n", e.URL, e.Error)
		}
	}

	return nil
}

// Flush is a no-op for the text writer.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the underlying writer when it is closeable.
func (tw *TextWriter) Close() error {
	if closer, ok := tw.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
