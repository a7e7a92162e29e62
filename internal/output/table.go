package output

import (
	"fmt"
	"io"
	"strings"
)

// ANSI color codes for table rendering.
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[91m"
	colorGreen   = "\033[92m"
	colorYellow  = "\033[93m"
	colorMagenta = "\033[95m"
	colorCyan    = "\033[96m"
	colorBold    = "\033[1m"
)

// Vector severity buckets drive row coloring: direct object or
// injection vectors red, input-handling vectors yellow, surface
// indicators magenta.
var (
	highVectors    = map[string]struct{}{"IDOR": {}, "LFI": {}, "SQLI": {}}
	mediumVectors  = map[string]struct{}{"XSS": {}, "CSRF": {}, "UPLOAD": {}, "REDIR": {}}
	surfaceVectors = map[string]struct{}{"FORM": {}, "AUTH": {}, "ADMIN": {}}
)

const (
	urlColWidth     = 60
	paramsColWidth  = 6
	formColWidth    = 4
	uploadColWidth  = 6
	vectorsColWidth = 24
)

// TableWriter renders results as a colored terminal table.
type TableWriter struct {
	w     io.Writer
	color bool
}

// NewTableWriter creates a table writer.
func NewTableWriter(w io.Writer, color bool) *TableWriter {
	return &TableWriter{w: w, color: color}
}

// WriteResult renders the summary header and the endpoint table.
func (tw *TableWriter) WriteResult(result *Result) error {
	tw.writeHeader(fmt.Sprintf("WebDust Results for %s", result.Domain))

	fmt.Fprintf(tw.w, "%s Analysis complete (%d endpoints, %d vectors)\n",
		tw.colorize("[✓]", colorCyan),
		result.Stats.EndpointsDiscovered, result.Stats.VectorsAssigned)
	fmt.Fprintf(tw.w, "%s Time elapsed: %.2f seconds\n\n",
		tw.colorize("[i]", colorGreen), result.Stats.Duration.Seconds())

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s",
		urlColWidth, "URL",
		paramsColWidth, "PARAMS",
		formColWidth, "FORM",
		uploadColWidth, "UPLOAD",
		vectorsColWidth, "VECTORS")
	fmt.Fprintln(tw.w, tw.colorize(header, colorBold))
	fmt.Fprintln(tw.w, strings.Repeat("─", len(header)))

	for _, ep := range result.Endpoints {
		tw.writeRow(ep)
	}

	fmt.Fprintln(tw.w)
	return nil
}

func (tw *TableWriter) writeRow(ep Endpoint) {
	urlCol := fmt.Sprintf("%-*s", urlColWidth, truncateURL(ep.URL, urlColWidth))
	paramsCol := fmt.Sprintf("%-*d", paramsColWidth, len(ep.Params))
	formCol := fmt.Sprintf("%-*s", formColWidth, yesNo(ep.HasForm))
	uploadCol := fmt.Sprintf("%-*s", uploadColWidth, yesNo(ep.HasUpload))
	vectorsCol := fmt.Sprintf("%-*s", vectorsColWidth, strings.Join(ep.Vectors, ", "))

	urlCol = tw.colorize(urlCol, statusColor(ep.StatusCode))
	vectorsCol = tw.colorize(vectorsCol, severityColor(ep.Vectors))
	if ep.HasForm {
		formCol = tw.colorize(formCol, colorMagenta)
	}
	if ep.HasUpload {
		uploadCol = tw.colorize(uploadCol, colorRed)
	}
	if len(ep.Params) > 0 {
		paramsCol = tw.colorize(paramsCol, colorCyan)
	}

	fmt.Fprintf(tw.w, "%s %s %s %s %s\n", urlCol, paramsCol, formCol, uploadCol, vectorsCol)
}

// writeHeader prints a boxed title.
func (tw *TableWriter) writeHeader(title string) {
	width := len(title) + 2
	fmt.Fprintln(tw.w, tw.colorize("┌"+strings.Repeat("─", width)+"┐", colorCyan))
	fmt.Fprintf(tw.w, "%s %s %s\n",
		tw.colorize("│", colorCyan),
		tw.colorize(title, colorBold),
		tw.colorize("│", colorCyan))
	fmt.Fprintln(tw.w, tw.colorize("└"+strings.Repeat("─", width)+"┘", colorCyan))
}

// Flush is a no-op for the table writer.
func (tw *TableWriter) Flush() error {
	return nil
}

// Close closes the underlying writer when it is closeable.
func (tw *TableWriter) Close() error {
	if closer, ok := tw.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (tw *TableWriter) colorize(text, color string) string {
	if !tw.color || color == "" {
		return text
	}
	return color + text + colorReset
}

// severityColor picks the row color from the highest-severity vector
// present.
func severityColor(vectors []string) string {
	for _, v := range vectors {
		if _, ok := highVectors[v]; ok {
			return colorRed
		}
	}
	for _, v := range vectors {
		if _, ok := mediumVectors[v]; ok {
			return colorYellow
		}
	}
	for _, v := range vectors {
		if _, ok := surfaceVectors[v]; ok {
			return colorMagenta
		}
	}
	return ""
}

func statusColor(status int) string {
	switch {
	case status >= 400:
		return colorRed
	case status >= 300:
		return colorYellow
	case status >= 200:
		return colorGreen
	default:
		return ""
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// truncateURL shortens a long URL by cutting the middle of the path,
// keeping the host and the query visible.
func truncateURL(rawURL string, max int) string {
	if len(rawURL) <= max {
		return rawURL
	}

	query := ""
	path := rawURL
	if idx := strings.Index(rawURL, "?"); idx != -1 {
		path, query = rawURL[:idx], rawURL[idx:]
	}

	avail := max - len(query) - 3
	if avail < 10 {
		return rawURL[:max-3] + "..."
	}

	half := avail / 2
	return path[:half] + "..." + path[len(path)-(avail-half):] + query
}
