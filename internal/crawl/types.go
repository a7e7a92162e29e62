package crawl

import (
	"time"
)

// Page is one discovered resource, as the traversal engine sees it.
// Classification is not the engine's concern; it only collects
// structural signals.
type Page struct {
	// URL is the normalized absolute URL. Unique within one run.
	URL string

	// Params holds the URL's query parameters, multi-valued
	// parameters preserved.
	Params map[string][]string

	// HasForm is true if the fetched HTML contains a form.
	HasForm bool

	// HasUpload is true if any form input is a file-upload field.
	HasUpload bool

	// IsScript is true for referenced script files.
	IsScript bool

	// StatusCode is the observed HTTP status, or 0 for script
	// references recorded before being fetched.
	StatusCode int

	// Depth is the hop distance from the seed at which the page was
	// first reached.
	Depth int

	// ParentURL is the document the page was discovered on. Empty
	// for the seed.
	ParentURL string

	// FetchedAt records when the page was processed.
	FetchedAt time.Time
}

// FetchError records one skipped URL. Fetch failures never abort the
// traversal.
type FetchError struct {
	URL       string    `json:"url"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats summarizes one traversal run.
type Stats struct {
	PagesFetched int
	ScriptsFound int
	URLsSeen     int
	ErrorCount   int
	Duration     time.Duration
}
