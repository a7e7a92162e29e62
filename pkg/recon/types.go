// Package recon provides the webdust reconnaissance engine: bounded
// same-origin crawling followed by heuristic vulnerability-vector
// classification of every discovered endpoint.
package recon

import (
	"time"
)

// Endpoint represents one discovered resource with its classification.
type Endpoint struct {
	// URL is the canonical absolute URL, fragment stripped. Unique
	// within one scan's inventory.
	URL string `json:"url"`

	// Params maps query-parameter names to their values,
	// multi-valued parameters preserved. Keys are as received;
	// classification matches them case-insensitively.
	Params map[string][]string `json:"params,omitempty"`

	// HasForm is true if the fetched HTML contains at least one form.
	HasForm bool `json:"has_form"`

	// HasUpload is true if any form input is a file-upload field.
	HasUpload bool `json:"has_upload"`

	// IsScript is true for referenced script files.
	IsScript bool `json:"is_script"`

	// StatusCode is the HTTP status observed at fetch time, or 0
	// for script references recorded before being fetched.
	StatusCode int `json:"status_code"`

	// Depth is the hop distance from the seed.
	Depth int `json:"depth"`

	// DiscoveredFrom is the page the endpoint was found on.
	DiscoveredFrom string `json:"discovered_from,omitempty"`

	// Vectors holds the assigned vector labels in precedence order.
	// Empty until classification runs.
	Vectors []string `json:"vectors,omitempty"`

	// Timestamp records when the endpoint was discovered.
	Timestamp time.Time `json:"timestamp"`
}

// ScanError records one URL skipped during traversal.
type ScanError struct {
	URL       string    `json:"url"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// ScanStats summarizes one scan.
type ScanStats struct {
	EndpointsDiscovered int           `json:"endpoints_discovered"`
	PagesFetched        int           `json:"pages_fetched"`
	ScriptsFound        int           `json:"scripts_found"`
	FormsFound          int           `json:"forms_found"`
	UploadsFound        int           `json:"uploads_found"`
	VectorsAssigned     int           `json:"vectors_assigned"`
	ErrorCount          int           `json:"error_count"`
	Duration            time.Duration `json:"duration"`
}

// ScanResult is the complete labeled inventory of one scan.
type ScanResult struct {
	Target      string      `json:"target"`
	Domain      string      `json:"domain"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt time.Time   `json:"completed_at"`
	Stats       ScanStats   `json:"stats"`
	Endpoints   []Endpoint  `json:"endpoints"`
	Errors      []ScanError `json:"errors,omitempty"`
}
