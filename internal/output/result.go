package output

import (
	"time"
)

// Result is the renderable form of one scan.
type Result struct {
	Target      string      `json:"target"`
	Domain      string      `json:"domain"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt time.Time   `json:"completed_at"`
	Stats       Stats       `json:"stats"`
	Endpoints   []Endpoint  `json:"endpoints"`
	Errors      []ScanError `json:"errors,omitempty"`
}

// Stats summarizes one scan.
type Stats struct {
	EndpointsDiscovered int           `json:"endpoints_discovered"`
	PagesFetched        int           `json:"pages_fetched"`
	ScriptsFound        int           `json:"scripts_found"`
	FormsFound          int           `json:"forms_found"`
	UploadsFound        int           `json:"uploads_found"`
	VectorsAssigned     int           `json:"vectors_assigned"`
	ErrorCount          int           `json:"error_count"`
	Duration            time.Duration `json:"duration"`
}

// Endpoint is one row of the inventory.
type Endpoint struct {
	URL        string              `json:"url"`
	Params     map[string][]string `json:"params,omitempty"`
	HasForm    bool                `json:"has_form"`
	HasUpload  bool                `json:"has_upload"`
	IsScript   bool                `json:"is_script"`
	StatusCode int                 `json:"status_code"`
	Vectors    []string            `json:"vectors"`
}

// ScanError is one skipped URL.
type ScanError struct {
	URL       string    `json:"url"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
