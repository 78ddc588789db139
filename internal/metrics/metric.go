// Package metrics records timing and outcome of extraction requests.
package metrics

import "time"

// Operations recorded by the server.
const (
	OpUpload  = "upload"
	OpRaw     = "raw"
	OpResolve = "resolve"
)

// Metric represents a single recorded extraction.
// Metrics are append-only; the recorder keeps a bounded window of them.
type Metric struct {
	ID string `json:"id"`

	// Attribution (for filtering/aggregation)
	RequestID string `json:"request_id,omitempty"`
	SampleID  string `json:"seqn,omitempty"`
	Operation string `json:"operation"`

	// Output size
	Rows    int `json:"rows,omitempty"`
	Matched int `json:"matched,omitempty"` // codes with a non-empty value

	// Timing
	TotalSeconds float64 `json:"total_seconds"`

	// Status
	Success   bool   `json:"success"`
	ErrorType string `json:"error_type,omitempty"`

	// Metadata
	CreatedAt time.Time `json:"created_at"`
}
