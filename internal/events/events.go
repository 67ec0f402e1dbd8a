// ABOUTME: Audit-trail event types for scans and feedback signals
// ABOUTME: Events are append-only records used for troubleshooting ranking drift
package events

import "time"

// Kind labels what an audit event records
type Kind string

const (
	KindScan      Kind = "scan"
	KindAccepted  Kind = "accepted"
	KindRejected  Kind = "rejected"
	KindCompleted Kind = "completed"
)

// Event is one audit record. Scan events carry Context with counts;
// feedback events carry the capability id and, for completions, the
// outcome.
type Event struct {
	Timestamp    time.Time      `json:"timestamp"`
	Kind         Kind           `json:"kind"`
	CapabilityID string         `json:"capabilityId,omitempty"`
	Query        string         `json:"query,omitempty"`
	Success      *bool          `json:"success,omitempty"`
	Context      map[string]any `json:"context,omitempty"`
}

// Filters narrows an audit query
type Filters struct {
	Kind         Kind
	CapabilityID string
	Since        time.Time
	Limit        int
}

// Writer appends and queries audit events
type Writer interface {
	Write(event *Event) error
	Query(filters Filters) ([]*Event, error)
}
