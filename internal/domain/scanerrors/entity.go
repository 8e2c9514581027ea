package scanerrors

import "time"

// Phases
const (
	PhasePredict = "predict"
)

// ScanError represents a persisted failure of the model backend for one scan.
// The scan itself still completes through the heuristic fallback.
type ScanError struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user"`
	ScanID      string    `json:"scan_id"`
	Backend     string    `json:"backend,omitempty"`
	Phase       string    `json:"phase,omitempty"`
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"` // raw JSON string
	CreatedAt   time.Time `json:"created_at"`
}
