package analysiserrors

import "time"

// AnalysisError represents a persisted analysis failure entry
type AnalysisError struct {
	ID          int64     `json:"id"`
	AnalysisID  string    `json:"analysis_id"`
	SampleID    string    `json:"sample_id,omitempty"`
	Phase       string    `json:"phase,omitempty"` // scan | annotate | store | other
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"` // raw JSON string
	CreatedAt   time.Time `json:"created_at"`
}
