package analyst

import "time"

// InterpretationID identifier type
type InterpretationID string

// Interpretation is an AI reading of a stored analysis report, kept for
// auditing and retrieval.
type Interpretation struct {
	ID         InterpretationID `json:"id"`
	AnalysisID string           `json:"analysis_id"`
	Model      string           `json:"model,omitempty"`
	Result     string           `json:"result"` // JSON string from AI
	CreatedAt  time.Time        `json:"created_at"`
}
