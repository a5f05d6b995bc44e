// ABOUTME: Classification result types for the healthcare gate
// ABOUTME: One result per classified query, regardless of which strategy produced it
package models

// ClassificationResult is the verdict of one classification pass. Failures
// are folded into a negative verdict rather than surfaced as errors so the
// gate always produces a decision.
type ClassificationResult struct {
	IsHealthcare     bool           `json:"is_healthcare"`
	Confidence       float64        `json:"confidence"`
	SourceName       string         `json:"classifier"`
	ProcessingTimeMS float64        `json:"processing_time_ms"`
	RawDetail        map[string]any `json:"detail,omitempty"`
}
