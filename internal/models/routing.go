// ABOUTME: Routing decision types for the healthcare query router
// ABOUTME: Defines routing statuses, search evidence, and clarification payloads
package models

// RoutingStatus represents the outcome category of routing one query
type RoutingStatus string

const (
	// StatusHighConfidence - best index match cleared the confidence threshold
	StatusHighConfidence RoutingStatus = "HIGH_CONFIDENCE"

	// StatusRequiresClarification - query too generic, ask the analyst for detail
	StatusRequiresClarification RoutingStatus = "REQUIRES_CLARIFICATION"

	// StatusRejectedNonHealthcare - classification gate rejected the query
	StatusRejectedNonHealthcare RoutingStatus = "REJECTED_NON_HEALTHCARE"

	// StatusError - processing failed; the decision carries the error message
	StatusError RoutingStatus = "ERROR"
)

// SearchResult is a single nearest-neighbor hit from the consolidated index
type SearchResult struct {
	SimilarityScore float64 `json:"similarity_score"`
	SourceIndex     string  `json:"source_index"`
	Text            string  `json:"text"`
}

// Clarification is the fixed payload attached to low-confidence decisions
type Clarification struct {
	Message          string   `json:"message"`
	AvailableDomains []string `json:"available_healthcare_domains"`
	RequiredDetails  []string `json:"required_query_details"`
	SampleQueries    []string `json:"sample_healthcare_queries"`
}

// RoutingDecision is the outcome of routing one query
type RoutingDecision struct {
	DecisionID       string                `json:"decision_id"`
	Query            string                `json:"query"`
	Status           RoutingStatus         `json:"routing_status"`
	Confidence       float64               `json:"confidence_score"`
	TargetSource     string                `json:"primary_data_source,omitempty"`
	Evidence         []SearchResult        `json:"evidence,omitempty"`
	Clarification    *Clarification        `json:"clarification_request,omitempty"`
	Classification   *ClassificationResult `json:"classification_info,omitempty"`
	Message          string                `json:"message,omitempty"`
	ProcessingTimeMS float64               `json:"processing_time_ms"`
}
