// ABOUTME: DSL generation result types for the OpenSearch query generator
// ABOUTME: Carries the structured query document plus safety and usage metadata
package models

// GenerationMethod identifies which path produced a DSL document
type GenerationMethod string

const (
	// GeneratedByLLM - document produced by the completion provider and validated
	GeneratedByLLM GenerationMethod = "llm"

	// GeneratedByFallback - deterministic rule-based document
	GeneratedByFallback GenerationMethod = "fallback"

	// GenerationError - generation failed; the document must not be executed
	GenerationError GenerationMethod = "error"
)

// StructuredQuery is the validated shape the completion provider must emit:
// an index name, a query type, and the OpenSearch DSL body itself.
type StructuredQuery struct {
	IndexName     string         `json:"index_name"`
	QueryType     string         `json:"query_type"`
	OpenSearchDSL map[string]any `json:"opensearch_dsl"`
}

// DSLResult is the outcome of one generate call
type DSLResult struct {
	Document         StructuredQuery  `json:"structured_query"`
	TargetSource     string           `json:"index_name"`
	QueryKind        string           `json:"query_type"`
	IsSafe           bool             `json:"is_safe"`
	SafetyIssues     string           `json:"safety_issues,omitempty"`
	Explanation      string           `json:"explanation"`
	Method           GenerationMethod `json:"generation_method"`
	UsageMetadata    map[string]any   `json:"usage_metadata,omitempty"`
	ProcessingTimeMS float64          `json:"processing_time_ms"`
}
