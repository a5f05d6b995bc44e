// ABOUTME: Query complexity analysis types
// ABOUTME: Four boolean signals summed into a 0-4 score mapped to a level
package models

// ComplexityLevel buckets the 0-4 complexity score
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "LOW"
	ComplexityMedium ComplexityLevel = "MEDIUM"
	ComplexityHigh   ComplexityLevel = "HIGH"
)

// ComplexityAnalysis reports the signals found in a query and the derived score
type ComplexityAnalysis struct {
	WordCount       int             `json:"word_count"`
	HasTimeframe    bool            `json:"has_timeframe"`
	HasDomain       bool            `json:"has_domain_specification"`
	HasAnalysisType bool            `json:"has_analysis_type"`
	Score           int             `json:"complexity_score"`
	Level           ComplexityLevel `json:"complexity_level"`
}

// QueryRecommendations pairs a complexity analysis with concrete suggestions
// for improving a query that required clarification
type QueryRecommendations struct {
	Query       string             `json:"original_query"`
	Status      RoutingStatus      `json:"routing_status"`
	Confidence  float64            `json:"confidence_score"`
	Suggestions []string           `json:"improvement_suggestions"`
	Analysis    ComplexityAnalysis `json:"complexity_analysis"`
}
