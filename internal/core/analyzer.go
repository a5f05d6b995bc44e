// ABOUTME: Query complexity analyzer and improvement suggestions
// ABOUTME: Pure functions over query text; explains REQUIRES_CLARIFICATION outcomes
package core

import (
	"strings"

	"github.com/careroute/careroute/internal/models"
)

var (
	timeframeTokens    = []string{"quarter", "month", "year", "2023", "2024", "2025"}
	domainKeywords     = []string{"claims", "provider", "member", "procedure"}
	analysisKeywords   = []string{"report", "analysis", "metrics", "performance"}
	wordCountThreshold = 5
)

// AnalyzeComplexity scores four boolean signals in the query: length,
// timeframe, domain, and analysis type. Malformed input scores zero signals.
func AnalyzeComplexity(query string) models.ComplexityAnalysis {
	lower := strings.ToLower(query)
	wordCount := len(strings.Fields(query))

	analysis := models.ComplexityAnalysis{
		WordCount:       wordCount,
		HasTimeframe:    containsAny(lower, timeframeTokens),
		HasDomain:       containsAny(lower, domainKeywords),
		HasAnalysisType: containsAny(lower, analysisKeywords),
	}

	if analysis.WordCount > wordCountThreshold {
		analysis.Score++
	}
	if analysis.HasTimeframe {
		analysis.Score++
	}
	if analysis.HasDomain {
		analysis.Score++
	}
	if analysis.HasAnalysisType {
		analysis.Score++
	}

	analysis.Level = complexityLevel(analysis.Score)
	return analysis
}

func complexityLevel(score int) models.ComplexityLevel {
	switch {
	case score >= 3:
		return models.ComplexityHigh
	case score >= 2:
		return models.ComplexityMedium
	default:
		return models.ComplexityLow
	}
}

// Recommend explains a routing decision: when clarification was required it
// emits one concrete suggestion per missing signal
func Recommend(query string, decision models.RoutingDecision) models.QueryRecommendations {
	analysis := AnalyzeComplexity(query)

	var suggestions []string
	if decision.Status == models.StatusRequiresClarification {
		if !analysis.HasDomain {
			suggestions = append(suggestions, "Specify the healthcare domain (claims, providers, fraud, etc.)")
		}
		if !analysis.HasTimeframe {
			suggestions = append(suggestions, "Add a time period (quarter, month, year, date range)")
		}
		if !analysis.HasAnalysisType {
			suggestions = append(suggestions, "Specify the type of analysis or report needed")
		}
	}

	return models.QueryRecommendations{
		Query:       query,
		Status:      decision.Status,
		Confidence:  decision.Confidence,
		Suggestions: suggestions,
		Analysis:    analysis,
	}
}

func containsAny(lower string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
