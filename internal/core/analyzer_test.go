// ABOUTME: Tests for the query complexity analyzer and recommendations
// ABOUTME: Covers signal detection, level mapping, and suggestion gating
package core

import (
	"testing"

	"github.com/careroute/careroute/internal/models"
)

func TestAnalyzeComplexity(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantScore int
		wantLevel models.ComplexityLevel
	}{
		{
			name:      "terse query with no signals",
			query:     "fraud detection",
			wantScore: 0,
			wantLevel: models.ComplexityLow,
		},
		{
			name:      "domain and analysis type",
			query:     "claims report",
			wantScore: 2,
			wantLevel: models.ComplexityMedium,
		},
		{
			name:      "all four signals",
			query:     "Show me claims payment analysis report for Q3 2024",
			wantScore: 4,
			wantLevel: models.ComplexityHigh,
		},
		{
			name:      "three signals",
			query:     "provider performance metrics for 2024",
			wantScore: 3,
			wantLevel: models.ComplexityHigh,
		},
		{
			name:      "empty query",
			query:     "",
			wantScore: 0,
			wantLevel: models.ComplexityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzeComplexity(tt.query)
			if analysis.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d (analysis: %+v)", analysis.Score, tt.wantScore, analysis)
			}
			if analysis.Level != tt.wantLevel {
				t.Errorf("Level = %s, want %s", analysis.Level, tt.wantLevel)
			}
		})
	}
}

func TestAnalyzeComplexity_Signals(t *testing.T) {
	analysis := AnalyzeComplexity("monthly claims analysis for last quarter")

	if !analysis.HasTimeframe {
		t.Error("quarter should register as a timeframe signal")
	}
	if !analysis.HasDomain {
		t.Error("claims should register as a domain signal")
	}
	if !analysis.HasAnalysisType {
		t.Error("analysis should register as an analysis-type signal")
	}
	if analysis.WordCount != 6 {
		t.Errorf("WordCount = %d, want 6", analysis.WordCount)
	}
}

func TestRecommend_ClarificationGetsSuggestions(t *testing.T) {
	decision := models.RoutingDecision{
		Status:     models.StatusRequiresClarification,
		Confidence: 0.2,
	}

	recs := Recommend("fraud detection", decision)

	if len(recs.Suggestions) != 3 {
		t.Fatalf("got %d suggestions, want one per missing signal (3): %v", len(recs.Suggestions), recs.Suggestions)
	}
	if recs.Status != models.StatusRequiresClarification {
		t.Errorf("Status = %s", recs.Status)
	}
	if recs.Confidence != 0.2 {
		t.Errorf("Confidence = %.2f, want the decision confidence", recs.Confidence)
	}
}

func TestRecommend_PartialSignalsPartialSuggestions(t *testing.T) {
	decision := models.RoutingDecision{Status: models.StatusRequiresClarification}

	// Domain present, timeframe and analysis type missing
	recs := Recommend("claims", decision)

	if len(recs.Suggestions) != 2 {
		t.Errorf("got %d suggestions, want 2: %v", len(recs.Suggestions), recs.Suggestions)
	}
}

func TestRecommend_HighConfidenceNoSuggestions(t *testing.T) {
	decision := models.RoutingDecision{
		Status:     models.StatusHighConfidence,
		Confidence: 0.9,
	}

	recs := Recommend("fraud detection", decision)

	if len(recs.Suggestions) != 0 {
		t.Errorf("high-confidence routing should produce no suggestions, got %v", recs.Suggestions)
	}
}
