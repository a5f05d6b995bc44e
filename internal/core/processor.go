// ABOUTME: Query processor: classification gate, similarity routing, analytics
// ABOUTME: Converts every internal failure into a typed RoutingDecision
package core

import (
	"fmt"
	"log"
	"time"

	"github.com/careroute/careroute/internal/classifier"
	"github.com/careroute/careroute/internal/index"
	"github.com/careroute/careroute/internal/models"
	"github.com/google/uuid"
)

// searchTopK is the number of nearest neighbors fetched per query
const searchTopK = 5

// availableDomains enumerates the healthcare domains offered in clarifications
var availableDomains = []string{
	"Claims Processing and Payment Reconciliation",
	"Provider Network Management",
	"Fraud Detection and Investigation",
	"Financial Reporting and Analytics",
}

// DecisionLogger records finished routing decisions for audit. Implementations
// must tolerate best-effort use: logging failures never fail a request.
type DecisionLogger interface {
	LogDecision(decision models.RoutingDecision) error
}

// ProcessorConfig carries the thresholds the processor arbitrates with
type ProcessorConfig struct {
	ClassifierThreshold float64 // gate: minimum classification confidence
	DefaultThreshold    float64 // routing: minimum similarity for HIGH_CONFIDENCE
	LogClassifications  bool
}

// Processor routes analyst queries to healthcare data sources. The gate runs
// before any similarity search so non-healthcare traffic never costs an
// embedding call.
type Processor struct {
	gate    classifier.Classifier
	idx     *index.ConsolidatedIndex
	metrics *Metrics
	audit   DecisionLogger
	cfg     ProcessorConfig
}

// NewProcessor creates a processor. The gate may be nil (no pre-filtering),
// and audit may be nil (no decision logging).
func NewProcessor(gate classifier.Classifier, idx *index.ConsolidatedIndex, metrics *Metrics, audit DecisionLogger, cfg ProcessorConfig) *Processor {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Processor{
		gate:    gate,
		idx:     idx,
		metrics: metrics,
		audit:   audit,
		cfg:     cfg,
	}
}

// Metrics exposes the processor's analytics counters
func (p *Processor) Metrics() *Metrics {
	return p.metrics
}

// Route maps one query to a data source. It never returns an error: failures
// become decisions with StatusError so callers always get a typed result.
func (p *Processor) Route(query string) models.RoutingDecision {
	start := time.Now()
	p.metrics.recordQuery()

	decision := p.route(query)
	decision.DecisionID = "decision_" + uuid.New().String()
	decision.Query = query
	decision.ProcessingTimeMS = float64(time.Since(start).Microseconds()) / 1000.0
	p.metrics.recordProcessingTime(decision.ProcessingTimeMS)

	if p.audit != nil {
		if err := p.audit.LogDecision(decision); err != nil {
			log.Printf("Warning: could not log routing decision: %v", err)
		}
	}
	return decision
}

func (p *Processor) route(query string) models.RoutingDecision {
	// Step 1: classification gate, before any embedding cost
	if p.gate != nil && p.gate.IsAvailable() {
		result := p.gate.Classify(query)
		p.metrics.recordClassification()

		if p.cfg.LogClassifications {
			logClassification(query, result)
		}

		if !classifier.ShouldRoute(result, p.cfg.ClassifierThreshold) {
			p.metrics.recordRejection()
			return models.RoutingDecision{
				Status:         models.StatusRejectedNonHealthcare,
				Confidence:     result.Confidence,
				Classification: &result,
				Message:        "Query appears to be non-healthcare related. Please provide a healthcare-specific query.",
			}
		}
	}

	// Step 2: similarity search over the consolidated index
	results, err := p.idx.Search(query, searchTopK)
	if err != nil {
		p.metrics.recordError()
		return models.RoutingDecision{
			Status:  models.StatusError,
			Message: fmt.Sprintf("Error processing query: %v", err),
		}
	}

	confidence := bestScore(results)
	if confidence >= p.cfg.DefaultThreshold && len(results) > 0 {
		return models.RoutingDecision{
			Status:       models.StatusHighConfidence,
			Confidence:   confidence,
			TargetSource: results[0].SourceIndex,
			Evidence:     results,
			Message:      fmt.Sprintf("Proceed with %s for your analysis", results[0].SourceIndex),
		}
	}

	return models.RoutingDecision{
		Status:        models.StatusRequiresClarification,
		Confidence:    confidence,
		Evidence:      results,
		Clarification: newClarification(),
		Message:       "Query too generic - confidence below threshold",
	}
}

// bestScore is the confidence policy: the single highest similarity among the
// returned neighbors, not an average. Empty results mean zero confidence.
func bestScore(results []models.SearchResult) float64 {
	best := 0.0
	for _, r := range results {
		if r.SimilarityScore > best {
			best = r.SimilarityScore
		}
	}
	return best
}

func newClarification() *models.Clarification {
	return &models.Clarification{
		Message:          "Your query needs more specific details to find the right data source",
		AvailableDomains: availableDomains,
		RequiredDetails: []string{
			"Specific domain (claims, providers, fraud, etc.)",
			"Time period (date range, quarter, etc.)",
			"Type of analysis or report needed",
		},
		SampleQueries: []string{
			"Show me fraud detection reports for Q3 2024",
			"Generate provider network adequacy analysis for cardiology",
			"Create claims payment reconciliation report for last month",
			"Analyze provider performance metrics for emergency services",
		},
	}
}

func logClassification(query string, result models.ClassificationResult) {
	label := "Non-Healthcare"
	if result.IsHealthcare {
		label = "Healthcare"
	}
	preview := query
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	log.Printf("Classification: %s -> %s (conf: %.3f, source: %s)", preview, label, result.Confidence, result.SourceName)
}

// Statistics describes the routing system's static configuration and the
// current index composition
type Statistics struct {
	ConfidenceThreshold float64        `json:"confidence_threshold"`
	AvailableDomains    int            `json:"available_domains_count"`
	IndexSize           int            `json:"index_size"`
	SourceCounts        map[string]int `json:"source_counts"`
}

// Stats reports routing system statistics
func (p *Processor) Stats() Statistics {
	return Statistics{
		ConfidenceThreshold: p.cfg.DefaultThreshold,
		AvailableDomains:    len(availableDomains),
		IndexSize:           p.idx.Size(),
		SourceCounts:        p.idx.SourceCounts(),
	}
}
