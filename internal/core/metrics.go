// ABOUTME: Process-wide analytics counters for the query processor
// ABOUTME: Atomic increments; shared across concurrent request workers
package core

import (
	"time"

	"go.uber.org/atomic"
)

// Metrics tracks aggregate routing analytics for the life of the process.
// All fields are atomic so concurrent workers never lose an increment.
type Metrics struct {
	queryCount          atomic.Int64
	classificationCount atomic.Int64
	rejectionCount      atomic.Int64
	errorCount          atomic.Int64
	totalProcessingMS   atomic.Float64
}

// NewMetrics creates a zeroed metrics object
func NewMetrics() *Metrics {
	return &Metrics{}
}

// AnalyticsSummary is a point-in-time snapshot of the counters with derived rates
type AnalyticsSummary struct {
	TotalQueries          int64   `json:"total_queries"`
	ClassificationCount   int64   `json:"classification_count"`
	RejectionCount        int64   `json:"rejection_count"`
	ErrorCount            int64   `json:"error_count"`
	TotalProcessingMS     float64 `json:"total_processing_time_ms"`
	AverageProcessingMS   float64 `json:"average_processing_time_ms"`
	RejectionRatePercent  float64 `json:"rejection_rate"`
	ErrorRatePercent      float64 `json:"error_rate"`
	ClassificationPercent float64 `json:"classification_rate"`
	Timestamp             string  `json:"timestamp"`
}

func (m *Metrics) recordQuery()          { m.queryCount.Inc() }
func (m *Metrics) recordClassification() { m.classificationCount.Inc() }
func (m *Metrics) recordRejection()      { m.rejectionCount.Inc() }
func (m *Metrics) recordError()          { m.errorCount.Inc() }

func (m *Metrics) recordProcessingTime(ms float64) {
	m.totalProcessingMS.Add(ms)
}

// Summary returns a snapshot of the counters. Counters keep moving while the
// snapshot is taken; rates are best-effort, not a consistent cut.
func (m *Metrics) Summary() AnalyticsSummary {
	queries := m.queryCount.Load()
	summary := AnalyticsSummary{
		TotalQueries:        queries,
		ClassificationCount: m.classificationCount.Load(),
		RejectionCount:      m.rejectionCount.Load(),
		ErrorCount:          m.errorCount.Load(),
		TotalProcessingMS:   m.totalProcessingMS.Load(),
		Timestamp:           time.Now().Format(time.RFC3339),
	}
	if queries > 0 {
		summary.AverageProcessingMS = summary.TotalProcessingMS / float64(queries)
		summary.RejectionRatePercent = float64(summary.RejectionCount) / float64(queries) * 100
		summary.ErrorRatePercent = float64(summary.ErrorCount) / float64(queries) * 100
		summary.ClassificationPercent = float64(summary.ClassificationCount) / float64(queries) * 100
	}
	return summary
}

// Reset zeroes all counters
func (m *Metrics) Reset() {
	m.queryCount.Store(0)
	m.classificationCount.Store(0)
	m.rejectionCount.Store(0)
	m.errorCount.Store(0)
	m.totalProcessingMS.Store(0)
}
