// ABOUTME: Tests for the SQLite routing decision audit log
// ABOUTME: Uses in-memory databases; covers logging, recency, and status counts
package sqlite

import (
	"fmt"
	"testing"

	"github.com/careroute/careroute/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleDecision(id string, status models.RoutingStatus) models.RoutingDecision {
	return models.RoutingDecision{
		DecisionID:   id,
		Query:        "show me denied claims",
		Status:       status,
		Confidence:   0.82,
		TargetSource: "healthcare_claims_index",
		Classification: &models.ClassificationResult{
			IsHealthcare: true,
			Confidence:   0.9,
			SourceName:   "ensemble",
		},
		ProcessingTimeMS: 12.5,
	}
}

func TestDecisionStore_LogAndRecent(t *testing.T) {
	store := NewDecisionStore(testDB(t))

	if err := store.LogDecision(sampleDecision("decision_1", models.StatusHighConfidence)); err != nil {
		t.Fatalf("LogDecision error: %v", err)
	}

	records, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.DecisionID != "decision_1" {
		t.Errorf("DecisionID = %q", rec.DecisionID)
	}
	if rec.Status != models.StatusHighConfidence {
		t.Errorf("Status = %s", rec.Status)
	}
	if rec.TargetSource != "healthcare_claims_index" {
		t.Errorf("TargetSource = %q", rec.TargetSource)
	}
	if rec.Classifier != "ensemble" {
		t.Errorf("Classifier = %q", rec.Classifier)
	}
	if !rec.IsHealthcare {
		t.Error("IsHealthcare should round-trip")
	}
	if rec.Confidence != 0.82 {
		t.Errorf("Confidence = %v", rec.Confidence)
	}
}

func TestDecisionStore_LogWithoutClassification(t *testing.T) {
	store := NewDecisionStore(testDB(t))

	decision := models.RoutingDecision{
		DecisionID: "decision_err",
		Query:      "broken",
		Status:     models.StatusError,
		Message:    "embedding api down",
	}
	if err := store.LogDecision(decision); err != nil {
		t.Fatalf("LogDecision error: %v", err)
	}

	records, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if records[0].Classifier != "" {
		t.Errorf("Classifier = %q, want empty", records[0].Classifier)
	}
	if records[0].Message != "embedding api down" {
		t.Errorf("Message = %q", records[0].Message)
	}
}

func TestDecisionStore_RecentLimit(t *testing.T) {
	store := NewDecisionStore(testDB(t))

	for i := 0; i < 5; i++ {
		d := sampleDecision(fmt.Sprintf("decision_%d", i), models.StatusHighConfidence)
		if err := store.LogDecision(d); err != nil {
			t.Fatalf("LogDecision error: %v", err)
		}
	}

	records, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want limit of 3", len(records))
	}
}

func TestDecisionStore_CountByStatus(t *testing.T) {
	store := NewDecisionStore(testDB(t))

	statuses := []models.RoutingStatus{
		models.StatusHighConfidence,
		models.StatusHighConfidence,
		models.StatusRejectedNonHealthcare,
		models.StatusRequiresClarification,
	}
	for i, status := range statuses {
		d := sampleDecision(fmt.Sprintf("decision_%d", i), status)
		if err := store.LogDecision(d); err != nil {
			t.Fatalf("LogDecision error: %v", err)
		}
	}

	counts, err := store.CountByStatus()
	if err != nil {
		t.Fatalf("CountByStatus error: %v", err)
	}
	if counts[models.StatusHighConfidence] != 2 {
		t.Errorf("HIGH_CONFIDENCE count = %d, want 2", counts[models.StatusHighConfidence])
	}
	if counts[models.StatusRejectedNonHealthcare] != 1 {
		t.Errorf("REJECTED count = %d, want 1", counts[models.StatusRejectedNonHealthcare])
	}
}

func TestDecisionStore_DuplicateIDFails(t *testing.T) {
	store := NewDecisionStore(testDB(t))

	d := sampleDecision("decision_dup", models.StatusHighConfidence)
	if err := store.LogDecision(d); err != nil {
		t.Fatalf("first LogDecision error: %v", err)
	}
	if err := store.LogDecision(d); err == nil {
		t.Error("duplicate decision ID should violate the primary key")
	}
}
