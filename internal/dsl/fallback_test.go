// ABOUTME: Tests for the deterministic rule-based fallback query builder
// ABOUTME: Verifies lexical cues map to filters and output is reproducible
package dsl

import (
	"reflect"
	"testing"
)

func TestFallbackQuery_Deterministic(t *testing.T) {
	a := FallbackQuery("Show me denied claims from last month", "healthcare_claims_index", 100)
	b := FallbackQuery("Show me denied claims from last month", "healthcare_claims_index", 100)

	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs must produce identical documents")
	}
}

func TestFallbackQuery_DeniedClaimsLastMonth(t *testing.T) {
	sq := FallbackQuery("Show me denied claims from last month", "healthcare_claims_index", 100)

	if sq.IndexName != "healthcare_claims_index" {
		t.Errorf("IndexName = %q", sq.IndexName)
	}
	if sq.QueryType != "search" {
		t.Errorf("QueryType = %q, want search", sq.QueryType)
	}

	boolQuery := boolClause(t, sq.OpenSearchDSL)
	filter := boolQuery["filter"].([]any)
	if len(filter) != 2 {
		t.Fatalf("got %d filters, want status term + date range: %v", len(filter), filter)
	}

	term := filter[0].(map[string]any)["term"].(map[string]any)
	if term["status"] != "denied" {
		t.Errorf("status term = %v, want denied", term["status"])
	}

	rangeClause := filter[1].(map[string]any)["range"].(map[string]any)["date"].(map[string]any)
	if rangeClause["gte"] != "now-1M" {
		t.Errorf("date gte = %v, want now-1M", rangeClause["gte"])
	}

	must := boolQuery["must"].([]any)
	if len(must) != 1 {
		t.Fatalf("got %d must clauses, want claims match: %v", len(must), must)
	}
	match := must[0].(map[string]any)["match"].(map[string]any)
	if match["claim_type"] != "healthcare" {
		t.Errorf("claim_type match = %v", match["claim_type"])
	}
}

func TestFallbackQuery_ApprovedProvider(t *testing.T) {
	sq := FallbackQuery("approved provider payments", "healthcare_providers_index", 50)

	boolQuery := boolClause(t, sq.OpenSearchDSL)
	filter := boolQuery["filter"].([]any)
	term := filter[0].(map[string]any)["term"].(map[string]any)
	if term["status"] != "approved" {
		t.Errorf("status term = %v, want approved", term["status"])
	}

	must := boolQuery["must"].([]any)
	match := must[0].(map[string]any)["match"].(map[string]any)
	if match["provider_type"] != "healthcare" {
		t.Errorf("provider_type match = %v", match["provider_type"])
	}

	if sq.OpenSearchDSL["size"] != 50 {
		t.Errorf("size = %v, want 50", sq.OpenSearchDSL["size"])
	}
}

func TestFallbackQuery_NoCues(t *testing.T) {
	sq := FallbackQuery("member demographics", "healthcare_members_index", 100)

	boolQuery := boolClause(t, sq.OpenSearchDSL)
	if len(boolQuery["must"].([]any)) != 0 {
		t.Errorf("no lexical cues should leave must empty: %v", boolQuery["must"])
	}
	if len(boolQuery["filter"].([]any)) != 0 {
		t.Errorf("no lexical cues should leave filter empty: %v", boolQuery["filter"])
	}
}

func TestFallbackQuery_AlwaysValid(t *testing.T) {
	queries := []string{
		"denied claims",
		"approved provider audit",
		"recent member changes",
		"",
	}
	for _, q := range queries {
		sq := FallbackQuery(q, "healthcare_claims_index", 100)
		doc := map[string]any{
			"index_name":     sq.IndexName,
			"query_type":     sq.QueryType,
			"opensearch_dsl": sq.OpenSearchDSL,
		}
		if err := ValidateDocument(doc); err != nil {
			t.Errorf("FallbackQuery(%q) produced an invalid document: %v", q, err)
		}
	}
}

func boolClause(t *testing.T, dsl map[string]any) map[string]any {
	t.Helper()
	query, ok := dsl["query"].(map[string]any)
	if !ok {
		t.Fatalf("missing query clause: %v", dsl)
	}
	boolQuery, ok := query["bool"].(map[string]any)
	if !ok {
		t.Fatalf("missing bool clause: %v", query)
	}
	return boolQuery
}
