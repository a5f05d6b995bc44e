// ABOUTME: Tests for JSON extraction from unreliable completion output
// ABOUTME: Exercises every strategy in the chain plus schema validation
package dsl

import (
	"strings"
	"testing"
)

const validDoc = `{
  "index_name": "healthcare_claims_index",
  "query_type": "search",
  "opensearch_dsl": {
    "query": {"match_all": {}},
    "size": 100
  }
}`

func TestParseStructuredResponse_DirectJSON(t *testing.T) {
	doc, err := ParseStructuredResponse(validDoc)
	if err != nil {
		t.Fatalf("ParseStructuredResponse error: %v", err)
	}
	if doc["index_name"] != "healthcare_claims_index" {
		t.Errorf("index_name = %v", doc["index_name"])
	}
}

func TestParseStructuredResponse_MarkdownFence(t *testing.T) {
	raw := "```json\n" + validDoc + "\n```"

	doc, err := ParseStructuredResponse(raw)
	if err != nil {
		t.Fatalf("ParseStructuredResponse error: %v", err)
	}
	if doc["query_type"] != "search" {
		t.Errorf("query_type = %v", doc["query_type"])
	}
}

func TestParseStructuredResponse_KnownPrefix(t *testing.T) {
	raw := "Here is the OpenSearch DSL query: " + validDoc

	if _, err := ParseStructuredResponse(raw); err != nil {
		t.Fatalf("ParseStructuredResponse error: %v", err)
	}
}

func TestParseStructuredResponse_SurroundingProse(t *testing.T) {
	raw := "Sure! Based on your request I generated this:\n" + validDoc + "\nLet me know if you need changes."

	if _, err := ParseStructuredResponse(raw); err != nil {
		t.Fatalf("ParseStructuredResponse error: %v", err)
	}
}

func TestParseStructuredResponse_RejectsInvalidSchema(t *testing.T) {
	// Valid JSON but missing opensearch_dsl
	raw := `{"index_name": "x", "query_type": "search"}`

	if _, err := ParseStructuredResponse(raw); err == nil {
		t.Error("document missing required fields should fail")
	}
}

func TestParseStructuredResponse_Garbage(t *testing.T) {
	_, err := ParseStructuredResponse("I cannot generate a query for that request.")
	if err == nil {
		t.Fatal("expected error for non-JSON output")
	}
	if !strings.Contains(err.Error(), "could not extract valid JSON") {
		t.Errorf("error = %v", err)
	}
}

func TestParseStructuredResponse_LongGarbageTruncatedInError(t *testing.T) {
	_, err := ParseStructuredResponse(strings.Repeat("x", 500))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 300 {
		t.Errorf("error message should carry a truncated preview, got %d chars", len(err.Error()))
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     map[string]any
		wantErr bool
	}{
		{
			name: "complete document",
			doc: map[string]any{
				"index_name":     "idx",
				"query_type":     "search",
				"opensearch_dsl": map[string]any{"query": map[string]any{}},
			},
			wantErr: false,
		},
		{
			name:    "missing index_name",
			doc:     map[string]any{"query_type": "search", "opensearch_dsl": map[string]any{"query": map[string]any{}}},
			wantErr: true,
		},
		{
			name:    "opensearch_dsl not an object",
			doc:     map[string]any{"index_name": "idx", "query_type": "search", "opensearch_dsl": "select *"},
			wantErr: true,
		},
		{
			name:    "opensearch_dsl without query",
			doc:     map[string]any{"index_name": "idx", "query_type": "search", "opensearch_dsl": map[string]any{"size": 10}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocument() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
