// ABOUTME: Schema validation for generated structured query documents
// ABOUTME: Required keys: index_name, query_type, opensearch_dsl with a query
package dsl

import (
	"fmt"

	"github.com/careroute/careroute/internal/models"
)

// ValidateDocument checks the generated document for the required top-level
// keys and the presence of opensearch_dsl.query
func ValidateDocument(doc map[string]any) error {
	for _, field := range []string{"index_name", "query_type", "opensearch_dsl"} {
		if _, ok := doc[field]; !ok {
			return fmt.Errorf("missing required field %q", field)
		}
	}

	body, ok := doc["opensearch_dsl"].(map[string]any)
	if !ok {
		return fmt.Errorf("opensearch_dsl must be an object")
	}
	if _, ok := body["query"]; !ok {
		return fmt.Errorf("opensearch_dsl is missing a query")
	}
	return nil
}

// toStructuredQuery converts a validated document map into the typed form
func toStructuredQuery(doc map[string]any) models.StructuredQuery {
	sq := models.StructuredQuery{}
	if name, ok := doc["index_name"].(string); ok {
		sq.IndexName = name
	}
	if kind, ok := doc["query_type"].(string); ok {
		sq.QueryType = kind
	}
	if body, ok := doc["opensearch_dsl"].(map[string]any); ok {
		sq.OpenSearchDSL = body
	}
	return sq
}
