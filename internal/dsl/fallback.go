// ABOUTME: Deterministic rule-based DSL builder used when generation is unavailable
// ABOUTME: Lexical cues add filters; output is a pure function of query and source
package dsl

import (
	"strings"

	"github.com/careroute/careroute/internal/models"
)

// FallbackQuery builds a minimal OpenSearch DSL document from lexical cues in
// the query. It never evaluates free text as executable syntax, so its output
// is always safe.
func FallbackQuery(query, indexName string, resultSize int) models.StructuredQuery {
	lower := strings.ToLower(query)

	must := []any{}
	filter := []any{}

	switch {
	case strings.Contains(lower, "denied") || strings.Contains(lower, "rejected"):
		filter = append(filter, map[string]any{
			"term": map[string]any{"status": "denied"},
		})
	case strings.Contains(lower, "approved") || strings.Contains(lower, "paid"):
		filter = append(filter, map[string]any{
			"term": map[string]any{"status": "approved"},
		})
	}

	if strings.Contains(lower, "last month") || strings.Contains(lower, "recent") {
		filter = append(filter, map[string]any{
			"range": map[string]any{"date": map[string]any{"gte": "now-1M"}},
		})
	}

	switch {
	case strings.Contains(lower, "claims"):
		must = append(must, map[string]any{
			"match": map[string]any{"claim_type": "healthcare"},
		})
	case strings.Contains(lower, "provider"):
		must = append(must, map[string]any{
			"match": map[string]any{"provider_type": "healthcare"},
		})
	}

	return models.StructuredQuery{
		IndexName: indexName,
		QueryType: "search",
		OpenSearchDSL: map[string]any{
			"query": map[string]any{
				"bool": map[string]any{
					"must":   must,
					"filter": filter,
				},
			},
			"size": resultSize,
			"sort": []any{
				map[string]any{"date": map[string]any{"order": "desc"}},
			},
		},
	}
}
