// ABOUTME: Prompt construction for OpenSearch DSL generation
// ABOUTME: Strict JSON-only instructions plus per-retry correction appendix
package dsl

import (
	"encoding/json"
	"fmt"
)

// buildPrompt creates the strict generation prompt for the completion
// provider: the target index, its schema, and the exact JSON shape required
func buildPrompt(query, indexName string, schema SourceSchema, resultSize int) string {
	schemaJSON, _ := json.MarshalIndent(schema, "", "  ")

	return fmt.Sprintf(`CRITICAL INSTRUCTION: RESPOND WITH ONLY VALID JSON - NO OTHER TEXT

You are an OpenSearch DSL expert. Your response must be ONLY a valid JSON object.

DO NOT INCLUDE:
- Explanations
- Headers like "Here is the query:"
- Markdown formatting or code blocks
- Any text before or after the JSON

User Query: %s

Index: %s
Schema: %s

REQUIRED FORMAT - RESPOND WITH ONLY THIS JSON STRUCTURE:
{
  "index_name": "%s",
  "query_type": "search",
  "opensearch_dsl": {
    "query": {
      "bool": {
        "must": [
          {"match": {"field_name": "search_term"}}
        ],
        "filter": [
          {"range": {"date_field": {"gte": "2024-01-01"}}}
        ]
      }
    },
    "size": %d,
    "sort": [
      {"date_field": {"order": "desc"}}
    ]
  }
}

INSTRUCTIONS:
1. Replace field_name with actual schema fields
2. Replace search_term with query-relevant terms
3. Replace date_field with appropriate date fields
4. Use proper OpenSearch DSL syntax
5. Add filters based on the user query
6. Keep size at or below %d
7. Add sorting when relevant

RESPOND WITH ONLY THE JSON OBJECT - NO OTHER TEXT

JSON RESPONSE:
`, query, indexName, schemaJSON, indexName, resultSize, resultSize)
}

// correctionSuffix is appended to the prompt before each retry, carrying the
// failure context forward so the provider can self-correct
func correctionSuffix(attempt int, parseErr error) string {
	return fmt.Sprintf("\n\nRETRY %d: Previous response was invalid. %v. RESPOND WITH ONLY VALID JSON:", attempt, parseErr)
}
