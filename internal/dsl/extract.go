// ABOUTME: JSON extraction strategies for unreliable completion output
// ABOUTME: Ordered chain with early exit on the first valid, schema-passing parse
package dsl

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// extractor pulls a JSON candidate out of raw completion text. An empty
// return means the strategy found nothing.
type extractor func(raw string) string

// extractors are tried in order of increasing aggressiveness
var extractors = []extractor{
	extractDirect,
	extractCleaned,
	extractLongestBraces,
	extractBoundaries,
}

var bracesPattern = regexp.MustCompile(`(?s)\{.*\}`)

// prefixes completion providers commonly prepend despite instructions
var knownPrefixes = []string{
	"here is the opensearch dsl query:",
	"here's the opensearch dsl query:",
	"the opensearch dsl query is:",
	"opensearch dsl query:",
	"here is the query:",
	"here's the query:",
	"the query is:",
	"query:",
	"response:",
	"answer:",
	"result:",
	"```json",
	"```",
	"json:",
}

// ParseStructuredResponse runs each extraction strategy until one yields
// JSON that satisfies the schema validator
func ParseStructuredResponse(raw string) (map[string]any, error) {
	for _, extract := range extractors {
		candidate := extract(raw)
		if candidate == "" {
			continue
		}

		var doc map[string]any
		if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
			continue
		}
		if err := ValidateDocument(doc); err != nil {
			continue
		}
		return doc, nil
	}

	preview := raw
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return nil, fmt.Errorf("could not extract valid JSON from response: %s", preview)
}

// extractDirect tries the raw text as-is
func extractDirect(raw string) string {
	return strings.TrimSpace(raw)
}

// extractCleaned strips known prefixes and markdown fences before parsing
func extractCleaned(raw string) string {
	cleaned := strings.TrimSpace(raw)

	for _, prefix := range knownPrefixes {
		if strings.HasPrefix(strings.ToLower(cleaned), prefix) {
			cleaned = strings.TrimSpace(cleaned[len(prefix):])
		}
	}

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[7:]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[3:]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	if start := strings.Index(cleaned, "{"); start > 0 {
		cleaned = cleaned[start:]
	}
	if end := strings.LastIndex(cleaned, "}"); end != -1 && end < len(cleaned)-1 {
		cleaned = cleaned[:end+1]
	}
	return strings.TrimSpace(cleaned)
}

// extractLongestBraces regex-extracts the longest {...} span
func extractLongestBraces(raw string) string {
	matches := bracesPattern.FindAllString(raw, -1)
	longest := ""
	for _, m := range matches {
		if len(m) > len(longest) {
			longest = m
		}
	}
	return longest
}

// extractBoundaries takes the substring between the first { and the last }
func extractBoundaries(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
