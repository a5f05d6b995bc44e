// ABOUTME: Lexical keyword-ratio healthcare classifier
// ABOUTME: Loads keyword lists from external JSON files with a built-in fallback
package classifier

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/careroute/careroute/internal/models"
)

const keywordClassifierName = "keyword"

// ratioThreshold is the minimum ratio gap that earns a confidence boost
const ratioThreshold = 0.1

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// Minimal built-in keyword sets used when no external lists are present
var builtinHealthcareKeywords = []string{
	"healthcare", "medical", "patient", "doctor", "hospital", "clinic",
	"insurance", "claim", "provider", "member", "procedure", "treatment",
}

var builtinNonHealthcareKeywords = []string{
	"food", "cooking", "weather", "car", "movie", "music", "sports",
	"travel", "phone", "computer", "shopping", "restaurant",
}

// KeywordClassifier classifies by keyword-ratio analysis with a count-based
// fallback for ties and low-confidence results
type KeywordClassifier struct {
	healthcareKeywords    []string
	nonHealthcareKeywords []string
	minConfidence         float64
}

// NewKeywordClassifier creates a keyword classifier, loading external keyword
// lists from opts.KeywordDir when present
func NewKeywordClassifier(opts Options) *KeywordClassifier {
	minConfidence := opts.MinConfidence
	if minConfidence <= 0 {
		minConfidence = 0.3
	}
	return &KeywordClassifier{
		healthcareKeywords:    loadKeywords(opts.KeywordDir, "healthcare_keywords.json", builtinHealthcareKeywords),
		nonHealthcareKeywords: loadKeywords(opts.KeywordDir, "non_healthcare_keywords.json", builtinNonHealthcareKeywords),
		minConfidence:         minConfidence,
	}
}

// loadKeywords reads {"keywords": [...]} from dir/name, falling back to the
// built-in list on any failure
func loadKeywords(dir, name string, builtin []string) []string {
	if dir == "" {
		return builtin
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return builtin
	}
	var payload struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Keywords) == 0 {
		return builtin
	}
	return payload.Keywords
}

// Name returns the classifier's source name
func (kc *KeywordClassifier) Name() string { return keywordClassifierName }

// IsAvailable always reports true; keyword matching has no external dependency
func (kc *KeywordClassifier) IsAvailable() bool { return true }

// Classify scores the query by comparing healthcare and non-healthcare
// keyword ratios over the total word count
func (kc *KeywordClassifier) Classify(query string) models.ClassificationResult {
	start := time.Now()

	lower := strings.ToLower(query)
	totalWords := len(wordPattern.FindAllString(lower, -1))

	healthcareCount := countMatches(lower, kc.healthcareKeywords)
	nonHealthcareCount := countMatches(lower, kc.nonHealthcareKeywords)

	var result models.ClassificationResult
	if totalWords > 0 {
		result = kc.ratioBased(healthcareCount, nonHealthcareCount, totalWords)
	} else {
		result = kc.countBased(healthcareCount, nonHealthcareCount)
	}

	result.SourceName = keywordClassifierName
	result.ProcessingTimeMS = float64(time.Since(start).Microseconds()) / 1000.0
	return result
}

func (kc *KeywordClassifier) ratioBased(healthcareCount, nonHealthcareCount, totalWords int) models.ClassificationResult {
	healthcareRatio := float64(healthcareCount) / float64(totalWords)
	nonHealthcareRatio := float64(nonHealthcareCount) / float64(totalWords)
	gap := healthcareRatio - nonHealthcareRatio
	if gap < 0 {
		gap = -gap
	}

	var isHealthcare bool
	var confidence float64
	switch {
	case healthcareRatio > nonHealthcareRatio:
		isHealthcare = true
		confidence = kc.ratioConfidence(healthcareRatio, gap)
	case nonHealthcareRatio > healthcareRatio:
		isHealthcare = false
		confidence = kc.ratioConfidence(nonHealthcareRatio, gap)
	default:
		// Tied ratios: fall back to the count comparison
		return kc.countBased(healthcareCount, nonHealthcareCount)
	}

	if confidence < kc.minConfidence {
		return kc.countBased(healthcareCount, nonHealthcareCount)
	}

	return models.ClassificationResult{
		IsHealthcare: isHealthcare,
		Confidence:   confidence,
		RawDetail: map[string]any{
			"method":               "ratio_based",
			"healthcare_count":     healthcareCount,
			"non_healthcare_count": nonHealthcareCount,
			"total_words":          totalWords,
			"healthcare_ratio":     healthcareRatio,
			"non_healthcare_ratio": nonHealthcareRatio,
			"ratio_difference":     gap,
		},
	}
}

// countBased compares raw hit counts. Ties, including zero hits on both
// sides, deliberately default to healthcare at the minimum confidence so an
// ambiguous query is gated by the threshold rather than silently dropped.
func (kc *KeywordClassifier) countBased(healthcareCount, nonHealthcareCount int) models.ClassificationResult {
	var isHealthcare bool
	var confidence float64
	switch {
	case healthcareCount > nonHealthcareCount:
		isHealthcare = true
		confidence = minFloat(0.9, 0.5+float64(healthcareCount)*0.1)
	case nonHealthcareCount > healthcareCount:
		isHealthcare = false
		confidence = minFloat(0.9, 0.5+float64(nonHealthcareCount)*0.1)
	default:
		isHealthcare = true
		confidence = kc.minConfidence
	}

	return models.ClassificationResult{
		IsHealthcare: isHealthcare,
		Confidence:   confidence,
		RawDetail: map[string]any{
			"method":               "count_based",
			"healthcare_count":     healthcareCount,
			"non_healthcare_count": nonHealthcareCount,
		},
	}
}

// ratioConfidence derives confidence from the winning ratio: a 0.3 base plus
// twice the ratio, boosted by up to 0.2 for a clear gap, penalized when the
// winning ratio itself is weak, clamped to [minConfidence, 0.95].
func (kc *KeywordClassifier) ratioConfidence(primaryRatio, gap float64) float64 {
	confidence := minFloat(0.9, 0.3+primaryRatio*2.0)
	if gap > ratioThreshold {
		confidence += minFloat(0.2, gap*2.0)
	}
	if primaryRatio < 0.1 {
		confidence *= 0.8
	}
	return maxFloat(kc.minConfidence, minFloat(0.95, confidence))
}

func countMatches(lowerQuery string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(lowerQuery, keyword) {
			count++
		}
	}
	return count
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
