// ABOUTME: Ensemble classifier combining semantic and keyword sub-classifiers
// ABOUTME: Supports majority, weighted, and confidence voting strategies
package classifier

import (
	"time"

	"github.com/careroute/careroute/internal/models"
)

const ensembleClassifierName = "ensemble"

// EnsembleClassifier queries both sub-classifiers and combines their results
// with the configured voting strategy. Construction never fails: a
// sub-classifier that cannot come up is simply marked unavailable.
type EnsembleClassifier struct {
	semantic *ZeroShotClassifier
	keyword  *KeywordClassifier

	votingStrategy string
	semanticWeight float64
	keywordWeight  float64
	minConfidence  float64
}

// NewEnsembleClassifier builds both sub-classifiers from the shared options
func NewEnsembleClassifier(opts Options) *EnsembleClassifier {
	strategy := opts.VotingStrategy
	switch strategy {
	case "majority", "weighted", "confidence":
	default:
		strategy = "weighted"
	}
	semanticWeight := opts.SemanticWeight
	if semanticWeight == 0 {
		semanticWeight = 0.6
	}
	keywordWeight := opts.KeywordWeight
	if keywordWeight == 0 {
		keywordWeight = 0.4
	}
	minConfidence := opts.MinConfidence
	if minConfidence <= 0 {
		minConfidence = 0.3
	}

	return &EnsembleClassifier{
		semantic:       NewZeroShotClassifier(opts),
		keyword:        NewKeywordClassifier(opts),
		votingStrategy: strategy,
		semanticWeight: semanticWeight,
		keywordWeight:  keywordWeight,
		minConfidence:  minConfidence,
	}
}

// Name returns the classifier's source name
func (ec *EnsembleClassifier) Name() string { return ensembleClassifierName }

// IsAvailable reports whether at least one sub-classifier is live
func (ec *EnsembleClassifier) IsAvailable() bool {
	return ec.semantic.IsAvailable() || ec.keyword.IsAvailable()
}

// Classify runs every available sub-classifier and combines the results.
// With a single live strategy its result passes through verbatim; with none,
// the ensemble fails closed.
func (ec *EnsembleClassifier) Classify(query string) models.ClassificationResult {
	start := time.Now()

	var semanticResult, keywordResult *models.ClassificationResult
	if ec.semantic.IsAvailable() {
		r := ec.semantic.Classify(query)
		semanticResult = &r
	}
	if ec.keyword.IsAvailable() {
		r := ec.keyword.Classify(query)
		keywordResult = &r
	}

	result := ec.combine(semanticResult, keywordResult)
	result.SourceName = ensembleClassifierName
	result.ProcessingTimeMS = float64(time.Since(start).Microseconds()) / 1000.0
	return result
}

func (ec *EnsembleClassifier) combine(semantic, keyword *models.ClassificationResult) models.ClassificationResult {
	if semantic == nil && keyword == nil {
		return models.ClassificationResult{
			IsHealthcare: false,
			Confidence:   0.0,
			RawDetail:    map[string]any{"error": "no classifiers available"},
		}
	}
	if semantic == nil {
		return *keyword
	}
	if keyword == nil {
		return *semantic
	}

	switch ec.votingStrategy {
	case "majority":
		return ec.majorityVote(*semantic, *keyword)
	case "confidence":
		return ec.confidenceVote(*semantic, *keyword)
	default:
		return ec.weightedVote(*semantic, *keyword)
	}
}

// majorityVote counts a positive decision when at least one of the two votes
// is positive; with two voters a 1-1 split resolves toward healthcare.
// Confidence is the arithmetic mean of the two confidences.
func (ec *EnsembleClassifier) majorityVote(semantic, keyword models.ClassificationResult) models.ClassificationResult {
	votes := 0
	if semantic.IsHealthcare {
		votes++
	}
	if keyword.IsHealthcare {
		votes++
	}

	return models.ClassificationResult{
		IsHealthcare: votes >= 1,
		Confidence:   (semantic.Confidence + keyword.Confidence) / 2,
		RawDetail: map[string]any{
			"method":          "majority_voting",
			"semantic_result": subResultDetail(semantic),
			"keyword_result":  subResultDetail(keyword),
		},
	}
}

// weightedVote scores each sub-classifier as confidence x weight toward
// healthcare, or (1 - confidence) x weight when it voted against, and
// classifies healthcare when the combined score exceeds 0.5. The weights
// are not required to sum to 1, so the reported confidence is clamped
// back into [0,1].
func (ec *EnsembleClassifier) weightedVote(semantic, keyword models.ClassificationResult) models.ClassificationResult {
	semanticScore := (1 - semantic.Confidence) * ec.semanticWeight
	if semantic.IsHealthcare {
		semanticScore = semantic.Confidence * ec.semanticWeight
	}
	keywordScore := (1 - keyword.Confidence) * ec.keywordWeight
	if keyword.IsHealthcare {
		keywordScore = keyword.Confidence * ec.keywordWeight
	}

	combined := semanticScore + keywordScore
	isHealthcare := combined > 0.5
	confidence := combined
	if !isHealthcare {
		confidence = 1 - combined
	}
	confidence = clamp01(confidence)

	return models.ClassificationResult{
		IsHealthcare: isHealthcare,
		Confidence:   confidence,
		RawDetail: map[string]any{
			"method":          "weighted_voting",
			"semantic_weight": ec.semanticWeight,
			"keyword_weight":  ec.keywordWeight,
			"semantic_score":  semanticScore,
			"keyword_score":   keywordScore,
			"semantic_result": subResultDetail(semantic),
			"keyword_result":  subResultDetail(keyword),
		},
	}
}

// confidenceVote propagates whichever sub-result is more confident, unchanged
func (ec *EnsembleClassifier) confidenceVote(semantic, keyword models.ClassificationResult) models.ClassificationResult {
	selected := keyword
	selectedName := "keyword"
	if semantic.Confidence > keyword.Confidence {
		selected = semantic
		selectedName = "semantic"
	}

	return models.ClassificationResult{
		IsHealthcare: selected.IsHealthcare,
		Confidence:   selected.Confidence,
		RawDetail: map[string]any{
			"method":              "confidence_based",
			"selected_classifier": selectedName,
			"semantic_result":     subResultDetail(semantic),
			"keyword_result":      subResultDetail(keyword),
		},
	}
}

func subResultDetail(r models.ClassificationResult) map[string]any {
	return map[string]any{
		"is_healthcare": r.IsHealthcare,
		"confidence":    r.Confidence,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
