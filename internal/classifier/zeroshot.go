// ABOUTME: Semantic healthcare classifier backed by a zero-shot label model
// ABOUTME: Fails closed (not healthcare, zero confidence) when the model is down
package classifier

import (
	"time"

	"github.com/careroute/careroute/internal/models"
)

const zeroShotClassifierName = "bart_zero_shot"

const (
	healthcareLabel    = "Healthcare and Medical"
	nonHealthcareLabel = "Non-Healthcare"
	hypothesisTemplate = "This query is about {} topics."
)

// ZeroShotClassifier asks an external zero-shot model to pick between the two
// candidate domain labels
type ZeroShotClassifier struct {
	model ZeroShotModel
}

// NewZeroShotClassifier creates a semantic classifier over opts.ZeroShot
func NewZeroShotClassifier(opts Options) *ZeroShotClassifier {
	return &ZeroShotClassifier{model: opts.ZeroShot}
}

// Name returns the classifier's source name
func (zc *ZeroShotClassifier) Name() string { return zeroShotClassifierName }

// IsAvailable reports whether the backing model can serve predictions
func (zc *ZeroShotClassifier) IsAvailable() bool {
	return zc.model != nil && zc.model.IsAvailable()
}

// Classify runs zero-shot classification over the two domain labels.
// Confidence is the top label's probability. Any model failure yields a
// fail-closed non-healthcare result rather than an error.
func (zc *ZeroShotClassifier) Classify(query string) models.ClassificationResult {
	start := time.Now()

	if !zc.IsAvailable() {
		return models.ClassificationResult{
			IsHealthcare: false,
			Confidence:   0.0,
			SourceName:   zeroShotClassifierName,
			RawDetail:    map[string]any{"error": "model not available"},
		}
	}

	prediction, err := zc.model.ClassifyLabels(query, []string{healthcareLabel, nonHealthcareLabel}, hypothesisTemplate)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil || len(prediction.Labels) == 0 || len(prediction.Scores) == 0 {
		detail := map[string]any{"error": "empty prediction"}
		if err != nil {
			detail["error"] = err.Error()
		}
		return models.ClassificationResult{
			IsHealthcare:     false,
			Confidence:       0.0,
			SourceName:       zeroShotClassifierName,
			ProcessingTimeMS: elapsed,
			RawDetail:        detail,
		}
	}

	return models.ClassificationResult{
		IsHealthcare:     prediction.Labels[0] == healthcareLabel,
		Confidence:       prediction.Scores[0],
		SourceName:       zeroShotClassifierName,
		ProcessingTimeMS: elapsed,
		RawDetail: map[string]any{
			"labels": prediction.Labels,
			"scores": prediction.Scores,
		},
	}
}
